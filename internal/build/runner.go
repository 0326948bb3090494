// Package build orchestrates a full run over a given list of files:
// parsing and resolving each one in parallel, then running the project-wide passes that
// need every file done first. Modeled on the teacher's Builder/BuilderConfig
// two-phase (symbols, then references) design in internal/index/builder.go,
// generalized from "two phases" to "N parallel per-file phases followed by
// sequential project-wide passes" since the architecture graph adds more
// global passes (project link, block-graph connect, centrality) than the
// teacher's reference-resolution phase needed.
package build

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kessdev/codegraph/internal/blockgraph"
	"github.com/kessdev/codegraph/internal/bind"
	"github.com/kessdev/codegraph/internal/collect"
	"github.com/kessdev/codegraph/internal/ctxt"
	"github.com/kessdev/codegraph/internal/errs"
	"github.com/kessdev/codegraph/internal/graph"
	"github.com/kessdev/codegraph/internal/hir"
	"github.com/kessdev/codegraph/internal/lang"
	"github.com/kessdev/codegraph/internal/link"
)

// Config controls a Runner's behavior.
type Config struct {
	// Workers bounds how many files are parsed and resolved concurrently.
	Workers int
	// MaxDepth and TopK bound the exported architecture view (see
	// internal/graph.BuildView).
	MaxDepth int
	TopK     int
}

// DefaultConfig mirrors the teacher's DefaultBuilderConfig: a small worker
// pool and a view broad enough to be useful without drowning a reader in
// leaf-level call blocks.
func DefaultConfig() Config {
	return Config{Workers: 4, MaxDepth: 3, TopK: 200}
}

// Progress tracks run-wide counters a caller can poll while Run executes.
type Progress struct {
	FilesDiscovered atomic.Int64
	FilesParsed     atomic.Int64
	FilesErrored    atomic.Int64
}

// Runner drives one end-to-end architecture-graph build.
type Runner struct {
	registry *lang.Registry
	config   Config
	progress *Progress
}

// NewRunner builds a Runner over registry, which must already have every
// language adapter the caller wants parsed registered into it.
func NewRunner(registry *lang.Registry, config Config) *Runner {
	return &Runner{registry: registry, config: config, progress: &Progress{}}
}

// Progress returns the counters for the run in flight (or the last
// completed run).
func (r *Runner) Progress() *Progress { return r.progress }

// Result is everything a run produced.
type Result struct {
	Ctxt     *ctxt.CompileCtxt
	Link     link.Result
	Scores   graph.Scores
	View     graph.View
	Duration time.Duration
}

// Run parses every path, resolves symbols across the whole set, and
// exports the filtered architecture view. It fails fast: the first
// ParseError cancels the context and every other in-flight file stops
// starting new work, matching the concurrency model's "cancel on first
// unrecoverable error" rule.
func (r *Runner) Run(ctx context.Context, paths []string) (*Result, error) {
	start := time.Now()
	cc := ctxt.New()
	r.progress.FilesDiscovered.Store(int64(len(paths)))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers())
	units := make([]*ctxt.ParseUnit, len(paths))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if cc.Cancelled() {
				return errs.ErrCancelled
			}
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			unit, err := r.parseAndResolve(cc, path)
			if err != nil {
				r.progress.FilesErrored.Add(1)
				cc.Cancel(err)
				return err
			}
			units[i] = unit
			r.progress.FilesParsed.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("resolve phase: %w", err)
	}

	linkResult := link.Link(cc)

	bg, _ := errgroup.WithContext(ctx)
	bg.SetLimit(r.workers())
	for _, u := range units {
		if u == nil {
			continue
		}
		u := u
		bg.Go(func() error { blockgraph.Build(cc, u); return nil })
	}
	_ = bg.Wait()

	cg, _ := errgroup.WithContext(ctx)
	cg.SetLimit(r.workers())
	for _, u := range units {
		if u == nil {
			continue
		}
		u := u
		cg.Go(func() error { blockgraph.Connect(cc, u); return nil })
	}
	_ = cg.Wait()

	scores := graph.PageRank(cc)
	view := graph.BuildView(cc, scores, r.config.MaxDepth, r.config.TopK)

	return &Result{Ctxt: cc, Link: linkResult, Scores: scores, View: view, Duration: time.Since(start)}, nil
}

// parseAndResolve runs the full single-unit pipeline: parse, lift, collect,
// bind. It is safe to call concurrently for distinct paths since every
// allocation it makes goes through CompileCtxt's per-arena locks.
func (r *Runner) parseAndResolve(cc *ctxt.CompileCtxt, path string) (*ctxt.ParseUnit, error) {
	l, ok := r.registry.ForFile(path)
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, errs.ErrUnsupportedLang)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &errs.IOError{Path: path, Op: "read", Err: err}
	}
	tree, err := l.Parse(src)
	if err != nil {
		return nil, &errs.ParseError{Path: path, Err: err}
	}

	unit := cc.InternUnit(path, l, src, tree)
	hir.Lift(cc, unit)
	collect.Collect(cc, unit)
	bind.Bind(cc, unit)
	return unit, nil
}

func (r *Runner) workers() int {
	if r.config.Workers > 0 {
		return r.config.Workers
	}
	return 4
}
