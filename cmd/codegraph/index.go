package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kessdev/codegraph/internal/build"
	"github.com/kessdev/codegraph/internal/lang"
	"github.com/kessdev/codegraph/internal/render"
	"github.com/kessdev/codegraph/internal/store"
	"github.com/kessdev/codegraph/internal/walker"
)

// errUnresolvedReferences marks a build that completed but left at least
// one name unresolved after project link, distinct from a build that failed
// outright.
var errUnresolvedReferences = errors.New("build completed with unresolved references")

// errConfigInvalid marks a bad flag/config combination caught before any
// file is touched.
var errConfigInvalid = errors.New("invalid configuration")

var (
	indexFormat   string
	indexOut      string
	indexMaxDepth int
	indexTopK     int
)

var indexCmd = &cobra.Command{
	Use:   "index [PATH...]",
	Short: "Parse the given paths and build the architecture graph",
	Long: `index walks the given files, extracts every declared symbol and
relation across languages, and exports the top-ranked architecture view.

EXAMPLES:
    codegraph index ./src --format dot > arch.dot
    codegraph index . --format json --out snapshot.json
    codegraph index . --max-depth 2 --top-k 50`,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().StringVar(&indexFormat, "format", "text", "output format: text, json, dot")
	indexCmd.Flags().StringVar(&indexOut, "out", "", "write output to a file instead of stdout")
	indexCmd.Flags().IntVar(&indexMaxDepth, "max-depth", 3, "maximum structural depth kept in the view (0-3)")
	indexCmd.Flags().IntVar(&indexTopK, "top-k", 200, "maximum number of blocks kept in the view")
}

func runIndex(cmd *cobra.Command, args []string) error {
	if indexMaxDepth < 0 || indexMaxDepth > 3 {
		return fmt.Errorf("%w: --max-depth must be between 0 and 3, got %d", errConfigInvalid, indexMaxDepth)
	}

	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}
	files, err := discoverFiles(roots)
	if err != nil {
		return err
	}

	runner := build.NewRunner(lang.DefaultRegistry(), build.Config{
		Workers:  viper.GetInt("workers"),
		MaxDepth: indexMaxDepth,
		TopK:     indexTopK,
	})
	result, err := runner.Run(context.Background(), files)
	if err != nil {
		return fmt.Errorf("index: %w", err)
	}

	out := cmd.OutOrStdout()
	if indexOut != "" {
		f, err := os.Create(indexOut)
		if err != nil {
			return fmt.Errorf("open %s: %w", indexOut, err)
		}
		defer f.Close()
		out = f
	}
	if err := render.NewFormatter(out, render.Format(indexFormat)).Format(result.View); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if storePath := viper.GetString("store"); storePath != "" {
		s, err := store.Open(store.DefaultOptions(storePath))
		if err == nil {
			defer s.Close()
			root := strings.Join(roots, ",")
			_ = s.SaveSnapshot(root, result.View)
			_ = s.AppendRun(store.RunRecord{
				Root:       root,
				StartedAt:  time.Now().Add(-result.Duration),
				Duration:   result.Duration.String(),
				NodeCount:  len(result.View.Nodes),
				EdgeCount:  len(result.View.Edges),
				Unresolved: result.Link.Unresolved,
			})
		}
	}

	if len(result.Link.Unresolved) > 0 {
		return errUnresolvedReferences
	}
	return nil
}

// discoverFiles walks each root with internal/walker's gitignore-aware
// traversal (the same engine the teacher used for search corpus discovery),
// narrowed via walker.ConfigForExtensions to exactly the extensions the
// registered grammars claim so the walk itself does the language selection
// instead of discarding unwanted results after the fact.
func discoverFiles(roots []string) ([]string, error) {
	registry := lang.DefaultRegistry()
	cfg := walker.ConfigForExtensions(registry.Extensions())
	var files []string
	for _, root := range roots {
		w, err := walker.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("build walker: %w", err)
		}
		results, err := w.Walk(root)
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
		for res := range results {
			if res.Error != nil {
				continue
			}
			files = append(files, res.Path)
		}
	}
	return files, nil
}
