// Package render formats an exported architecture view for a human or a
// downstream tool, generalized from the teacher's FormatterFactory/Formatter
// pair in internal/output/formatter.go: Format now picks a graph encoding
// (DOT, JSON, a plain-text summary) instead of a search-match encoding, but
// keeps the same "factory builds a Formatter over one io.Writer" shape.
package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/kessdev/codegraph/internal/graph"
)

// Format selects a Formatter implementation.
type Format string

const (
	FormatDOT  Format = "dot"
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Formatter writes a complete graph.View to its writer in one call. Unlike
// the teacher's streaming Formatter (one call per match as results arrive),
// the architecture view is only meaningful once centrality has converged
// over the whole project, so there is nothing to stream incrementally.
type Formatter interface {
	Format(v graph.View) error
}

// NewFormatter builds the Formatter for format, defaulting to FormatText for
// an unrecognized value the same way the teacher's factory defaults to its
// text formatter.
func NewFormatter(w io.Writer, format Format) Formatter {
	switch format {
	case FormatDOT:
		return &dotFormatter{w: w}
	case FormatJSON:
		return &jsonFormatter{w: w}
	default:
		return &textFormatter{w: w}
	}
}

type jsonFormatter struct{ w io.Writer }

func (f *jsonFormatter) Format(v graph.View) error {
	enc := json.NewEncoder(f.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type textFormatter struct{ w io.Writer }

func (f *textFormatter) Format(v graph.View) error {
	for _, n := range v.Nodes {
		if _, err := fmt.Fprintf(f.w, "%-8s %-40s %s  score=%.4f depth=%d\n", n.Kind, n.Name, n.File, n.Score, n.Depth); err != nil {
			return err
		}
	}
	if len(v.Edges) > 0 {
		if _, err := fmt.Fprintln(f.w, "---"); err != nil {
			return err
		}
	}
	for _, e := range v.Edges {
		if _, err := fmt.Fprintf(f.w, "%s -%s-> %s\n", e.From, e.Kind, e.To); err != nil {
			return err
		}
	}
	return nil
}

type dotFormatter struct{ w io.Writer }

func (f *dotFormatter) Format(v graph.View) error {
	if _, err := fmt.Fprintln(f.w, "digraph architecture {"); err != nil {
		return err
	}
	for _, n := range v.Nodes {
		label := fmt.Sprintf("%s\\n%s", n.Kind, n.Name)
		if _, err := fmt.Fprintf(f.w, "  %q [label=%q];\n", n.ID, label); err != nil {
			return err
		}
	}
	for _, e := range v.Edges {
		if _, err := fmt.Fprintf(f.w, "  %q -> %q [label=%q];\n", e.From, e.To, e.Kind); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(f.w, "}")
	return err
}
