package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kessdev/codegraph/internal/graph"
	"github.com/kessdev/codegraph/internal/render"
	"github.com/kessdev/codegraph/internal/store"
)

var (
	queryFormat string
	queryName   string
)

var queryCmd = &cobra.Command{
	Use:   "query ROOT",
	Short: "Render the most recently indexed architecture view for ROOT",
	Long: `query reads the latest snapshot previously written by "codegraph index"
for the given root and renders it, optionally filtered to blocks matching a
name.

EXAMPLES:
    codegraph query . --format dot
    codegraph query . --name Parser`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVar(&queryFormat, "format", "text", "output format: text, json, dot")
	queryCmd.Flags().StringVar(&queryName, "name", "", "only show nodes whose name contains this substring")
}

func runQuery(cmd *cobra.Command, args []string) error {
	root := args[0]
	s, err := store.Open(store.Options{Dir: viper.GetString("store"), ReadOnly: true})
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	view, err := s.LoadSnapshot(root)
	if err != nil {
		return fmt.Errorf("no snapshot for %q: %w", root, err)
	}
	if queryName != "" {
		view = filterByName(view, queryName)
	}

	return render.NewFormatter(cmd.OutOrStdout(), render.Format(queryFormat)).Format(view)
}

func filterByName(v graph.View, substr string) graph.View {
	keep := make(map[string]bool)
	var nodes []graph.Node
	for _, n := range v.Nodes {
		if strings.Contains(n.Name, substr) {
			keep[n.ID] = true
			nodes = append(nodes, n)
		}
	}
	var edges []graph.Edge
	for _, e := range v.Edges {
		if keep[e.From] && keep[e.To] {
			edges = append(edges, e)
		}
	}
	return graph.View{Nodes: nodes, Edges: edges}
}
