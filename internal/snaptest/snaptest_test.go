package snaptest_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kessdev/codegraph/internal/build"
	"github.com/kessdev/codegraph/internal/lang"
	"github.com/kessdev/codegraph/internal/lang/golang"
	"github.com/kessdev/codegraph/internal/lang/rust"
	"github.com/kessdev/codegraph/internal/snaptest"
)

// loadCase reads and parses one .case fixture from testdata/cases.
func loadCase(t *testing.T, name string) *snaptest.Case {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "cases", name))
	require.NoError(t, err)
	c, err := snaptest.ParseCase(data)
	require.NoError(t, err)
	return c
}

// runCase materializes a case's files under a temp dir and runs the real
// build pipeline over them, exactly as cmd/codegraph does.
func runCase(t *testing.T, c *snaptest.Case) *build.Result {
	t.Helper()
	dir := t.TempDir()
	var paths []string
	for _, f := range c.Files {
		p := filepath.Join(dir, f.Path)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(f.Source), 0o644))
		paths = append(paths, p)
	}

	registry := lang.NewRegistry()
	registry.Register(golang.New())
	registry.Register(rust.New())

	r := build.NewRunner(registry, build.DefaultConfig())
	result, err := r.Run(context.Background(), paths)
	require.NoError(t, err)
	return result
}

func runSnapshotCase(t *testing.T, filename string) {
	t.Helper()
	c := loadCase(t, filename)
	result := runCase(t, c)

	symbols := snaptest.SymbolLines(result.Ctxt)
	relations := snaptest.BlockRelationLines(result.Ctxt)

	snaptest.AssertSymbolsContain(t, symbols, c.ExpectSymbols)
	snaptest.AssertBlockRelationsContain(t, relations, c.ExpectBlockRelations)

	if len(c.ExpectBlockGraph) > 0 {
		var graphLines []string
		for _, u := range result.Ctxt.Units() {
			graphLines = append(graphLines, snaptest.BlockGraphLines(result.Ctxt, u)...)
		}
		snaptest.AssertBlockGraphOrder(t, graphLines, c.ExpectBlockGraph)
	}
}

// TestBasicFunctionSymbol covers a single top-level function producing its
// own function symbol and a block directly under the file's root block.
func TestBasicFunctionSymbol(t *testing.T) {
	runSnapshotCase(t, "s1_basic_function.case")
}

// TestImplForStruct covers a Rust struct plus its impl block contributing
// HasImpl/ImplFor/HasMethod relations.
func TestImplForStruct(t *testing.T) {
	runSnapshotCase(t, "s2_impl_for_struct.case")
}

// TestCallGraph covers a caller function's block carrying a Calls edge to
// its callee's block (and the callee carrying CalledBy back).
func TestCallGraph(t *testing.T) {
	runSnapshotCase(t, "s3_call_graph.case")
}

// TestCrossFileCallResolution covers a call in one file resolving to a
// public function declared in a different file of the same run.
func TestCrossFileCallResolution(t *testing.T) {
	c := loadCase(t, "s5_cross_file_call.case")
	result := runCase(t, c)

	require.Empty(t, result.Link.Unresolved, "expected every cross-file reference to resolve")

	symbols := snaptest.SymbolLines(result.Ctxt)
	relations := snaptest.BlockRelationLines(result.Ctxt)
	snaptest.AssertSymbolsContain(t, symbols, c.ExpectSymbols)
	snaptest.AssertBlockRelationsContain(t, relations, c.ExpectBlockRelations)
}

// TestArchitectureViewTopKFiltering covers the exported view shrinking to
// at most TopK nodes, biased toward the most-called functions.
func TestArchitectureViewTopKFiltering(t *testing.T) {
	c := loadCase(t, "s6_pagerank_topk.case")
	dir := t.TempDir()
	var paths []string
	for _, f := range c.Files {
		p := filepath.Join(dir, f.Path)
		require.NoError(t, os.WriteFile(p, []byte(f.Source), 0o644))
		paths = append(paths, p)
	}

	registry := lang.NewRegistry()
	registry.Register(golang.New())

	r := build.NewRunner(registry, build.Config{Workers: 2, MaxDepth: 3, TopK: 2})
	result, err := r.Run(context.Background(), paths)
	require.NoError(t, err)

	require.LessOrEqual(t, len(result.View.Nodes), 2)
	require.NotEmpty(t, result.View.Nodes)
}
