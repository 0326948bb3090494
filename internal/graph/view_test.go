package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kessdev/codegraph/internal/bind"
	"github.com/kessdev/codegraph/internal/blockgraph"
	"github.com/kessdev/codegraph/internal/collect"
	"github.com/kessdev/codegraph/internal/ctxt"
	"github.com/kessdev/codegraph/internal/hir"
	"github.com/kessdev/codegraph/internal/lang/golang"
)

func viewReadyCtxt(t *testing.T, src string) (*ctxt.CompileCtxt, *ctxt.ParseUnit) {
	t.Helper()
	cc := ctxt.New()
	l := golang.New()
	tree, err := l.Parse([]byte(src))
	require.NoError(t, err)
	unit := cc.InternUnit("test.go", l, []byte(src), tree)
	hir.Lift(cc, unit)
	collect.Collect(cc, unit)
	bind.Bind(cc, unit)
	blockgraph.Build(cc, unit)
	blockgraph.Connect(cc, unit)
	return cc, unit
}

func TestBuildViewFiltersByMaxDepth(t *testing.T) {
	src := `package main

func callee() int {
	return 1
}

func caller() int {
	return callee()
}
`
	cc, unit := viewReadyCtxt(t, src)
	scores := PageRank(cc)

	view := BuildView(cc, scores, 0, 100)
	for _, n := range view.Nodes {
		assert.LessOrEqual(t, n.Depth, 0)
	}
	_ = unit
}

func TestBuildViewRespectsTopK(t *testing.T) {
	src := `package main

func a() {}
func b() {}
func c() {}
`
	cc, _ := viewReadyCtxt(t, src)
	scores := PageRank(cc)

	view := BuildView(cc, scores, 3, 1)
	assert.LessOrEqual(t, len(view.Nodes), 1)
}

func TestBuildViewStableIDIsDeterministicAcrossRuns(t *testing.T) {
	src := "package main\n\nfunc helper() {}\n"
	cc1, _ := viewReadyCtxt(t, src)
	cc2, _ := viewReadyCtxt(t, src)

	v1 := BuildView(cc1, PageRank(cc1), 3, 10)
	v2 := BuildView(cc2, PageRank(cc2), 3, 10)

	require.Len(t, v1.Nodes, len(v2.Nodes))
	ids1 := map[string]bool{}
	for _, n := range v1.Nodes {
		ids1[n.ID] = true
	}
	for _, n := range v2.Nodes {
		assert.True(t, ids1[n.ID], "expected id %s to reappear across an identical run", n.ID)
	}
}

func TestBuildViewEdgesOnlyConnectSurvivingNodes(t *testing.T) {
	src := `package main

func callee() int {
	return 1
}

func caller() int {
	return callee()
}
`
	cc, _ := viewReadyCtxt(t, src)
	scores := PageRank(cc)

	view := BuildView(cc, scores, 3, 1)
	surviving := map[string]bool{}
	for _, n := range view.Nodes {
		surviving[n.ID] = true
	}
	for _, e := range view.Edges {
		assert.True(t, surviving[e.From])
		assert.True(t, surviving[e.To])
	}
}
