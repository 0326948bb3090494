package blockgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kessdev/codegraph/internal/bind"
	"github.com/kessdev/codegraph/internal/collect"
	"github.com/kessdev/codegraph/internal/ctxt"
	"github.com/kessdev/codegraph/internal/hir"
	"github.com/kessdev/codegraph/internal/lang/golang"
	"github.com/kessdev/codegraph/internal/model"
)

func builtUnit(t *testing.T, src string) (*ctxt.CompileCtxt, *ctxt.ParseUnit) {
	t.Helper()
	cc := ctxt.New()
	l := golang.New()
	tree, err := l.Parse([]byte(src))
	require.NoError(t, err)
	unit := cc.InternUnit("test.go", l, []byte(src), tree)
	hir.Lift(cc, unit)
	collect.Collect(cc, unit)
	bind.Bind(cc, unit)
	Build(cc, unit)
	return cc, unit
}

func findBlock(unit *ctxt.ParseUnit, kind model.BlockKind, name string) *ctxt.Block {
	for _, b := range unit.Blocks() {
		if b.Kind == kind && b.Name == name {
			return b
		}
	}
	return nil
}

func TestBuildAllocatesOneBlockPerFunction(t *testing.T) {
	src := "package main\n\nfunc Greet() string {\n\treturn \"hi\"\n}\n"
	_, unit := builtUnit(t, src)

	b := findBlock(unit, model.BlockFunction, "Greet")
	require.NotNil(t, b)
	assert.True(t, unit.RootBlock.Valid())
}

func TestBuildLinksBlockToOwningSymbol(t *testing.T) {
	_, unit := builtUnit(t, "package main\n\nfunc helper() {}\n")
	b := findBlock(unit, model.BlockFunction, "helper")
	require.NotNil(t, b)
	assert.True(t, b.Symbol.Valid())
}

func TestConnectInsertsContainsEdgeFromParentToChildFunction(t *testing.T) {
	cc, unit := builtUnit(t, "package main\n\nfunc helper() {}\n")
	Connect(cc, unit)

	fn := findBlock(unit, model.BlockFunction, "helper")
	require.NotNil(t, fn)

	root := cc.Block(ctxt.BlockRef{Unit: unit.ID, Block: unit.RootBlock})
	require.NotNil(t, root)

	related := cc.Related().Related(root.Ref(), model.RelContains)
	assert.Contains(t, related, fn.Ref())
}

func TestConnectInsertsCallsEdgeBetweenCallerAndCallee(t *testing.T) {
	src := `package main

func callee() int {
	return 1
}

func caller() int {
	return callee()
}
`
	cc, unit := builtUnit(t, src)
	Connect(cc, unit)

	callerBlock := findBlock(unit, model.BlockFunction, "caller")
	calleeBlock := findBlock(unit, model.BlockFunction, "callee")
	require.NotNil(t, callerBlock)
	require.NotNil(t, calleeBlock)

	related := cc.Related().Related(callerBlock.Ref(), model.RelCalls)
	assert.Contains(t, related, calleeBlock.Ref())

	calledBy := cc.Related().Related(calleeBlock.Ref(), model.RelCalledBy)
	assert.Contains(t, calledBy, callerBlock.Ref())
}

func TestConnectSkipsSelfEdgeForDeclarationSiteIdentifier(t *testing.T) {
	cc, unit := builtUnit(t, "package main\n\nfunc helper() {}\n")
	Connect(cc, unit)

	fn := findBlock(unit, model.BlockFunction, "helper")
	require.NotNil(t, fn)
	assert.Empty(t, cc.Related().Related(fn.Ref(), model.RelUses))
	assert.Empty(t, cc.Related().Related(fn.Ref(), model.RelCalls))
}
