package collect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kessdev/codegraph/internal/ctxt"
	"github.com/kessdev/codegraph/internal/hir"
	"github.com/kessdev/codegraph/internal/lang/golang"
	"github.com/kessdev/codegraph/internal/model"
)

func liftedUnit(t *testing.T, src string) (*ctxt.CompileCtxt, *ctxt.ParseUnit) {
	t.Helper()
	cc := ctxt.New()
	l := golang.New()
	tree, err := l.Parse([]byte(src))
	require.NoError(t, err)
	unit := cc.InternUnit("test.go", l, []byte(src), tree)
	hir.Lift(cc, unit)
	return cc, unit
}

func TestCollectDeclaresFunctionIntoFileScope(t *testing.T) {
	cc, unit := liftedUnit(t, "package main\n\nfunc Greet() string {\n\treturn \"hi\"\n}\n")
	Collect(cc, unit)

	root := cc.Scope(unit.RootScope)
	require.NotNil(t, root)
	entry, ok := root.LookupLocal("Greet", model.SymFunction)
	require.True(t, ok)

	sym := cc.Symbol(entry.Single)
	require.NotNil(t, sym)
	assert.Equal(t, model.SymFunction, sym.Kind)
	assert.Equal(t, model.VisPublic, sym.Visibility)
	assert.Equal(t, 0, sym.Arity)
}

func TestCollectPromotesOverloadedFunctions(t *testing.T) {
	src := `package main

func process(a int) int {
	return a
}

func process(a int, b int) int {
	return a + b
}
`
	cc, unit := liftedUnit(t, src)
	Collect(cc, unit)

	root := cc.Scope(unit.RootScope)
	entry, ok := root.LookupLocal("process", model.SymFunction)
	require.True(t, ok)
	require.Len(t, entry.Overloaded, 2)

	first := cc.Symbol(entry.Overloaded[0])
	second := cc.Symbol(entry.Overloaded[1])
	assert.Equal(t, 1, first.Arity)
	assert.Equal(t, 2, second.Arity)
	assert.Contains(t, first.Overloads(), second.ID)
	assert.Contains(t, second.Overloads(), first.ID)
}

func TestCollectSeedsPrimitivesIntoFileScope(t *testing.T) {
	cc, unit := liftedUnit(t, "package main\n")
	Collect(cc, unit)

	root := cc.Scope(unit.RootScope)
	_, ok := root.LookupLocal("int", model.SymType)
	assert.True(t, ok)
}

func TestCollectUnexportedFunctionIsPrivate(t *testing.T) {
	cc, unit := liftedUnit(t, "package main\n\nfunc helper() {}\n")
	Collect(cc, unit)

	root := cc.Scope(unit.RootScope)
	entry, ok := root.LookupLocal("helper", model.SymFunction)
	require.True(t, ok)
	sym := cc.Symbol(entry.Single)
	assert.Equal(t, model.VisPrivate, sym.Visibility)
}
