package bind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kessdev/codegraph/internal/collect"
	"github.com/kessdev/codegraph/internal/ctxt"
	"github.com/kessdev/codegraph/internal/hir"
	"github.com/kessdev/codegraph/internal/lang/golang"
	"github.com/kessdev/codegraph/internal/model"
)

func resolvedUnit(t *testing.T, src string) (*ctxt.CompileCtxt, *ctxt.ParseUnit) {
	t.Helper()
	cc := ctxt.New()
	l := golang.New()
	tree, err := l.Parse([]byte(src))
	require.NoError(t, err)
	unit := cc.InternUnit("test.go", l, []byte(src), tree)
	hir.Lift(cc, unit)
	collect.Collect(cc, unit)
	Bind(cc, unit)
	return cc, unit
}

// findIdent returns the first HirIdent node whose text equals name.
func findIdent(cc *ctxt.CompileCtxt, unit *ctxt.ParseUnit, name string) *ctxt.HirNode {
	var found *ctxt.HirNode
	var walk func(id ctxt.HirID)
	walk = func(id ctxt.HirID) {
		if found != nil || !id.Valid() {
			return
		}
		n := cc.Hir(id)
		if n == nil {
			return
		}
		if n.Kind == model.HirIdent && n.Text(unit.Source) == name {
			found = n
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(unit.RootHir)
	return found
}

func TestBindResolvesCallToItsOverloadByArity(t *testing.T) {
	src := `package main

func process(a int) int {
	return a
}

func process(a int, b int) int {
	return a + b
}

func caller() int {
	return process(1, 2)
}
`
	cc, unit := resolvedUnit(t, src)

	// The callee identifier inside caller's body is the only "process"
	// occurrence at a call site (the third overall); search for the one
	// whose parent is a call_expression.
	var callee *ctxt.HirNode
	var walk func(id ctxt.HirID)
	walk = func(id ctxt.HirID) {
		if callee != nil || !id.Valid() {
			return
		}
		n := cc.Hir(id)
		if n == nil {
			return
		}
		if n.Kind == model.HirIdent && n.Text(unit.Source) == "process" {
			if parent := cc.Hir(n.Parent); parent != nil && parent.Kind == model.HirCallExpr {
				callee = n
				return
			}
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(unit.RootHir)
	require.NotNil(t, callee)

	symID, ok := callee.Symbol()
	require.True(t, ok)
	sym := cc.Symbol(symID)
	require.NotNil(t, sym)
	assert.Equal(t, 2, sym.Arity)
}

func TestBindResolvesValueIdentifierToParameter(t *testing.T) {
	src := "package main\n\nfunc double(a int) int {\n\treturn a + a\n}\n"
	cc, unit := resolvedUnit(t, src)

	// both "a" occurrences inside the return statement should resolve
	var uses []*ctxt.HirNode
	var walk func(id ctxt.HirID)
	walk = func(id ctxt.HirID) {
		if !id.Valid() {
			return
		}
		n := cc.Hir(id)
		if n == nil {
			return
		}
		if n.Kind == model.HirIdent && n.Text(unit.Source) == "a" {
			uses = append(uses, n)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(unit.RootHir)
	require.NotEmpty(t, uses)

	for _, n := range uses {
		symID, ok := n.Symbol()
		require.True(t, ok)
		sym := cc.Symbol(symID)
		require.NotNil(t, sym)
		assert.Equal(t, model.SymParameter, sym.Kind)
	}
}

func TestBindLeavesUnresolvableReferenceAsUndefined(t *testing.T) {
	src := "package main\n\nfunc caller() int {\n\treturn missing()\n}\n"
	cc, unit := resolvedUnit(t, src)

	n := findIdent(cc, unit, "missing")
	require.NotNil(t, n)
	symID, ok := n.Symbol()
	require.True(t, ok)
	sym := cc.Symbol(symID)
	require.NotNil(t, sym)
	assert.Equal(t, model.SymUndefined, sym.Kind)
}
