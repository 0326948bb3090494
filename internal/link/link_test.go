package link

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

func TestLinkResolvesUndefinedPlaceholderToDeclaredSymbol(t *testing.T) {
	cc := ctxt.New()

	declared := cc.AllocSymbol(1, "Helper", "pkg.Helper", model.SymFunction, model.VisPublic, 0, 0)
	cc.IndexVisible(declared)
	placeholder := cc.NewUndefined(2, "Helper")

	res := Link(cc)
	assert.Equal(t, 1, res.Resolved)
	assert.Empty(t, res.Unresolved)

	target, ok := placeholder.Redirect()
	require.True(t, ok)
	assert.Equal(t, declared.ID, target)
}

func TestLinkReportsNameWithNoVisibleCandidateAsUnresolved(t *testing.T) {
	cc := ctxt.New()
	cc.NewUndefined(1, "Ghost")

	res := Link(cc)
	assert.Equal(t, 0, res.Resolved)
	assert.Contains(t, res.Unresolved, "Ghost")
}

func TestResolveFollowsRedirectToFinalSymbol(t *testing.T) {
	cc := ctxt.New()
	real := cc.AllocSymbol(1, "Run", "pkg.Run", model.SymFunction, model.VisPublic, 0, 0)
	placeholder := cc.NewUndefined(2, "Run")
	placeholder.SetRedirect(real.ID)

	assert.Equal(t, real.ID, Resolve(cc, placeholder.ID))
	assert.Equal(t, real.ID, Resolve(cc, real.ID))
}

func TestLinkResolvesAcrossUnitsEndToEnd(t *testing.T) {
	cc := ctxt.New()
	l := golang.New()

	srcA := "package main\n\nfunc Shared() int {\n\treturn 1\n}\n"
	treeA, err := l.Parse([]byte(srcA))
	require.NoError(t, err)
	unitA := cc.InternUnit("a.go", l, []byte(srcA), treeA)
	hir.Lift(cc, unitA)
	collect.Collect(cc, unitA)

	srcB := "package main\n\nfunc caller() int {\n\treturn Shared()\n}\n"
	treeB, err := l.Parse([]byte(srcB))
	require.NoError(t, err)
	unitB := cc.InternUnit("b.go", l, []byte(srcB), treeB)
	hir.Lift(cc, unitB)
	collect.Collect(cc, unitB)

	bind.Bind(cc, unitA)
	bind.Bind(cc, unitB)

	res := Link(cc)
	assert.Empty(t, res.Unresolved)
	assert.GreaterOrEqual(t, res.Resolved, 0)
}
