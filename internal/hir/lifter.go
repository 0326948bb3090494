// Package hir performs the first pass over a parsed file: a depth-first
// walk of the syntax tree (modeled on the teacher's extractSymbolsDirectly
// recursive walk) that lifts the grammar-specific tree into the
// language-independent HirNode arena every later pass consumes. Nodes the
// language adapter has no HirKind for are skipped but still recursed
// through, so e.g. Go's "parameter_list" wrapper disappears and its
// parameter_declaration children attach directly to the enclosing
// function's hir node.
package hir

import (
	"github.com/kessdev/codegraph/internal/ctxt"
	"github.com/kessdev/codegraph/internal/lang"
	"github.com/kessdev/codegraph/internal/model"
)

// Lift walks unit's parse tree and populates the shared hir arena,
// recording the unit's root hir node. It never touches symbols or scopes;
// those belong to internal/collect.
func Lift(cc *ctxt.CompileCtxt, unit *ctxt.ParseUnit) {
	root := liftNode(cc, unit, unit.Tree.Root, 0)
	unit.RootHir = root
}

// liftNode allocates a hir node for n if its language classifies it as
// meaningful, recurses into every child attached to whichever hir node
// ends up being the nearest meaningful ancestor, and returns the hir id
// that should be used as the parent for n's own children (which is either
// the node just allocated, or — when n itself was skipped — whatever was
// passed in as parentHir).
func liftNode(cc *ctxt.CompileCtxt, unit *ctxt.ParseUnit, n lang.Node, parentHir ctxt.HirID) ctxt.HirID {
	if !n.Valid() {
		return parentHir
	}
	kind := unit.Lang.HirKind(n)
	effectiveParent := parentHir
	if kind != model.HirUnknown {
		category := model.IdentNone
		if kind == model.HirIdent {
			category = unit.Lang.IdentifierCategory(n)
		}
		node := cc.AllocHir(unit.ID, kind, category, n, parentHir)
		effectiveParent = node.ID
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		liftNode(cc, unit, n.Child(i), effectiveParent)
	}
	return effectiveParent
}
