// Package blockgraph builds the architectural block graph: one Block per
// structurally meaningful hir node (modules, functions, methods, types,
// fields, parameter/return groupings, calls, consts/vars), linked to its
// owning symbol, and then connected by Connect into the compile context's
// RelationMap. Building runs once per unit and can run in parallel across
// units; connecting reads across unit boundaries (a call target can live
// in another file) so it still writes into the shared RelationMap safely,
// but every unit's own Build must have finished first.
package blockgraph

import (
	"github.com/kessdev/codegraph/internal/ctxt"
	"github.com/kessdev/codegraph/internal/model"
)

func blockKindOf(k model.HirKind) (model.BlockKind, bool) {
	switch k {
	case model.HirModule:
		return model.BlockModule, true
	case model.HirFunction:
		return model.BlockFunction, true
	case model.HirMethod:
		return model.BlockMethod, true
	case model.HirTypeDecl:
		return model.BlockType, true
	case model.HirEnum:
		return model.BlockEnum, true
	case model.HirInterfaceDecl:
		return model.BlockInterface, true
	case model.HirImplDecl:
		return model.BlockImpl, true
	case model.HirField:
		return model.BlockField, true
	case model.HirParameter:
		return model.BlockParameters, true
	case model.HirReturnType:
		return model.BlockReturn, true
	case model.HirConstDecl:
		return model.BlockConst, true
	case model.HirVarDecl:
		return model.BlockConst, true
	case model.HirCallExpr:
		return model.BlockCall, true
	default:
		return 0, false
	}
}

// Build walks unit's hir tree in pre-order and allocates one Block per
// structurally meaningful node, recording the unit's root block.
func Build(cc *ctxt.CompileCtxt, unit *ctxt.ParseUnit) {
	root := cc.Hir(unit.RootHir)
	if root == nil {
		return
	}
	rootBlock := buildNode(cc, unit, root, 0)
	unit.RootBlock = rootBlock
}

func buildNode(cc *ctxt.CompileCtxt, unit *ctxt.ParseUnit, node *ctxt.HirNode, parent ctxt.BlockID) ctxt.BlockID {
	effectiveParent := parent
	if kind, ok := blockKindOf(node.Kind); ok {
		if node.ID == unit.RootHir {
			kind = model.BlockRoot
		}
		name := ""
		var symID ctxt.SymbolID
		if sid, has := node.Symbol(); has {
			symID = sid
			if sym := cc.Symbol(sid); sym != nil {
				name = sym.Name
			}
		}
		b := cc.AllocBlock(unit, ctxt.NewBlockArgs{
			Kind: kind, Name: name, Symbol: symID, HirNode: node.ID, Parent: parent,
		})
		effectiveParent = b.ID
		if symID.Valid() {
			if sym := cc.Symbol(symID); sym != nil {
				sym.AddBlock(b.Ref())
			}
		}
	}
	for _, childID := range node.Children {
		child := cc.Hir(childID)
		if child == nil {
			continue
		}
		buildNode(cc, unit, child, effectiveParent)
	}
	return effectiveParent
}
