// Package collect is the collection pass: a scope-stack walk of a unit's
// already-lifted HIR tree (see internal/hir) that declares every symbol
// into its enclosing scope, promotes same-name-same-kind declarations into
// overload sets, seeds each file's root scope with its language's
// primitive types, and publishes every publicly visible symbol into the
// compile context's global index. Modeled on the teacher's
// SymbolExtractor/ScopeTree walk in internal/parser/symbols.go, generalized
// from "build a flat symbol table" to "build the scope chain binding will
// walk".
package collect

import (
	"github.com/kessdev/codegraph/internal/ctxt"
	"github.com/kessdev/codegraph/internal/model"
)

// declKindOf maps a hir declaration kind onto the symbol kind it
// introduces. HirUnknown return means the node is not itself a
// declaration site (statements, calls, plain identifiers).
func declKindOf(k model.HirKind) model.SymbolKind {
	switch k {
	case model.HirFunction:
		return model.SymFunction
	case model.HirMethod:
		return model.SymMethod
	case model.HirTypeDecl:
		return model.SymType
	case model.HirEnum:
		return model.SymEnum
	case model.HirInterfaceDecl:
		return model.SymInterface
	case model.HirImplDecl:
		return model.SymImpl
	case model.HirField:
		return model.SymField
	case model.HirParameter:
		return model.SymParameter
	case model.HirConstDecl:
		return model.SymConst
	case model.HirVarDecl:
		return model.SymVariable
	default:
		return model.SymUndefined
	}
}

func blockScopeName(k model.HirKind) string {
	switch k {
	case model.HirModule:
		return "module"
	case model.HirFunction, model.HirMethod:
		return "function"
	case model.HirTypeDecl, model.HirEnum, model.HirInterfaceDecl, model.HirImplDecl:
		return "type"
	default:
		return "block"
	}
}

// Collect runs the collection pass over a single unit. It must run after
// internal/hir.Lift and before internal/bind's resolver; the project link
// pass (internal/link) in turn requires every unit's Collect to have
// finished, since it reads the global index populated here.
func Collect(cc *ctxt.CompileCtxt, unit *ctxt.ParseUnit) {
	root := cc.Hir(unit.RootHir)
	if root == nil {
		return
	}
	rootScope := cc.AllocScope(unit.ID, "file:"+unit.Path, 0, unit.RootHir, 0)
	unit.RootScope = rootScope.ID
	root.SetScope(rootScope.ID)
	seedPrimitives(cc, unit, rootScope)
	collectNode(cc, unit, root, rootScope.ID)
}

func seedPrimitives(cc *ctxt.CompileCtxt, unit *ctxt.ParseUnit, scope *ctxt.Scope) {
	for _, name := range unit.Lang.Primitives() {
		sym := cc.AllocSymbol(unit.ID, name, name, model.SymPrimitive, model.VisPublic, scope.ID, 0)
		scope.Declare(name, model.SymType, sym.ID)
	}
}

func collectNode(cc *ctxt.CompileCtxt, unit *ctxt.ParseUnit, node *ctxt.HirNode, enclosingScope ctxt.ScopeID) {
	introducesScope := node.ID != unit.RootHir && unit.Lang.IsScopeIntroducer(node.Node)
	var newScope *ctxt.Scope
	if introducesScope {
		newScope = cc.AllocScope(unit.ID, blockScopeName(node.Kind), 0, node.ID, enclosingScope)
		node.SetScope(newScope.ID)
	}

	if declKind := declKindOf(node.Kind); declKind != model.SymUndefined {
		declareSymbol(cc, unit, node, declKind, enclosingScope, newScope)
	}

	nextScope := enclosingScope
	if newScope != nil {
		nextScope = newScope.ID
	}
	for _, childID := range node.Children {
		child := cc.Hir(childID)
		if child == nil {
			continue
		}
		collectNode(cc, unit, child, nextScope)
	}
}

func declareSymbol(cc *ctxt.CompileCtxt, unit *ctxt.ParseUnit, node *ctxt.HirNode, kind model.SymbolKind, enclosingScope ctxt.ScopeID, ownScope *ctxt.Scope) {
	name := unit.Lang.DeclName(node.Node, unit.Source)
	if name == "" {
		return
	}
	vis := unit.Lang.Visibility(node.Node, unit.Source)
	qualName := qualify(cc, enclosingScope, name)
	sym := cc.AllocSymbol(unit.ID, name, qualName, kind, vis, enclosingScope, node.ID)
	node.SetSymbol(sym.ID)

	if kind == model.SymFunction || kind == model.SymMethod {
		sym.Arity = countParameters(cc, node)
	}

	scope := cc.Scope(enclosingScope)
	if scope != nil {
		entry, promoted := scope.Declare(name, kind, sym.ID)
		if promoted {
			linkOverload(cc, sym.ID, entry.Overloaded)
		}
	}
	cc.IndexVisible(sym)

	if ownScope != nil {
		ownScope.Owner = sym.ID
		sym.SetOwnedScope(ownScope.ID)
	}
}

// linkOverload links the just-added symbol newID with every sibling
// already present in the overload set (everything in ids except newID
// itself), in both directions. Called once per new overload, so each pair
// is linked exactly once regardless of how large the set grows.
func linkOverload(cc *ctxt.CompileCtxt, newID ctxt.SymbolID, ids []ctxt.SymbolID) {
	newSym := cc.Symbol(newID)
	if newSym == nil {
		return
	}
	for _, id := range ids {
		if id == newID {
			continue
		}
		sibling := cc.Symbol(id)
		if sibling == nil {
			continue
		}
		newSym.AddOverload(id)
		sibling.AddOverload(newID)
	}
}

func countParameters(cc *ctxt.CompileCtxt, node *ctxt.HirNode) int {
	n := 0
	for _, childID := range node.Children {
		child := cc.Hir(childID)
		if child != nil && child.Kind == model.HirParameter {
			n++
		}
	}
	return n
}

func qualify(cc *ctxt.CompileCtxt, scopeID ctxt.ScopeID, name string) string {
	var parts []string
	for id := scopeID; id.Valid(); {
		scope := cc.Scope(id)
		if scope == nil {
			break
		}
		if scope.Owner.Valid() {
			owner := cc.Symbol(scope.Owner)
			if owner != nil {
				parts = append([]string{owner.Name}, parts...)
			}
		}
		id = scope.Parent
	}
	parts = append(parts, name)
	out := parts[0]
	for _, p := range parts[1:] {
		out += "::" + p
	}
	return out
}
