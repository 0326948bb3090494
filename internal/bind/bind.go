// Package bind is the binding pass: a second scope-stack walk of a unit's
// hir tree (collection has already built the scope chain and declared
// every symbol) that resolves every use-site identifier to the symbol it
// denotes. Resolution order is lexical scope chain, then that chain's base
// scopes (trait/interface a type implements), then the file's module root,
// then the compile context's cross-unit global index; anything still
// unresolved becomes an Undefined placeholder for internal/link to revisit
// once every unit has been collected.
//
// Overload resolution is arity-only: when a name resolves to more than one
// sibling declaration, the first candidate whose Arity matches the call
// site's argument count wins, with declaration source order breaking ties
// when more than one candidate shares that arity (see DESIGN.md's open
// question notes for why this repo does not attempt argument-type
// inference).
package bind

import (
	"strings"

	"github.com/kessdev/codegraph/internal/ctxt"
	"github.com/kessdev/codegraph/internal/lang"
	"github.com/kessdev/codegraph/internal/model"
)

// candidateKinds lists, in priority order, the symbol kinds a bare
// IdentUse might denote. No type kinds are listed, so a value reference
// never binds to a type of the same name.
var candidateKinds = []model.SymbolKind{
	model.SymVariable, model.SymConst, model.SymParameter,
	model.SymFunction, model.SymMethod, model.SymModule, model.SymField,
}

// typeOfKinds lists the declaration-site HirKinds whose symbol gets a
// published TypeOf once the type-use node among their direct children has
// resolved: a parameter's/field's/variable's/const's annotation, or a
// function's/method's own Return child (see HirReturnType). This is the
// ExprResolver's "variable -> its declared type" case; a field access or
// method call later walks TypeOf().OwnedScope() to resolve the member.
var typeOfKinds = map[model.HirKind]bool{
	model.HirParameter: true,
	model.HirField:     true,
	model.HirVarDecl:   true,
	model.HirConstDecl: true,
	model.HirFunction:  true,
	model.HirMethod:    true,
}

// Bind runs the binding pass over a single unit. Must run after
// internal/collect.Collect for this unit (same-unit ordering), and its
// results for cross-unit references are only final after
// internal/link.Link has also run.
func Bind(cc *ctxt.CompileCtxt, unit *ctxt.ParseUnit) {
	root := cc.Hir(unit.RootHir)
	if root == nil {
		return
	}
	scope, _ := root.Scope()
	bindNode(cc, unit, root, scope)
}

func bindNode(cc *ctxt.CompileCtxt, unit *ctxt.ParseUnit, node *ctxt.HirNode, scope ctxt.ScopeID) {
	if s, ok := node.Scope(); ok {
		scope = s
	}

	if node.Kind == model.HirIdent || node.Kind == model.HirReturnType {
		if _, already := node.Symbol(); !already {
			resolveIdent(cc, unit, node, scope)
		}
	}

	for _, childID := range node.Children {
		child := cc.Hir(childID)
		if child == nil {
			continue
		}
		bindNode(cc, unit, child, scope)
	}

	if typeOfKinds[node.Kind] {
		bindTypeOf(cc, node)
	}
}

func resolveIdent(cc *ctxt.CompileCtxt, unit *ctxt.ParseUnit, node *ctxt.HirNode, scope ctxt.ScopeID) {
	name := node.Text(unit.Source)
	if name == "" {
		return
	}

	category := node.Category
	if node.Kind == model.HirReturnType {
		// A function/method's Return child carries no IdentifierCategory of
		// its own (liftNode only computes one for HirIdent), but it names a
		// type exactly like an IdentTypeUse reference does, so it is
		// resolved the same way. A compound/multi-value return type simply
		// fails this lookup and falls through to Undefined — never fatal,
		// and any named nested identifiers it contains (e.g. named return
		// parameters) still resolve independently as their own HirParameter
		// nodes.
		category = model.IdentTypeUse
	}

	switch category {
	case model.IdentTypeUse:
		if entry, _, ok := cc.LookupInScope(scope, name, model.SymType); ok {
			node.SetSymbol(pickOverload(cc, entry, false, 0))
			return
		}
		if entry, _, ok := cc.LookupInScope(scope, name, model.SymEnum); ok {
			node.SetSymbol(pickOverload(cc, entry, false, 0))
			return
		}
		if entry, _, ok := cc.LookupInScope(scope, name, model.SymInterface); ok {
			node.SetSymbol(pickOverload(cc, entry, false, 0))
			return
		}
	case model.IdentFieldAccess:
		if sym := resolveViaReceiverType(cc, unit, node, model.SymField); sym.Valid() {
			node.SetSymbol(sym)
			return
		}
		if entry, _, ok := cc.LookupInScope(scope, name, model.SymField); ok {
			node.SetSymbol(pickOverload(cc, entry, false, 0))
			return
		}
		if entry, _, ok := cc.LookupInScope(scope, name, model.SymMethod); ok {
			node.SetSymbol(pickOverload(cc, entry, false, 0))
			return
		}
		if syms := findSymbolCandidates(cc, unit, node, name); len(syms) > 0 {
			node.SetSymbol(syms[0].ID)
			return
		}
	case model.IdentMethodCall:
		if sym := resolveViaReceiverType(cc, unit, node, model.SymMethod); sym.Valid() {
			node.SetSymbol(sym)
			return
		}
		if entry, _, ok := cc.LookupInScope(scope, name, model.SymMethod); ok {
			node.SetSymbol(pickOverload(cc, entry, false, 0))
			return
		}
		if entry, _, ok := cc.LookupInScope(scope, name, model.SymField); ok {
			node.SetSymbol(pickOverload(cc, entry, false, 0))
			return
		}
		if syms := findSymbolCandidates(cc, unit, node, name); len(syms) > 0 {
			node.SetSymbol(syms[0].ID)
			return
		}
	default: // IdentUse, IdentPathSegment and anything else fall back to value/callable resolution
		callArgc, isCallee := callSiteArgc(cc, unit, node)
		for _, kind := range candidateKinds {
			if entry, _, ok := cc.LookupInScope(scope, name, kind); ok {
				node.SetSymbol(pickOverload(cc, entry, isCallee, callArgc))
				return
			}
		}
		if syms := findSymbolCandidates(cc, unit, node, name); len(syms) > 0 {
			node.SetSymbol(syms[0].ID)
			return
		}
	}

	node.SetSymbol(cc.NewUndefined(unit.ID, name).ID)
}

// findSymbolCandidates is the global-index fallback every resolveIdent
// branch reaches once lexical scope (and, for field/method access, the
// receiver's type scope) has missed. When node sits under a path
// expression (qualified_type, scoped_identifier, selector_expression,
// ...), it resolves the whole qualified reference via
// FindSymbolsByPath instead of discarding everything but the trailing
// name: a plain bare-name IdentUse/IdentTypeUse has no such parent and
// falls straight through to FindSymbolsByName as before.
func findSymbolCandidates(cc *ctxt.CompileCtxt, unit *ctxt.ParseUnit, node *ctxt.HirNode, name string) []*ctxt.Symbol {
	if parent := cc.Hir(node.Parent); parent != nil && parent.Kind == model.HirPathExpr {
		path := qualifiedPath(parent.Node.Text(unit.Source))
		if syms := cc.FindSymbolsByPath(path); len(syms) > 0 {
			return syms
		}
	}
	return cc.FindSymbolsByName(name)
}

// qualifiedPath normalizes a raw qualified-reference token to the "::"
// separated form internal/collect's qualify() builds QualName with, so a
// dotted Go "pkg.Func" and a double-colon Rust "mod::item" both key into
// FindSymbolsByPath the same way.
func qualifiedPath(raw string) string {
	return strings.ReplaceAll(raw, ".", "::")
}

// resolveViaReceiverType implements the ExprResolver's "e.f / e.m(...) ->
// look up f/m in e.type_of.scope" rule: node is the field/method
// identifier under a path-expression parent (selector_expression,
// field_expression, member_expression, attribute, ...); the parent's other
// direct child is the receiver expression. If that receiver has already
// resolved to a symbol carrying a published TypeOf with an OwnedScope,
// name is looked up there directly, bypassing plain lexical scope (a
// receiver's own scope is not generally the reference's lexical scope at
// all). Returns the invalid SymbolID zero value on any miss, which callers
// treat as "fall back to the lexical heuristic".
func resolveViaReceiverType(cc *ctxt.CompileCtxt, unit *ctxt.ParseUnit, node *ctxt.HirNode, kind model.SymbolKind) ctxt.SymbolID {
	parent := cc.Hir(node.Parent)
	if parent == nil {
		return 0
	}
	receiver := receiverOf(cc, parent, node.ID)
	if receiver == nil {
		return 0
	}
	recvSymID, ok := receiver.Symbol()
	if !ok {
		return 0
	}
	recvSym := cc.Symbol(recvSymID)
	if recvSym == nil {
		return 0
	}
	typeSymID, ok := recvSym.TypeOf()
	if !ok {
		return 0
	}
	typeSym := cc.Symbol(typeSymID)
	if typeSym == nil {
		return 0
	}
	ownedScope, ok := typeSym.OwnedScope()
	if !ok {
		return 0
	}
	name := node.Text(unit.Source)
	if entry, ok := cc.LookupLocalWithBases(ownedScope, name, kind); ok {
		return pickOverload(cc, entry, kind == model.SymMethod, 0)
	}
	return 0
}

// receiverOf finds the HIR node for the receiver expression of a
// field/method access. Most adapters wrap operand+field in their own
// 2-child path-expression node (selector_expression, field_expression,
// member_expression, attribute), where "the other child" is unambiguous;
// Java instead folds object+name+arguments directly into one
// method_invocation node, so receiverOf first tries known receiver field
// names off the raw grammar node before falling back to the 2-children
// heuristic.
func receiverOf(cc *ctxt.CompileCtxt, parent *ctxt.HirNode, skip ctxt.HirID) *ctxt.HirNode {
	for _, field := range []string{"object", "operand", "value"} {
		raw := parent.Node.ChildByFieldName(field)
		if !raw.Valid() {
			continue
		}
		if h := findChildByRaw(cc, parent, raw); h != nil {
			return h
		}
	}
	return siblingOf(cc, parent, skip)
}

func findChildByRaw(cc *ctxt.CompileCtxt, parent *ctxt.HirNode, raw lang.Node) *ctxt.HirNode {
	for _, childID := range parent.Children {
		child := cc.Hir(childID)
		if child != nil && child.Node.Raw() == raw.Raw() {
			return child
		}
	}
	return nil
}

// siblingOf returns the one child of parent that is not skip, or nil if
// parent has more or fewer than two children (a shape this pass does not
// try to interpret, e.g. a chained a.b.c path).
func siblingOf(cc *ctxt.CompileCtxt, parent *ctxt.HirNode, skip ctxt.HirID) *ctxt.HirNode {
	var other *ctxt.HirNode
	for _, childID := range parent.Children {
		if childID == skip {
			continue
		}
		child := cc.Hir(childID)
		if child == nil {
			continue
		}
		if other != nil {
			return nil
		}
		other = child
	}
	return other
}

// bindTypeOf publishes node's declared-type symbol onto the Symbol it
// declares, once the first resolved type-use child is found. Runs after
// node's children have already been bound, so the type annotation (or, for
// a function/method, its Return child) has had the chance to resolve.
func bindTypeOf(cc *ctxt.CompileCtxt, node *ctxt.HirNode) {
	declSymID, ok := node.Symbol()
	if !ok {
		return
	}
	declSym := cc.Symbol(declSymID)
	if declSym == nil {
		return
	}
	for _, childID := range node.Children {
		child := cc.Hir(childID)
		if child == nil {
			continue
		}
		if child.Kind != model.HirReturnType && !(child.Kind == model.HirIdent && child.Category == model.IdentTypeUse) {
			continue
		}
		typeSymID, ok := child.Symbol()
		if !ok {
			continue
		}
		declSym.TrySetTypeOf(typeSymID)
		return
	}
}

// pickOverload resolves a scope entry to a single symbol. Entries with no
// overload promotion return their one candidate unchanged. Promoted
// entries at a call site pick the first sibling whose Arity matches the
// call's argument count, falling back to declaration order (entry.Single,
// which collection always sets to the first declaration seen) when no
// arity matches or this reference is not itself a call.
func pickOverload(cc *ctxt.CompileCtxt, entry *ctxt.ScopeEntry, isCallee bool, argc int) ctxt.SymbolID {
	if len(entry.Overloaded) == 0 {
		return entry.Single
	}
	if isCallee {
		for _, id := range entry.Overloaded {
			if cand := cc.Symbol(id); cand != nil && cand.Arity == argc {
				return id
			}
		}
	}
	return entry.Overloaded[0]
}

// callSiteArgc reports whether node is the callee identifier of its
// immediately enclosing call expression, and if so how many arguments that
// call passes.
func callSiteArgc(cc *ctxt.CompileCtxt, unit *ctxt.ParseUnit, node *ctxt.HirNode) (int, bool) {
	parent := cc.Hir(node.Parent)
	if parent == nil || parent.Kind != model.HirCallExpr {
		return 0, false
	}
	return unit.Lang.CallArgCount(parent.Node), true
}
