package blockgraph

import (
	"github.com/kessdev/codegraph/internal/ctxt"
	"github.com/kessdev/codegraph/internal/link"
	"github.com/kessdev/codegraph/internal/model"
)

// Connect populates the shared relation map for a single unit, after Build
// has run for every unit in the project (a call's target, a field access's
// owner, an impl's target type can all live in a different file than the
// reference itself). It is safe to run concurrently across units: each
// insert touches only the shard owning its "from" block.
func Connect(cc *ctxt.CompileCtxt, unit *ctxt.ParseUnit) {
	hirToBlock := make(map[ctxt.HirID]ctxt.BlockID, len(unit.Blocks()))
	for _, b := range unit.Blocks() {
		hirToBlock[b.HirNode] = b.ID
	}

	root := cc.Hir(unit.RootHir)
	if root == nil {
		return
	}
	connectNode(cc, unit, root, hirToBlock, unit.RootBlock)
	connectImpls(cc, unit)
}

func connectNode(cc *ctxt.CompileCtxt, unit *ctxt.ParseUnit, node *ctxt.HirNode, hirToBlock map[ctxt.HirID]ctxt.BlockID, currentBlock ctxt.BlockID) {
	incoming := currentBlock
	if bid, ok := hirToBlock[node.ID]; ok {
		if incoming.Valid() {
			incomingRef := ctxt.BlockRef{Unit: unit.ID, Block: incoming}
			ownRef := ctxt.BlockRef{Unit: unit.ID, Block: bid}
			cc.Related().InsertPair(incomingRef, model.RelContains, ownRef)
			switch node.Kind {
			case model.HirParameter:
				cc.Related().InsertPair(incomingRef, model.RelHasParameters, ownRef)
			case model.HirReturnType:
				cc.Related().InsertPair(incomingRef, model.RelHasReturn, ownRef)
			case model.HirField:
				cc.Related().InsertPair(incomingRef, model.RelHasField, ownRef)
			case model.HirMethod:
				cc.Related().InsertPair(incomingRef, model.RelHasMethod, ownRef)
			}
		}
		currentBlock = bid
	}

	if node.Kind == model.HirIdent || node.Kind == model.HirReturnType {
		connectIdentUse(cc, unit, node, currentBlock)
	}

	for _, childID := range node.Children {
		child := cc.Hir(childID)
		if child == nil {
			continue
		}
		connectNode(cc, unit, child, hirToBlock, currentBlock)
	}
}

// connectIdentUse links the block an identifier occurs in to the block
// owning the symbol it was resolved to, as a Uses edge, or, when the
// identifier is a call's callee, as a Calls edge from the nearest enclosing
// function or method block (the unit's root block for a call outside any
// function). Declaration-site identifiers
// (the name token of a function/type/field itself) are skipped: their
// symbol's primary block is themselves, which would only produce a
// self-edge.
func connectIdentUse(cc *ctxt.CompileCtxt, unit *ctxt.ParseUnit, node *ctxt.HirNode, from ctxt.BlockID) {
	if !from.Valid() {
		return
	}
	symID, ok := node.Symbol()
	if !ok {
		return
	}
	target := cc.Symbol(symID)
	if target == nil {
		return
	}
	if target.Kind == model.SymUndefined {
		// Binding ran per-unit, in parallel, before internal/link.Link had
		// seen every unit; a reference that lost this race got an
		// Undefined placeholder rather than the real cross-file symbol.
		// Connect always runs after Link (see internal/build.Runner), so
		// by now that placeholder may carry a redirect to the symbol Link
		// found — follow it before giving up on the edge entirely.
		resolved := cc.Symbol(link.Resolve(cc, symID))
		if resolved == nil || resolved.Kind == model.SymUndefined {
			return
		}
		target = resolved
	}
	primary, ok := target.PrimaryBlock()
	if !ok {
		return
	}
	fromRef := ctxt.BlockRef{Unit: unit.ID, Block: from}
	if primary == fromRef {
		return
	}

	rel := model.RelUses
	if node.Category == model.IdentMethodCall {
		rel = model.RelCalls
	} else if parent := cc.Hir(node.Parent); parent != nil && parent.Kind == model.HirCallExpr {
		rel = model.RelCalls
	}
	if rel == model.RelCalls {
		for b := cc.Block(fromRef); b != nil && b.Kind != model.BlockFunction && b.Kind != model.BlockMethod && b.Parent.Valid(); b = cc.Block(fromRef) {
			fromRef = ctxt.BlockRef{Unit: unit.ID, Block: b.Parent}
		}
	}
	cc.Related().InsertPair(fromRef, rel, primary)
}

// connectImpls links each impl block to the type it implements for, via the
// name-matching heuristic the language adapters already give us: an
// impl_item's DeclName is the target type's name (see
// internal/lang/rust.DeclName), so looking that name up in the symbol
// kind's type bucket finds the type being implemented. It also adds the
// impl's own owned scope (the scope holding the methods declared inside
// it) as a Base of the type's owned scope, so a field/method lookup
// rooted at the type's scope sees methods that live in a separate impl
// block — required for more than one impl block per type, and for S4
// trait method dispatch once connectImplTrait below also threads the
// trait's scope in as a base.
func connectImpls(cc *ctxt.CompileCtxt, unit *ctxt.ParseUnit) {
	for _, b := range unit.Blocks() {
		if b.Kind != model.BlockImpl || b.Name == "" {
			continue
		}
		implRef := b.Ref()
		implSym := cc.Symbol(b.Symbol)
		var implScope ctxt.ScopeID
		var hasImplScope bool
		if implSym != nil {
			implScope, hasImplScope = implSym.OwnedScope()
		}
		for _, candidate := range cc.FindSymbolsByName(b.Name) {
			if candidate.Kind != model.SymType {
				continue
			}
			if typeBlock, ok := candidate.PrimaryBlock(); ok {
				cc.Related().InsertPair(implRef, model.RelImplFor, typeBlock)
			}
			if hasImplScope {
				if typeScope, ok := candidate.OwnedScope(); ok {
					if scope := cc.Scope(typeScope); scope != nil {
						scope.AddBase(implScope)
					}
				}
			}
		}
		connectImplTrait(cc, unit, b, implRef, implScope, hasImplScope)
	}
}

// connectImplTrait links an impl block to the trait it implements, read
// directly off the raw grammar node's "trait" field — present only for
// "impl Trait for Type" blocks, absent for a plain inherent "impl Type".
// Node access is generic across Language (ChildByFieldName is a harmless
// miss on grammars that carry no such field), so no per-language interface
// addition was needed to wire this up. When the trait resolves, its own
// scope (default method bodies) is added as a further Base so a method
// call dispatches to a trait default when the impl doesn't override it.
func connectImplTrait(cc *ctxt.CompileCtxt, unit *ctxt.ParseUnit, b *ctxt.Block, implRef ctxt.BlockRef, implScope ctxt.ScopeID, hasImplScope bool) {
	hirNode := cc.Hir(b.HirNode)
	if hirNode == nil {
		return
	}
	traitNode := hirNode.Node.ChildByFieldName("trait")
	if !traitNode.Valid() {
		return
	}
	traitName := traitNode.Text(unit.Source)
	if traitName == "" {
		return
	}
	for _, candidate := range cc.FindSymbolsByName(traitName) {
		if candidate.Kind != model.SymInterface {
			continue
		}
		traitBlock, ok := candidate.PrimaryBlock()
		if !ok {
			continue
		}
		cc.Related().InsertPair(implRef, model.RelImplements, traitBlock)
		if hasImplScope {
			if traitScope, ok := candidate.OwnedScope(); ok {
				if scope := cc.Scope(implScope); scope != nil {
					scope.AddBase(traitScope)
				}
			}
		}
	}
}
