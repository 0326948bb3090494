package ctxt

import (
	"github.com/kessdev/codegraph/internal/lang"
	"github.com/kessdev/codegraph/internal/model"
)

// HirNode is a lifted syntax node: the language-independent shape every
// pass after lifting actually operates on. Node keeps the original
// tree-sitter node alive for text/span lookups without any later pass
// needing to know which grammar produced it.
type HirNode struct {
	ID       HirID
	Unit     UnitID
	Kind     model.HirKind
	Category model.IdentifierCategory
	Node     lang.Node
	Parent   HirID
	Children []HirID

	symbol SetOnce[SymbolID]
	scope  SetOnce[ScopeID]
}

// SetSymbol publishes the symbol this node denotes (its own declaration for
// a definition site, or the resolved target for a use site). Collection
// sets it on declaration sites and binding on the remaining identifiers; a
// second call on the same node panics.
func (h *HirNode) SetSymbol(id SymbolID) {
	h.symbol.Set("HirNode.symbol", h.Kind.String(), id)
}

// Symbol returns the published symbol, if any.
func (h *HirNode) Symbol() (SymbolID, bool) { return h.symbol.Get() }

// SetScope publishes the lexical scope this node introduces (only called
// for nodes where Language.IsScopeIntroducer reported true).
func (h *HirNode) SetScope(id ScopeID) {
	h.scope.Set("HirNode.scope", h.Kind.String(), id)
}

// Scope returns the published scope, if any.
func (h *HirNode) Scope() (ScopeID, bool) { return h.scope.Get() }

// Span delegates to the wrapped syntax node.
func (h *HirNode) Span() model.Span { return h.Node.Span() }

// Text delegates to the wrapped syntax node.
func (h *HirNode) Text(src []byte) string { return h.Node.Text(src) }
