package ctxt

import (
	"sync"

	"github.com/kessdev/codegraph/internal/model"
)

// Symbol is a declared name: a function, type, field, variable or module.
// Collection allocates one per declaration site and publishes the scope it
// owns; the other set-once cells are filled by later passes: binding
// publishes the declared type, block building the primary block, and
// project link the redirect of an Undefined placeholder.
type Symbol struct {
	ID          SymbolID
	Name        string
	QualName    string
	Kind        model.SymbolKind
	Visibility  model.Visibility
	Unit        UnitID
	DeclHir     HirID
	ParentScope ScopeID
	Arity       int // parameter count, meaningful only for SymFunction/SymMethod

	typeOf       SetOnce[SymbolID]
	ownedScope   SetOnce[ScopeID]
	primaryBlock SetOnce[BlockRef]
	redirect     SetOnce[SymbolID]

	mu        sync.Mutex
	blocks    []BlockRef
	overloads []SymbolID
}

// SetTypeOf publishes the type this symbol was declared with (a variable's
// type, a field's type, a function's return type when it is a single named
// type). Left unset for symbols with no single resolvable type.
func (s *Symbol) SetTypeOf(id SymbolID) { s.typeOf.Set("Symbol.typeOf", s.Name, id) }

// TypeOf returns the published type symbol, if any.
func (s *Symbol) TypeOf() (SymbolID, bool) { return s.typeOf.Get() }

// TrySetTypeOf publishes id as this symbol's type if none has been
// published yet, reporting whether it did. Binding walks a declaration's
// descendants looking for its resolved type reference and may visit more
// than one candidate node (e.g. a compound expression); TrySetTypeOf lets
// it record the first hit without needing to pre-decide there is exactly
// one before calling in.
func (s *Symbol) TrySetTypeOf(id SymbolID) bool { return s.typeOf.TrySet(id) }

// SetOwnedScope publishes the scope this symbol introduces when it is
// itself a scope owner (a function's body scope, a type's member scope).
func (s *Symbol) SetOwnedScope(id ScopeID) { s.ownedScope.Set("Symbol.ownedScope", s.Name, id) }

// OwnedScope returns the published owned scope, if any.
func (s *Symbol) OwnedScope() (ScopeID, bool) { return s.ownedScope.Get() }

// SetRedirect publishes the real symbol a placeholder Undefined symbol
// stands in for, once project link locates it. See DESIGN.md's note on
// open question 1 for why this is a redirect cell rather than an in-place
// replacement.
func (s *Symbol) SetRedirect(id SymbolID) { s.redirect.Set("Symbol.redirect", s.Name, id) }

// Redirect returns the published redirect target, if any.
func (s *Symbol) Redirect() (SymbolID, bool) { return s.redirect.Get() }

// AddBlock records a block this symbol owns in the block graph. The first
// call publishes PrimaryBlock; later calls (a symbol declared in more than
// one block, e.g. a Go type with both a type_spec and later method blocks)
// just append.
func (s *Symbol) AddBlock(ref BlockRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks = append(s.blocks, ref)
	s.primaryBlock.TrySet(ref)
}

// Blocks returns every block this symbol owns, primary first.
func (s *Symbol) Blocks() []BlockRef {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]BlockRef, len(s.blocks))
	copy(out, s.blocks)
	return out
}

// PrimaryBlock returns the first block recorded for this symbol, if any.
func (s *Symbol) PrimaryBlock() (BlockRef, bool) { return s.primaryBlock.Get() }

// AddOverload records a sibling symbol sharing this symbol's (name, kind,
// parent scope) key. It does not touch the scope entry (Scope.Declare does
// the promotion to an overload set). Source order is preserved: callers
// append in collection order.
func (s *Symbol) AddOverload(id SymbolID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overloads = append(s.overloads, id)
}

// Overloads returns the sibling overload set, in declaration order.
func (s *Symbol) Overloads() []SymbolID {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SymbolID, len(s.overloads))
	copy(out, s.overloads)
	return out
}
