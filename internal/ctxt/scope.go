package ctxt

import (
	"sync"

	"github.com/kessdev/codegraph/internal/model"
)

// scopeKey buckets a scope's entries by name and kind so that, say, a
// struct and a function sharing a name in the same scope don't collide.
type scopeKey struct {
	name string
	kind model.SymbolKind
}

// ScopeEntry is what a name resolves to within one scope: either a single
// symbol, or — once a second declaration with the same (name, kind) shows
// up — an overload set. Single stays populated after promotion so callers
// that only care about "is there anything called X" don't need to branch.
type ScopeEntry struct {
	Single     SymbolID
	Overloaded []SymbolID // non-empty once more than one candidate exists
}

// Scope is one lexical scope: a file/module scope, a function or method
// body, a type's member scope, or a block scope. Parent is the lexical
// enclosing scope; Bases lists additional scopes a lookup should fall
// through to after Parent (a trait/interface a type implements, a module a
// wildcard-imports), which is how method dispatch sees inherited members
// without copying them.
type Scope struct {
	ID      ScopeID
	Unit    UnitID
	Name    string
	Owner   SymbolID
	HirNode HirID
	Parent  ScopeID
	Bases   []ScopeID

	mu      sync.RWMutex
	entries map[scopeKey]*ScopeEntry
}

func newScope(id ScopeID, unit UnitID, name string, owner SymbolID, hirNode HirID, parent ScopeID) *Scope {
	return &Scope{
		ID:      id,
		Unit:    unit,
		Name:    name,
		Owner:   owner,
		HirNode: hirNode,
		Parent:  parent,
		entries: make(map[scopeKey]*ScopeEntry),
	}
}

// AddBase records an additional scope this one should fall through to on a
// failed local lookup, e.g. an impl block's scope adding the trait it
// implements.
func (s *Scope) AddBase(base ScopeID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Bases = append(s.Bases, base)
}

// Declare introduces name at kind into this scope, returning the resulting
// entry and whether this declaration promoted an existing single entry
// into an overload set. The promoted symbol's AddOverload is the caller's
// responsibility to call for both sides of the new pair — Declare only
// updates the scope's own bookkeeping.
func (s *Scope) Declare(name string, kind model.SymbolKind, id SymbolID) (entry *ScopeEntry, promoted bool) {
	key := scopeKey{name: name, kind: kind}
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.entries[key]
	if !ok {
		e := &ScopeEntry{Single: id}
		s.entries[key] = e
		return e, false
	}
	if len(existing.Overloaded) == 0 {
		existing.Overloaded = []SymbolID{existing.Single, id}
	} else {
		existing.Overloaded = append(existing.Overloaded, id)
	}
	return existing, true
}

// LookupLocal checks only this scope's own entries, ignoring Parent and
// Bases.
func (s *Scope) LookupLocal(name string, kind model.SymbolKind) (*ScopeEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[scopeKey{name: name, kind: kind}]
	return e, ok
}

// LookupLocalAnyKind checks every kind bucket for name in this scope only,
// used when the caller doesn't yet know whether a path segment names a
// value, a type or a module.
func (s *Scope) LookupLocalAnyKind(name string) []*ScopeEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*ScopeEntry
	for key, e := range s.entries {
		if key.name == name {
			out = append(out, e)
		}
	}
	return out
}
