package ctxt

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/kessdev/codegraph/internal/lang"
	"github.com/kessdev/codegraph/internal/model"
)

// CompileCtxt owns every arena allocated while compiling a set of files:
// units, HIR nodes, symbols, scopes, blocks, and the relation map linking
// blocks together. It is built once per run and shared, read-mostly after
// collection, across every parallel per-file pass; the per-arena locks
// exist so two files' passes can allocate concurrently without
// serializing on one giant mutex.
type CompileCtxt struct {
	unitMu  sync.RWMutex
	units   []*ParseUnit
	unitSeq atomic.Uint32

	hirMu   sync.RWMutex
	hirArena []*HirNode
	hirSeq  atomic.Uint32

	symMu   sync.RWMutex
	symArena []*Symbol
	symSeq  atomic.Uint32

	scopeMu   sync.RWMutex
	scopeArena []*Scope
	scopeSeq  atomic.Uint32

	globalIdx    sync.Map // string name -> *symbolBucket
	blocksByName sync.Map // string name -> *blockBucket
	unresolved   sync.Map // string name -> *symbolBucket, Undefined placeholders awaiting project link

	related *RelationMap

	cancelled atomic.Bool
	cancelErr atomic.Value // error
}

type symbolBucket struct {
	mu   sync.Mutex
	syms []*Symbol
}

type blockBucket struct {
	mu   sync.Mutex
	refs []BlockRef
}

// New builds an empty compile context. Arena index 0 is reserved as the
// invalid sentinel for every ID type, so the first real allocation always
// gets id 1.
func New() *CompileCtxt {
	return &CompileCtxt{
		hirArena:   make([]*HirNode, 1),
		symArena:   make([]*Symbol, 1),
		scopeArena: make([]*Scope, 1),
		units:      make([]*ParseUnit, 1),
		related:    NewRelationMap(),
	}
}

// Related returns the shared block relation map.
func (c *CompileCtxt) Related() *RelationMap { return c.related }

// InternUnit registers a parsed file and returns its UnitID.
func (c *CompileCtxt) InternUnit(path string, l lang.Language, src []byte, tree *lang.ParsedTree) *ParseUnit {
	id := UnitID(c.unitSeq.Add(1))
	u := newUnit(id, path, l, src, tree)
	c.unitMu.Lock()
	for int(id) >= len(c.units) {
		c.units = append(c.units, nil)
	}
	c.units[id] = u
	c.unitMu.Unlock()
	return u
}

// Unit returns the unit with the given id, or nil.
func (c *CompileCtxt) Unit(id UnitID) *ParseUnit {
	c.unitMu.RLock()
	defer c.unitMu.RUnlock()
	if int(id) <= 0 || int(id) >= len(c.units) {
		return nil
	}
	return c.units[id]
}

// Units returns every registered unit, in registration order.
func (c *CompileCtxt) Units() []*ParseUnit {
	c.unitMu.RLock()
	defer c.unitMu.RUnlock()
	out := make([]*ParseUnit, 0, len(c.units)-1)
	out = append(out, c.units[1:]...)
	return out
}

// AllocHir allocates a new HIR node.
func (c *CompileCtxt) AllocHir(unit UnitID, kind model.HirKind, category model.IdentifierCategory, node lang.Node, parent HirID) *HirNode {
	id := HirID(c.hirSeq.Add(1))
	h := &HirNode{ID: id, Unit: unit, Kind: kind, Category: category, Node: node, Parent: parent}
	c.hirMu.Lock()
	for int(id) >= len(c.hirArena) {
		c.hirArena = append(c.hirArena, nil)
	}
	c.hirArena[id] = h
	c.hirMu.Unlock()
	if parent.Valid() {
		if p := c.Hir(parent); p != nil {
			p.Children = append(p.Children, id)
		}
	}
	return h
}

// Hir returns the HIR node with the given id, or nil.
func (c *CompileCtxt) Hir(id HirID) *HirNode {
	c.hirMu.RLock()
	defer c.hirMu.RUnlock()
	if int(id) <= 0 || int(id) >= len(c.hirArena) {
		return nil
	}
	return c.hirArena[id]
}

// AllocSymbol allocates a new symbol. The caller is responsible for
// declaring it into its parent scope and for calling IndexVisible if it is
// public.
func (c *CompileCtxt) AllocSymbol(unit UnitID, name, qualName string, kind model.SymbolKind, vis model.Visibility, parentScope ScopeID, declHir HirID) *Symbol {
	id := SymbolID(c.symSeq.Add(1))
	s := &Symbol{ID: id, Name: name, QualName: qualName, Kind: kind, Visibility: vis, Unit: unit, DeclHir: declHir, ParentScope: parentScope}
	c.symMu.Lock()
	for int(id) >= len(c.symArena) {
		c.symArena = append(c.symArena, nil)
	}
	c.symArena[id] = s
	c.symMu.Unlock()
	return s
}

// Symbol returns the symbol with the given id, or nil.
func (c *CompileCtxt) Symbol(id SymbolID) *Symbol {
	c.symMu.RLock()
	defer c.symMu.RUnlock()
	if int(id) <= 0 || int(id) >= len(c.symArena) {
		return nil
	}
	return c.symArena[id]
}

// AllocScope allocates a new lexical scope.
func (c *CompileCtxt) AllocScope(unit UnitID, name string, owner SymbolID, hirNode HirID, parent ScopeID) *Scope {
	id := ScopeID(c.scopeSeq.Add(1))
	s := newScope(id, unit, name, owner, hirNode, parent)
	c.scopeMu.Lock()
	for int(id) >= len(c.scopeArena) {
		c.scopeArena = append(c.scopeArena, nil)
	}
	c.scopeArena[id] = s
	c.scopeMu.Unlock()
	return s
}

// Scope returns the scope with the given id, or nil.
func (c *CompileCtxt) Scope(id ScopeID) *Scope {
	c.scopeMu.RLock()
	defer c.scopeMu.RUnlock()
	if int(id) <= 0 || int(id) >= len(c.scopeArena) {
		return nil
	}
	return c.scopeArena[id]
}

// AllocBlock allocates a new block within unit.
func (c *CompileCtxt) AllocBlock(unit *ParseUnit, args NewBlockArgs) *Block {
	b := unit.allocBlock(args)
	if b.Name != "" {
		c.RegisterBlockName(b.Name, b.Ref())
	}
	return b
}

// Block looks up a block by its context-wide reference.
func (c *CompileCtxt) Block(ref BlockRef) *Block {
	u := c.Unit(ref.Unit)
	if u == nil {
		return nil
	}
	return u.Block(ref.Block)
}

// IndexVisible publishes a public symbol into the global, cross-unit name
// index used by project link to resolve references that escape their
// declaring unit.
func (c *CompileCtxt) IndexVisible(s *Symbol) {
	if s.Visibility != model.VisPublic {
		return
	}
	v, _ := c.globalIdx.LoadOrStore(s.Name, &symbolBucket{})
	b := v.(*symbolBucket)
	b.mu.Lock()
	b.syms = append(b.syms, s)
	b.mu.Unlock()
}

// FindSymbolsByName returns every publicly visible symbol registered under
// name, across every unit.
func (c *CompileCtxt) FindSymbolsByName(name string) []*Symbol {
	v, ok := c.globalIdx.Load(name)
	if !ok {
		return nil
	}
	b := v.(*symbolBucket)
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*Symbol, len(b.syms))
	copy(out, b.syms)
	return out
}

// FindSymbolsByPath resolves a left-to-right "A::B::C" qualified reference
// path against the global visible index. It narrows by the path's
// trailing segment first (the only index this context keeps), then, when
// more than one unit publishes that name, prefers whichever candidate's
// QualName actually ends in the full qualified path — so "pkg::Func" picks
// the Func declared in pkg over a same-named Func elsewhere. A path with
// no qualifier (a single segment) is just a name lookup. Falling back to
// every trailing-name candidate when no qualified match narrows the set
// keeps this never-fatal: a qualifier this pass doesn't fully understand
// (an aliased import, a generic instantiation) still has a chance to
// resolve by name alone rather than failing outright.
func (c *CompileCtxt) FindSymbolsByPath(path string) []*Symbol {
	segments := strings.Split(path, "::")
	last := segments[len(segments)-1]
	candidates := c.FindSymbolsByName(last)
	if len(segments) <= 1 || len(candidates) == 0 {
		return candidates
	}
	var narrowed []*Symbol
	for _, sym := range candidates {
		if strings.HasSuffix(sym.QualName, path) {
			narrowed = append(narrowed, sym)
		}
	}
	if len(narrowed) > 0 {
		return narrowed
	}
	return candidates
}

// RegisterBlockName indexes a block under its owning symbol's name, used
// by find_blocks_by_name-style lookups in rendering and queries.
func (c *CompileCtxt) RegisterBlockName(name string, ref BlockRef) {
	v, _ := c.blocksByName.LoadOrStore(name, &blockBucket{})
	b := v.(*blockBucket)
	b.mu.Lock()
	b.refs = append(b.refs, ref)
	b.mu.Unlock()
}

// FindBlocksByName returns every block registered under name.
func (c *CompileCtxt) FindBlocksByName(name string) []BlockRef {
	v, ok := c.blocksByName.Load(name)
	if !ok {
		return nil
	}
	b := v.(*blockBucket)
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]BlockRef, len(b.refs))
	copy(out, b.refs)
	return out
}

// NewUndefined allocates an Undefined placeholder symbol for a reference
// that could not be resolved locally, and registers it for project link to
// revisit once every unit has been collected. It is never declared into
// any scope — only the global unresolved index and whatever HirNode.symbol
// cell points at it know it exists.
func (c *CompileCtxt) NewUndefined(unit UnitID, name string) *Symbol {
	sym := c.AllocSymbol(unit, name, name, model.SymUndefined, model.VisPrivate, 0, 0)
	v, _ := c.unresolved.LoadOrStore(name, &symbolBucket{})
	b := v.(*symbolBucket)
	b.mu.Lock()
	b.syms = append(b.syms, sym)
	b.mu.Unlock()
	return sym
}

// UndefinedByName returns every still-pending Undefined placeholder
// registered under name.
func (c *CompileCtxt) UndefinedByName(name string) []*Symbol {
	v, ok := c.unresolved.Load(name)
	if !ok {
		return nil
	}
	b := v.(*symbolBucket)
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*Symbol, len(b.syms))
	copy(out, b.syms)
	return out
}

// AllUndefinedNames returns every name with at least one pending
// placeholder, for project link to iterate over.
func (c *CompileCtxt) AllUndefinedNames() []string {
	var names []string
	c.unresolved.Range(func(k, _ any) bool {
		names = append(names, k.(string))
		return true
	})
	return names
}

// LookupInScope resolves name/kind starting at scope id, walking lexical
// parents first and then, at each scope along that chain, its base scopes
// (with cycle protection since a base chain can in principle loop through
// mutually-implementing traits). It also returns the scope that actually
// held the entry: the lexical scope itself, or the base scope the hit came
// from.
func (c *CompileCtxt) LookupInScope(start ScopeID, name string, kind model.SymbolKind) (*ScopeEntry, ScopeID, bool) {
	visited := make(map[ScopeID]bool)
	for id := start; id.Valid(); {
		scope := c.Scope(id)
		if scope == nil {
			break
		}
		if entry, holder, ok := c.lookupWithBases(scope, name, kind, visited); ok {
			return entry, holder, true
		}
		id = scope.Parent
	}
	return nil, 0, false
}

// LookupLocalWithBases checks scope's own entries and, on a miss, its base
// scopes (a trait/impl a type's member scope falls through to), without
// walking lexical Parent the way LookupInScope does. This is what a
// member-access resolution (e.f, e.m(...)) roots at a receiver's
// OwnedScope wants: a struct's fields live in its own scope, but a
// trait/impl's methods live in a base of it, and neither should leak into
// whatever lexical scope happens to enclose the access expression.
func (c *CompileCtxt) LookupLocalWithBases(scopeID ScopeID, name string, kind model.SymbolKind) (*ScopeEntry, bool) {
	scope := c.Scope(scopeID)
	if scope == nil {
		return nil, false
	}
	e, _, ok := c.lookupWithBases(scope, name, kind, make(map[ScopeID]bool))
	return e, ok
}

func (c *CompileCtxt) lookupWithBases(scope *Scope, name string, kind model.SymbolKind, visited map[ScopeID]bool) (*ScopeEntry, ScopeID, bool) {
	if visited[scope.ID] {
		return nil, 0, false
	}
	visited[scope.ID] = true
	if e, ok := scope.LookupLocal(name, kind); ok {
		return e, scope.ID, true
	}
	for _, baseID := range scope.Bases {
		base := c.Scope(baseID)
		if base == nil {
			continue
		}
		if e, holder, ok := c.lookupWithBases(base, name, kind, visited); ok {
			return e, holder, true
		}
	}
	return nil, 0, false
}

// Cancel marks the context cancelled, causing every cooperating per-file
// goroutine to stop starting new work; used for fail-fast on the first
// ParseError per the concurrency model.
func (c *CompileCtxt) Cancel(err error) {
	if c.cancelled.CompareAndSwap(false, true) {
		c.cancelErr.Store(err)
	}
}

// Cancelled reports whether Cancel has been called.
func (c *CompileCtxt) Cancelled() bool { return c.cancelled.Load() }

// CancelErr returns the error passed to the first Cancel call, or nil.
func (c *CompileCtxt) CancelErr() error {
	v := c.cancelErr.Load()
	if v == nil {
		return nil
	}
	return v.(error)
}
