// Package ctxt holds the compile context: the arenas that own every
// HirNode, Symbol, Scope and Block allocated while compiling a set of
// files, plus the block-relation map connecting them. Every handle in this
// package is a small integer; identity and lifetime live in the arena, not
// in the handle, which is what lets HIR nodes, symbols and scopes refer to
// each other before all of them exist yet.
package ctxt

// UnitID identifies one parsed source file within a CompileCtxt.
type UnitID uint32

// HirID identifies a lifted syntax node, unique across the whole context.
type HirID uint32

// SymbolID identifies a declared symbol, unique across the whole context.
type SymbolID uint32

// ScopeID identifies a lexical scope, unique across the whole context.
type ScopeID uint32

// BlockID identifies a block graph node. Block identity is local to its
// owning unit; pair it with a UnitID (see BlockRef) to get a context-wide
// identity.
type BlockID uint32

// Zero values across all five ID types mean "absent" — no unit, no node,
// no symbol, no scope, no block. Allocation always starts at 1 so the zero
// value stays a safe sentinel.
const invalidID = 0

// Valid reports whether the id was actually allocated.
func (id UnitID) Valid() bool   { return id != invalidID }
func (id HirID) Valid() bool    { return id != invalidID }
func (id SymbolID) Valid() bool { return id != invalidID }
func (id ScopeID) Valid() bool  { return id != invalidID }
func (id BlockID) Valid() bool  { return id != invalidID }

// BlockRef is a context-wide identity for a block: its owning unit plus its
// unit-local id.
type BlockRef struct {
	Unit  UnitID
	Block BlockID
}

// Valid reports whether both halves of the ref were actually allocated.
func (r BlockRef) Valid() bool { return r.Unit.Valid() && r.Block.Valid() }
