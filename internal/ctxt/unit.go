package ctxt

import (
	"sync"

	"github.com/kessdev/codegraph/internal/lang"
	"github.com/kessdev/codegraph/internal/model"
)

// ParseUnit is one compiled source file: its parse tree, its language
// adapter, and the per-unit block arena built for it. HIR nodes, symbols
// and scopes belonging to this unit live in the context's global arenas
// (see CompileCtxt) and are found by id, not stored here.
type ParseUnit struct {
	ID     UnitID
	Path   string
	Lang   lang.Language
	Source []byte
	Tree   *lang.ParsedTree

	RootHir   HirID
	RootScope ScopeID
	RootBlock BlockID

	blockMu sync.RWMutex
	blocks  []*Block // index 0 unused, block ids start at 1
}

func newUnit(id UnitID, path string, l lang.Language, src []byte, tree *lang.ParsedTree) *ParseUnit {
	return &ParseUnit{
		ID:     id,
		Path:   path,
		Lang:   l,
		Source: src,
		Tree:   tree,
		blocks: make([]*Block, 1),
	}
}

// NewBlockArgs bundles the fields needed to allocate a Block, kept as a
// struct because AllocBlock's call sites would otherwise need five
// positional arguments of the same few scalar types.
type NewBlockArgs struct {
	Kind    model.BlockKind
	Name    string
	Symbol  SymbolID
	HirNode HirID
	Parent  BlockID
}

func (u *ParseUnit) allocBlock(args NewBlockArgs) *Block {
	u.blockMu.Lock()
	defer u.blockMu.Unlock()
	id := BlockID(len(u.blocks))
	b := &Block{
		Unit:    u.ID,
		ID:      id,
		Kind:    args.Kind,
		Name:    args.Name,
		Symbol:  args.Symbol,
		HirNode: args.HirNode,
		Parent:  args.Parent,
	}
	u.blocks = append(u.blocks, b)
	if args.Parent.Valid() {
		if p := u.blockUnsafe(args.Parent); p != nil {
			p.Children = append(p.Children, id)
		}
	}
	return b
}

// blockUnsafe looks up a block without acquiring blockMu; callers must
// already hold it.
func (u *ParseUnit) blockUnsafe(id BlockID) *Block {
	if int(id) <= 0 || int(id) >= len(u.blocks) {
		return nil
	}
	return u.blocks[id]
}

// Block returns the block with the given unit-local id, or nil if out of
// range.
func (u *ParseUnit) Block(id BlockID) *Block {
	u.blockMu.RLock()
	defer u.blockMu.RUnlock()
	return u.blockUnsafe(id)
}

// Blocks returns every allocated block in this unit, in allocation order
// (index 0 is always nil and skipped).
func (u *ParseUnit) Blocks() []*Block {
	u.blockMu.RLock()
	defer u.blockMu.RUnlock()
	out := make([]*Block, 0, len(u.blocks)-1)
	out = append(out, u.blocks[1:]...)
	return out
}
