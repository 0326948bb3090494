package ctxt

import "github.com/kessdev/codegraph/internal/model"

// Block is one node of the architectural block graph: a unit of structure
// (module, function, method, type, field, parameters grouping, return
// grouping, call site, const/var, statement) that the connector links to
// other blocks via the RelationMap. Block identity is (Unit, ID); ID is
// local to its unit so unit building can allocate block ids without
// coordinating with any other unit's builder.
type Block struct {
	Unit     UnitID
	ID       BlockID
	Kind     model.BlockKind
	Name     string
	Symbol   SymbolID // 0 if this block has no owning declared symbol (e.g. a call site)
	HirNode  HirID
	Parent   BlockID
	Children []BlockID
}

// Ref returns this block's context-wide identity.
func (b *Block) Ref() BlockRef { return BlockRef{Unit: b.Unit, Block: b.ID} }
