package snaptest

import (
	"fmt"

	"github.com/kessdev/codegraph/internal/ctxt"
	"github.com/kessdev/codegraph/internal/model"
)

func visibilityTag(v model.Visibility) string {
	if v == model.VisPublic {
		return "public"
	}
	return "private"
}

// symbolLine renders one symbol the same shape a case's expect:symbols
// section lists, skipping the unit/id prefix a fresh CompileCtxt never
// reproduces deterministically across two ports of the same source.
func symbolLine(s *ctxt.Symbol) string {
	return fmt.Sprintf("%s | %s | %s | [%s]", s.Kind.String(), s.Name, s.QualName, visibilityTag(s.Visibility))
}

// allSymbols walks the symbol arena in allocation order. CompileCtxt has no
// public enumerator of its own (only name/id lookups), but IDs are dense
// starting at 1, so probing until Symbol returns nil is a complete and
// cheap walk for a test harness.
func allSymbols(cc *ctxt.CompileCtxt) []*ctxt.Symbol {
	var out []*ctxt.Symbol
	for id := ctxt.SymbolID(1); ; id++ {
		s := cc.Symbol(id)
		if s == nil {
			break
		}
		out = append(out, s)
	}
	return out
}

// SymbolLines renders every declared (non-primitive, non-placeholder)
// symbol in cc.
func SymbolLines(cc *ctxt.CompileCtxt) []string {
	var lines []string
	for _, s := range allSymbols(cc) {
		if s.Kind == model.SymPrimitive || s.Kind == model.SymUndefined {
			continue
		}
		lines = append(lines, symbolLine(s))
	}
	return lines
}

func blockLabel(b *ctxt.Block) string {
	if b.Name == "" {
		return b.Kind.String()
	}
	return fmt.Sprintf("%s:%s", b.Kind.String(), b.Name)
}

// BlockGraphLines renders unit's block tree as a pre-order sequence of
// "kind:name" labels, one per line, indented two spaces per depth level —
// the flattened shape a case's expect:block-graph section checks as an
// ordered subsequence (see AssertBlockGraphOrder).
func BlockGraphLines(cc *ctxt.CompileCtxt, unit *ctxt.ParseUnit) []string {
	var lines []string
	var walk func(id ctxt.BlockID, depth int)
	walk = func(id ctxt.BlockID, depth int) {
		ref := ctxt.BlockRef{Unit: unit.ID, Block: id}
		b := cc.Block(ref)
		if b == nil {
			return
		}
		lines = append(lines, fmt.Sprintf("%*s%s", depth*2, "", blockLabel(b)))
		for _, child := range b.Children {
			walk(child, depth+1)
		}
	}
	walk(unit.RootBlock, 0)
	return lines
}

// BlockRelationLines renders every relation edge in cc as
// "fromKind:fromName --relation--> toKind:toName".
func BlockRelationLines(cc *ctxt.CompileCtxt) []string {
	var lines []string
	cc.Related().Walk(func(from ctxt.BlockRef, rel model.BlockRelation, to ctxt.BlockRef) {
		fromBlock := cc.Block(from)
		toBlock := cc.Block(to)
		if fromBlock == nil || toBlock == nil {
			return
		}
		lines = append(lines, fmt.Sprintf("%s --%s--> %s", blockLabel(fromBlock), rel.String(), blockLabel(toBlock)))
	})
	return lines
}
