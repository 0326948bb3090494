// Package lang abstracts over tree-sitter grammars so that every later pass
// (lifting, collection, binding, block-graph construction) walks a single
// Node shape regardless of which of the eight supported languages produced
// it. Concrete grammars live in the lang/<language> subpackages and
// register themselves with a Registry.
package lang

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/kessdev/codegraph/internal/model"
)

// Node wraps a tree-sitter node behind a value type so passes never touch
// the underlying grammar bindings directly.
type Node struct {
	raw *sitter.Node
}

// WrapNode adapts a raw tree-sitter node. Language implementations are the
// only callers expected to use this outside the package.
func WrapNode(n *sitter.Node) Node { return Node{raw: n} }

// Valid reports whether the node is non-nil.
func (n Node) Valid() bool { return n.raw != nil }

// Kind returns the grammar's node type name, e.g. "function_declaration".
func (n Node) Kind() string {
	if n.raw == nil {
		return ""
	}
	return n.raw.Kind()
}

// ChildCount returns the number of direct children, named and anonymous.
func (n Node) ChildCount() uint {
	if n.raw == nil {
		return 0
	}
	return n.raw.ChildCount()
}

// Child returns the i-th direct child.
func (n Node) Child(i uint) Node {
	if n.raw == nil {
		return Node{}
	}
	return Node{raw: n.raw.Child(i)}
}

// NamedChildCount returns the number of named (non-punctuation) children.
func (n Node) NamedChildCount() uint {
	if n.raw == nil {
		return 0
	}
	return n.raw.NamedChildCount()
}

// NamedChild returns the i-th named child.
func (n Node) NamedChild(i uint) Node {
	if n.raw == nil {
		return Node{}
	}
	return Node{raw: n.raw.NamedChild(i)}
}

// ChildByFieldName looks up a child by the grammar's field name, e.g. "name"
// or "body".
func (n Node) ChildByFieldName(field string) Node {
	if n.raw == nil {
		return Node{}
	}
	return Node{raw: n.raw.ChildByFieldName(field)}
}

// Parent returns the syntactic parent, or an invalid Node at the root.
func (n Node) Parent() Node {
	if n.raw == nil {
		return Node{}
	}
	return Node{raw: n.raw.Parent()}
}

// Span converts tree-sitter's zero-based row/column positions into a
// model.Span.
func (n Node) Span() model.Span {
	if n.raw == nil {
		return model.Span{}
	}
	start := n.raw.StartPosition()
	end := n.raw.EndPosition()
	return model.Span{
		StartLine: int(start.Row),
		StartCol:  int(start.Column),
		EndLine:   int(end.Row),
		EndCol:    int(end.Column),
	}
}

// Text slices the original source buffer to the node's byte range.
func (n Node) Text(src []byte) string {
	if n.raw == nil {
		return ""
	}
	start, end := n.raw.StartByte(), n.raw.EndByte()
	if int(end) > len(src) || start > end {
		return ""
	}
	return string(src[start:end])
}

// HasError reports whether this node or any descendant is a grammar error
// node, mirroring the teacher's tree validation pass.
func (n Node) HasError() bool {
	if n.raw == nil {
		return false
	}
	return n.raw.HasError()
}

// IsError reports whether this specific node is an ERROR node.
func (n Node) IsError() bool {
	if n.raw == nil {
		return false
	}
	return n.raw.IsError()
}

// Raw exposes the underlying tree-sitter node for the rare case a language
// adapter needs grammar-specific behavior no wrapper method covers.
func (n Node) Raw() *sitter.Node { return n.raw }

// ParsedTree owns a tree-sitter parse result for the lifetime of the
// compile context; the context never frees it mid-run since every hir node
// keeps a Node pointing back into it.
type ParsedTree struct {
	Root   Node
	Errors []model.Span
	tree   *sitter.Tree
}

// Walk performs a depth-first, parent-before-children traversal, invoking
// fn for every node starting at n. Returning false from fn skips that
// node's children but continues the walk at its siblings.
func Walk(n Node, fn func(Node) bool) {
	if !n.Valid() {
		return
	}
	if !fn(n) {
		return
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		Walk(n.Child(i), fn)
	}
}
