package lang

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/kessdev/codegraph/internal/model"
)

// Language is implemented once per supported grammar. It owns the mapping
// from that grammar's node kinds to the language-independent HirKind and
// IdentifierCategory vocabulary consumed by lifting, collection and
// binding.
type Language interface {
	// Name is the registry key, e.g. "go", "rust".
	Name() string
	// Extensions lists the file extensions routed to this language.
	Extensions() []string
	// Parse compiles source bytes into a ParsedTree.
	Parse(src []byte) (*ParsedTree, error)
	// HirKind classifies a syntax node for the lifter. HirUnknown means the
	// node carries no independent meaning and the lifter should recurse
	// through it without allocating a HirNode of its own.
	HirKind(n Node) model.HirKind
	// IdentifierCategory classifies an HirIdent node (only ever called when
	// HirKind(n) == HirIdent) with the role that identifier plays.
	IdentifierCategory(n Node) model.IdentifierCategory
	// IsScopeIntroducer reports whether the collector should push a new
	// lexical scope when descending into this node.
	IsScopeIntroducer(n Node) bool
	// DeclName extracts the source text of the identifier that names a
	// declaration node (function, type, field, ...), or "" if none applies.
	DeclName(n Node, src []byte) string
	// Visibility reports whether a declaration is exported per the
	// language's own convention (capitalization for Go, "pub" for Rust,
	// access modifiers for Java/C++, absence of a leading underscore
	// convention elsewhere).
	Visibility(n Node, src []byte) model.Visibility
	// Primitives lists the language's built-in type names, seeded into
	// every file's root scope so a type-use on e.g. "int" or "str"
	// resolves to something instead of surviving to project link as an
	// unresolved placeholder.
	Primitives() []string
	// CallArgCount counts the argument list of a call-expression node, used
	// by binding's arity-only overload tie-break. n is the raw node
	// originally classified as HirCallExpr.
	CallArgCount(n Node) int
	// Visit walks n and every descendant in pre-order, calling fn on each.
	// fn returning false prunes that subtree without visiting its children.
	// Every adapter shares the same grammar-agnostic tree-sitter traversal
	// (see Walk), so this is the one Language method with an identical body
	// across languages; it stays part of the interface rather than a free
	// function so callers that only hold a Language (not a package import)
	// can still traverse.
	Visit(n Node, fn func(Node) bool)
}

// ParseWithGrammar is the shared Parse() body every language adapter calls:
// it drives a fresh *sitter.Parser over src and wraps the result.
func ParseWithGrammar(tsLang *sitter.Language, src []byte) (*ParsedTree, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(tsLang); err != nil {
		return nil, fmt.Errorf("set language: %w", err)
	}
	tree := parser.Parse(src, nil)
	if tree == nil {
		return nil, fmt.Errorf("parse returned nil tree")
	}
	root := WrapNode(tree.RootNode())
	pt := &ParsedTree{Root: root, tree: tree}
	if root.HasError() {
		Walk(root, func(n Node) bool {
			if n.IsError() {
				pt.Errors = append(pt.Errors, n.Span())
			}
			return true
		})
	}
	return pt, nil
}
