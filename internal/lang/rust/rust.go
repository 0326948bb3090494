// Package rust adapts the Rust tree-sitter grammar. The teacher only ever
// classified function_item/struct_item (rustNodeToSymbol); this adapter
// extends the same node-walking approach to enum_item/trait_item/impl_item
// since the architecture graph needs trait and impl blocks to model method
// dispatch and Implements/ImplementedBy relations.
package rust

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"

	"github.com/kessdev/codegraph/internal/lang"
	"github.com/kessdev/codegraph/internal/model"
)

type language struct {
	ts *sitter.Language
}

// New returns the Rust lang.Language implementation.
func New() lang.Language {
	return &language{ts: sitter.NewLanguage(tree_sitter_rust.Language())}
}

func (l *language) Name() string         { return "rust" }
func (l *language) Extensions() []string { return []string{".rs"} }

func (l *language) Parse(src []byte) (*lang.ParsedTree, error) {
	return lang.ParseWithGrammar(l.ts, src)
}

func (l *language) HirKind(n lang.Node) model.HirKind {
	if isReturnType(n) {
		return model.HirReturnType
	}
	switch n.Kind() {
	case "source_file", "mod_item":
		return model.HirModule
	case "function_item":
		if inImplOrTrait(n) {
			return model.HirMethod
		}
		return model.HirFunction
	case "struct_item":
		return model.HirTypeDecl
	case "enum_item":
		return model.HirEnum
	case "trait_item":
		return model.HirInterfaceDecl
	case "impl_item":
		return model.HirImplDecl
	case "field_declaration":
		return model.HirField
	case "parameter", "self_parameter":
		return model.HirParameter
	case "let_declaration":
		return model.HirVarDecl
	case "const_item", "static_item":
		return model.HirConstDecl
	case "call_expression":
		return model.HirCallExpr
	case "block":
		return model.HirBlockStmt
	case "scoped_identifier", "field_expression", "generic_type":
		return model.HirPathExpr
	case "identifier", "field_identifier", "type_identifier":
		return model.HirIdent
	default:
		return model.HirUnknown
	}
}

// isReturnType reports whether n is exactly the "return_type" field of the
// function_item declaring it — Rust, like Go, attaches a fn's "-> T"
// return annotation directly as that field's value with no wrapping node.
func isReturnType(n lang.Node) bool {
	parent := n.Parent()
	if !parent.Valid() || parent.Kind() != "function_item" {
		return false
	}
	return sameNode(parent.ChildByFieldName("return_type"), n)
}

func (l *language) IdentifierCategory(n lang.Node) model.IdentifierCategory {
	parent := n.Parent()
	switch parent.Kind() {
	case "function_item", "struct_item", "enum_item", "trait_item",
		"field_declaration", "const_item", "static_item", "mod_item":
		if sameNode(parent.ChildByFieldName("name"), n) {
			return model.IdentDef
		}
	case "call_expression":
		if sameNode(parent.ChildByFieldName("function"), n) {
			return model.IdentUse
		}
	case "field_expression":
		if sameNode(parent.ChildByFieldName("field"), n) {
			if isMethodCallTarget(parent) {
				return model.IdentMethodCall
			}
			return model.IdentFieldAccess
		}
	}
	if n.Kind() == "type_identifier" {
		return model.IdentTypeUse
	}
	return model.IdentUse
}

// isMethodCallTarget reports whether fieldExpr (a field_expression) is
// itself the callee of an enclosing call_expression, i.e. "x.foo()"
// rather than a bare field read "x.foo".
func isMethodCallTarget(fieldExpr lang.Node) bool {
	call := fieldExpr.Parent()
	return call.Valid() && call.Kind() == "call_expression" && sameNode(call.ChildByFieldName("function"), fieldExpr)
}

func (l *language) IsScopeIntroducer(n lang.Node) bool {
	switch n.Kind() {
	case "source_file", "mod_item", "function_item", "struct_item",
		"enum_item", "trait_item", "impl_item", "block":
		return true
	default:
		return false
	}
}

func (l *language) DeclName(n lang.Node, src []byte) string {
	name := n.ChildByFieldName("name")
	if name.Valid() {
		return name.Text(src)
	}
	if n.Kind() == "impl_item" {
		ty := n.ChildByFieldName("type")
		if ty.Valid() {
			return ty.Text(src)
		}
	}
	return ""
}

// Visibility looks for a leading "pub" visibility_modifier child, the only
// way Rust marks an item crate-externally visible.
func (l *language) Visibility(n lang.Node, src []byte) model.Visibility {
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child.Kind() == "visibility_modifier" {
			return model.VisPublic
		}
	}
	return model.VisPrivate
}

func inImplOrTrait(n lang.Node) bool {
	p := n.Parent()
	if !p.Valid() {
		return false
	}
	if p.Kind() == "declaration_list" {
		p = p.Parent()
	}
	return p.Valid() && (p.Kind() == "impl_item" || p.Kind() == "trait_item")
}

func sameNode(a, b lang.Node) bool {
	return a.Valid() && b.Valid() && a.Raw() == b.Raw()
}

// Primitives lists Rust's built-in scalar and common standard library
// container type names.
func (l *language) Primitives() []string {
	return []string{
		"bool", "char", "str",
		"i8", "i16", "i32", "i64", "i128", "isize",
		"u8", "u16", "u32", "u64", "u128", "usize",
		"f32", "f64",
		"String", "Vec", "Box", "Option", "Result", "HashMap", "HashSet",
	}
}

// CallArgCount counts the named children of a call_expression's argument
// list.
func (l *language) CallArgCount(n lang.Node) int {
	args := n.ChildByFieldName("arguments")
	if !args.Valid() {
		return 0
	}
	return int(args.NamedChildCount())
}

// Visit delegates to the shared grammar-agnostic tree walk.
func (l *language) Visit(n lang.Node, fn func(lang.Node) bool) {
	lang.Walk(n, fn)
}
