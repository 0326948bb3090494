// Package cpp adapts the C++ tree-sitter grammar. As with internal/lang/c,
// this fills a gap the teacher's nodeToSymbol table left open (C++ parses
// but was never classified into symbols).
package cpp

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"

	"github.com/kessdev/codegraph/internal/lang"
	"github.com/kessdev/codegraph/internal/model"
)

type language struct {
	ts *sitter.Language
}

// New returns the C++ lang.Language implementation.
func New() lang.Language {
	return &language{ts: sitter.NewLanguage(tree_sitter_cpp.Language())}
}

func (l *language) Name() string         { return "cpp" }
func (l *language) Extensions() []string { return []string{".cpp", ".cc", ".cxx", ".hpp", ".hxx", ".h++"} }

func (l *language) Parse(src []byte) (*lang.ParsedTree, error) {
	return lang.ParseWithGrammar(l.ts, src)
}

func (l *language) HirKind(n lang.Node) model.HirKind {
	switch n.Kind() {
	case "translation_unit", "namespace_definition":
		return model.HirModule
	case "function_definition":
		if inClassBody(n) {
			return model.HirMethod
		}
		return model.HirFunction
	case "class_specifier":
		return model.HirTypeDecl
	case "struct_specifier":
		return model.HirTypeDecl
	case "enum_specifier":
		return model.HirEnum
	case "field_declaration":
		return model.HirField
	case "parameter_declaration":
		return model.HirParameter
	case "declaration":
		return model.HirVarDecl
	case "call_expression":
		return model.HirCallExpr
	case "compound_statement":
		return model.HirBlockStmt
	case "field_expression", "qualified_identifier":
		return model.HirPathExpr
	case "identifier", "field_identifier", "type_identifier":
		return model.HirIdent
	default:
		return model.HirUnknown
	}
}

func (l *language) IdentifierCategory(n lang.Node) model.IdentifierCategory {
	parent := n.Parent()
	switch parent.Kind() {
	case "function_declarator":
		if sameNode(parent.ChildByFieldName("declarator"), n) {
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
	case "translation_unit", "namespace_definition", "function_definition",
		"class_specifier", "struct_specifier", "compound_statement":
		return true
	default:
		return false
	}
}

func (l *language) DeclName(n lang.Node, src []byte) string {
	if name := n.ChildByFieldName("name"); name.Valid() {
		return name.Text(src)
	}
	cur := n.ChildByFieldName("declarator")
	for cur.Valid() {
		if cur.Kind() == "identifier" || cur.Kind() == "field_identifier" {
			return cur.Text(src)
		}
		next := cur.ChildByFieldName("declarator")
		if !next.Valid() {
			break
		}
		cur = next
	}
	return ""
}

// Visibility looks at the nearest preceding access_specifier sibling
// within a class body; file-scope declarations default to public unless
// marked static, mirroring internal/lang/c.
func (l *language) Visibility(n lang.Node, src []byte) model.Visibility {
	if inClassBody(n) {
		parent := n.Parent()
		seenPrivate := false
		for i := uint(0); i < parent.ChildCount(); i++ {
			child := parent.Child(i)
			if child.Kind() == "access_specifier" {
				seenPrivate = child.Text(src) != "public"
			}
			if sameNode(child, n) {
				break
			}
		}
		if seenPrivate {
			return model.VisPrivate
		}
		return model.VisPublic
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		if n.Child(i).Text(src) == "static" {
			return model.VisPrivate
		}
	}
	return model.VisPublic
}

func inClassBody(n lang.Node) bool {
	p := n.Parent()
	if !p.Valid() {
		return false
	}
	if p.Kind() == "field_declaration_list" {
		p = p.Parent()
	}
	return p.Valid() && (p.Kind() == "class_specifier" || p.Kind() == "struct_specifier")
}

func sameNode(a, b lang.Node) bool {
	return a.Valid() && b.Valid() && a.Raw() == b.Raw()
}

// Primitives lists C++'s built-in scalar type names plus the handful of
// standard library container names common enough to appear unqualified.
func (l *language) Primitives() []string {
	return []string{
		"void", "bool", "char", "short", "int", "long", "float", "double",
		"auto", "size_t", "string", "vector", "map", "set", "pair",
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
