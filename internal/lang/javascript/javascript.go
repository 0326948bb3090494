// Package javascript adapts the JavaScript tree-sitter grammar, generalizing
// the teacher's jsNodeToSymbol (function_declaration/class_declaration)
// dispatch into the shared HirKind vocabulary.
package javascript

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"

	"github.com/kessdev/codegraph/internal/lang"
	"github.com/kessdev/codegraph/internal/model"
)

type language struct {
	ts *sitter.Language
}

// New returns the JavaScript lang.Language implementation.
func New() lang.Language {
	return &language{ts: sitter.NewLanguage(tree_sitter_javascript.Language())}
}

func (l *language) Name() string         { return "javascript" }
func (l *language) Extensions() []string { return []string{".js", ".mjs", ".jsx"} }

func (l *language) Parse(src []byte) (*lang.ParsedTree, error) {
	return lang.ParseWithGrammar(l.ts, src)
}

func (l *language) HirKind(n lang.Node) model.HirKind {
	switch n.Kind() {
	case "program":
		return model.HirModule
	case "function_declaration", "function", "arrow_function", "generator_function_declaration":
		return model.HirFunction
	case "method_definition":
		return model.HirMethod
	case "class_declaration":
		return model.HirTypeDecl
	case "field_definition":
		return model.HirField
	case "formal_parameters", "required_parameter", "optional_parameter":
		return model.HirParameter
	case "variable_declarator":
		return model.HirVarDecl
	case "call_expression":
		return model.HirCallExpr
	case "statement_block":
		return model.HirBlockStmt
	case "member_expression":
		return model.HirPathExpr
	case "identifier", "property_identifier", "shorthand_property_identifier":
		return model.HirIdent
	default:
		return model.HirUnknown
	}
}

func (l *language) IdentifierCategory(n lang.Node) model.IdentifierCategory {
	parent := n.Parent()
	switch parent.Kind() {
	case "function_declaration", "class_declaration", "method_definition", "variable_declarator":
		if sameNode(parent.ChildByFieldName("name"), n) {
			return model.IdentDef
		}
	case "call_expression":
		if sameNode(parent.ChildByFieldName("function"), n) {
			return model.IdentUse
		}
	case "member_expression":
		if sameNode(parent.ChildByFieldName("property"), n) {
			if isMethodCallTarget(parent) {
				return model.IdentMethodCall
			}
			return model.IdentFieldAccess
		}
	}
	return model.IdentUse
}

// isMethodCallTarget reports whether member (a member_expression) is itself
// the callee of an enclosing call_expression, i.e. "x.foo()" rather than a
// bare property read "x.foo".
func isMethodCallTarget(member lang.Node) bool {
	call := member.Parent()
	return call.Valid() && call.Kind() == "call_expression" && sameNode(call.ChildByFieldName("function"), member)
}

func (l *language) IsScopeIntroducer(n lang.Node) bool {
	switch n.Kind() {
	case "program", "function_declaration", "function", "arrow_function",
		"method_definition", "class_declaration", "statement_block":
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
	return ""
}

// Visibility has no dedicated syntax in plain JavaScript modules; every
// top-level declaration is treated as publicly visible, matching the
// teacher's own decision not to model ES module export statements.
func (l *language) Visibility(n lang.Node, src []byte) model.Visibility {
	return model.VisPublic
}

func sameNode(a, b lang.Node) bool {
	return a.Valid() && b.Valid() && a.Raw() == b.Raw()
}

// Primitives lists JavaScript's built-in type names.
func (l *language) Primitives() []string {
	return []string{
		"Number", "String", "Boolean", "Object", "Array", "Function",
		"Symbol", "BigInt", "undefined", "null", "Promise", "Map", "Set",
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
