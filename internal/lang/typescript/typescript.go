// Package typescript adapts the TypeScript tree-sitter grammar, generalizing
// the teacher's typescriptNodeToSymbol (function/class/interface/type-alias)
// dispatch into the shared HirKind vocabulary.
package typescript

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/kessdev/codegraph/internal/lang"
	"github.com/kessdev/codegraph/internal/model"
)

type language struct {
	ts *sitter.Language
}

// New returns the TypeScript lang.Language implementation.
func New() lang.Language {
	return &language{ts: sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())}
}

func (l *language) Name() string         { return "typescript" }
func (l *language) Extensions() []string { return []string{".ts", ".tsx", ".d.ts"} }

func (l *language) Parse(src []byte) (*lang.ParsedTree, error) {
	return lang.ParseWithGrammar(l.ts, src)
}

func (l *language) HirKind(n lang.Node) model.HirKind {
	if isReturnType(n) {
		return model.HirReturnType
	}
	switch n.Kind() {
	case "program":
		return model.HirModule
	case "function_declaration", "function", "arrow_function":
		return model.HirFunction
	case "method_definition", "method_signature":
		return model.HirMethod
	case "class_declaration":
		return model.HirTypeDecl
	case "interface_declaration":
		return model.HirInterfaceDecl
	case "type_alias_declaration":
		return model.HirTypeDecl
	case "public_field_definition", "property_signature":
		return model.HirField
	case "required_parameter", "optional_parameter":
		return model.HirParameter
	case "variable_declarator":
		return model.HirVarDecl
	case "call_expression":
		return model.HirCallExpr
	case "statement_block":
		return model.HirBlockStmt
	case "member_expression":
		return model.HirPathExpr
	case "identifier", "property_identifier", "type_identifier":
		return model.HirIdent
	default:
		return model.HirUnknown
	}
}

// isReturnType reports whether n is exactly the "return_type" field of the
// function/method declaring it — like Go's single named result, TypeScript
// attaches the annotation directly as that field's value with no wrapping
// node, so this is checked ahead of the normal per-kind switch.
func isReturnType(n lang.Node) bool {
	parent := n.Parent()
	if !parent.Valid() {
		return false
	}
	switch parent.Kind() {
	case "function_declaration", "function", "arrow_function", "method_definition", "method_signature":
		return sameNode(parent.ChildByFieldName("return_type"), n)
	}
	return false
}

func (l *language) IdentifierCategory(n lang.Node) model.IdentifierCategory {
	parent := n.Parent()
	switch parent.Kind() {
	case "function_declaration", "class_declaration", "interface_declaration",
		"type_alias_declaration", "method_definition", "variable_declarator":
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
	if n.Kind() == "type_identifier" {
		return model.IdentTypeUse
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
		"method_definition", "class_declaration", "interface_declaration", "statement_block":
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

// Visibility does not check the "export" modifier (the teacher's own
// extractor never did either); this adapter treats every declaration as
// public, matching the JavaScript adapter's stance for consistency across
// the two grammars.
func (l *language) Visibility(n lang.Node, src []byte) model.Visibility {
	return model.VisPublic
}

func sameNode(a, b lang.Node) bool {
	return a.Valid() && b.Valid() && a.Raw() == b.Raw()
}

// Primitives lists TypeScript's built-in type names.
func (l *language) Primitives() []string {
	return []string{
		"number", "string", "boolean", "object", "any", "unknown", "never",
		"void", "undefined", "null", "symbol", "bigint", "Array", "Promise",
		"Map", "Set", "Function",
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
