// Package golang adapts the Go tree-sitter grammar to the lang.Language
// interface, translating grammar node kinds the same way the teacher's
// goNodeToSymbol/extractGoFunction/extractGoType family did, generalized
// from "produce a Symbol" to "classify into the shared HirKind vocabulary".
package golang

import (
	"unicode"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"

	"github.com/kessdev/codegraph/internal/lang"
	"github.com/kessdev/codegraph/internal/model"
)

type language struct {
	ts *sitter.Language
}

// New returns the Go lang.Language implementation.
func New() lang.Language {
	return &language{ts: sitter.NewLanguage(tree_sitter_go.Language())}
}

func (l *language) Name() string         { return "go" }
func (l *language) Extensions() []string { return []string{".go"} }

func (l *language) Parse(src []byte) (*lang.ParsedTree, error) {
	return lang.ParseWithGrammar(l.ts, src)
}

func (l *language) HirKind(n lang.Node) model.HirKind {
	if isReturnResult(n) {
		return model.HirReturnType
	}
	switch n.Kind() {
	case "source_file":
		return model.HirModule
	case "function_declaration":
		if hasReceiver(n) {
			return model.HirMethod
		}
		return model.HirFunction
	case "method_declaration":
		return model.HirMethod
	case "type_spec":
		return model.HirTypeDecl
	case "field_declaration":
		return model.HirField
	case "parameter_declaration":
		return model.HirParameter
	case "var_spec":
		return model.HirVarDecl
	case "const_spec":
		return model.HirConstDecl
	case "call_expression":
		return model.HirCallExpr
	case "block":
		return model.HirBlockStmt
	case "qualified_type", "selector_expression":
		return model.HirPathExpr
	case "package_identifier":
		// The name in a package clause is the package's own name, not a
		// reference, so it is not lifted.
		if p := n.Parent(); p.Valid() && p.Kind() == "package_clause" {
			return model.HirUnknown
		}
		return model.HirIdent
	case "identifier", "field_identifier", "type_identifier":
		return model.HirIdent
	default:
		return model.HirUnknown
	}
}

// isReturnResult reports whether n is exactly the "result" field of the
// function/method declaring it — Go's grammar attaches a single named
// return type directly as that field's value (no wrapping node), so this
// has to be checked ahead of the normal per-kind switch: the same node that
// would otherwise lift as a plain HirIdent type reference instead becomes
// the function's Return block.
func isReturnResult(n lang.Node) bool {
	parent := n.Parent()
	if !parent.Valid() {
		return false
	}
	switch parent.Kind() {
	case "function_declaration", "method_declaration":
		return sameNode(parent.ChildByFieldName("result"), n)
	}
	return false
}

func (l *language) IdentifierCategory(n lang.Node) model.IdentifierCategory {
	parent := n.Parent()
	switch parent.Kind() {
	case "function_declaration", "method_declaration", "type_spec",
		"var_spec", "const_spec", "field_declaration", "parameter_declaration":
		if sameNode(parent.ChildByFieldName("name"), n) {
			return model.IdentDef
		}
	case "call_expression":
		if sameNode(parent.ChildByFieldName("function"), n) {
			return model.IdentUse
		}
	case "selector_expression":
		if sameNode(parent.ChildByFieldName("field"), n) {
			if isMethodCallTarget(parent) {
				return model.IdentMethodCall
			}
			return model.IdentFieldAccess
		}
	}
	switch n.Kind() {
	case "type_identifier":
		return model.IdentTypeUse
	default:
		return model.IdentUse
	}
}

// isMethodCallTarget reports whether selector (a selector_expression) is
// itself the callee of an enclosing call_expression, i.e. "x.Foo()" rather
// than a bare field read "x.Foo".
func isMethodCallTarget(selector lang.Node) bool {
	call := selector.Parent()
	return call.Valid() && call.Kind() == "call_expression" && sameNode(call.ChildByFieldName("function"), selector)
}

func (l *language) IsScopeIntroducer(n lang.Node) bool {
	switch n.Kind() {
	case "source_file", "function_declaration", "method_declaration",
		"type_spec", "block":
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

func (l *language) Visibility(n lang.Node, src []byte) model.Visibility {
	name := l.DeclName(n, src)
	if name == "" {
		return model.VisPrivate
	}
	r := []rune(name)[0]
	if unicode.IsUpper(r) {
		return model.VisPublic
	}
	return model.VisPrivate
}

func hasReceiver(n lang.Node) bool {
	recv := n.ChildByFieldName("receiver")
	return recv.Valid()
}

func sameNode(a, b lang.Node) bool {
	return a.Valid() && b.Valid() && a.Raw() == b.Raw()
}

// Primitives lists Go's predeclared type names.
func (l *language) Primitives() []string {
	return []string{
		"bool", "string", "error",
		"int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
		"byte", "rune", "float32", "float64", "complex64", "complex128",
		"any",
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
