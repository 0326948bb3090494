// Package python adapts the Python tree-sitter grammar, generalizing the
// teacher's pythonNodeToSymbol (function_definition/class_definition)
// dispatch into the shared HirKind vocabulary.
package python

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/kessdev/codegraph/internal/lang"
	"github.com/kessdev/codegraph/internal/model"
)

type language struct {
	ts *sitter.Language
}

// New returns the Python lang.Language implementation.
func New() lang.Language {
	return &language{ts: sitter.NewLanguage(tree_sitter_python.Language())}
}

func (l *language) Name() string         { return "python" }
func (l *language) Extensions() []string { return []string{".py", ".pyi", ".pyx"} }

func (l *language) Parse(src []byte) (*lang.ParsedTree, error) {
	return lang.ParseWithGrammar(l.ts, src)
}

func (l *language) HirKind(n lang.Node) model.HirKind {
	if isReturnType(n) {
		return model.HirReturnType
	}
	switch n.Kind() {
	case "module":
		return model.HirModule
	case "function_definition":
		if inClassBody(n) {
			return model.HirMethod
		}
		return model.HirFunction
	case "class_definition":
		return model.HirTypeDecl
	case "parameters", "parameter", "default_parameter", "typed_parameter":
		return model.HirParameter
	case "assignment":
		if topLevelOrClassBody(n) {
			return model.HirVarDecl
		}
		return model.HirUnknown
	case "call":
		return model.HirCallExpr
	case "block":
		return model.HirBlockStmt
	case "attribute":
		return model.HirPathExpr
	case "identifier":
		return model.HirIdent
	default:
		return model.HirUnknown
	}
}

// isReturnType reports whether n is exactly the "return_type" annotation of
// the function_definition declaring it, following the same no-wrapping-node
// shape handled for Go and TypeScript.
func isReturnType(n lang.Node) bool {
	parent := n.Parent()
	if !parent.Valid() {
		return false
	}
	if parent.Kind() == "function_definition" {
		return sameNode(parent.ChildByFieldName("return_type"), n)
	}
	return false
}

func (l *language) IdentifierCategory(n lang.Node) model.IdentifierCategory {
	parent := n.Parent()
	switch parent.Kind() {
	case "function_definition", "class_definition":
		if sameNode(parent.ChildByFieldName("name"), n) {
			return model.IdentDef
		}
	case "call":
		if sameNode(parent.ChildByFieldName("function"), n) {
			return model.IdentUse
		}
	case "attribute":
		if sameNode(parent.ChildByFieldName("attribute"), n) {
			if isMethodCallTarget(parent) {
				return model.IdentMethodCall
			}
			return model.IdentFieldAccess
		}
	case "assignment":
		if sameNode(parent.ChildByFieldName("left"), n) {
			return model.IdentDef
		}
	}
	return model.IdentUse
}

// isMethodCallTarget reports whether attr (an attribute node) is itself the
// callee of an enclosing call, i.e. "x.foo()" rather than a bare attribute
// read "x.foo".
func isMethodCallTarget(attr lang.Node) bool {
	call := attr.Parent()
	return call.Valid() && call.Kind() == "call" && sameNode(call.ChildByFieldName("function"), attr)
}

func (l *language) IsScopeIntroducer(n lang.Node) bool {
	switch n.Kind() {
	case "module", "function_definition", "class_definition", "block":
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
	if n.Kind() == "assignment" {
		left := n.ChildByFieldName("left")
		if left.Valid() && left.Kind() == "identifier" {
			return left.Text(src)
		}
	}
	return ""
}

// Visibility follows Python's dunder/underscore convention: a single
// leading underscore (and not a dunder) marks a name module-private.
func (l *language) Visibility(n lang.Node, src []byte) model.Visibility {
	name := l.DeclName(n, src)
	if strings.HasPrefix(name, "_") && !strings.HasPrefix(name, "__") {
		return model.VisPrivate
	}
	if name == "" {
		return model.VisPrivate
	}
	return model.VisPublic
}

func inClassBody(n lang.Node) bool {
	p := n.Parent()
	return p.Valid() && p.Kind() == "block" && p.Parent().Valid() && p.Parent().Kind() == "class_definition"
}

func topLevelOrClassBody(n lang.Node) bool {
	stmt := n.Parent()
	if !stmt.Valid() {
		return false
	}
	container := stmt.Parent()
	return container.Valid() && (container.Kind() == "module" || container.Kind() == "block")
}

func sameNode(a, b lang.Node) bool {
	return a.Valid() && b.Valid() && a.Raw() == b.Raw()
}

// Primitives lists Python's built-in type names.
func (l *language) Primitives() []string {
	return []string{
		"int", "float", "complex", "bool", "str", "bytes", "bytearray",
		"list", "tuple", "dict", "set", "frozenset", "object", "type", "None",
	}
}

// CallArgCount counts the named children of a call's argument list.
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
