// Package java adapts the Java tree-sitter grammar, filling the same gap
// the teacher's nodeToSymbol table left for C/C++/Java.
package java

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"

	"github.com/kessdev/codegraph/internal/lang"
	"github.com/kessdev/codegraph/internal/model"
)

type language struct {
	ts *sitter.Language
}

// New returns the Java lang.Language implementation.
func New() lang.Language {
	return &language{ts: sitter.NewLanguage(tree_sitter_java.Language())}
}

func (l *language) Name() string         { return "java" }
func (l *language) Extensions() []string { return []string{".java"} }

func (l *language) Parse(src []byte) (*lang.ParsedTree, error) {
	return lang.ParseWithGrammar(l.ts, src)
}

func (l *language) HirKind(n lang.Node) model.HirKind {
	switch n.Kind() {
	case "program":
		return model.HirModule
	case "method_declaration", "constructor_declaration":
		return model.HirMethod
	case "class_declaration":
		return model.HirTypeDecl
	case "interface_declaration":
		return model.HirInterfaceDecl
	case "enum_declaration":
		return model.HirEnum
	case "field_declaration":
		return model.HirField
	case "formal_parameter":
		return model.HirParameter
	case "local_variable_declaration":
		return model.HirVarDecl
	case "method_invocation":
		return model.HirCallExpr
	case "block":
		return model.HirBlockStmt
	case "field_access", "scoped_type_identifier":
		return model.HirPathExpr
	case "identifier", "type_identifier":
		return model.HirIdent
	default:
		return model.HirUnknown
	}
}

func (l *language) IdentifierCategory(n lang.Node) model.IdentifierCategory {
	parent := n.Parent()
	switch parent.Kind() {
	case "method_declaration", "class_declaration", "interface_declaration",
		"enum_declaration", "variable_declarator":
		if sameNode(parent.ChildByFieldName("name"), n) {
			return model.IdentDef
		}
	case "method_invocation":
		if sameNode(parent.ChildByFieldName("name"), n) {
			if parent.ChildByFieldName("object").Valid() {
				return model.IdentMethodCall
			}
			return model.IdentUse
		}
	case "field_access":
		if sameNode(parent.ChildByFieldName("field"), n) {
			return model.IdentFieldAccess
		}
	}
	if n.Kind() == "type_identifier" {
		return model.IdentTypeUse
	}
	return model.IdentUse
}

func (l *language) IsScopeIntroducer(n lang.Node) bool {
	switch n.Kind() {
	case "program", "method_declaration", "constructor_declaration",
		"class_declaration", "interface_declaration", "enum_declaration", "block":
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

// Visibility reads the modifiers child list for "public"; package-private
// (no modifier) and "private"/"protected" are both treated as not globally
// visible, matching the binder's global-index gate which only cares about
// the public/not-public distinction.
func (l *language) Visibility(n lang.Node, src []byte) model.Visibility {
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child.Kind() != "modifiers" {
			continue
		}
		for j := uint(0); j < child.ChildCount(); j++ {
			if child.Child(j).Text(src) == "public" {
				return model.VisPublic
			}
		}
	}
	return model.VisPrivate
}

func sameNode(a, b lang.Node) bool {
	return a.Valid() && b.Valid() && a.Raw() == b.Raw()
}

// Primitives lists Java's primitive type names plus the boxed/common
// java.lang and java.util names that appear unqualified constantly enough
// to be worth seeding.
func (l *language) Primitives() []string {
	return []string{
		"boolean", "byte", "short", "int", "long", "float", "double", "char", "void",
		"String", "Object", "Integer", "Long", "Double", "Boolean",
		"List", "Map", "Set", "ArrayList", "HashMap", "HashSet",
	}
}

// CallArgCount counts the named children of a method_invocation's argument
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
