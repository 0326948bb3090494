// Package c adapts the C tree-sitter grammar. The teacher registered this
// grammar for parsing but never wrote a node-to-symbol table for it
// (nodeToSymbol's switch only covers go/python/javascript/typescript/rust);
// this adapter fills that gap using the grammar's standard node names.
package c

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_c "github.com/tree-sitter/tree-sitter-c/bindings/go"

	"github.com/kessdev/codegraph/internal/lang"
	"github.com/kessdev/codegraph/internal/model"
)

type language struct {
	ts *sitter.Language
}

// New returns the C lang.Language implementation.
func New() lang.Language {
	return &language{ts: sitter.NewLanguage(tree_sitter_c.Language())}
}

func (l *language) Name() string         { return "c" }
func (l *language) Extensions() []string { return []string{".c", ".h"} }

func (l *language) Parse(src []byte) (*lang.ParsedTree, error) {
	return lang.ParseWithGrammar(l.ts, src)
}

func (l *language) HirKind(n lang.Node) model.HirKind {
	switch n.Kind() {
	case "translation_unit":
		return model.HirModule
	case "function_definition":
		return model.HirFunction
	case "struct_specifier", "union_specifier":
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
	case "field_expression":
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
	case "translation_unit", "function_definition", "struct_specifier",
		"union_specifier", "compound_statement":
		return true
	default:
		return false
	}
}

// DeclName walks down through the declarator chain to the innermost
// identifier, since C wraps names in pointer/function/array declarators.
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

// Visibility has no language-level concept in C beyond the static keyword;
// everything not marked static is treated as externally visible, matching
// the linker's own notion of translation-unit-local symbols.
func (l *language) Visibility(n lang.Node, src []byte) model.Visibility {
	for i := uint(0); i < n.ChildCount(); i++ {
		if n.Child(i).Text(src) == "static" {
			return model.VisPrivate
		}
	}
	return model.VisPublic
}

func sameNode(a, b lang.Node) bool {
	return a.Valid() && b.Valid() && a.Raw() == b.Raw()
}

// Primitives lists C's built-in scalar type names.
func (l *language) Primitives() []string {
	return []string{
		"void", "char", "short", "int", "long", "float", "double",
		"signed", "unsigned", "size_t", "ssize_t", "int8_t", "int16_t",
		"int32_t", "int64_t", "uint8_t", "uint16_t", "uint32_t", "uint64_t",
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
