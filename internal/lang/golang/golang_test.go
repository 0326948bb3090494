package golang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kessdev/codegraph/internal/lang"
	"github.com/kessdev/codegraph/internal/model"
)

func mustParse(t *testing.T, src string) lang.Node {
	t.Helper()
	l := New()
	tree, err := l.Parse([]byte(src))
	require.NoError(t, err)
	return tree.Root
}

// findFirst returns the first node of grammar kind in a pre-order walk.
func findFirst(root lang.Node, kind string) lang.Node {
	var found lang.Node
	lang.Walk(root, func(n lang.Node) bool {
		if found.Valid() {
			return false
		}
		if n.Kind() == kind {
			found = n
			return false
		}
		return true
	})
	return found
}

func TestNameAndExtensions(t *testing.T) {
	l := New()
	assert.Equal(t, "go", l.Name())
	assert.Equal(t, []string{".go"}, l.Extensions())
}

func TestHirKindClassifiesPlainFunctionAsFunction(t *testing.T) {
	l := New()
	root := mustParse(t, "package main\n\nfunc Greet() {}\n")
	fn := findFirst(root, "function_declaration")
	require.True(t, fn.Valid())
	assert.Equal(t, model.HirFunction, l.HirKind(fn))
}

func TestHirKindClassifiesMethodWithReceiverAsMethod(t *testing.T) {
	l := New()
	root := mustParse(t, "package main\n\ntype T struct{}\n\nfunc (t T) Greet() {}\n")
	fn := findFirst(root, "function_declaration")
	require.True(t, fn.Valid())
	assert.Equal(t, model.HirMethod, l.HirKind(fn))
}

func TestHirKindClassifiesCallExpression(t *testing.T) {
	l := New()
	root := mustParse(t, "package main\n\nfunc f() { g() }\nfunc g() {}\n")
	call := findFirst(root, "call_expression")
	require.True(t, call.Valid())
	assert.Equal(t, model.HirCallExpr, l.HirKind(call))
}

func TestDeclNameExtractsFunctionName(t *testing.T) {
	l := New()
	root := mustParse(t, "package main\n\nfunc Greet() {}\n")
	fn := findFirst(root, "function_declaration")
	require.True(t, fn.Valid())
	assert.Equal(t, "Greet", l.DeclName(fn, []byte("package main\n\nfunc Greet() {}\n")))
}

func TestVisibilityIsPublicForUppercaseDeclName(t *testing.T) {
	l := New()
	src := []byte("package main\n\nfunc Greet() {}\n")
	root := mustParse(t, string(src))
	fn := findFirst(root, "function_declaration")
	require.True(t, fn.Valid())
	assert.Equal(t, model.VisPublic, l.Visibility(fn, src))
}

func TestVisibilityIsPrivateForLowercaseDeclName(t *testing.T) {
	l := New()
	src := []byte("package main\n\nfunc greet() {}\n")
	root := mustParse(t, string(src))
	fn := findFirst(root, "function_declaration")
	require.True(t, fn.Valid())
	assert.Equal(t, model.VisPrivate, l.Visibility(fn, src))
}

func TestIsScopeIntroducerCoversFunctionAndBlockButNotCallExpression(t *testing.T) {
	l := New()
	root := mustParse(t, "package main\n\nfunc f() { g() }\nfunc g() {}\n")
	fn := findFirst(root, "function_declaration")
	block := findFirst(root, "block")
	call := findFirst(root, "call_expression")

	assert.True(t, l.IsScopeIntroducer(root))
	assert.True(t, l.IsScopeIntroducer(fn))
	assert.True(t, l.IsScopeIntroducer(block))
	assert.False(t, l.IsScopeIntroducer(call))
}

func TestCallArgCountCountsNamedArguments(t *testing.T) {
	l := New()
	root := mustParse(t, "package main\n\nfunc f() { g(1, 2, 3) }\nfunc g(a, b, c int) {}\n")
	call := findFirst(root, "call_expression")
	require.True(t, call.Valid())
	assert.Equal(t, 3, l.CallArgCount(call))
}

func TestPrimitivesIncludesPredeclaredTypes(t *testing.T) {
	l := New()
	prims := l.Primitives()
	assert.Contains(t, prims, "int")
	assert.Contains(t, prims, "string")
	assert.Contains(t, prims, "error")
}
