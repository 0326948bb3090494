package build

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kessdev/codegraph/internal/lang"
	"github.com/kessdev/codegraph/internal/lang/golang"
)

func TestRunnerRunProducesViewOverTwoFiles(t *testing.T) {
	dir := t.TempDir()
	calleePath := filepath.Join(dir, "callee.go")
	callerPath := filepath.Join(dir, "caller.go")

	writeFile(t, calleePath, "package main\n\nfunc Shared() int {\n\treturn 1\n}\n")
	writeFile(t, callerPath, "package main\n\nfunc Caller() int {\n\treturn Shared()\n}\n")

	registry := lang.NewRegistry()
	registry.Register(golang.New())

	r := NewRunner(registry, DefaultConfig())
	result, err := r.Run(context.Background(), []string{calleePath, callerPath})
	require.NoError(t, err)

	assert.Empty(t, result.Link.Unresolved)
	assert.NotEmpty(t, result.View.Nodes)
	assert.Equal(t, int64(2), r.Progress().FilesParsed.Load())
}

func TestRunnerRunFailsFastOnUnsupportedFile(t *testing.T) {
	dir := t.TempDir()
	unknownPath := filepath.Join(dir, "notes.txt")
	writeFile(t, unknownPath, "not source code")

	registry := lang.NewRegistry()
	registry.Register(golang.New())

	r := NewRunner(registry, DefaultConfig())
	_, err := r.Run(context.Background(), []string{unknownPath})
	assert.Error(t, err)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
