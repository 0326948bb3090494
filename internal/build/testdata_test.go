package build

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kessdev/codegraph/internal/lang"
	"github.com/kessdev/codegraph/internal/lang/golang"
)

// TestRunnerRunOverRealisticFixturePackage exercises the full pipeline over
// a multi-file Go package with cross-file calls, struct methods and shared
// types, rather than the single-function snippets the rest of this
// package's tests use.
func TestRunnerRunOverRealisticFixturePackage(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "testdata", "go", "*.go"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	registry := lang.NewRegistry()
	registry.Register(golang.New())

	r := NewRunner(registry, DefaultConfig())
	result, err := r.Run(context.Background(), paths)
	require.NoError(t, err)

	assert.NotEmpty(t, result.View.Nodes)
	assert.Equal(t, int64(len(paths)), r.Progress().FilesParsed.Load())
}
