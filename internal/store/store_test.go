package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kessdev/codegraph/internal/graph"
)

func openMemStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveAndLoadSnapshotRoundTrips(t *testing.T) {
	s := openMemStore(t)
	v := graph.View{
		Nodes: []graph.Node{{ID: "n1", Kind: "function", Name: "Run", File: "main.go", Score: 0.5, Depth: 1}},
		Edges: []graph.Edge{{From: "n1", To: "n1", Kind: "calls", Weight: 3}},
	}

	require.NoError(t, s.SaveSnapshot("/repo", v))

	loaded, err := s.LoadSnapshot("/repo")
	require.NoError(t, err)
	assert.Equal(t, v, loaded)
}

func TestSaveSnapshotOverwritesPreviousForSameRoot(t *testing.T) {
	s := openMemStore(t)
	require.NoError(t, s.SaveSnapshot("/repo", graph.View{Nodes: []graph.Node{{ID: "old"}}}))
	require.NoError(t, s.SaveSnapshot("/repo", graph.View{Nodes: []graph.Node{{ID: "new"}}}))

	loaded, err := s.LoadSnapshot("/repo")
	require.NoError(t, err)
	require.Len(t, loaded.Nodes, 1)
	assert.Equal(t, "new", loaded.Nodes[0].ID)
}

func TestLoadSnapshotMissingRootReturnsError(t *testing.T) {
	s := openMemStore(t)
	_, err := s.LoadSnapshot("/nonexistent")
	assert.Error(t, err)
}

func TestAppendRunAndRunHistoryOrdersChronologically(t *testing.T) {
	s := openMemStore(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.AppendRun(RunRecord{Root: "/repo", StartedAt: base, NodeCount: 1}))
	require.NoError(t, s.AppendRun(RunRecord{Root: "/repo", StartedAt: base.Add(time.Hour), NodeCount: 2}))

	history, err := s.RunHistory("/repo")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 1, history[0].NodeCount)
	assert.Equal(t, 2, history[1].NodeCount)
}

func TestRunHistoryScopesToItsOwnRoot(t *testing.T) {
	s := openMemStore(t)
	now := time.Now()
	require.NoError(t, s.AppendRun(RunRecord{Root: "/repoA", StartedAt: now}))
	require.NoError(t, s.AppendRun(RunRecord{Root: "/repoB", StartedAt: now}))

	history, err := s.RunHistory("/repoA")
	require.NoError(t, err)
	assert.Len(t, history, 1)
}
