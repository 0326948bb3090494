package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kessdev/codegraph/internal/graph"
)

func sampleView() graph.View {
	return graph.View{
		Nodes: []graph.Node{
			{ID: "n1", Kind: "function", Name: "Run", File: "main.go", Score: 0.42, Depth: 1},
		},
		Edges: []graph.Edge{
			{From: "n1", To: "n1", Kind: "calls", Weight: 3},
		},
	}
}

func TestNewFormatterDefaultsToText(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf, Format("nonsense"))
	require.NoError(t, f.Format(sampleView()))
	assert.Contains(t, buf.String(), "Run")
}

func TestJSONFormatterProducesDecodableView(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf, FormatJSON)
	require.NoError(t, f.Format(sampleView()))

	var decoded graph.View
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sampleView(), decoded)
}

func TestTextFormatterListsEachNodeAndEdge(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf, FormatText)
	require.NoError(t, f.Format(sampleView()))

	out := buf.String()
	assert.Contains(t, out, "Run")
	assert.Contains(t, out, "main.go")
	assert.Contains(t, out, "n1 -calls-> n1")
}

func TestDOTFormatterEmitsValidDigraphShape(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf, FormatDOT)
	require.NoError(t, f.Format(sampleView()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "digraph architecture {"))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "}"))
	assert.Contains(t, out, `"n1"`)
}

func TestTextFormatterOmitsSeparatorWhenNoEdges(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf, FormatText)
	require.NoError(t, f.Format(graph.View{Nodes: sampleView().Nodes}))
	assert.NotContains(t, buf.String(), "---")
}
