package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kessdev/codegraph/internal/ctxt"
	"github.com/kessdev/codegraph/internal/model"
)

func TestPageRankEmptyGraphReturnsEmptyScores(t *testing.T) {
	cc := ctxt.New()
	scores := PageRank(cc)
	assert.Empty(t, scores)
}

func TestPageRankScoresSumCloseToOne(t *testing.T) {
	cc := ctxt.New()
	a := ctxt.BlockRef{Unit: 1, Block: 1}
	b := ctxt.BlockRef{Unit: 1, Block: 2}
	c := ctxt.BlockRef{Unit: 1, Block: 3}

	cc.Related().InsertPair(a, model.RelCalls, b)
	cc.Related().InsertPair(b, model.RelCalls, c)
	cc.Related().InsertPair(c, model.RelCalls, a)

	scores := PageRank(cc)
	require.Len(t, scores, 3)

	var total float64
	for _, s := range scores {
		total += s
	}
	assert.InDelta(t, 1.0, total, 0.01)
}

func TestPageRankFavorsMoreCentralNode(t *testing.T) {
	cc := ctxt.New()
	hub := ctxt.BlockRef{Unit: 1, Block: 1}
	a := ctxt.BlockRef{Unit: 1, Block: 2}
	b := ctxt.BlockRef{Unit: 1, Block: 3}
	leaf := ctxt.BlockRef{Unit: 1, Block: 4}

	cc.Related().InsertPair(a, model.RelCalls, hub)
	cc.Related().InsertPair(b, model.RelCalls, hub)
	cc.Related().InsertPair(hub, model.RelCalls, leaf)

	scores := PageRank(cc)
	assert.Greater(t, scores[hub], scores[leaf])
	assert.Greater(t, scores[hub], scores[a])
}

func TestPageRankZeroWeightRelationStillRegistersNodesWithoutMovingScore(t *testing.T) {
	cc := ctxt.New()
	a := ctxt.BlockRef{Unit: 1, Block: 1}
	b := ctxt.BlockRef{Unit: 1, Block: 2}

	cc.Related().InsertPair(a, model.RelHasParameters, b)

	scores := PageRank(cc)
	require.Len(t, scores, 2)
	assert.InDelta(t, scores[a], scores[b], 1e-9)
}
