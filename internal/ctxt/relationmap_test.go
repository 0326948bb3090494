package ctxt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kessdev/codegraph/internal/model"
)

func TestRelationMapInsertIsIdempotent(t *testing.T) {
	rm := NewRelationMap()
	a := BlockRef{Unit: 1, Block: 1}
	b := BlockRef{Unit: 1, Block: 2}

	rm.Insert(a, model.RelContains, b)
	rm.Insert(a, model.RelContains, b)

	assert.Equal(t, []BlockRef{b}, rm.Related(a, model.RelContains))
}

func TestRelationMapInsertPairSetsBothDirections(t *testing.T) {
	rm := NewRelationMap()
	a := BlockRef{Unit: 1, Block: 1}
	b := BlockRef{Unit: 1, Block: 2}

	rm.InsertPair(a, model.RelCalls, b)

	assert.Equal(t, []BlockRef{b}, rm.Related(a, model.RelCalls))
	assert.Equal(t, []BlockRef{a}, rm.Related(b, model.RelCalledBy))
}

func TestRelationMapInsertPairSkipsMissingInverse(t *testing.T) {
	rm := NewRelationMap()
	a := BlockRef{Unit: 1, Block: 1}
	b := BlockRef{Unit: 1, Block: 2}

	rm.InsertPair(a, model.RelHasParameters, b)

	assert.Equal(t, []BlockRef{b}, rm.Related(a, model.RelHasParameters))
	assert.Empty(t, rm.All(b))
}

func TestRelationMapWalkVisitsEveryEdge(t *testing.T) {
	rm := NewRelationMap()
	a := BlockRef{Unit: 1, Block: 1}
	b := BlockRef{Unit: 1, Block: 2}
	c := BlockRef{Unit: 1, Block: 3}

	rm.Insert(a, model.RelUses, b)
	rm.Insert(a, model.RelUses, c)

	seen := map[BlockRef]bool{}
	rm.Walk(func(from BlockRef, rel model.BlockRelation, to BlockRef) {
		assert.Equal(t, a, from)
		assert.Equal(t, model.RelUses, rel)
		seen[to] = true
	})
	assert.True(t, seen[b])
	assert.True(t, seen[c])
}
