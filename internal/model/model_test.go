package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlockRelationInverse(t *testing.T) {
	cases := []struct {
		rel  BlockRelation
		want BlockRelation
	}{
		{RelContains, RelContainedBy},
		{RelContainedBy, RelContains},
		{RelCalls, RelCalledBy},
		{RelCalledBy, RelCalls},
		{RelHasField, RelFieldOf},
		{RelFieldOf, RelHasField},
		{RelHasMethod, RelMethodOf},
		{RelMethodOf, RelHasMethod},
		{RelImplFor, RelHasImpl},
		{RelHasImpl, RelImplFor},
		{RelImplements, RelImplementedBy},
		{RelImplementedBy, RelImplements},
		{RelUses, RelUsedBy},
		{RelUsedBy, RelUses},
	}
	for _, c := range cases {
		got, ok := c.rel.Inverse()
		assert.True(t, ok, "%s should have an inverse", c.rel)
		assert.Equal(t, c.want, got)
	}
}

func TestBlockRelationInverseHasNoneForStructuralGroupings(t *testing.T) {
	for _, rel := range []BlockRelation{RelHasParameters, RelHasReturn} {
		_, ok := rel.Inverse()
		assert.False(t, ok, "%s should not carry a symmetric inverse", rel)
	}
}

func TestBlockRelationWeightOrdering(t *testing.T) {
	assert.Greater(t, RelCalls.Weight(), RelUses.Weight())
	assert.Greater(t, RelUses.Weight(), RelHasMethod.Weight())
	assert.Greater(t, RelHasMethod.Weight(), RelContains.Weight())
	assert.Equal(t, 0.0, RelHasParameters.Weight())
}

func TestHirKindString(t *testing.T) {
	assert.Equal(t, "function", HirFunction.String())
	assert.Equal(t, "unknown", HirUnknown.String())
}

func TestSymbolKindString(t *testing.T) {
	assert.Equal(t, "method", SymMethod.String())
	assert.Equal(t, "undefined", SymUndefined.String())
}
