package ctxt

import (
	"sync"

	"github.com/kessdev/codegraph/internal/model"
)

const relationShards = 64

// RelationMap is a lock-striped, concurrent map from a block to the set of
// (relation, target) edges leaving it. The block graph is built in
// parallel, one unit at a time, so every insert needs to be safe under
// concurrent writers touching unrelated blocks without serializing on a
// single global lock; striping by BlockRef hash keeps contention local.
type RelationMap struct {
	shards [relationShards]relationShard
}

type relationShard struct {
	mu   sync.Mutex
	data map[BlockRef]map[model.BlockRelation][]BlockRef
}

// NewRelationMap builds an empty RelationMap.
func NewRelationMap() *RelationMap {
	rm := &RelationMap{}
	for i := range rm.shards {
		rm.shards[i].data = make(map[BlockRef]map[model.BlockRelation][]BlockRef)
	}
	return rm
}

func shardIndex(r BlockRef) uint32 {
	h := uint32(r.Unit)*2654435761 + uint32(r.Block)*40503
	return h % relationShards
}

// Insert adds the edge from -[rel]-> to exactly once: calling Insert again
// with the same three values is a no-op, matching the spec's idempotent
// insert requirement (re-running Connect on the same unit must not
// duplicate edges).
func (rm *RelationMap) Insert(from BlockRef, rel model.BlockRelation, to BlockRef) {
	shard := &rm.shards[shardIndex(from)]
	shard.mu.Lock()
	defer shard.mu.Unlock()
	byRel, ok := shard.data[from]
	if !ok {
		byRel = make(map[model.BlockRelation][]BlockRef)
		shard.data[from] = byRel
	}
	for _, existing := range byRel[rel] {
		if existing == to {
			return
		}
	}
	byRel[rel] = append(byRel[rel], to)
}

// InsertPair inserts from-[rel]->to and, when rel has a symmetric
// counterpart, to-[inverse]->from as well. This is the usual entry point
// for the block-graph Connector, which always wants both directions kept
// in sync.
func (rm *RelationMap) InsertPair(from BlockRef, rel model.BlockRelation, to BlockRef) {
	rm.Insert(from, rel, to)
	if inv, ok := rel.Inverse(); ok {
		rm.Insert(to, inv, from)
	}
}

// Related returns the targets of from's rel edges. The returned slice must
// not be mutated by the caller.
func (rm *RelationMap) Related(from BlockRef, rel model.BlockRelation) []BlockRef {
	shard := &rm.shards[shardIndex(from)]
	shard.mu.Lock()
	defer shard.mu.Unlock()
	byRel, ok := shard.data[from]
	if !ok {
		return nil
	}
	out := make([]BlockRef, len(byRel[rel]))
	copy(out, byRel[rel])
	return out
}

// All returns every relation bucket recorded for from.
func (rm *RelationMap) All(from BlockRef) map[model.BlockRelation][]BlockRef {
	shard := &rm.shards[shardIndex(from)]
	shard.mu.Lock()
	defer shard.mu.Unlock()
	byRel, ok := shard.data[from]
	if !ok {
		return nil
	}
	out := make(map[model.BlockRelation][]BlockRef, len(byRel))
	for rel, targets := range byRel {
		cp := make([]BlockRef, len(targets))
		copy(cp, targets)
		out[rel] = cp
	}
	return out
}

// Walk invokes fn once per (from, relation, to) edge. Iteration order is
// not guaranteed; callers needing determinism should sort afterward.
func (rm *RelationMap) Walk(fn func(from BlockRef, rel model.BlockRelation, to BlockRef)) {
	for i := range rm.shards {
		shard := &rm.shards[i]
		shard.mu.Lock()
		for from, byRel := range shard.data {
			for rel, targets := range byRel {
				for _, to := range targets {
					fn(from, rel, to)
				}
			}
		}
		shard.mu.Unlock()
	}
}
