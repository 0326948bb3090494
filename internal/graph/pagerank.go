// Package graph computes the architecture view: a PageRank centrality score
// over the block graph's Calls/Uses/Implements/containment edges, filtered
// down to the top-K most central blocks at a caller-chosen depth of
// structural detail, and exported with stable external identifiers so two
// runs over an unchanged tree produce identical node IDs.
package graph

import (
	"math"
	"sort"

	"github.com/kessdev/codegraph/internal/ctxt"
	"github.com/kessdev/codegraph/internal/model"
)

const (
	damping       = 0.85
	convergence   = 1e-6
	maxIterations = 100
)

// Scores maps every block that appears in at least one edge to its
// converged PageRank score.
type Scores map[ctxt.BlockRef]float64

// PageRank runs weighted PageRank over cc's relation map. Edge weight comes
// from model.BlockRelation.Weight(); relations that carry zero weight
// (structural groupings like HasParameters) still contribute a node to the
// graph when walked but never move score across them, matching the spec's
// intent that centrality track semantic pull, not raw structure.
func PageRank(cc *ctxt.CompileCtxt) Scores {
	type edge struct {
		to     ctxt.BlockRef
		weight float64
	}
	outEdges := make(map[ctxt.BlockRef][]edge)
	outWeight := make(map[ctxt.BlockRef]float64)
	nodes := make(map[ctxt.BlockRef]bool)

	cc.Related().Walk(func(from ctxt.BlockRef, rel model.BlockRelation, to ctxt.BlockRef) {
		w := rel.Weight()
		nodes[from] = true
		nodes[to] = true
		if w <= 0 {
			return
		}
		outEdges[from] = append(outEdges[from], edge{to: to, weight: w})
		outWeight[from] += w
	})

	n := len(nodes)
	if n == 0 {
		return Scores{}
	}

	scores := make(Scores, n)
	initial := 1.0 / float64(n)
	order := make([]ctxt.BlockRef, 0, n)
	for b := range nodes {
		scores[b] = initial
		order = append(order, b)
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].Unit != order[j].Unit {
			return order[i].Unit < order[j].Unit
		}
		return order[i].Block < order[j].Block
	})

	base := (1 - damping) / float64(n)
	for iter := 0; iter < maxIterations; iter++ {
		next := make(Scores, n)
		for _, b := range order {
			next[b] = base
		}
		var danglingMass float64
		for _, b := range order {
			edges := outEdges[b]
			if len(edges) == 0 {
				danglingMass += scores[b]
				continue
			}
			total := outWeight[b]
			for _, e := range edges {
				next[e.to] += damping * scores[b] * (e.weight / total)
			}
		}
		if danglingMass > 0 {
			share := damping * danglingMass / float64(n)
			for _, b := range order {
				next[b] += share
			}
		}

		var delta float64
		for _, b := range order {
			delta += math.Abs(next[b] - scores[b])
		}
		scores = next
		if delta < convergence {
			break
		}
	}
	return scores
}
