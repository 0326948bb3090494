package graph

import (
	"crypto/sha1"
	"encoding/hex"
	"sort"

	"github.com/google/uuid"

	"github.com/kessdev/codegraph/internal/ctxt"
	"github.com/kessdev/codegraph/internal/model"
)

// viewableKinds restricts the exported architecture view to the block
// kinds an "architecture" actually means: declarations, not the Call,
// Field, Parameter, Const and Stmt blocks that exist purely to let the
// relation graph attach structural edges to something. Those still rank in
// PageRank's scores (a heavily-called Call block raises its containing
// function's apparent centrality) — they just never themselves become an
// exported node.
var viewableKinds = map[model.BlockKind]bool{
	model.BlockModule:    true,
	model.BlockFunction:  true,
	model.BlockMethod:    true,
	model.BlockType:      true,
	model.BlockEnum:      true,
	model.BlockInterface: true,
	model.BlockImpl:      true,
}

// depthOf reports how many Contains-edges separate a block from its unit's
// root, used to bound how much structural detail the architecture view
// shows: the root block is depth 0 (and is not itself a viewable kind),
// top-level declarations are depth 1, and their members depth 2. Depth
// is capped at 3 regardless of how deeply the real tree nests, matching the
// spec's "multi-depth" view rather than an unbounded drill-down.
func depthOf(cc *ctxt.CompileCtxt, ref ctxt.BlockRef) int {
	depth := 0
	for depth < 3 {
		b := cc.Block(ref)
		if b == nil || !b.Parent.Valid() {
			break
		}
		ref = ctxt.BlockRef{Unit: ref.Unit, Block: b.Parent}
		depth++
	}
	return depth
}

// Node is one exported architecture-graph vertex.
type Node struct {
	ID    string  `json:"id"` // stable external id, stable across runs over an unchanged tree
	Kind  string  `json:"kind"`
	Name  string  `json:"name"`
	File  string  `json:"file"`
	Score float64 `json:"score"`
	Depth int     `json:"depth"`
}

// Edge is one exported architecture-graph relation.
type Edge struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Kind   string  `json:"kind"`
	Weight float64 `json:"weight"`
}

// View is the filtered, exported architecture graph: the top-K blocks by
// PageRank score at or above maxDepth, plus every edge between two
// surviving nodes.
type View struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// stableID derives a deterministic v5 UUID from a block's unit path, kind
// and name, so re-running over an unchanged tree reproduces the same
// external node identifiers even though internal BlockRef values (unit
// registration order, block allocation order) are run-local and not
// meaningful to compare across runs.
func stableID(unitPath string, b *ctxt.Block) string {
	sum := sha1.Sum([]byte(unitPath + "|" + b.Kind.String() + "|" + b.Name))
	seed := hex.EncodeToString(sum[:])
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(seed)).String()
}

// BuildView filters the scored block graph down to the top-K most central
// blocks whose depth does not exceed maxDepth, and emits every relation
// edge where both endpoints survived the filter.
func BuildView(cc *ctxt.CompileCtxt, scores Scores, maxDepth, topK int) View {
	type ranked struct {
		ref   ctxt.BlockRef
		block *ctxt.Block
		unit  *ctxt.ParseUnit
		score float64
	}
	var candidates []ranked
	for ref, score := range scores {
		unit := cc.Unit(ref.Unit)
		block := cc.Block(ref)
		if unit == nil || block == nil {
			continue
		}
		if !viewableKinds[block.Kind] {
			continue
		}
		if depthOf(cc, ref) > maxDepth {
			continue
		}
		candidates = append(candidates, ranked{ref: ref, block: block, unit: unit, score: score})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		// deterministic tie-break: path then name, since equal-score nodes
		// would otherwise order however Go's map iteration happened to run.
		if candidates[i].unit.Path != candidates[j].unit.Path {
			return candidates[i].unit.Path < candidates[j].unit.Path
		}
		return candidates[i].block.Name < candidates[j].block.Name
	})
	if topK > 0 && len(candidates) > topK {
		candidates = candidates[:topK]
	}

	ids := make(map[ctxt.BlockRef]string, len(candidates))
	view := View{Nodes: make([]Node, 0, len(candidates))}
	for _, c := range candidates {
		id := stableID(c.unit.Path, c.block)
		ids[c.ref] = id
		view.Nodes = append(view.Nodes, Node{
			ID:    id,
			Kind:  c.block.Kind.String(),
			Name:  c.block.Name,
			File:  c.unit.Path,
			Score: c.score,
			Depth: depthOf(cc, c.ref),
		})
	}

	for _, c := range candidates {
		for rel, targets := range cc.Related().All(c.ref) {
			for _, to := range targets {
				toID, ok := ids[to]
				if !ok {
					continue
				}
				view.Edges = append(view.Edges, Edge{
					From: ids[c.ref], To: toID, Kind: rel.String(), Weight: rel.Weight(),
				})
			}
		}
	}

	sort.Slice(view.Edges, func(i, j int) bool {
		a, b := view.Edges[i], view.Edges[j]
		if a.From != b.From {
			return a.From < b.From
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.To < b.To
	})

	return view
}
