// Package link runs the project link pass: the final, sequential pass over
// a compile context that resolves every Undefined placeholder symbol left
// behind by internal/bind once every unit has been collected and bound. A
// reference that escapes its declaring unit (an import, a cross-crate path)
// cannot be resolved while that unit is still being processed, since the
// symbol it denotes might live in a file that hasn't been collected yet;
// this pass runs only after the whole project's per-file passes have
// finished, so the global index is complete.
package link

import "github.com/kessdev/codegraph/internal/ctxt"

// Result reports what the link pass did, for the runner to log and for
// callers that want to know whether any reference stayed unresolved.
type Result struct {
	Resolved   int
	Unresolved []string // names with at least one placeholder that found no match
}

// Link resolves every pending Undefined placeholder across the whole
// context by redirecting it to a same-named symbol found in the global
// visible index. A name with more than one publicly visible candidate
// (two packages each exporting a function called Run) redirects every
// placeholder to the first candidate found; callers that need
// disambiguation should prefer block-graph Uses/Calls edges, which are
// resolved per call site, not per name.
func Link(cc *ctxt.CompileCtxt) Result {
	var res Result
	for _, name := range cc.AllUndefinedNames() {
		candidates := cc.FindSymbolsByName(name)
		pending := cc.UndefinedByName(name)
		if len(candidates) == 0 {
			if len(pending) > 0 {
				res.Unresolved = append(res.Unresolved, name)
			}
			continue
		}
		target := candidates[0]
		for _, placeholder := range pending {
			if _, already := placeholder.Redirect(); already {
				continue
			}
			placeholder.SetRedirect(target.ID)
			res.Resolved++
		}
	}
	return res
}

// Resolve follows a symbol's redirect chain to the real symbol it denotes,
// returning id itself when it carries no redirect (the common case for
// every symbol that was never an Undefined placeholder). Chains are never
// more than one hop in practice (link only ever redirects a placeholder to
// a concretely declared symbol, never to another placeholder), but this
// still walks until it stops moving as a defensive measure against a future
// pass introducing chained redirects.
func Resolve(cc *ctxt.CompileCtxt, id ctxt.SymbolID) ctxt.SymbolID {
	seen := make(map[ctxt.SymbolID]bool)
	for {
		if seen[id] {
			return id
		}
		seen[id] = true
		sym := cc.Symbol(id)
		if sym == nil {
			return id
		}
		next, ok := sym.Redirect()
		if !ok {
			return id
		}
		id = next
	}
}
