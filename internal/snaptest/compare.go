package snaptest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func normalize(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}

func normalizeAll(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = normalize(l)
	}
	return out
}

// AssertSymbolsContain checks that every line in expected (whitespace
// normalized) appears somewhere among the symbols a live run produced.
// This is a subset check, not a set equality: a case names the symbols a
// scenario cares about, not every symbol a real file happens to declare
// (parameters, locals, primitives seeded into scope, ...).
func AssertSymbolsContain(t *testing.T, actual, expected []string) {
	t.Helper()
	actualSet := normalizeAll(actual)
	for _, want := range expected {
		assert.Contains(t, actualSet, normalize(want), "expected symbol line not found: %q", want)
	}
}

// AssertBlockRelationsContain is AssertSymbolsContain's counterpart for
// rendered block-relation lines.
func AssertBlockRelationsContain(t *testing.T, actual, expected []string) {
	t.Helper()
	actualSet := normalizeAll(actual)
	for _, want := range expected {
		assert.Contains(t, actualSet, normalize(want), "expected relation not found: %q", want)
	}
}

// AssertBlockGraphOrder checks that expected appears as an in-order
// subsequence of actual, honoring the format's "block-graph is
// order-sensitive" rule without requiring an exact node-for-node tree
// match (a fixture names the blocks a scenario cares about, not every
// block — e.g. BlockParameters/BlockReturn groupings — the real tree
// contains).
func AssertBlockGraphOrder(t *testing.T, actual, expected []string) {
	t.Helper()
	actualSet := normalizeAll(actual)
	expectedSet := normalizeAll(expected)

	pos := 0
	for _, want := range expectedSet {
		found := false
		for ; pos < len(actualSet); pos++ {
			if actualSet[pos] == want {
				found = true
				pos++
				break
			}
		}
		if !assert.True(t, found, "expected block-graph entry %q not found in order", want) {
			return
		}
	}
}
