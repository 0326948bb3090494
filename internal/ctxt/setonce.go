package ctxt

import (
	"sync"

	"github.com/kessdev/codegraph/internal/errs"
)

// SetOnce is an interior-mutable cell that can be published exactly once.
// HirNode.symbol, HirNode.scope, Symbol.typeOf and Symbol.primaryBlock all
// use this so that a field can be filled in by a later pass without making
// the whole struct mutable: a second Set is always a programming error in
// one of the passes (two binders racing to resolve the same node, or a
// block builder visiting the same declaration twice), never a condition
// produced by the input, so it panics with an *errs.AssertionViolationError
// rather than returning one.
type SetOnce[T any] struct {
	mu    sync.Mutex
	val   T
	isSet bool
}

// Set publishes v. It panics if the cell was already set.
func (c *SetOnce[T]) Set(field, detail string, v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.isSet {
		panic(&errs.AssertionViolationError{Field: field, Detail: detail})
	}
	c.val = v
	c.isSet = true
}

// TrySet publishes v if the cell is empty, reporting whether it did.
func (c *SetOnce[T]) TrySet(v T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.isSet {
		return false
	}
	c.val = v
	c.isSet = true
	return true
}

// Get returns the published value and whether one has been set.
func (c *SetOnce[T]) Get() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.val, c.isSet
}
