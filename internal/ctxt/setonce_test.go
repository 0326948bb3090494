package ctxt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kessdev/codegraph/internal/errs"
)

func TestSetOnceGetBeforeSet(t *testing.T) {
	var c SetOnce[int]
	v, ok := c.Get()
	assert.False(t, ok)
	assert.Equal(t, 0, v)
}

func TestSetOnceSetThenGet(t *testing.T) {
	var c SetOnce[string]
	c.Set("field", "detail", "hello")
	v, ok := c.Get()
	assert.True(t, ok)
	assert.Equal(t, "hello", v)
}

func TestSetOnceSecondSetPanics(t *testing.T) {
	var c SetOnce[int]
	c.Set("field", "detail", 1)
	assert.PanicsWithValue(t, &errs.AssertionViolationError{Field: "field", Detail: "detail"}, func() {
		c.Set("field", "detail", 2)
	})
}

func TestSetOnceTrySet(t *testing.T) {
	var c SetOnce[int]
	assert.True(t, c.TrySet(5))
	assert.False(t, c.TrySet(6))
	v, ok := c.Get()
	assert.True(t, ok)
	assert.Equal(t, 5, v)
}
