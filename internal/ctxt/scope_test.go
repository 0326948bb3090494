package ctxt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kessdev/codegraph/internal/model"
)

func TestScopeDeclareFirstEntryIsNotPromoted(t *testing.T) {
	s := newScope(1, 1, "file", 0, 0, 0)
	entry, promoted := s.Declare("Run", model.SymFunction, 10)
	assert.False(t, promoted)
	assert.Equal(t, SymbolID(10), entry.Single)
	assert.Empty(t, entry.Overloaded)
}

func TestScopeDeclareSecondSameKindPromotes(t *testing.T) {
	s := newScope(1, 1, "file", 0, 0, 0)
	s.Declare("Run", model.SymFunction, 10)
	entry, promoted := s.Declare("Run", model.SymFunction, 11)
	assert.True(t, promoted)
	assert.Equal(t, []SymbolID{10, 11}, entry.Overloaded)
}

func TestScopeDeclareDifferentKindDoesNotCollide(t *testing.T) {
	s := newScope(1, 1, "file", 0, 0, 0)
	s.Declare("Run", model.SymFunction, 10)
	entry, promoted := s.Declare("Run", model.SymType, 20)
	assert.False(t, promoted)
	assert.Equal(t, SymbolID(20), entry.Single)
}

func TestScopeLookupLocalMissReturnsFalse(t *testing.T) {
	s := newScope(1, 1, "file", 0, 0, 0)
	_, ok := s.LookupLocal("Missing", model.SymFunction)
	assert.False(t, ok)
}

func TestCompileCtxtLookupInScopeWalksParentChain(t *testing.T) {
	cc := New()
	parent := cc.AllocScope(1, "file", 0, 0, 0)
	child := cc.AllocScope(1, "function", 0, 0, parent.ID)

	sym := cc.AllocSymbol(1, "Helper", "Helper", model.SymFunction, model.VisPrivate, parent.ID, 0)
	parent.Declare("Helper", model.SymFunction, sym.ID)

	entry, foundIn, ok := cc.LookupInScope(child.ID, "Helper", model.SymFunction)
	assert.True(t, ok)
	assert.Equal(t, parent.ID, foundIn)
	assert.Equal(t, sym.ID, entry.Single)
}

func TestCompileCtxtLookupInScopeFallsThroughBases(t *testing.T) {
	cc := New()
	trait := cc.AllocScope(1, "trait", 0, 0, 0)
	impl := cc.AllocScope(1, "impl", 0, 0, 0)
	impl.AddBase(trait.ID)

	sym := cc.AllocSymbol(1, "describe", "Trait::describe", model.SymMethod, model.VisPublic, trait.ID, 0)
	trait.Declare("describe", model.SymMethod, sym.ID)

	entry, foundIn, ok := cc.LookupInScope(impl.ID, "describe", model.SymMethod)
	assert.True(t, ok)
	assert.Equal(t, trait.ID, foundIn)
	assert.Equal(t, sym.ID, entry.Single)
}
