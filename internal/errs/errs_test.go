package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseErrorUnwrapsToUnderlyingCause(t *testing.T) {
	cause := errors.New("unexpected token")
	err := &ParseError{Path: "a.go", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "a.go")
}

func TestIOErrorUnwrapsToUnderlyingCause(t *testing.T) {
	cause := errors.New("permission denied")
	err := &IOError{Path: "a.go", Op: "read", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "read")
}

func TestOverloadAmbiguityErrorIsErrAmbiguousOverload(t *testing.T) {
	err := &OverloadAmbiguityError{Name: "process", Candidates: 2}
	assert.ErrorIs(t, err, ErrAmbiguousOverload)
}

func TestAssertionViolationErrorMessageNamesField(t *testing.T) {
	err := &AssertionViolationError{Field: "HirNode.symbol", Detail: "function"}
	assert.Contains(t, err.Error(), "HirNode.symbol")
	assert.Contains(t, err.Error(), "function")
}
