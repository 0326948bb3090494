// Package errs defines the typed error taxonomy produced by the pipeline,
// modeled on the storage error wrapping used in the example this repo was
// built from: every stage-specific error wraps an underlying cause and
// exposes it through Unwrap so callers can use errors.As/errors.Is.
package errs

import (
	"errors"
	"fmt"

	"github.com/kessdev/codegraph/internal/model"
)

// Sentinel errors usable with errors.Is.
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrUnsupportedLang  = errors.New("unsupported language")
	ErrCancelled        = errors.New("run cancelled")
	ErrAmbiguousOverload = errors.New("ambiguous overload")
)

// ParseError reports a syntax error surfaced by a language grammar while
// parsing a single file. The first per-file error cancels the whole run.
type ParseError struct {
	Path string
	At   model.Span
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s at %d:%d: %v", e.Path, e.At.StartLine, e.At.StartCol, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// UnresolvedSymbolError reports a reference that survived project link with
// no matching definition anywhere in the compiled set.
type UnresolvedSymbolError struct {
	Name string
	At   model.Location
}

func (e *UnresolvedSymbolError) Error() string {
	return fmt.Sprintf("unresolved symbol %q at %s:%d", e.Name, e.At.File, e.At.Span.StartLine)
}

// OverloadAmbiguityError reports a call site whose arity matches more than
// one sibling overload and whose declaration order could not break the tie
// (this should not happen given the source-order tie-break rule, and its
// occurrence indicates a collection-pass bug).
type OverloadAmbiguityError struct {
	Name      string
	Candidates int
}

func (e *OverloadAmbiguityError) Error() string {
	return fmt.Sprintf("%v: %q has %d equally ranked candidates", ErrAmbiguousOverload, e.Name, e.Candidates)
}

func (e *OverloadAmbiguityError) Unwrap() error { return ErrAmbiguousOverload }

// AssertionViolationError reports an attempt to publish a set-once arena
// cell a second time. This is always a programming error in one of the
// passes, never a condition produced by malformed input.
type AssertionViolationError struct {
	Field  string
	Detail string
}

func (e *AssertionViolationError) Error() string {
	return fmt.Sprintf("assertion violation: %s already set (%s)", e.Field, e.Detail)
}

// IOError wraps a filesystem failure (read, stat, walk) encountered while
// discovering or loading source files.
type IOError struct {
	Path string
	Op   string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
