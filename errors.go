package lattice

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrShapeMismatch indicates a value handed to Encode does not match its
	// declared shape. This is a programmer error, not recoverable.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrMissingField indicates a required record field is absent from the
	// incoming tree.
	ErrMissingField = errors.New("missing required field")

	// ErrUnknownTag indicates a union discriminator that is not in the
	// declared variant set.
	ErrUnknownTag = errors.New("unknown union tag")

	// ErrTypeMismatch indicates a tree node whose kind does not match the
	// expected shape.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrMalformed indicates a structurally invalid tree: a broken optional
	// wrapper, a tag in a forbidden position, or a wrapper missing its
	// payload.
	ErrMalformed = errors.New("malformed structure")

	// ErrUnsupportedType indicates a Go type the shape inferrer cannot map
	// to any shape.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrUnionRegistration indicates an invalid union declaration: a
	// duplicate tag, an already-registered interface, or a variant type that
	// is not a struct.
	ErrUnionRegistration = errors.New("invalid union registration")
)

// ShapeError reports a value/shape mismatch during encode.
// It wraps ErrShapeMismatch with the tree path and a detail message.
type ShapeError struct {
	Err    error  // Underlying sentinel error
	Path   string // Location within the value, e.g. "list[2].name"
	Detail string // Human-readable description of the mismatch
}

func (e *ShapeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s at %s: %s", e.Err.Error(), e.Path, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Detail)
}

func (e *ShapeError) Unwrap() error {
	return e.Err
}

// DecodeError reports an incoming tree that does not match the expected
// shape. It wraps one of the decode sentinels (ErrMissingField,
// ErrUnknownTag, ErrTypeMismatch, ErrMalformed). Callers should treat any
// DecodeError as fatal to that single decode only, not to the process.
type DecodeError struct {
	Err    error  // Underlying sentinel error
	Path   string // Location within the tree, e.g. "list[2].name"
	Detail string // Human-readable description
}

func (e *DecodeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s at %s: %s", e.Err.Error(), e.Path, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Detail)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// newShapeError creates a ShapeError at the given path.
func newShapeError(path, format string, args ...any) error {
	return &ShapeError{Err: ErrShapeMismatch, Path: path, Detail: fmt.Sprintf(format, args...)}
}

// newDecodeError creates a DecodeError wrapping the given sentinel.
func newDecodeError(sentinel error, path, format string, args ...any) error {
	return &DecodeError{Err: sentinel, Path: path, Detail: fmt.Sprintf(format, args...)}
}
