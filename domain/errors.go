package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMaxDepthExceeded is returned when a query nests deeper than the
	// limit set with [WithMaxDepth].
	ErrMaxDepthExceeded = errors.New("query exceeds maximum nesting depth")
)

// ErrUnsupportedOperator is returned when a query key starts with '$' but does
// not name a registered operator.
type ErrUnsupportedOperator struct {
	Operator string
}

// Error implements [error].
func (e ErrUnsupportedOperator) Error() string {
	return fmt.Sprintf("unsupported operator %q", e.Operator)
}

// ErrInvalidOperand is returned when an operator is called with an operand of
// the wrong shape.
type ErrInvalidOperand struct {
	Operator string
	Want     string
	Actual   any
}

// Error implements [error].
func (e ErrInvalidOperand) Error() string {
	return fmt.Sprintf(
		"%s operand should be %s, got %T",
		e.Operator, e.Want, e.Actual,
	)
}

// ErrCannotCompare is returned by [Comparer.Compare] when one of the values is
// of a type it does not know how to order.
type ErrCannotCompare struct {
	A any
	B any
}

// Error implements [error].
func (e ErrCannotCompare) Error() string {
	return fmt.Sprintf("cannot compare unexpected types %T and %T", e.A, e.B)
}

// ErrOperatorName is returned by [Registry.With] when an extra operator has a
// name that cannot be resolved explicitly.
type ErrOperatorName struct {
	Name   string
	Reason string
}

// Error implements [error].
func (e ErrOperatorName) Error() string {
	return fmt.Sprintf("invalid operator name %q: %s", e.Name, e.Reason)
}

var (
	// ErrTargetNil is returned by [Decoder.Decode] when the target is nil.
	ErrTargetNil = errors.New("target should not be nil")
	// ErrNonPointer is returned by [Decoder.Decode] when the target is not a
	// pointer.
	ErrNonPointer = errors.New("target should be a pointer")
)

// ErrDecode is returned when a value cannot be decoded into the target.
type ErrDecode struct {
	Source any
	Target any
}

// Error implements [error].
func (e ErrDecode) Error() string {
	return fmt.Sprintf("cannot decode %T into %T", e.Source, e.Target)
}

// ErrUnsupportedFormat is returned by [Loader.Load] when the source name has
// an extension that no known format uses.
type ErrUnsupportedFormat struct {
	Name string
}

// Error implements [error].
func (e ErrUnsupportedFormat) Error() string {
	return fmt.Sprintf("unsupported file format %q", e.Name)
}
