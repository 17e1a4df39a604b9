// Package domain contains domain-specific interfaces and option types for
// whynomatch.
//
// This package defines the core interfaces that must be implemented by
// adapters, as well as functional options for configuring components like the
// evaluator, the operator registry and the operators themselves.
package domain

import (
	"context"
	"io"
	"iter"
)

// Comparer provides ordering and comparison operations for different data types.
type Comparer interface {
	// Compare returns -1, 0, or 1 based on the comparison of two values.
	Compare(any, any) (int, error)
	// Comparable returns true if two values can be ordered against each
	// other by operators like $gt and $lt.
	Comparable(any, any) bool
}

// Getter represents a value that can be treated as undefined.
type Getter interface {
	// Get returns the value and a bool that indicates whether the value
	// counts as defined or not. If an address points to an unset key in
	// a document, or an out of bounds index in an array or any address
	// within a primitive value ([string], [bool], etc.), it counts as
	// undefined. If a value is explicitly [nil], it will not count as
	// undefined.
	Get() (value any, defined bool)
}

// FieldNavigator provides field access operations with dot notation support.
type FieldNavigator interface {
	// GetField follows the path parts from the given value. The result is
	// never nil; unreachable paths return an undefined [Getter].
	GetField(any, ...string) (Getter, error)
	// GetAddress extracts nested path from the string address using the
	// expected notation.
	GetAddress(field string) ([]string, error)
}

// Hasher generates hash values for data deduplication.
type Hasher interface {
	// Hash generates a hash value for the given data.
	Hash(any) (uint64, error)
}

// Stringifier converts any value into the text used for pattern matching.
// Implementations must be total: every value has a string form.
type Stringifier interface {
	Stringify(any) string
}

// Serializer converts values to bytes for presentation.
type Serializer interface {
	// Serialize converts a value to bytes.
	Serialize(context.Context, any) ([]byte, error)
}

// Decoder converts between different data representations.
type Decoder interface {
	// Decode converts from one data format to another.
	Decode(any, any) error
}

// Loader reads a value (target or query) from a textual source.
type Loader interface {
	// Load parses the content read from the given reader. The name is used
	// to select the format and to report errors.
	Load(ctx context.Context, name string, r io.Reader) (any, error)
}

// Document represents an object value. Implementations decide the order in
// which keys are iterated; the default one keeps insertion order, which is
// what makes a Diagnosis follow the declaration order of a query.
type Document interface {
	// Get returns the value under the given key, or nil if unset.
	Get(string) any
	// Set sets the value under the given key.
	Set(string, any)
	// Unset unsets the value under the given key.
	Unset(string)
	// Iter returns a sequence of key-value pairs in the document.
	Iter() iter.Seq2[string, any]
	// Keys returns a sequence of keys in the document.
	Keys() iter.Seq[string]
	// Values returns a sequence of values in the document.
	Values() iter.Seq[any]
	// Has reports whether a value is set under the given key.
	Has(string) bool
	// Len returns the number of set fields in the document.
	Len() int
}

// Operator evaluates a single query clause. It receives the evaluator that is
// running the query so composite operators can recurse through it, the
// current target, the clause operand and the key the clause was declared
// under.
type Operator interface {
	Apply(ev Evaluator, target, operand any, key string) (Result, error)
}

// OperatorFunc adapts an ordinary function into an [Operator].
type OperatorFunc func(ev Evaluator, target, operand any, key string) (Result, error)

// Apply implements [Operator].
func (f OperatorFunc) Apply(ev Evaluator, target, operand any, key string) (Result, error) {
	return f(ev, target, operand, key)
}

// Registry resolves query keys to operators. A Registry is never mutated
// after being built and may be shared between goroutines.
type Registry interface {
	// Resolve returns the operator for the given key. Keys starting with
	// '$' must name a registered operator; any other key resolves to the
	// path navigation operator.
	Resolve(key string) (Operator, error)
	// With returns a new Registry containing the current operators plus
	// the given ones. The receiver is left untouched.
	With(extra map[string]Operator) (Registry, error)
	// Names returns the sorted names of explicitly resolvable operators.
	Names() []string
}

// Evaluator diagnoses why a target does not match a query.
type Evaluator interface {
	// Evaluate returns a [Document] with every failing clause of the query.
	// An empty Document means the target matches.
	Evaluate(target, query any) (Document, error)
	// Match evaluates a (sub-)query and returns the raw result, used by
	// operators to recurse.
	Match(target, query any) (Result, error)
}
