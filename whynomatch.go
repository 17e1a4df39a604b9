// Package whynomatch explains why a value does not match a MongoDB-like query.
//
// Instead of a plain boolean, [Evaluate] returns a [Document] holding every
// clause of the query that failed, keyed the same way as the query. An empty
// Document means the target matches.
//
//	diag, _ := whynomatch.Evaluate(
//		map[string]any{"age": 80},
//		map[string]any{"age": map[string]any{"$lt": 100, "$gt": 90}},
//	)
//	// diag is {"age": {"$gt": 90}}
//
// Custom operators can be added by creating a new [Registry] with
// [Registry.With] and passing it to [New] through [WithRegistry].
package whynomatch

import (
	"github.com/vinicius-lino-figueiredo/whynomatch/adapter/decoder"
	"github.com/vinicius-lino-figueiredo/whynomatch/adapter/evaluator"
	"github.com/vinicius-lino-figueiredo/whynomatch/adapter/registry"
	"github.com/vinicius-lino-figueiredo/whynomatch/domain"
)

var (
	// ErrMaxDepthExceeded is returned when a query nests deeper than the
	// limit set with [WithMaxDepth].
	ErrMaxDepthExceeded = domain.ErrMaxDepthExceeded
	// ErrTargetNil is returned by [Decode] when the target is nil.
	ErrTargetNil = domain.ErrTargetNil
	// ErrNonPointer is returned by [Decode] when the target is not a
	// pointer.
	ErrNonPointer = domain.ErrNonPointer
)

// NonMatchKey is the key under which a failing query that is not an object is
// reported.
const NonMatchKey = domain.NonMatchKey

// ErrUnsupportedOperator is returned when a query uses a '$' key that does not
// name a registered operator.
type ErrUnsupportedOperator = domain.ErrUnsupportedOperator

// ErrInvalidOperand is returned when an operator receives an operand of the
// wrong shape, such as a string for $in.
type ErrInvalidOperand = domain.ErrInvalidOperand

// ErrCannotCompare is returned when [Comparer.Compare] is called with two
// values that cannot be compared by the current [Comparer] interface.
type ErrCannotCompare = domain.ErrCannotCompare

// ErrOperatorName is returned by [Registry.With] for names that cannot be
// registered.
type ErrOperatorName = domain.ErrOperatorName

// ErrDecode is returned by [Decode] to wrap third party decoding errors.
type ErrDecode = domain.ErrDecode

// Evaluate returns the diagnosis of target against query using the default
// operators. It is a shortcut for calling [New] without options.
//
// Queries and targets may be any [Document], map[string]T, struct, slice or
// scalar. Struct fields are named after their "whynomatch" tag, when present.
func Evaluate(target, query any) (Document, error) {
	return defaultEvaluator.Evaluate(target, query)
}

var defaultEvaluator, _ = evaluator.NewEvaluator()

// New creates an [Evaluator] with the provided configuration options:
//
// - [WithRegistry]: sets the operators used to resolve query keys.
//
// - [WithDocumentFactory]: sets the function that creates diagnosis documents.
//
// - [WithComparer]: sets the comparer used by short equality.
//
// - [WithStringifier]: sets the stringifier used by regular expressions.
//
// - [WithMaxDepth]: limits how deep queries can nest.
func New(options ...EvaluatorOption) (Evaluator, error) {
	return evaluator.NewEvaluator(options...)
}

// NewRegistry returns the default operator [Registry]. The options replace the
// dependencies of the built-in operators.
func NewRegistry(options ...OperatorOption) Registry {
	return registry.NewRegistry(options...)
}

// Decode copies a loaded value, such as a diagnosis, into a Go value. Target
// must be a pointer.
func Decode(source, target any) error {
	return decoder.NewDecoder().Decode(source, target)
}

// Evaluator diagnoses why a target does not match a query.
type Evaluator = domain.Evaluator

// Registry resolves query keys to operators.
type Registry = domain.Registry

// Operator evaluates a single query clause.
type Operator = domain.Operator

// OperatorFunc adapts an ordinary function into an [Operator].
type OperatorFunc = domain.OperatorFunc

// Result is the outcome of a single [Operator].
type Result = domain.Result

// Pass returns a [Result] for a clause that holds.
func Pass() Result { return domain.Pass() }

// Fail returns a failing [Result] carrying the given payload.
func Fail(payload any) Result { return domain.Fail(payload) }

// WhereFunc is the predicate accepted by $where.
type WhereFunc = domain.WhereFunc

// Undefined is the value of an absent field.
type Undefined = domain.Undefined

// Document represents an object value. Diagnoses are documents.
type Document = domain.Document

// DocumentFactory creates [Document] instances from maps and structs.
type DocumentFactory = domain.DocumentFactory

// Comparer provides ordering and comparison for different data types.
type Comparer = domain.Comparer

// Stringifier converts any value into the text matched by regular expressions.
type Stringifier = domain.Stringifier

// FieldNavigator provides field access operations with dot notation support.
type FieldNavigator = domain.FieldNavigator

// Hasher generates hash values for data deduplication.
type Hasher = domain.Hasher

// EvaluatorOption configures an [Evaluator] through the functional options
// pattern.
type EvaluatorOption = domain.EvaluatorOption

// WithRegistry sets the [Registry] used to resolve query keys.
func WithRegistry(r Registry) EvaluatorOption {
	return domain.WithEvaluatorRegistry(r)
}

// WithDocumentFactory sets the function used to create diagnosis documents.
func WithDocumentFactory(df DocumentFactory) EvaluatorOption {
	return domain.WithEvaluatorDocumentFactory(df)
}

// WithComparer sets the [Comparer] used by short equality.
func WithComparer(c Comparer) EvaluatorOption {
	return domain.WithEvaluatorComparer(c)
}

// WithStringifier sets the [Stringifier] used by regular expression queries.
func WithStringifier(s Stringifier) EvaluatorOption {
	return domain.WithEvaluatorStringifier(s)
}

// WithMaxDepth limits how deep a query can nest. Zero means no limit.
func WithMaxDepth(d int) EvaluatorOption {
	return domain.WithMaxDepth(d)
}

// OperatorOption configures the built-in operators through the functional
// options pattern.
type OperatorOption = domain.OperatorOption

// WithOperatorComparer sets the [Comparer] used by comparison and array
// operators.
func WithOperatorComparer(c Comparer) OperatorOption {
	return domain.WithOperatorComparer(c)
}

// WithOperatorFieldNavigator sets the [FieldNavigator] used by field paths.
func WithOperatorFieldNavigator(f FieldNavigator) OperatorOption {
	return domain.WithOperatorFieldNavigator(f)
}

// WithOperatorStringifier sets the [Stringifier] used by $regex.
func WithOperatorStringifier(s Stringifier) OperatorOption {
	return domain.WithOperatorStringifier(s)
}

// WithOperatorHasher sets the [Hasher] used by $all.
func WithOperatorHasher(h Hasher) OperatorOption {
	return domain.WithOperatorHasher(h)
}

// WithOperatorDocumentFactory sets the function used to read object operands.
func WithOperatorDocumentFactory(df DocumentFactory) OperatorOption {
	return domain.WithOperatorDocumentFactory(df)
}
