package domain

// NonMatchKey is the key under which [Evaluator.Evaluate] reports a failing
// query that is not an object.
const NonMatchKey = "nonMatch"

// NestedOperator is the name of the path navigation operator, used for every
// query key that does not start with '$'.
const NestedOperator = "$nested"

// WhereFunc is the only accepted $where operand. It receives the current
// target and reports whether it matches.
type WhereFunc = func(any) (bool, error)

// DocumentFactory represents a function that constructs [Document] instances
// from structured data types. If nil is provided, returns an empty document.
type DocumentFactory = func(any) (Document, error)

// Undefined is the value of an absent field. It implements [Getter] and
// reports itself as not defined.
type Undefined struct{}

// Get implements [Getter].
func (Undefined) Get() (any, bool) { return nil, false }

// Result is the outcome of a single operator. The zero value is a pass.
type Result struct {
	payload any
	failed  bool
}

// Pass returns a [Result] for a clause that holds.
func Pass() Result {
	return Result{}
}

// Fail returns a failing [Result] carrying the given payload, which may be the
// offending operand or a nested diagnosis. A nil payload is valid.
func Fail(payload any) Result {
	return Result{payload: payload, failed: true}
}

// Failed reports whether the clause did not hold.
func (r Result) Failed() bool {
	return r.failed
}

// Payload returns the failure payload, or nil for a pass.
func (r Result) Payload() any {
	return r.payload
}
