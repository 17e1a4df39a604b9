package domain

// WithEvaluatorRegistry sets the [Registry] used to resolve query keys.
func WithEvaluatorRegistry(r Registry) EvaluatorOption {
	return func(eo *EvaluatorOptions) {
		eo.Registry = r
	}
}

// WithEvaluatorDocumentFactory sets the function used to create the diagnosis
// documents.
func WithEvaluatorDocumentFactory(df DocumentFactory) EvaluatorOption {
	return func(eo *EvaluatorOptions) {
		eo.DocumentFactory = df
	}
}

// WithEvaluatorComparer sets the [Comparer] used by short equality on leaf
// queries. If no [Registry] is given, it is also used by the default
// operators.
func WithEvaluatorComparer(c Comparer) EvaluatorOption {
	return func(eo *EvaluatorOptions) {
		eo.Comparer = c
	}
}

// WithEvaluatorStringifier sets the [Stringifier] used when a leaf query is a
// regular expression. If no [Registry] is given, it is also used by the
// default operators.
func WithEvaluatorStringifier(s Stringifier) EvaluatorOption {
	return func(eo *EvaluatorOptions) {
		eo.Stringifier = s
	}
}

// WithMaxDepth limits how deep a query can nest. Zero means no limit.
func WithMaxDepth(d int) EvaluatorOption {
	return func(eo *EvaluatorOptions) {
		eo.MaxDepth = d
	}
}

// EvaluatorOption configures evaluator behavior through the functional options
// pattern.
type EvaluatorOption func(*EvaluatorOptions)

// EvaluatorOptions contains parameters for customizing an [Evaluator].
type EvaluatorOptions struct {
	// Registry resolves query keys to operators.
	Registry Registry
	// DocumentFactory creates the diagnosis documents.
	DocumentFactory DocumentFactory
	// Comparer is used by short equality.
	Comparer Comparer
	// Stringifier is used by regular expression leaf queries.
	Stringifier Stringifier
	// MaxDepth limits query nesting. Zero means unlimited.
	MaxDepth int
}

// WithOperatorComparer sets the [Comparer] used by comparison and array
// operators.
func WithOperatorComparer(c Comparer) OperatorOption {
	return func(oo *OperatorOptions) {
		oo.Comparer = c
	}
}

// WithOperatorFieldNavigator sets the [FieldNavigator] used by path
// navigation.
func WithOperatorFieldNavigator(f FieldNavigator) OperatorOption {
	return func(oo *OperatorOptions) {
		oo.FieldNavigator = f
	}
}

// WithOperatorStringifier sets the [Stringifier] used by $regex.
func WithOperatorStringifier(s Stringifier) OperatorOption {
	return func(oo *OperatorOptions) {
		oo.Stringifier = s
	}
}

// WithOperatorHasher sets the [Hasher] used by $all set difference.
func WithOperatorHasher(h Hasher) OperatorOption {
	return func(oo *OperatorOptions) {
		oo.Hasher = h
	}
}

// WithOperatorDocumentFactory sets the function used to read object operands
// and targets.
func WithOperatorDocumentFactory(df DocumentFactory) OperatorOption {
	return func(oo *OperatorOptions) {
		oo.DocumentFactory = df
	}
}

// OperatorOption configures the default operators through the functional
// options pattern.
type OperatorOption func(*OperatorOptions)

// OperatorOptions contains the dependencies of the default operators.
type OperatorOptions struct {
	Comparer        Comparer
	FieldNavigator  FieldNavigator
	Stringifier     Stringifier
	Hasher          Hasher
	DocumentFactory DocumentFactory
}
