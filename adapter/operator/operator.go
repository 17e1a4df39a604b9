// Package operator contains the built-in query operators. Operators are
// grouped in tables by category and package registry merges them into a single
// [domain.Registry].
//
// Every operator receives the evaluator running the query, so composite
// operators ($not, $or, $and, $elemMatch, $nested) recurse through it instead
// of calling a global function.
package operator

import (
	"github.com/vinicius-lino-figueiredo/whynomatch/adapter/comparer"
	"github.com/vinicius-lino-figueiredo/whynomatch/adapter/data"
	"github.com/vinicius-lino-figueiredo/whynomatch/adapter/fieldnavigator"
	"github.com/vinicius-lino-figueiredo/whynomatch/adapter/hasher"
	"github.com/vinicius-lino-figueiredo/whynomatch/adapter/serializer"
	"github.com/vinicius-lino-figueiredo/whynomatch/adapter/stringifier"
	"github.com/vinicius-lino-figueiredo/whynomatch/domain"
)

// Operators holds the dependencies shared by the built-in operators.
type Operators struct {
	comparer        domain.Comparer
	fieldNavigator  domain.FieldNavigator
	stringifier     domain.Stringifier
	hasher          domain.Hasher
	documentFactory domain.DocumentFactory
}

// NewOperators returns the built-in operators configured with the given
// options. Missing dependencies are replaced by the default adapters.
func NewOperators(options ...domain.OperatorOption) *Operators {
	opts := domain.OperatorOptions{}
	for _, option := range options {
		option(&opts)
	}

	if opts.DocumentFactory == nil {
		opts.DocumentFactory = data.NewDocument
	}
	if opts.Comparer == nil {
		opts.Comparer = comparer.NewComparer()
	}
	if opts.FieldNavigator == nil {
		opts.FieldNavigator = fieldnavigator.NewFieldNavigator(opts.DocumentFactory)
	}
	if opts.Stringifier == nil {
		opts.Stringifier = stringifier.NewStringifier(
			serializer.NewSerializer(opts.DocumentFactory, ""),
		)
	}
	if opts.Hasher == nil {
		opts.Hasher = hasher.NewHasher()
	}

	return &Operators{
		comparer:        opts.Comparer,
		fieldNavigator:  opts.FieldNavigator,
		stringifier:     opts.Stringifier,
		hasher:          opts.Hasher,
		documentFactory: opts.DocumentFactory,
	}
}

// Comparison returns the scalar, existence, pattern, modulo and callback
// operators.
func (o *Operators) Comparison() map[string]domain.Operator {
	return map[string]domain.Operator{
		"$eq":     domain.OperatorFunc(o.eq),
		"$ne":     domain.OperatorFunc(o.ne),
		"$gt":     domain.OperatorFunc(o.gt),
		"$gte":    domain.OperatorFunc(o.gte),
		"$lt":     domain.OperatorFunc(o.lt),
		"$lte":    domain.OperatorFunc(o.lte),
		"$exists": domain.OperatorFunc(o.exists),
		"$regex":  domain.OperatorFunc(o.regex),
		"$mod":    domain.OperatorFunc(o.mod),
		"$where":  domain.OperatorFunc(o.where),
	}
}

// Array returns the operators that work on lists.
func (o *Operators) Array() map[string]domain.Operator {
	return map[string]domain.Operator{
		"$in":   domain.OperatorFunc(o.in),
		"$nin":  domain.OperatorFunc(o.nin),
		"$all":  domain.OperatorFunc(o.all),
		"$size": domain.OperatorFunc(o.size),
	}
}

// Logical returns the operators that combine sub-queries.
func (o *Operators) Logical() map[string]domain.Operator {
	return map[string]domain.Operator{
		"$not":       domain.OperatorFunc(o.not),
		"$or":        domain.OperatorFunc(o.or),
		"$nor":       domain.OperatorFunc(o.nor),
		"$and":       domain.OperatorFunc(o.and),
		"$elemMatch": domain.OperatorFunc(o.elemMatch),
	}
}

// Virtual returns the operators that are never written in a query but are
// chosen from its structure.
func (o *Operators) Virtual() map[string]domain.Operator {
	return map[string]domain.Operator{
		domain.NestedOperator: domain.OperatorFunc(o.nested),
	}
}
