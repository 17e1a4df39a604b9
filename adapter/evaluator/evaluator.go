// Package evaluator contains the default [domain.Evaluator] implementation. It
// walks a query, resolves every key through a [domain.Registry] and collects
// the failing clauses into a diagnosis document.
package evaluator

import (
	"regexp"

	"github.com/vinicius-lino-figueiredo/whynomatch/adapter/comparer"
	"github.com/vinicius-lino-figueiredo/whynomatch/adapter/data"
	"github.com/vinicius-lino-figueiredo/whynomatch/adapter/registry"
	"github.com/vinicius-lino-figueiredo/whynomatch/adapter/serializer"
	"github.com/vinicius-lino-figueiredo/whynomatch/adapter/stringifier"
	"github.com/vinicius-lino-figueiredo/whynomatch/domain"
	"github.com/vinicius-lino-figueiredo/whynomatch/pkg/structure"
)

// Evaluator implements [domain.Evaluator]. It holds no state between calls and
// can be shared by goroutines.
type Evaluator struct {
	registry        domain.Registry
	documentFactory domain.DocumentFactory
	comparer        domain.Comparer
	stringifier     domain.Stringifier
	maxDepth        int
}

// NewEvaluator returns a new implementation of [domain.Evaluator].
func NewEvaluator(options ...domain.EvaluatorOption) (domain.Evaluator, error) {
	opts := domain.EvaluatorOptions{}
	for _, option := range options {
		option(&opts)
	}

	if opts.DocumentFactory == nil {
		opts.DocumentFactory = data.NewDocument
	}
	if opts.Comparer == nil {
		opts.Comparer = comparer.NewComparer()
	}
	if opts.Stringifier == nil {
		opts.Stringifier = stringifier.NewStringifier(
			serializer.NewSerializer(opts.DocumentFactory, ""),
		)
	}
	if opts.Registry == nil {
		opts.Registry = registry.NewRegistry(
			domain.WithOperatorComparer(opts.Comparer),
			domain.WithOperatorStringifier(opts.Stringifier),
			domain.WithOperatorDocumentFactory(opts.DocumentFactory),
		)
	}
	if opts.MaxDepth < 0 {
		opts.MaxDepth = 0
	}

	return &Evaluator{
		registry:        opts.Registry,
		documentFactory: opts.DocumentFactory,
		comparer:        opts.Comparer,
		stringifier:     opts.Stringifier,
		maxDepth:        opts.MaxDepth,
	}, nil
}

// Evaluate implements [domain.Evaluator]. A failing query that is not an
// object is reported under [domain.NonMatchKey].
func (e *Evaluator) Evaluate(target, query any) (domain.Document, error) {
	res, err := e.newRun().Match(target, query)
	if err != nil {
		return nil, err
	}

	diagnosis, err := e.documentFactory(nil)
	if err != nil {
		return nil, err
	}

	if !res.Failed() {
		return diagnosis, nil
	}

	if doc, ok := res.Payload().(domain.Document); ok {
		return doc, nil
	}
	diagnosis.Set(domain.NonMatchKey, res.Payload())
	return diagnosis, nil
}

// Match implements [domain.Evaluator].
func (e *Evaluator) Match(target, query any) (domain.Result, error) {
	return e.newRun().Match(target, query)
}

func (e *Evaluator) newRun() *run {
	return &run{Evaluator: e}
}

// run is the evaluator handed to operators during a single call. It tracks
// how deep the query has nested so far.
type run struct {
	*Evaluator
	depth int
}

// Evaluate implements [domain.Evaluator].
func (r *run) Evaluate(target, query any) (domain.Document, error) {
	return r.Evaluator.Evaluate(target, query)
}

// Match implements [domain.Evaluator].
func (r *run) Match(target, query any) (domain.Result, error) {
	r.depth++
	defer func() { r.depth-- }()
	if r.maxDepth > 0 && r.depth > r.maxDepth {
		return domain.Result{}, domain.ErrMaxDepthExceeded
	}

	if concrete, defined := structure.Concrete(query); defined {
		query = concrete
	}

	if structure.KindOf(query) != structure.KindObject {
		return r.shortEquality(target, query)
	}

	seq, _, err := structure.Seq2(query)
	if err != nil {
		return domain.Result{}, err
	}

	diagnosis, err := r.documentFactory(nil)
	if err != nil {
		return domain.Result{}, err
	}

	// sibling keys are always evaluated, so every failing clause is reported
	for key, operand := range seq {
		op, err := r.registry.Resolve(key)
		if err != nil {
			return domain.Result{}, err
		}
		res, err := op.Apply(r, target, operand, key)
		if err != nil {
			return domain.Result{}, err
		}
		if res.Failed() {
			diagnosis.Set(key, res.Payload())
		}
	}

	if diagnosis.Len() > 0 {
		return domain.Fail(diagnosis), nil
	}
	return domain.Pass(), nil
}

// shortEquality tests a query that is not an object. Regular expressions are
// matched against the string form of target and any other value must be
// deeply equal to it.
func (r *run) shortEquality(target, query any) (domain.Result, error) {
	if rgx, ok := query.(*regexp.Regexp); ok {
		if rgx.MatchString(r.stringifier.Stringify(target)) {
			return domain.Pass(), nil
		}
		return domain.Fail(query), nil
	}

	c, err := r.comparer.Compare(target, query)
	if err != nil {
		return domain.Result{}, err
	}
	if c == 0 {
		return domain.Pass(), nil
	}
	return domain.Fail(query), nil
}
