package operator

import (
	"github.com/vinicius-lino-figueiredo/whynomatch/domain"
	"github.com/vinicius-lino-figueiredo/whynomatch/pkg/structure"
)

// not passes when the sub-query fails.
func (o *Operators) not(ev domain.Evaluator, target, operand any, _ string) (domain.Result, error) {
	res, err := ev.Match(target, operand)
	if err != nil {
		return domain.Result{}, err
	}
	return o.check(res.Failed(), operand), nil
}

// or stops at the first matching sub-query. When none matches, every
// sub-query failure is reported, in order.
func (o *Operators) or(ev domain.Evaluator, target, operand any, _ string) (domain.Result, error) {
	queries, err := o.subQueries(operand, "$or")
	if err != nil {
		return domain.Result{}, err
	}

	failures := make([]any, 0, len(queries))
	for _, query := range queries {
		res, err := ev.Match(target, query)
		if err != nil {
			return domain.Result{}, err
		}
		if !res.Failed() {
			return domain.Pass(), nil
		}
		failures = append(failures, res.Payload())
	}
	return domain.Fail(failures), nil
}

// nor reports the sub-queries that matched.
func (o *Operators) nor(ev domain.Evaluator, target, operand any, _ string) (domain.Result, error) {
	queries, err := o.subQueries(operand, "$nor")
	if err != nil {
		return domain.Result{}, err
	}

	var matched []any
	for _, query := range queries {
		res, err := ev.Match(target, query)
		if err != nil {
			return domain.Result{}, err
		}
		if !res.Failed() {
			matched = append(matched, query)
		}
	}
	if len(matched) > 0 {
		return domain.Fail(matched), nil
	}
	return domain.Pass(), nil
}

// and evaluates every sub-query, even after a failure, so all of them are
// reported.
func (o *Operators) and(ev domain.Evaluator, target, operand any, _ string) (domain.Result, error) {
	queries, err := o.subQueries(operand, "$and")
	if err != nil {
		return domain.Result{}, err
	}

	var failures []any
	for _, query := range queries {
		res, err := ev.Match(target, query)
		if err != nil {
			return domain.Result{}, err
		}
		if res.Failed() {
			failures = append(failures, res.Payload())
		}
	}
	if len(failures) > 0 {
		return domain.Fail(failures), nil
	}
	return domain.Pass(), nil
}

// elemMatch passes when at least one element of target matches the whole
// operand.
func (o *Operators) elemMatch(ev domain.Evaluator, target, operand any, _ string) (domain.Result, error) {
	if structure.KindOf(operand) != structure.KindObject {
		return domain.Result{}, domain.ErrInvalidOperand{
			Operator: "$elemMatch", Want: "object", Actual: operand,
		}
	}

	value, _ := structure.Concrete(target)
	if structure.KindOf(value) != structure.KindArray {
		return domain.Fail(operand), nil
	}

	list, _ := structure.List(value)
	for _, item := range list {
		res, err := ev.Match(item, operand)
		if err != nil {
			return domain.Result{}, err
		}
		if !res.Failed() {
			return domain.Pass(), nil
		}
	}
	return domain.Fail(operand), nil
}

func (o *Operators) subQueries(operand any, name string) ([]any, error) {
	list, ok := o.operandList(operand)
	if !ok {
		return nil, domain.ErrInvalidOperand{Operator: name, Want: "list", Actual: operand}
	}
	return list, nil
}
