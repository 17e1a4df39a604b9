package operator

import (
	"regexp"

	"github.com/vinicius-lino-figueiredo/whynomatch/domain"
	"github.com/vinicius-lino-figueiredo/whynomatch/pkg/structure"
	"github.com/vinicius-lino-figueiredo/whynomatch/pkg/uncomparable"
)

func (o *Operators) in(_ domain.Evaluator, target, operand any, _ string) (domain.Result, error) {
	found, err := o.anyIn(target, operand, "$in")
	if err != nil {
		return domain.Result{}, err
	}
	return o.check(found, operand), nil
}

func (o *Operators) nin(_ domain.Evaluator, target, operand any, _ string) (domain.Result, error) {
	found, err := o.anyIn(target, operand, "$nin")
	if err != nil {
		return domain.Result{}, err
	}
	return o.check(!found, operand), nil
}

// anyIn reports whether any element of target short-equals any element of
// operand.
func (o *Operators) anyIn(target, operand any, name string) (bool, error) {
	list, ok := o.operandList(operand)
	if !ok {
		return false, domain.ErrInvalidOperand{Operator: name, Want: "list", Actual: operand}
	}

	m, err := o.newMembership(list)
	if err != nil {
		return false, err
	}

	for _, item := range o.coerceList(target) {
		found, err := m.contains(item)
		if err != nil || found {
			return found, err
		}
	}
	return false, nil
}

// all passes when every operand element is in target, that is, when the
// difference between the operand and the target is empty.
func (o *Operators) all(_ domain.Evaluator, target, operand any, _ string) (domain.Result, error) {
	list, ok := o.operandList(operand)
	if !ok {
		return domain.Result{}, domain.ErrInvalidOperand{Operator: "$all", Want: "list", Actual: operand}
	}

	items := o.coerceList(target)
	set := uncomparable.NewSet(o.hasher, o.comparer)
	if err := set.Add(items...); err != nil {
		return domain.Result{}, err
	}

	for _, want := range list {
		present, err := o.present(set, items, want)
		if err != nil {
			return domain.Result{}, err
		}
		if !present {
			return domain.Fail(operand), nil
		}
	}
	return domain.Pass(), nil
}

func (o *Operators) present(set *uncomparable.Set, items []any, want any) (bool, error) {
	rgx, ok := want.(*regexp.Regexp)
	if !ok {
		return set.Has(want)
	}
	for _, item := range items {
		if rgx.MatchString(o.stringifier.Stringify(item)) {
			return true, nil
		}
	}
	return false, nil
}

func (o *Operators) size(_ domain.Evaluator, target, operand any, _ string) (domain.Result, error) {
	want, ok := structure.AsFloat(operand)
	if !ok {
		return domain.Result{}, domain.ErrInvalidOperand{Operator: "$size", Want: "number", Actual: operand}
	}

	value, _ := structure.Concrete(target)
	if structure.KindOf(value) != structure.KindArray {
		return domain.Fail(operand), nil
	}
	list, _ := structure.List(value)
	return o.check(float64(len(list)) == want, operand), nil
}

// operandList returns the operand as a list. Only lists are accepted, no
// coercion is made.
func (o *Operators) operandList(operand any) ([]any, bool) {
	if structure.KindOf(operand) != structure.KindArray {
		return nil, false
	}
	operand, _ = structure.Concrete(operand)
	return structure.List(operand)
}

// coerceList returns target as a list, wrapping it in a one-element list if it
// is not one already.
func (o *Operators) coerceList(target any) []any {
	if structure.KindOf(target) == structure.KindArray {
		value, _ := structure.Concrete(target)
		list, _ := structure.List(value)
		return list
	}
	return []any{target}
}
