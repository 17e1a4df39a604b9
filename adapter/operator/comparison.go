package operator

import (
	"fmt"
	"math"
	"regexp"

	"github.com/vinicius-lino-figueiredo/whynomatch/domain"
	"github.com/vinicius-lino-figueiredo/whynomatch/pkg/structure"
)

func (o *Operators) eq(_ domain.Evaluator, target, operand any, _ string) (domain.Result, error) {
	c, err := o.comparer.Compare(target, operand)
	if err != nil {
		return domain.Result{}, err
	}
	return o.check(c == 0, operand), nil
}

func (o *Operators) ne(_ domain.Evaluator, target, operand any, _ string) (domain.Result, error) {
	c, err := o.comparer.Compare(target, operand)
	if err != nil {
		return domain.Result{}, err
	}
	return o.check(c != 0, operand), nil
}

func (o *Operators) gt(_ domain.Evaluator, target, operand any, _ string) (domain.Result, error) {
	return o.order(target, operand, func(c int) bool { return c > 0 })
}

func (o *Operators) gte(_ domain.Evaluator, target, operand any, _ string) (domain.Result, error) {
	return o.order(target, operand, func(c int) bool { return c >= 0 })
}

func (o *Operators) lt(_ domain.Evaluator, target, operand any, _ string) (domain.Result, error) {
	return o.order(target, operand, func(c int) bool { return c < 0 })
}

func (o *Operators) lte(_ domain.Evaluator, target, operand any, _ string) (domain.Result, error) {
	return o.order(target, operand, func(c int) bool { return c <= 0 })
}

// order only compares values of the same comparable kind. Anything else,
// like a number against a string, fails.
func (o *Operators) order(target, operand any, holds func(int) bool) (domain.Result, error) {
	if !o.comparer.Comparable(target, operand) {
		return domain.Fail(operand), nil
	}
	c, err := o.comparer.Compare(target, operand)
	if err != nil {
		return domain.Result{}, err
	}
	return o.check(holds(c), operand), nil
}

func (o *Operators) exists(_ domain.Evaluator, target, operand any, _ string) (domain.Result, error) {
	defined := structure.KindOf(target) != structure.KindUndefined
	return o.check(o.looseEqualsBool(defined, operand), operand), nil
}

func (o *Operators) regex(_ domain.Evaluator, target, operand any, _ string) (domain.Result, error) {
	var rgx *regexp.Regexp
	switch t := operand.(type) {
	case *regexp.Regexp:
		rgx = t
	case string:
		var err error
		if rgx, err = regexp.Compile(t); err != nil {
			return domain.Result{}, fmt.Errorf("%w: %w", domain.ErrInvalidOperand{
				Operator: "$regex", Want: "valid regular expression", Actual: operand,
			}, err)
		}
	default:
		return domain.Result{}, domain.ErrInvalidOperand{
			Operator: "$regex", Want: "regex or string", Actual: operand,
		}
	}
	return o.check(rgx.MatchString(o.stringifier.Stringify(target)), operand), nil
}

func (o *Operators) mod(_ domain.Evaluator, target, operand any, _ string) (domain.Result, error) {
	divisor, remainder, ok := o.modOperand(operand)
	if !ok {
		return domain.Result{}, domain.ErrInvalidOperand{
			Operator: "$mod", Want: "[divisor, remainder]", Actual: operand,
		}
	}

	value, _ := structure.Concrete(target)
	n, isNumber := structure.AsFloat(value)
	if !isNumber || divisor == 0 {
		return domain.Fail(operand), nil
	}
	return o.check(math.Mod(n, divisor) == remainder, operand), nil
}

func (o *Operators) modOperand(operand any) (float64, float64, bool) {
	list, ok := structure.List(operand)
	if !ok || len(list) != 2 {
		return 0, 0, false
	}
	divisor, ok := structure.AsFloat(list[0])
	if !ok {
		return 0, 0, false
	}
	remainder, ok := structure.AsFloat(list[1])
	if !ok {
		return 0, 0, false
	}
	return divisor, remainder, true
}

// where calls the user predicate. Its errors are returned unchanged.
func (o *Operators) where(_ domain.Evaluator, target, operand any, _ string) (domain.Result, error) {
	fn, ok := operand.(domain.WhereFunc)
	if !ok || fn == nil {
		return domain.Result{}, domain.ErrInvalidOperand{
			Operator: "$where", Want: "func(any) (bool, error)", Actual: operand,
		}
	}
	holds, err := fn(target)
	if err != nil {
		return domain.Result{}, err
	}
	return o.check(holds, operand), nil
}

// check returns a pass when the condition holds, and a failure carrying the
// payload otherwise.
func (o *Operators) check(holds bool, payload any) domain.Result {
	if holds {
		return domain.Pass()
	}
	return domain.Fail(payload)
}
