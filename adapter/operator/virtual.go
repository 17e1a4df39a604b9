package operator

import (
	"github.com/vinicius-lino-figueiredo/whynomatch/domain"
)

// nested follows the dot notation address in key and evaluates operand against
// the value found there. Unreachable addresses evaluate against
// [domain.Undefined].
func (o *Operators) nested(ev domain.Evaluator, target, operand any, key string) (domain.Result, error) {
	addr, err := o.fieldNavigator.GetAddress(key)
	if err != nil {
		return domain.Result{}, err
	}

	field, err := o.fieldNavigator.GetField(target, addr...)
	if err != nil {
		return domain.Result{}, err
	}

	var sub any = domain.Undefined{}
	if value, defined := field.Get(); defined {
		sub = value
	}

	return ev.Match(sub, operand)
}
