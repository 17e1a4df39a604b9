package operator

import (
	"strconv"
	"strings"

	"github.com/vinicius-lino-figueiredo/whynomatch/pkg/structure"
)

// looseEqualsBool reports whether b == v under the loose equality of
// JavaScript, which is how $exists reads operands such as 1, 0 or "".
// Booleans are compared as the numbers 1 and 0. Strings and lists are first
// turned into numbers; null, undefined and every other value are never equal.
func (o *Operators) looseEqualsBool(b bool, v any) bool {
	n := 0.0
	if b {
		n = 1
	}

	v, _ = structure.Concrete(v)
	switch structure.KindOf(v) {
	case structure.KindBool:
		return v.(bool) == b
	case structure.KindNumber:
		f, _ := structure.AsFloat(v)
		return f == n
	case structure.KindString:
		return o.looseNumberEquals(v.(string), n)
	case structure.KindArray:
		// lists are compared through their string form: [] is "", [1] is "1"
		return o.looseNumberEquals(o.stringifier.Stringify(v), n)
	default:
		return false
	}
}

func (o *Operators) looseNumberEquals(s string, n float64) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return n == 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false
	}
	return f == n
}
