package structure

import (
	"regexp"
	"time"

	"github.com/vinicius-lino-figueiredo/whynomatch/domain"
)

// Kind is the tag of a dynamic value. Every value flowing through the
// evaluator belongs to exactly one Kind.
type Kind uint8

// Supported kinds.
const (
	KindUndefined Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindTime
	KindArray
	KindObject
	KindRegex
	KindFunc
	KindUnknown
)

var kindNames = [...]string{
	KindUndefined: "undefined",
	KindNull:      "null",
	KindBool:      "bool",
	KindNumber:    "number",
	KindString:    "string",
	KindTime:      "time",
	KindArray:     "array",
	KindObject:    "object",
	KindRegex:     "regex",
	KindFunc:      "func",
	KindUnknown:   "unknown",
}

// String implements [fmt.Stringer].
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[KindUnknown]
}

// KindOf classifies v. Defined [domain.Getter] values are classified by the
// value they hold.
func KindOf(v any) Kind {
	for {
		g, ok := v.(domain.Getter)
		if !ok {
			break
		}
		if v, ok = g.Get(); !ok {
			return KindUndefined
		}
	}

	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return KindNumber
	case string:
		return KindString
	case time.Time:
		return KindTime
	case *regexp.Regexp:
		return KindRegex
	case domain.WhereFunc:
		return KindFunc
	case []any:
		return KindArray
	case domain.Document:
		return KindObject
	}

	if _, _, err := Seq(v); err == nil {
		return KindArray
	}
	if _, _, err := Seq2(v); err == nil {
		return KindObject
	}
	return KindUnknown
}

// Concrete unwraps [domain.Getter] values, returning the held value and
// whether it is defined.
func Concrete(v any) (any, bool) {
	for {
		g, ok := v.(domain.Getter)
		if !ok {
			return v, true
		}
		if v, ok = g.Get(); !ok {
			return nil, false
		}
	}
}
