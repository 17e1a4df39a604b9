// Package stringifier contains the default [domain.Stringifier]
// implementation. It mirrors the string conversion of JavaScript values, which
// is what regular expressions in queries are expected to run against.
package stringifier

import (
	"context"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/vinicius-lino-figueiredo/whynomatch/domain"
	"github.com/vinicius-lino-figueiredo/whynomatch/pkg/structure"
)

// Stringifier implements [domain.Stringifier].
type Stringifier struct {
	serializer domain.Serializer
}

// NewStringifier returns a new implementation of [domain.Stringifier]. Objects
// are written with the given serializer.
func NewStringifier(serializer domain.Serializer) domain.Stringifier {
	return &Stringifier{serializer: serializer}
}

// Stringify implements [domain.Stringifier].
func (s *Stringifier) Stringify(v any) string {
	v, defined := structure.Concrete(v)
	if !defined {
		return "undefined"
	}

	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int8:
		return strconv.FormatInt(int64(t), 10)
	case int16:
		return strconv.FormatInt(int64(t), 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint:
		return strconv.FormatUint(uint64(t), 10)
	case uint8:
		return strconv.FormatUint(uint64(t), 10)
	case uint16:
		return strconv.FormatUint(uint64(t), 10)
	case uint32:
		return strconv.FormatUint(uint64(t), 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float32:
		return s.float(float64(t), 32)
	case float64:
		return s.float(t, 64)
	case time.Time:
		return t.Format(time.RFC3339Nano)
	case *regexp.Regexp:
		return "/" + t.String() + "/"
	case domain.WhereFunc:
		return "function"
	}

	switch structure.KindOf(v) {
	case structure.KindArray:
		list, _ := structure.List(v)
		parts := make([]string, len(list))
		for n, item := range list {
			// null and undefined become empty strings inside lists
			switch structure.KindOf(item) {
			case structure.KindNull, structure.KindUndefined:
				continue
			}
			parts[n] = s.Stringify(item)
		}
		return strings.Join(parts, ",")
	case structure.KindObject:
		b, err := s.serializer.Serialize(context.Background(), v)
		if err != nil {
			return "[object Object]"
		}
		return string(b)
	}

	return "[object Unknown]"
}

func (s *Stringifier) float(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	if abs := math.Abs(f); abs < 1e21 && abs >= 1e-6 {
		return strconv.FormatFloat(f, 'f', -1, bitSize)
	}
	res := strconv.FormatFloat(f, 'e', -1, bitSize)
	// JavaScript omits the leading zero of the exponent
	res = strings.Replace(res, "e+0", "e+", 1)
	return strings.Replace(res, "e-0", "e-", 1)
}
