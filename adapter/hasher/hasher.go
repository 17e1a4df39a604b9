// Package hasher contains a json based implementation of [domain.Hasher]. Values
// that are equal according to the default comparer produce the same hash:
// numbers are hashed by value, dates in UTC, objects with sorted keys and
// regular expressions by their source.
package hasher

import (
	"bytes"
	"encoding/json"
	"hash/fnv"
	"math"
	"regexp"
	"slices"
	"strconv"
	"time"

	"github.com/goccy/go-reflect"
	"github.com/vinicius-lino-figueiredo/whynomatch/domain"
	"github.com/vinicius-lino-figueiredo/whynomatch/pkg/structure"
)

// Hasher implements [domain.Hasher].
type Hasher struct{}

// NewHasher returns a new implementation of [domain.Hasher].
func NewHasher() domain.Hasher {
	return &Hasher{}
}

// Hash implements domain.Hasher.
func (h *Hasher) Hash(value any) (uint64, error) {
	canonical := h.canonicalize(value)

	b, err := json.Marshal(canonical)
	if err != nil {
		return 0, err
	}

	hasher := fnv.New64a()

	_, _ = hasher.Write(b) // fnv.sum64a.Write never returns error

	return hasher.Sum64(), nil
}

func (h *Hasher) canonicalize(a any) any {
	a, defined := structure.Concrete(a)
	if !defined {
		return marker{"undefined"}
	}

	if h.straightforward(a) {
		return a
	}

	if n, ok := structure.AsFloat(a); ok {
		// json has no representation for these
		switch {
		case math.IsNaN(n):
			return marker{"NaN"}
		case math.IsInf(n, 0):
			return marker{strconv.FormatFloat(n, 'f', -1, 64)}
		case n == 0:
			// -0 equals 0
			return 0.0
		}
		return n
	}

	switch t := a.(type) {
	case time.Time:
		return marker{t.UTC().Format(time.RFC3339Nano)}
	case *regexp.Regexp:
		return marker{"/" + t.String() + "/"}
	}

	if i, ok := h.items(a); ok {
		return i
	}

	if f, ok := h.fields(a); ok {
		return f
	}

	v := reflect.ValueOf(a)
	if v.IsValid() {
		switch v.Kind() {
		case reflect.Ptr, reflect.Chan, reflect.Func:
			if v.IsNil() {
				return nil
			}
			return v.Pointer()
		}
	}
	return a
}

func (h *Hasher) fields(a any) (object, bool) {
	seq, l, err := structure.Seq2(a)
	if err != nil {
		return nil, false
	}
	pairs := make(object, 0, l)
	for k, v := range seq {
		pairs = append(pairs, keyValuePair{key: k, val: h.canonicalize(v)})
	}
	return pairs, true
}

func (h *Hasher) items(a any) ([]any, bool) {
	if _, ok := a.(domain.Document); ok {
		return nil, false
	}
	arr, ok := structure.List(a)
	if !ok {
		return nil, false
	}
	res := make([]any, len(arr))
	for n, v := range arr {
		res[n] = h.canonicalize(v)
	}
	return res, true
}

func (h *Hasher) straightforward(a any) bool {
	if a == nil {
		return true
	}
	switch a.(type) {
	case bool, string:
		return true
	default:
		return false
	}
}

// marker wraps values that would otherwise collide with a plain string.
type marker struct {
	V string `json:"$"`
}

type keyValuePair struct {
	key string
	val any
}

type object []keyValuePair

func (o object) MarshalJSON() (r []byte, err error) {
	buf := bytes.NewBuffer(append(make([]byte, 0, 1024), '{'))

	sorted := slices.SortedFunc(slices.Values(o), func(a, b keyValuePair) int {
		return bytes.Compare([]byte(a.key), []byte(b.key))
	})

	for n, item := range sorted {
		b, _ := json.Marshal(item.key)
		_, _ = buf.Write(b)
		_, _ = buf.WriteRune(':')
		v, err := json.Marshal(item.val)
		if err != nil {
			return nil, err
		}
		_, _ = buf.Write(v)

		if n < len(sorted)-1 {
			_, _ = buf.WriteRune(',')
		}
	}
	_, _ = buf.WriteRune('}')

	return buf.Bytes(), nil
}
