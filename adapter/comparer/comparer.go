// Package comparer contains the default [domain.Comparer] implementation.
package comparer

import (
	"cmp"
	"math"
	"math/big"
	"regexp"
	"slices"
	"time"

	"github.com/vinicius-lino-figueiredo/whynomatch/domain"
	"github.com/vinicius-lino-figueiredo/whynomatch/pkg/structure"
)

// rank gives the position of each kind in the total order. Kinds missing here
// cannot be compared.
var rank = map[structure.Kind]int{
	structure.KindUndefined: 0,
	structure.KindNull:      1,
	structure.KindNumber:    2,
	structure.KindString:    3,
	structure.KindBool:      4,
	structure.KindTime:      5,
	structure.KindArray:     6,
	structure.KindObject:    7,
	structure.KindRegex:     8,
}

// Comparer implements [domain.Comparer]. Values are ordered by type first:
// undefined < null < numbers < strings < booleans < dates < arrays < objects
// < regular expressions.
type Comparer struct{}

// NewComparer returns a new implementation of [domain.Comparer].
func NewComparer() domain.Comparer {
	return &Comparer{}
}

// Comparable implements [domain.Comparer].
func (c *Comparer) Comparable(a, b any) bool {
	ka := structure.KindOf(a)
	switch ka {
	case structure.KindNumber, structure.KindString, structure.KindTime:
		return ka == structure.KindOf(b)
	}
	return false
}

// Compare implements [domain.Comparer].
func (c *Comparer) Compare(a, b any) (int, error) {
	ka, kb := structure.KindOf(a), structure.KindOf(b)
	ra, okA := rank[ka]
	rb, okB := rank[kb]
	if !okA || !okB {
		return 0, domain.ErrCannotCompare{A: a, B: b}
	}
	if ra != rb {
		return cmp.Compare(ra, rb), nil
	}

	a, _ = structure.Concrete(a)
	b, _ = structure.Concrete(b)

	switch ka {
	case structure.KindNumber:
		x, _ := asNumber(a)
		y, _ := asNumber(b)
		return compareNumbers(x, y), nil
	case structure.KindString:
		return cmp.Compare(a.(string), b.(string)), nil
	case structure.KindBool:
		return compareBool(a.(bool), b.(bool)), nil
	case structure.KindTime:
		return a.(time.Time).Compare(b.(time.Time)), nil
	case structure.KindArray:
		x, _ := structure.List(a)
		y, _ := structure.List(b)
		return c.compareArray(x, y)
	case structure.KindObject:
		return c.compareDoc(asObject(a), asObject(b))
	case structure.KindRegex:
		return cmp.Compare(a.(*regexp.Regexp).String(), b.(*regexp.Regexp).String()), nil
	}
	// undefined and null hold no value
	return 0, nil
}

func (c *Comparer) compareArray(a, b []any) (int, error) {
	for i := range min(len(a), len(b)) {
		if comp, err := c.Compare(a[i], b[i]); err != nil || comp != 0 {
			return comp, err
		}
	}
	// equal prefix, the shorter list goes first
	return cmp.Compare(len(a), len(b)), nil
}

// compareDoc walks both documents in key order, comparing values first, then
// sizes and finally the key names.
func (c *Comparer) compareDoc(a, b map[string]any) (int, error) {
	aKeys := sortedKeys(a)
	bKeys := sortedKeys(b)

	for i := range min(len(aKeys), len(bKeys)) {
		if comp, err := c.Compare(a[aKeys[i]], b[bKeys[i]]); err != nil || comp != 0 {
			return comp, err
		}
	}

	if comp := cmp.Compare(len(aKeys), len(bKeys)); comp != 0 {
		return comp, nil
	}
	return slices.Compare(aKeys, bKeys), nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	}
	return -1
}

// compareNumbers orders NaN, represented by a nil [big.Float], before every
// other number.
func compareNumbers(a, b *big.Float) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return a.Cmp(b)
}

func asObject(v any) map[string]any {
	seq, l, err := structure.Seq2(v)
	if err != nil {
		return nil
	}
	res := make(map[string]any, l)
	for k, v := range seq {
		res[k] = v
	}
	return res
}

// asNumber returns v as a [big.Float], so that wide integers and floats are
// compared without losing precision. NaN has no value, so it returns nil and
// true.
func asNumber(v any) (*big.Float, bool) {
	r := new(big.Float)
	switch n := v.(type) {
	case int:
		return r.SetInt64(int64(n)), true
	case int8:
		return r.SetInt64(int64(n)), true
	case int16:
		return r.SetInt64(int64(n)), true
	case int32:
		return r.SetInt64(int64(n)), true
	case int64:
		return r.SetInt64(n), true
	case uint:
		return r.SetUint64(uint64(n)), true
	case uint8:
		return r.SetUint64(uint64(n)), true
	case uint16:
		return r.SetUint64(uint64(n)), true
	case uint32:
		return r.SetUint64(uint64(n)), true
	case uint64:
		return r.SetUint64(n), true
	case float32:
		return floatNumber(r, float64(n)), true
	case float64:
		return floatNumber(r, n), true
	}
	return nil, false
}

func floatNumber(r *big.Float, f float64) *big.Float {
	if math.IsNaN(f) {
		return nil
	}
	return r.SetFloat64(f)
}
