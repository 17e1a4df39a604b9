// Package structure contains type-related operations, such as iterating over a
// value of type any, classifying it and converting numbers.
package structure

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/goccy/go-reflect"
	"github.com/vinicius-lino-figueiredo/whynomatch/domain"
)

// TagName is the struct tag read when iterating over struct fields.
const TagName = "whynomatch"

var (
	// ErrNilObj may be returned by [Seq] or [Seq2] when a nil value is
	// passed as argument.
	ErrNilObj = errors.New("nil object")
)

var docReflectType = reflect.TypeOf((*domain.Document)(nil)).Elem()

// ErrNonObject is returned by [Seq2] when a value that is neither a struct,
// map nor a [domain.Document] is passed as argument.
type ErrNonObject struct {
	Type reflect.Type
}

func (e ErrNonObject) Error() string {
	return fmt.Sprintf("%v is not an object", e.Type)
}

// ErrNonList is returned by [Seq] when a value that is neither a slice
// nor a array is passed as argument.
type ErrNonList struct {
	Type reflect.Type
}

func (e ErrNonList) Error() string {
	return fmt.Sprintf("%v is not a list", e.Type)
}

// Seq2 returns an iterator over the passed type. This method works for maps,
// structs and implementations of [domain.Document]. Plain maps are iterated in
// key order, structs in field declaration order and documents in their own
// order.
func Seq2(obj any) (iter.Seq2[string, any], int, error) {
	if obj == nil {
		return nil, 0, ErrNilObj
	}
	if i, length, err := fastPathStruct(obj); err != nil || i != nil {
		return i, length, err
	}
	return iterReflect(obj)
}

func fastPathStruct(obj any) (iter.Seq2[string, any], int, error) {
	if err := checkPrimitive(obj); err != nil {
		return nil, 0, err
	}
	return checkMaps(obj)
}

func checkPrimitive(obj any) error {
	switch obj.(type) {
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64,
		time.Time, *regexp.Regexp, []byte,
		domain.Getter, domain.WhereFunc:
		return ErrNonObject{Type: reflect.TypeOf(obj)}
	default:
		return nil
	}
}

func checkMaps(obj any) (iter.Seq2[string, any], int, error) {
	switch t := obj.(type) {
	case domain.Document:
		return t.Iter(), t.Len(), nil
	case map[string]any:
		return iterMap(t), len(t), nil
	case map[string]string:
		return iterMap(t), len(t), nil
	case map[string]bool:
		return iterMap(t), len(t), nil
	case map[string]int:
		return iterMap(t), len(t), nil
	case map[string]int64:
		return iterMap(t), len(t), nil
	case map[string]float64:
		return iterMap(t), len(t), nil
	case map[string][]any:
		return iterMap(t), len(t), nil
	case map[string]time.Time:
		return iterMap(t), len(t), nil
	case map[string]*regexp.Regexp:
		return iterMap(t), len(t), nil
	}
	return nil, 0, nil
}

func iterReflect(obj any) (iter.Seq2[string, any], int, error) {
	v := reflect.ValueNoEscapeOf(obj)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, 0, ErrNilObj
		}
		v = v.Elem()
	}

	if v.Type().Implements(docReflectType) {
		doc := v.Interface().(domain.Document)
		return doc.Iter(), doc.Len(), nil
	}

	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			break
		}
		i, l := iterReflectMap(v)
		return i, l, nil
	case reflect.Struct:
		i, l := iterReflectStruct(v)
		return i, l, nil
	}
	return nil, 0, ErrNonObject{Type: v.Type()}
}

func iterReflectMap(v reflect.Value) (iter.Seq2[string, any], int) {
	keys := v.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int {
		return strings.Compare(a.String(), b.String())
	})
	return func(yield func(string, any) bool) {
		for _, k := range keys {
			if !yield(k.String(), v.MapIndex(k).Interface()) {
				return
			}
		}
	}, len(keys)
}

func iterReflectStruct(v reflect.Value) (iter.Seq2[string, any], int) {
	fields := make([]struct {
		Key   string
		Value any
	}, 0, v.NumField())
	for k, v := range listStructFields(v) {
		fields = append(fields, struct {
			Key   string
			Value any
		}{Key: k, Value: v})
	}
	return func(yield func(string, any) bool) {
		for _, field := range fields {
			if !yield(field.Key, field.Value) {
				return
			}
		}
	}, len(fields)
}

func listStructFields(v reflect.Value) iter.Seq2[string, any] {
	var tag string
	var ok bool
	var field reflect.StructField
	var omitEmpty bool
	var omitZero bool
	return func(yield func(string, any) bool) {
		typ := v.Type()
		for n := range typ.NumField() {
			omitEmpty, omitZero = false, false
			field = typ.Field(n)

			if field.PkgPath != "" {
				continue
			}

			if tag, ok = field.Tag.Lookup(TagName); ok {
				if tag == "-" {
					continue
				}
				found := strings.IndexRune(tag, ',')
				if found >= 0 {
					for sub := range strings.SplitSeq(tag[found:], ",") {
						switch sub {
						case "omitempty":
							omitEmpty = true
						case "omitzero":
							omitZero = true
						}
					}
					tag = tag[:found]
				}
				if tag == "" {
					tag = field.Name
				}
			} else {
				tag = field.Name
			}
			switch {
			case omitZero:
				if v.Field(n).IsZero() {
					continue
				}
			case omitEmpty:
				switch field.Type.Kind() {
				case reflect.Chan, reflect.Func, reflect.Map,
					reflect.Ptr, reflect.UnsafePointer,
					reflect.Interface, reflect.Slice:
					if v.Field(n).IsNil() {
						continue
					}
				}
			}
			if !yield(tag, v.Field(n).Interface()) {
				return
			}
		}
	}
}

func iterMap[T any](m map[string]T) iter.Seq2[string, any] {
	keys := slices.Sorted(maps.Keys(m))
	return func(yield func(string, any) bool) {
		for _, k := range keys {
			if !yield(k, m[k]) {
				return
			}
		}
	}
}

// Seq returns an iterator over a slice or array of any type.
func Seq(obj any) (iter.Seq[any], int, error) {
	if obj == nil {
		return nil, 0, ErrNilObj
	}
	if i, length, err := fastPathList(obj); err != nil || i != nil {
		return i, length, err
	}
	return iterReflectList(obj)
}

func fastPathList(obj any) (iter.Seq[any], int, error) {
	if err := checkPrimitive(obj); err != nil {
		return nil, 0, ErrNonList{Type: reflect.TypeOf(obj)}
	}
	if _, ok := obj.(domain.Document); ok {
		return nil, 0, ErrNonList{Type: reflect.TypeOf(obj)}
	}
	return checkLists(obj)
}

func checkLists(obj any) (iter.Seq[any], int, error) {
	switch t := obj.(type) {
	case []any:
		return slices.Values(t), len(t), nil
	case []string:
		return iterSlice(t), len(t), nil
	case []bool:
		return iterSlice(t), len(t), nil
	case []int:
		return iterSlice(t), len(t), nil
	case []int64:
		return iterSlice(t), len(t), nil
	case []float64:
		return iterSlice(t), len(t), nil
	case []time.Time:
		return iterSlice(t), len(t), nil
	case []*regexp.Regexp:
		return iterSlice(t), len(t), nil
	case []domain.Document:
		return iterSlice(t), len(t), nil
	}
	return nil, 0, nil
}

func iterReflectList(obj any) (iter.Seq[any], int, error) {
	v := reflect.ValueNoEscapeOf(obj)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, 0, ErrNilObj
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
	default:
		return nil, 0, ErrNonList{Type: v.Type()}
	}
	length := v.Len()
	return func(yield func(any) bool) {
		for n := range length {
			if !yield(v.Index(n).Interface()) {
				return
			}
		}
	}, length, nil
}

func iterSlice[T any](m []T) iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, v := range m {
			if !yield(v) {
				return
			}
		}
	}
}

// List returns the given value as a []any, if it is a slice or an array. Values
// of type []any are returned as they are.
func List(obj any) ([]any, bool) {
	if l, ok := obj.([]any); ok {
		return l, true
	}
	seq, l, err := Seq(obj)
	if err != nil {
		return nil, false
	}
	return slices.AppendSeq(make([]any, 0, l), seq), true
}

// AsFloat converts any built-in number to float64 and returns a flag that
// informs if the argument is a number at all.
func AsFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	default:
		return 0, false
	}
}
