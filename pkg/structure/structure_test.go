package structure_test

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"testing"
	"time"

	"github.com/goccy/go-reflect"
	"github.com/stretchr/testify/suite"
	"github.com/vinicius-lino-figueiredo/whynomatch/adapter/data"
	"github.com/vinicius-lino-figueiredo/whynomatch/domain"
	"github.com/vinicius-lino-figueiredo/whynomatch/pkg/structure"
)

type getter struct {
	value   any
	defined bool
}

func (g getter) Get() (any, bool) { return g.value, g.defined }

type StructureTestSuite struct {
	suite.Suite
}

func (s *StructureTestSuite) collect(obj any) (map[string]any, int) {
	seq, l, err := structure.Seq2(obj)
	s.Require().NoError(err, "%T", obj)
	return maps.Collect(seq), l
}

func (s *StructureTestSuite) keys(obj any) []string {
	seq, _, err := structure.Seq2(obj)
	s.Require().NoError(err, "%T", obj)
	var keys []string
	for k := range seq {
		keys = append(keys, k)
	}
	return keys
}

func (s *StructureTestSuite) TestSeq2Shapes() {
	rgx := regexp.MustCompile(`^a`)
	when := time.UnixMilli(16)
	type person struct {
		Name string
		Age  uint8 `whynomatch:"age"`
	}
	testCases := []struct {
		name string
		in   any
		want map[string]any
	}{
		{name: "MapAny", in: map[string]any{"a": nil, "b": []any{1}}, want: map[string]any{"a": nil, "b": []any{1}}},
		{name: "MapString", in: map[string]string{"a": "0"}, want: map[string]any{"a": "0"}},
		{name: "MapInt64", in: map[string]int64{"a": -6}, want: map[string]any{"a": int64(-6)}},
		{name: "MapTime", in: map[string]time.Time{"a": when}, want: map[string]any{"a": when}},
		{name: "MapRegex", in: map[string]*regexp.Regexp{"a": rgx}, want: map[string]any{"a": rgx}},
		{name: "MapReflected", in: map[string]float32{"a": 12.5}, want: map[string]any{"a": float32(12.5)}},
		{name: "MapBytes", in: map[string][]byte{"a": []byte("b")}, want: map[string]any{"a": []byte("b")}},
		{name: "MapPointer", in: &map[string]bool{"a": true}, want: map[string]any{"a": true}},
		{name: "Document", in: data.M{"a": 1}, want: map[string]any{"a": 1}},
		{name: "OrderedDocument", in: data.NewD(data.E{Key: "a", Value: 1}), want: map[string]any{"a": 1}},
		{name: "Struct", in: person{Name: "Ann", Age: 3}, want: map[string]any{"Name": "Ann", "age": uint8(3)}},
		{name: "StructPointer", in: &person{Name: "Bob"}, want: map[string]any{"Name": "Bob", "age": uint8(0)}},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			res, l := s.collect(tc.in)
			s.Equal(len(tc.want), l)
			s.Equal(tc.want, res)
		})
	}
}

// [*data.M] needs a pointer to a pointer to be dereferenced twice.
func (s *StructureTestSuite) TestSeq2DocumentPointer() {
	m := &data.M{"a": "b", "c": 4}
	res, l := s.collect(&m)
	s.Equal(2, l)
	s.Equal(map[string]any{"a": "b", "c": 4}, res)
}

func (s *StructureTestSuite) TestSeq2Tags() {
	testCase := struct {
		unexported      int
		Plain           string
		Renamed         bool    `whynomatch:"renamed"`
		Skipped         int     `whynomatch:"-"`
		EmptyKept       any     `whynomatch:",omitempty"`
		EmptyOmitted    any     `whynomatch:",omitempty"`
		EmptyNotNilable int     `whynomatch:",omitempty"`
		ZeroKept        float64 `whynomatch:"zk,omitzero"`
		ZeroOmitted     any     `whynomatch:",omitzero"`
		ZeroIntOmitted  int     `whynomatch:",omitzero"`
	}{
		unexported:      1,
		Plain:           "yes",
		Renamed:         true,
		Skipped:         2,
		EmptyKept:       "not nil",
		EmptyNotNilable: 0,
		ZeroKept:        6.7,
	}
	res, l := s.collect(testCase)
	s.Equal(5, l)
	s.Equal(map[string]any{
		"Plain":           "yes",
		"renamed":         true,
		"EmptyKept":       "not nil",
		"EmptyNotNilable": 0,
		"zk":              6.7,
	}, res)
}

func (s *StructureTestSuite) TestSeq2Order() {
	s.Equal([]string{"a", "b", "c"}, s.keys(map[string]int{"c": 1, "a": 2, "b": 3}))
	s.Equal([]string{"y", "z"}, s.keys(map[string]uint8{"z": 1, "y": 2}))
	s.Equal([]string{"Z", "A", "M"}, s.keys(struct{ Z, A, M int }{}))
	s.Equal([]string{"z", "a"}, s.keys(data.NewD(data.E{Key: "z"}, data.E{Key: "a"})))
}

func (s *StructureTestSuite) TestSeq2Stop() {
	for _, obj := range []any{
		struct{ A, B, C string }{},
		map[string]any{"a": "b", "c": "d"},
		map[string][]int{"a": nil, "c": nil},
	} {
		seq, _, err := structure.Seq2(obj)
		s.Require().NoError(err)
		n := 0
		for range seq {
			n++
			break
		}
		s.Equal(1, n)
	}
}

func (s *StructureTestSuite) TestSeq2NonObjects() {
	values := []any{
		1, uint64(1), 1.5, "a", true, time.Now(), regexp.MustCompile(`^abc`),
		[]byte("gief"), []any{}, domain.Undefined{}, new(string),
		map[int]any{0: nil}, map[bool]string{false: ""}, make(chan int),
	}
	for _, v := range values {
		s.Run(fmt.Sprintf("%T", v), func() {
			seq, l, err := structure.Seq2(v)
			s.Nil(seq)
			s.Zero(l)
			var e structure.ErrNonObject
			s.ErrorAs(err, &e)
		})
	}

	_, _, err := structure.Seq2(new(string))
	s.ErrorIs(err, structure.ErrNonObject{Type: reflect.TypeOf("")})
}

func (s *StructureTestSuite) TestSeq2Nil() {
	for _, v := range []any{nil, (*map[string]string)(nil)} {
		seq, l, err := structure.Seq2(v)
		s.ErrorIs(err, structure.ErrNilObj)
		s.Zero(l)
		s.Nil(seq)
	}
}

func (s *StructureTestSuite) TestSeqShapes() {
	rgx := regexp.MustCompile(`1`)
	testCases := []struct {
		name string
		in   any
		want []any
	}{
		{name: "Any", in: []any{"a", 1, false}, want: []any{"a", 1, false}},
		{name: "Strings", in: []string{"1", "2"}, want: []any{"1", "2"}},
		{name: "Ints", in: []int{-1, 2}, want: []any{-1, 2}},
		{name: "Floats", in: []float64{6.7}, want: []any{6.7}},
		{name: "Regexps", in: []*regexp.Regexp{rgx}, want: []any{rgx}},
		{name: "Documents", in: []domain.Document{data.M{}}, want: []any{data.M{}}},
		{name: "Reflected", in: []int16{2, -3}, want: []any{int16(2), int16(-3)}},
		{name: "Array", in: [...]uint{0, 1}, want: []any{uint(0), uint(1)}},
		{name: "Bytes", in: [][]byte{[]byte("a")}, want: []any{[]byte("a")}},
		{name: "Pointer", in: &[]bool{true}, want: []any{true}},
		{name: "Empty", in: []any{}, want: []any{}},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			seq, l, err := structure.Seq(tc.in)
			s.Require().NoError(err)
			s.Equal(len(tc.want), l)
			s.Equal(tc.want, slices.AppendSeq([]any{}, seq))
		})
	}
}

func (s *StructureTestSuite) TestSeqNonLists() {
	values := []any{
		1, "a", time.Now(), regexp.MustCompile(`^abc`), []byte("ab"),
		data.M{}, map[string]any{}, struct{}{}, new(string),
	}
	for _, v := range values {
		s.Run(fmt.Sprintf("%T", v), func() {
			seq, l, err := structure.Seq(v)
			s.Nil(seq)
			s.Zero(l)
			var e structure.ErrNonList
			s.ErrorAs(err, &e)
		})
	}

	seq, l, err := structure.Seq((*[]any)(nil))
	s.ErrorIs(err, structure.ErrNilObj)
	s.Zero(l)
	s.Nil(seq)
}

func (s *StructureTestSuite) TestErrorMessages() {
	s.EqualError(structure.ErrNonObject{Type: reflect.TypeOf("")}, "string is not an object")
	s.EqualError(structure.ErrNonList{Type: reflect.TypeOf(0)}, "int is not a list")
}

func (s *StructureTestSuite) TestKindOf() {
	type named struct{ A int }
	testCases := []struct {
		value any
		kind  structure.Kind
	}{
		{value: domain.Undefined{}, kind: structure.KindUndefined},
		{value: nil, kind: structure.KindNull},
		{value: true, kind: structure.KindBool},
		{value: 1, kind: structure.KindNumber},
		{value: uint16(1), kind: structure.KindNumber},
		{value: 1.5, kind: structure.KindNumber},
		{value: "a", kind: structure.KindString},
		{value: time.Now(), kind: structure.KindTime},
		{value: []any{1}, kind: structure.KindArray},
		{value: []string{"a"}, kind: structure.KindArray},
		{value: [2]int{}, kind: structure.KindArray},
		{value: data.M{}, kind: structure.KindObject},
		{value: map[string]int{}, kind: structure.KindObject},
		{value: named{}, kind: structure.KindObject},
		{value: &named{}, kind: structure.KindObject},
		{value: regexp.MustCompile(`a`), kind: structure.KindRegex},
		{value: domain.WhereFunc(func(any) (bool, error) { return true, nil }), kind: structure.KindFunc},
		{value: make(chan int), kind: structure.KindUnknown},
		{value: map[int]int{}, kind: structure.KindUnknown},
	}
	for _, tc := range testCases {
		s.Run(fmt.Sprintf("%T", tc.value), func() {
			s.Equal(tc.kind, structure.KindOf(tc.value))
		})
	}
}

func (s *StructureTestSuite) TestKindOfGetter() {
	s.Equal(structure.KindNumber, structure.KindOf(getter{value: 1, defined: true}))
	s.Equal(structure.KindNull, structure.KindOf(getter{value: nil, defined: true}))
	s.Equal(structure.KindUndefined, structure.KindOf(getter{value: 1, defined: false}))
	s.Equal(structure.KindUndefined, structure.KindOf(getter{value: domain.Undefined{}, defined: true}))
}

func (s *StructureTestSuite) TestKindString() {
	s.Equal("undefined", structure.KindUndefined.String())
	s.Equal("object", structure.KindObject.String())
	s.Equal("regex", structure.KindRegex.String())
	s.Equal("unknown", structure.Kind(200).String())
}

func (s *StructureTestSuite) TestConcrete() {
	v, ok := structure.Concrete(1)
	s.True(ok)
	s.Equal(1, v)

	v, ok = structure.Concrete(getter{value: getter{value: "a", defined: true}, defined: true})
	s.True(ok)
	s.Equal("a", v)

	v, ok = structure.Concrete(domain.Undefined{})
	s.False(ok)
	s.Nil(v)
}

func (s *StructureTestSuite) TestAsFloat() {
	valid := []any{
		int(0), int8(1), int16(2), int32(3), int64(4), uint(5),
		uint8(6), uint16(7), uint32(8), uint64(9), float32(10),
		float64(11),
	}
	for n, v := range valid {
		f, ok := structure.AsFloat(v)
		s.True(ok)
		s.Equal(float64(n), f)
	}

	for _, v := range []any{"1", true, nil, []any{1}} {
		f, ok := structure.AsFloat(v)
		s.False(ok)
		s.Zero(f)
	}
}

func (s *StructureTestSuite) TestList() {
	l := []any{1, 2}
	res, ok := structure.List(l)
	s.True(ok)
	s.Equal(l, res)

	res, ok = structure.List([]int{1, 2})
	s.True(ok)
	s.Equal([]any{1, 2}, res)

	res, ok = structure.List(data.M{"a": 1})
	s.False(ok)
	s.Nil(res)

	_, ok = structure.List([]byte("ab"))
	s.False(ok)
}

func TestStructureTestSuite(t *testing.T) {
	suite.Run(t, new(StructureTestSuite))
}
