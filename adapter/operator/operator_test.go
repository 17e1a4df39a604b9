package operator

import (
	"errors"
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/vinicius-lino-figueiredo/whynomatch/adapter/data"
	"github.com/vinicius-lino-figueiredo/whynomatch/domain"
)

type M = data.M

type A = []any

var undefined = domain.Undefined{}

type evaluatorMock struct{ mock.Mock }

// Evaluate implements [domain.Evaluator].
func (e *evaluatorMock) Evaluate(target, query any) (domain.Document, error) {
	call := e.Called(target, query)
	doc, _ := call.Get(0).(domain.Document)
	return doc, call.Error(1)
}

// Match implements [domain.Evaluator].
func (e *evaluatorMock) Match(target, query any) (domain.Result, error) {
	call := e.Called(target, query)
	return call.Get(0).(domain.Result), call.Error(1)
}

type comparerMock struct{ mock.Mock }

// Comparable implements [domain.Comparer].
func (c *comparerMock) Comparable(a any, b any) bool {
	return c.Called(a, b).Bool(0)
}

// Compare implements [domain.Comparer].
func (c *comparerMock) Compare(a any, b any) (int, error) {
	call := c.Called(a, b)
	return call.Int(0), call.Error(1)
}

type fieldNavigatorMock struct{ mock.Mock }

// GetAddress implements [domain.FieldNavigator].
func (f *fieldNavigatorMock) GetAddress(field string) ([]string, error) {
	call := f.Called(field)
	addr, _ := call.Get(0).([]string)
	return addr, call.Error(1)
}

// GetField implements [domain.FieldNavigator].
func (f *fieldNavigatorMock) GetField(obj any, addr ...string) (domain.Getter, error) {
	call := f.Called(obj, addr)
	g, _ := call.Get(0).(domain.Getter)
	return g, call.Error(1)
}

type OperatorsTestSuite struct {
	suite.Suite
	o  *Operators
	ev *evaluatorMock
}

func (s *OperatorsTestSuite) SetupTest() {
	s.o = NewOperators()
	s.ev = new(evaluatorMock)
}

func (s *OperatorsTestSuite) TearDownTest() {
	s.ev.AssertExpectations(s.T())
}

func (s *OperatorsTestSuite) apply(name string, target, operand any) (domain.Result, error) {
	tables := []map[string]domain.Operator{
		s.o.Comparison(), s.o.Array(), s.o.Logical(), s.o.Virtual(),
	}
	for _, table := range tables {
		if op, ok := table[name]; ok {
			return op.Apply(s.ev, target, operand, name)
		}
	}
	s.FailNow("unknown operator", name)
	return domain.Result{}, nil
}

func (s *OperatorsTestSuite) Passes(name string, target, operand any) {
	s.T().Helper()
	res, err := s.apply(name, target, operand)
	s.NoError(err)
	s.False(res.Failed(), "%s: %v against %v should pass", name, operand, target)
}

func (s *OperatorsTestSuite) Fails(name string, target, operand any) {
	s.T().Helper()
	res, err := s.apply(name, target, operand)
	s.NoError(err)
	s.True(res.Failed(), "%s: %v against %v should fail", name, operand, target)
	s.Equal(operand, res.Payload())
}

func (s *OperatorsTestSuite) InvalidOperand(name string, operand any) {
	s.T().Helper()
	_, err := s.apply(name, "target", operand)
	e := domain.ErrInvalidOperand{}
	s.ErrorAs(err, &e)
	s.Equal(name, e.Operator)
}

func (s *OperatorsTestSuite) TestTables() {
	s.Len(s.o.Comparison(), 10)
	s.Len(s.o.Array(), 4)
	s.Len(s.o.Logical(), 5)
	s.Len(s.o.Virtual(), 1)
	s.Contains(s.o.Virtual(), domain.NestedOperator)
}

func (s *OperatorsTestSuite) TestEq() {
	s.Passes("$eq", 5, 5)
	s.Passes("$eq", 5, 5.0)
	s.Passes("$eq", A{1, "a"}, A{1, "a"})
	s.Passes("$eq", M{"a": 1}, data.NewD(data.E{Key: "a", Value: 1}))
	s.Passes("$eq", nil, nil)
	s.Passes("$eq", undefined, undefined)

	s.Fails("$eq", 5, 6)
	s.Fails("$eq", undefined, nil)
	s.Fails("$eq", "5", 5)
	s.Fails("$eq", A{1, "a"}, A{"a", 1})
}

func (s *OperatorsTestSuite) TestNe() {
	s.Passes("$ne", 5, 6)
	s.Passes("$ne", undefined, 6)
	s.Fails("$ne", 5, 5)
}

func (s *OperatorsTestSuite) TestCompareError() {
	c := new(comparerMock)
	s.o.comparer = c
	errCmp := errors.New("compare error")
	c.On("Compare", 1, 2).Return(0, errCmp).Twice()
	c.On("Comparable", 1, 2).Return(true).Once()

	_, err := s.apply("$eq", 1, 2)
	s.ErrorIs(err, errCmp)
	_, err = s.apply("$gt", 1, 2)
	s.ErrorIs(err, errCmp)
	c.AssertExpectations(s.T())
}

func (s *OperatorsTestSuite) TestOrdering() {
	s.Passes("$lt", 80, 100)
	s.Passes("$lte", 100, 100)
	s.Passes("$gt", 91, 90)
	s.Passes("$gte", 90, 90.0)
	s.Passes("$lt", "abc", "abd")
	s.Passes("$gt", time.UnixMilli(2), time.UnixMilli(1))

	s.Fails("$gt", 80, 90)
	s.Fails("$lt", 100, 100)
	s.Fails("$gte", 89.9, 90)
	s.Fails("$lte", "b", "a")
}

// Values of different kinds are never ordered against each other.
func (s *OperatorsTestSuite) TestOrderingNonComparable() {
	for _, name := range []string{"$lt", "$lte", "$gt", "$gte"} {
		s.Fails(name, "5", 5)
		s.Fails(name, undefined, 5)
		s.Fails(name, nil, nil)
		s.Fails(name, A{1}, A{1})
		s.Fails(name, true, false)
	}
}

func (s *OperatorsTestSuite) TestExists() {
	s.Passes("$exists", 1, true)
	s.Passes("$exists", nil, true)
	s.Passes("$exists", undefined, false)
	s.Fails("$exists", undefined, true)
	s.Fails("$exists", 1, false)
}

// The operand is read with loose equality.
func (s *OperatorsTestSuite) TestExistsLooseOperand() {
	testCases := []struct {
		operand any
		defined bool
		passes  bool
	}{
		{operand: 1, defined: true, passes: true},
		{operand: 0, defined: false, passes: true},
		{operand: 1.0, defined: false, passes: false},
		{operand: 2, defined: true, passes: false},
		{operand: 2, defined: false, passes: false},
		{operand: "1", defined: true, passes: true},
		{operand: " 1 ", defined: true, passes: true},
		{operand: "", defined: false, passes: true},
		{operand: "0", defined: false, passes: true},
		{operand: "yes", defined: true, passes: false},
		{operand: "yes", defined: false, passes: false},
		{operand: nil, defined: false, passes: false},
		{operand: nil, defined: true, passes: false},
		{operand: A{}, defined: false, passes: true},
		{operand: A{1}, defined: true, passes: true},
		{operand: A{A{0}}, defined: false, passes: true},
		{operand: A{nil}, defined: false, passes: true},
		{operand: A{true}, defined: true, passes: false},
		{operand: A{1, 1}, defined: true, passes: false},
		{operand: M{}, defined: true, passes: false},
		{operand: M{}, defined: false, passes: false},
	}

	for _, tc := range testCases {
		var target any = undefined
		if tc.defined {
			target = "value"
		}
		res, err := s.apply("$exists", target, tc.operand)
		s.NoError(err)
		s.Equal(!tc.passes, res.Failed(), "$exists: %#v, defined: %v", tc.operand, tc.defined)
	}
}

func (s *OperatorsTestSuite) TestRegex() {
	s.Passes("$regex", "hello world", regexp.MustCompile("wor"))
	s.Passes("$regex", "hello world", "^hel")
	s.Passes("$regex", 12345, "^\\d+$")
	s.Passes("$regex", A{"a", "b"}, "^a,b$")
	s.Passes("$regex", undefined, "^undefined$")
	s.Passes("$regex", nil, "null")

	s.Fails("$regex", "hello", regexp.MustCompile("^world"))
	s.Fails("$regex", "hello", "^world")
}

func (s *OperatorsTestSuite) TestRegexInvalidOperand() {
	s.InvalidOperand("$regex", 5)
	s.InvalidOperand("$regex", A{"a"})
	s.InvalidOperand("$regex", "(")
}

func (s *OperatorsTestSuite) TestMod() {
	s.Passes("$mod", 10, A{3, 1})
	s.Passes("$mod", 10.5, A{5, 0.5})
	s.Passes("$mod", -7, A{3, -1})
	s.Passes("$mod", 9, []int{3, 0})

	s.Fails("$mod", 10, A{3, 2})
	s.Fails("$mod", "10", A{3, 1})
	s.Fails("$mod", undefined, A{3, 1})
	s.Fails("$mod", 10, A{0, 0})
}

func (s *OperatorsTestSuite) TestModInvalidOperand() {
	s.InvalidOperand("$mod", 3)
	s.InvalidOperand("$mod", A{3})
	s.InvalidOperand("$mod", A{3, 1, 2})
	s.InvalidOperand("$mod", A{"3", 1})
	s.InvalidOperand("$mod", A{3, nil})
}

func (s *OperatorsTestSuite) TestWhere() {
	var received any
	var isAdult domain.WhereFunc = func(v any) (bool, error) {
		received = v
		age, _ := v.(int)
		return age >= 18, nil
	}

	s.Passes("$where", 20, isAdult)
	s.Equal(20, received)

	// functions cannot be compared, so the payload is only checked for
	// presence
	res, err := s.apply("$where", 12, isAdult)
	s.NoError(err)
	s.True(res.Failed())
	s.NotNil(res.Payload())
	s.Equal(12, received)
}

func (s *OperatorsTestSuite) TestWhereError() {
	errWhere := errors.New("predicate error")
	var broken domain.WhereFunc = func(any) (bool, error) {
		return false, errWhere
	}
	_, err := s.apply("$where", 1, broken)
	s.Equal(errWhere, err)
}

// Strings are never evaluated as code.
func (s *OperatorsTestSuite) TestWhereRejectsStrings() {
	s.InvalidOperand("$where", "this.age > 18")
	s.InvalidOperand("$where", "function () { return true }")
	s.InvalidOperand("$where", true)
	s.InvalidOperand("$where", domain.WhereFunc(nil))
}

func (s *OperatorsTestSuite) TestIn() {
	s.Passes("$in", A{"Scientist"}, A{"Scientist"})
	s.Passes("$in", "Scientist", A{"Doctor", "Scientist"})
	s.Passes("$in", A{"a", 2}, A{1, 2, 3})
	s.Passes("$in", 2, A{1, 2.0, 3})
	s.Passes("$in", nil, A{nil})
	s.Passes("$in", "Scientist", A{regexp.MustCompile("^Sci")})
	s.Passes("$in", M{"a": 1}, A{M{"a": 1}})
	s.Passes("$in", A{A{1}}, A{A{1}})

	s.Fails("$in", A{"Scientist"}, A{"Doctor"})
	s.Fails("$in", "x", A{})
	s.Fails("$in", undefined, A{nil})
	s.Fails("$in", 5, A{regexp.MustCompile("^6")})
}

func (s *OperatorsTestSuite) TestNin() {
	s.Passes("$nin", A{"Scientist"}, A{"Doctor"})
	s.Passes("$nin", "x", A{})
	s.Fails("$nin", A{"Scientist"}, A{"Scientist"})
	s.Fails("$nin", "abc", A{regexp.MustCompile("b")})
}

func (s *OperatorsTestSuite) TestInInvalidOperand() {
	s.InvalidOperand("$in", "not-an-array")
	s.InvalidOperand("$in", M{"a": 1})
	s.InvalidOperand("$in", nil)
	s.InvalidOperand("$nin", "not-an-array")
	s.InvalidOperand("$nin", 1)
}

func (s *OperatorsTestSuite) TestInCompareError() {
	c := new(comparerMock)
	s.o.comparer = c
	errCmp := errors.New("compare error")
	c.On("Compare", mock.Anything, mock.Anything).Return(0, errCmp)

	_, err := s.apply("$in", 1, A{1, 2})
	s.ErrorIs(err, errCmp)
}

func (s *OperatorsTestSuite) TestAll() {
	s.Passes("$all", A{1, 2, 3}, A{3, 1})
	s.Passes("$all", A{1, 2, 3}, A{})
	s.Passes("$all", 1, A{1, 1.0})
	s.Passes("$all", A{M{"a": 1}, A{2}}, A{A{2}, M{"a": 1.0}})
	s.Passes("$all", A{"apple", "banana"}, A{regexp.MustCompile("^ban"), "apple"})
	s.Passes("$all", []string{"x", "y"}, A{"y"})
	s.Passes("$all", A{0.0}, A{math.Copysign(0, -1)})
	s.Passes("$all", A{math.Copysign(0, -1), 1}, A{0, 1})

	s.Fails("$all", A{1, 2}, A{1, 3})
	s.Fails("$all", A{"apple"}, A{regexp.MustCompile("^ban")})
	s.Fails("$all", undefined, A{1})
}

func (s *OperatorsTestSuite) TestAllInvalidOperand() {
	s.InvalidOperand("$all", 1)
	s.InvalidOperand("$all", "abc")
}

func (s *OperatorsTestSuite) TestSize() {
	s.Passes("$size", A{1, 2}, 2)
	s.Passes("$size", A{}, 0)
	s.Passes("$size", []int{1, 2, 3}, 3.0)

	s.Fails("$size", A{1, 2}, 3)
	s.Fails("$size", A{1, 2}, 1.5)
	s.Fails("$size", "ab", 2)
	s.Fails("$size", M{"a": 1}, 1)
	s.Fails("$size", undefined, 0)
}

func (s *OperatorsTestSuite) TestSizeInvalidOperand() {
	s.InvalidOperand("$size", "2")
	s.InvalidOperand("$size", A{2})
	s.InvalidOperand("$size", nil)
}

func (s *OperatorsTestSuite) TestNot() {
	s.ev.On("Match", 5, 6).Return(domain.Fail(6), nil).Once()
	s.Passes("$not", 5, 6)

	s.ev.On("Match", 5, 5).Return(domain.Pass(), nil).Once()
	s.Fails("$not", 5, 5)

	errMatch := errors.New("match error")
	s.ev.On("Match", 5, 7).Return(domain.Result{}, errMatch).Once()
	_, err := s.apply("$not", 5, 7)
	s.ErrorIs(err, errMatch)
}

// $or stops at the first passing sub-query.
func (s *OperatorsTestSuite) TestOr() {
	qA, qB, qC := M{"a": 1}, M{"b": 1}, M{"c": 1}

	s.ev.On("Match", "t", qA).Return(domain.Fail("fa"), nil).Once()
	s.ev.On("Match", "t", qB).Return(domain.Pass(), nil).Once()
	s.Passes("$or", "t", A{qA, qB, qC})

	s.ev.On("Match", "t", qA).Return(domain.Fail("fa"), nil).Once()
	s.ev.On("Match", "t", qB).Return(domain.Fail("fb"), nil).Once()
	res, err := s.apply("$or", "t", A{qA, qB})
	s.NoError(err)
	s.True(res.Failed())
	s.Equal(A{"fa", "fb"}, res.Payload())

	res, err = s.apply("$or", "t", A{})
	s.NoError(err)
	s.True(res.Failed())
}

func (s *OperatorsTestSuite) TestNor() {
	qA, qB, qC := M{"a": 1}, M{"b": 1}, M{"c": 1}

	s.ev.On("Match", "t", qA).Return(domain.Fail("fa"), nil).Once()
	s.ev.On("Match", "t", qB).Return(domain.Fail("fb"), nil).Once()
	s.Passes("$nor", "t", A{qA, qB})

	s.ev.On("Match", "t", qA).Return(domain.Pass(), nil).Once()
	s.ev.On("Match", "t", qB).Return(domain.Fail("fb"), nil).Once()
	s.ev.On("Match", "t", qC).Return(domain.Pass(), nil).Once()
	res, err := s.apply("$nor", "t", A{qA, qB, qC})
	s.NoError(err)
	s.True(res.Failed())
	s.Equal(A{qA, qC}, res.Payload())
}

// $and evaluates every sub-query and reports every failure.
func (s *OperatorsTestSuite) TestAnd() {
	qA, qB, qC := M{"a": 1}, M{"b": 1}, M{"c": 1}

	s.ev.On("Match", "t", qA).Return(domain.Fail("fa"), nil).Once()
	s.ev.On("Match", "t", qB).Return(domain.Pass(), nil).Once()
	s.ev.On("Match", "t", qC).Return(domain.Fail("fc"), nil).Once()
	res, err := s.apply("$and", "t", A{qA, qB, qC})
	s.NoError(err)
	s.True(res.Failed())
	s.Equal(A{"fa", "fc"}, res.Payload())

	s.ev.On("Match", "t", qB).Return(domain.Pass(), nil).Once()
	s.Passes("$and", "t", A{qB})
	s.Passes("$and", "t", A{})
}

func (s *OperatorsTestSuite) TestLogicalInvalidOperand() {
	s.InvalidOperand("$or", M{"a": 1})
	s.InvalidOperand("$nor", "abc")
	s.InvalidOperand("$and", 1)
}

func (s *OperatorsTestSuite) TestLogicalErrors() {
	errMatch := errors.New("match error")
	for _, name := range []string{"$or", "$nor", "$and"} {
		s.ev.On("Match", "t", 1).Return(domain.Result{}, errMatch).Once()
		_, err := s.apply(name, "t", A{1})
		s.ErrorIs(err, errMatch)
	}
}

func (s *OperatorsTestSuite) TestElemMatch() {
	query := M{"charge": "Genocide"}
	first, second := M{"charge": "Theft"}, M{"charge": "Genocide"}

	s.ev.On("Match", first, query).Return(domain.Fail(M{}), nil).Once()
	s.ev.On("Match", second, query).Return(domain.Pass(), nil).Once()
	s.Passes("$elemMatch", A{first, second}, query)

	s.ev.On("Match", first, query).Return(domain.Fail(M{}), nil).Once()
	s.Fails("$elemMatch", A{first}, query)

	s.Fails("$elemMatch", A{}, query)
	s.Fails("$elemMatch", first, query)
	s.Fails("$elemMatch", undefined, query)
}

func (s *OperatorsTestSuite) TestElemMatchInvalidOperand() {
	s.InvalidOperand("$elemMatch", A{M{}})
	s.InvalidOperand("$elemMatch", 1)
	s.InvalidOperand("$elemMatch", regexp.MustCompile("a"))
}

func (s *OperatorsTestSuite) TestNested() {
	target := M{"a": M{"b": A{10, 20}}}

	s.ev.On("Match", 20, M{"$gt": 5}).Return(domain.Pass(), nil).Once()
	res, err := s.o.Virtual()[domain.NestedOperator].Apply(s.ev, target, M{"$gt": 5}, "a.b.1")
	s.NoError(err)
	s.False(res.Failed())

	diag := data.NewD(data.E{Key: "$gt", Value: 90})
	s.ev.On("Match", undefined, M{"$gt": 90}).Return(domain.Fail(diag), nil).Once()
	res, err = s.o.Virtual()[domain.NestedOperator].Apply(s.ev, target, M{"$gt": 90}, "a.c")
	s.NoError(err)
	s.True(res.Failed())
	s.Equal(diag, res.Payload())
}

func (s *OperatorsTestSuite) TestNestedNavigatorErrors() {
	fn := new(fieldNavigatorMock)
	s.o.fieldNavigator = fn
	nested := s.o.Virtual()[domain.NestedOperator]

	errAddr := errors.New("address error")
	fn.On("GetAddress", "a").Return(nil, errAddr).Once()
	_, err := nested.Apply(s.ev, M{}, 1, "a")
	s.ErrorIs(err, errAddr)

	errField := errors.New("field error")
	fn.On("GetAddress", "a").Return([]string{"a"}, nil).Once()
	fn.On("GetField", M{}, []string{"a"}).Return(nil, errField).Once()
	_, err = nested.Apply(s.ev, M{}, 1, "a")
	s.ErrorIs(err, errField)

	fn.AssertExpectations(s.T())
}

func (s *OperatorsTestSuite) TestSpecialNumbers() {
	s.Fails("$eq", math.NaN(), 1)
	s.Passes("$lt", math.Inf(-1), 0)
}

func TestOperatorsTestSuite(t *testing.T) {
	suite.Run(t, new(OperatorsTestSuite))
}
