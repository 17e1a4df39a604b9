package registry

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vinicius-lino-figueiredo/whynomatch/domain"
)

type RegistryTestSuite struct {
	suite.Suite
	r *Registry
}

func (s *RegistryTestSuite) SetupTest() {
	s.r = NewRegistry().(*Registry)
}

func (s *RegistryTestSuite) TestNames() {
	s.Equal([]string{
		"$all", "$and", "$elemMatch", "$eq", "$exists", "$gt", "$gte",
		"$in", "$lt", "$lte", "$mod", "$ne", "$nin", "$nor", "$not",
		"$or", "$regex", "$size", "$where",
	}, s.r.Names())
}

func (s *RegistryTestSuite) TestResolveExplicit() {
	for _, name := range s.r.Names() {
		op, err := s.r.Resolve(name)
		s.NoError(err)
		s.NotNil(op)
	}
}

// Keys that do not start with '$' are paths.
func (s *RegistryTestSuite) TestResolvePath() {
	for _, key := range []string{"age", "a.b.c", "", "0", "eq"} {
		op, err := s.r.Resolve(key)
		s.NoError(err)
		s.NotNil(op)
	}
}

func (s *RegistryTestSuite) TestUnsupported() {
	for _, key := range []string{"$bogus", "$", "$EQ", domain.NestedOperator} {
		op, err := s.r.Resolve(key)
		s.Nil(op)
		s.ErrorIs(err, domain.ErrUnsupportedOperator{Operator: key})
	}
}

// With returns a new registry and leaves the receiver untouched.
func (s *RegistryTestSuite) TestWithDoesNotMutate() {
	custom := domain.OperatorFunc(func(domain.Evaluator, any, any, string) (domain.Result, error) {
		return domain.Pass(), nil
	})
	before := s.r.Names()

	extended, err := s.r.With(map[string]domain.Operator{"$custom": custom})
	s.NoError(err)

	s.Equal(before, s.r.Names())
	_, err = s.r.Resolve("$custom")
	s.ErrorIs(err, domain.ErrUnsupportedOperator{Operator: "$custom"})

	s.Contains(extended.Names(), "$custom")
	op, err := extended.Resolve("$custom")
	s.NoError(err)
	s.NotNil(op)

	// paths still resolve in the copy
	op, err = extended.Resolve("a.b")
	s.NoError(err)
	s.NotNil(op)
}

// Built-in operators can be replaced in the copy.
func (s *RegistryTestSuite) TestWithReplace() {
	calls := 0
	custom := domain.OperatorFunc(func(domain.Evaluator, any, any, string) (domain.Result, error) {
		calls++
		return domain.Fail("custom"), nil
	})

	extended, err := s.r.With(map[string]domain.Operator{"$eq": custom})
	s.NoError(err)
	s.Equal(s.r.Names(), extended.Names())

	op, err := extended.Resolve("$eq")
	s.NoError(err)
	res, err := op.Apply(nil, 1, 1, "$eq")
	s.NoError(err)
	s.True(res.Failed())
	s.Equal(1, calls)

	op, err = s.r.Resolve("$eq")
	s.NoError(err)
	res, err = op.Apply(nil, 1, 1, "$eq")
	s.NoError(err)
	s.False(res.Failed())
	s.Equal(1, calls)
}

func (s *RegistryTestSuite) TestWithInvalidNames() {
	custom := domain.OperatorFunc(func(domain.Evaluator, any, any, string) (domain.Result, error) {
		return domain.Pass(), nil
	})

	for _, name := range []string{"custom", "", domain.NestedOperator} {
		r, err := s.r.With(map[string]domain.Operator{name: custom})
		s.Nil(r)
		e := domain.ErrOperatorName{}
		s.ErrorAs(err, &e)
		s.Equal(name, e.Name)
	}

	r, err := s.r.With(map[string]domain.Operator{"$nil": nil})
	s.Nil(r)
	s.ErrorAs(err, &domain.ErrOperatorName{})
}

func TestRegistryTestSuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}
