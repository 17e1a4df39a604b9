// Package registry contains the default [domain.Registry] implementation.
package registry

import (
	"maps"
	"slices"
	"strings"

	"github.com/vinicius-lino-figueiredo/whynomatch/adapter/operator"
	"github.com/vinicius-lino-figueiredo/whynomatch/domain"
)

// Registry implements [domain.Registry]. It is built once and never changes;
// [Registry.With] returns a copy.
type Registry struct {
	explicit map[string]domain.Operator
	nested   domain.Operator
}

// NewRegistry returns a [domain.Registry] holding every built-in operator,
// configured with the given options.
func NewRegistry(options ...domain.OperatorOption) domain.Registry {
	ops := operator.NewOperators(options...)

	explicit := make(map[string]domain.Operator)
	maps.Copy(explicit, ops.Comparison())
	maps.Copy(explicit, ops.Array())
	maps.Copy(explicit, ops.Logical())

	return &Registry{
		explicit: explicit,
		nested:   ops.Virtual()[domain.NestedOperator],
	}
}

// Resolve implements [domain.Registry].
func (r *Registry) Resolve(key string) (domain.Operator, error) {
	if !strings.HasPrefix(key, "$") {
		return r.nested, nil
	}
	op, ok := r.explicit[key]
	if !ok {
		return nil, domain.ErrUnsupportedOperator{Operator: key}
	}
	return op, nil
}

// With implements [domain.Registry].
func (r *Registry) With(extra map[string]domain.Operator) (domain.Registry, error) {
	for name, op := range extra {
		if err := r.checkName(name); err != nil {
			return nil, err
		}
		if op == nil {
			return nil, domain.ErrOperatorName{Name: name, Reason: "operator is nil"}
		}
	}

	explicit := maps.Clone(r.explicit)
	maps.Copy(explicit, extra)

	return &Registry{
		explicit: explicit,
		nested:   r.nested,
	}, nil
}

func (r *Registry) checkName(name string) error {
	if !strings.HasPrefix(name, "$") {
		return domain.ErrOperatorName{Name: name, Reason: "operators must start with '$'"}
	}
	if name == domain.NestedOperator {
		return domain.ErrOperatorName{Name: name, Reason: "path navigation cannot be replaced"}
	}
	return nil
}

// Names implements [domain.Registry].
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.explicit))
}
