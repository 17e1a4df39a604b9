// Package fieldnavigator contains the default [domain.FieldNavigator]
// implementation, which resolves dot notation addresses.
package fieldnavigator

import (
	"strconv"
	"strings"

	"github.com/vinicius-lino-figueiredo/whynomatch/domain"
	"github.com/vinicius-lino-figueiredo/whynomatch/pkg/structure"
)

// FieldNavigator implements [domain.FieldNavigator].
type FieldNavigator struct {
	docFac domain.DocumentFactory
}

// NewFieldNavigator returns a new instance of [domain.FieldNavigator]. The
// document factory is used to read maps and structs found along the path.
func NewFieldNavigator(docFac domain.DocumentFactory) domain.FieldNavigator {
	return &FieldNavigator{
		docFac: docFac,
	}
}

// GetAddress implements [domain.FieldNavigator].
func (fn *FieldNavigator) GetAddress(field string) ([]string, error) {
	return strings.Split(field, "."), nil
}

// GetField implements [domain.FieldNavigator]. Object keys are followed by
// name and numeric parts index lists. Any part that cannot be followed makes
// the whole address undefined.
func (fn *FieldNavigator) GetField(obj any, fieldParts ...string) (domain.Getter, error) {
	curr, defined := structure.Concrete(obj)
	if !defined {
		return domain.Undefined{}, nil
	}

	if len(fieldParts) == 0 {
		return NewReadOnlyGetter(curr), nil
	}

	var getter domain.Getter
	for _, part := range fieldParts {
		switch structure.KindOf(curr) {
		case structure.KindObject:
			doc, err := fn.docFac(curr)
			if err != nil {
				return nil, err
			}
			if !doc.Has(part) {
				return domain.Undefined{}, nil
			}
			getter = NewDocGetter(doc, part)
		case structure.KindArray:
			list, _ := structure.List(curr)
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(list) {
				return domain.Undefined{}, nil
			}
			getter = NewListGetter(list, i)
		default:
			return domain.Undefined{}, nil
		}
		curr, _ = getter.Get()
	}

	return getter, nil
}
