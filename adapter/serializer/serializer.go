// Package serializer contains the default [domain.Serializer] implementation,
// which writes diagnoses and other values as JSON.
package serializer

import (
	"context"
	"encoding/json"
	"regexp"
	"time"

	"github.com/vinicius-lino-figueiredo/whynomatch/domain"
	"github.com/vinicius-lino-figueiredo/whynomatch/pkg/structure"
)

// Serializer implements domain.Serializer. Documents keep the key order of
// the given [domain.DocumentFactory], regular expressions are written as
// "/pattern/", dates as {"$$date": milliseconds}, functions as "function" and
// undefined values as null.
type Serializer struct {
	documentFactory domain.DocumentFactory
	indent          string
}

// NewSerializer returns a new implementation of domain.Serializer. An empty
// indent writes compact JSON.
func NewSerializer(documentFactory domain.DocumentFactory, indent string) domain.Serializer {
	return &Serializer{
		documentFactory: documentFactory,
		indent:          indent,
	}
}

func (s *Serializer) copyDoc(obj any) (domain.Document, error) {
	seq, _, err := structure.Seq2(obj)
	if err != nil {
		return nil, err
	}

	res, err := s.documentFactory(nil)
	if err != nil {
		return nil, err
	}

	for k, v := range seq {
		copied, err := s.copyAny(v)
		if err != nil {
			return nil, err
		}
		res.Set(k, copied)
	}
	return res, nil
}

func (s *Serializer) copyAny(v any) (any, error) {
	v, defined := structure.Concrete(v)
	if !defined {
		return nil, nil
	}

	switch t := v.(type) {
	case time.Time:
		return s.documentFactory(map[string]int64{"$$date": t.UnixMilli()})
	case *regexp.Regexp:
		return "/" + t.String() + "/", nil
	case domain.WhereFunc:
		return "function", nil
	}

	switch structure.KindOf(v) {
	case structure.KindObject:
		return s.copyDoc(v)
	case structure.KindArray:
		list, _ := structure.List(v)
		newList := make([]any, len(list))
		for n, itm := range list {
			newV, err := s.copyAny(itm)
			if err != nil {
				return nil, err
			}
			newList[n] = newV
		}
		return newList, nil
	default:
		return v, nil
	}
}

// Serialize implements domain.Serializer.
func (s *Serializer) Serialize(ctx context.Context, obj any) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	cp, err := s.copyAny(obj)
	if err != nil {
		return nil, err
	}
	if s.indent != "" {
		return json.MarshalIndent(cp, "", s.indent)
	}
	return json.Marshal(cp)
}
