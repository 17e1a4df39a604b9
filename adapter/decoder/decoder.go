// Package decoder contains the default [domain.Decoder] implementation, used to
// turn loaded documents and diagnoses into Go structs.
package decoder

import (
	"fmt"
	stdreflect "reflect"
	"regexp"
	"strings"
	"time"

	"github.com/goccy/go-reflect"
	"github.com/mitchellh/mapstructure"
	"github.com/vinicius-lino-figueiredo/whynomatch/adapter/data"
	"github.com/vinicius-lino-figueiredo/whynomatch/domain"
	"github.com/vinicius-lino-figueiredo/whynomatch/pkg/structure"
)

// mapstructure hooks receive types from the standard reflect package.
var (
	docType   = reflect.TypeOf((*domain.Document)(nil)).Elem()
	timeType  = stdreflect.TypeOf(time.Time{})
	regexType = stdreflect.TypeOf((*regexp.Regexp)(nil))
)

// Decoder implements [domain.Decoder]. Fields are matched by the "whynomatch"
// tag. Besides what mapstructure converts by itself, it accepts:
//
//   - "500ms" style strings for [time.Duration] fields;
//   - RFC 3339 strings and unix milliseconds for [time.Time] fields, the same
//     instant a {"$$date": ms} query value holds;
//   - "/src/flags" literals, bare patterns and loaded regular expressions for
//     *[regexp.Regexp] fields.
type Decoder struct{}

// NewDecoder returns a new implementation of [domain.Decoder].
func NewDecoder() domain.Decoder {
	return &Decoder{}
}

// Decode implements [domain.Decoder].
func (d *Decoder) Decode(source any, target any) error {
	if target == nil {
		return domain.ErrTargetNil
	}

	ptr := reflect.ValueNoEscapeOf(target)
	if ptr.Kind() != reflect.Ptr {
		return domain.ErrNonPointer
	}

	// documents are decoded as they are, anything else goes through plain
	// maps, which is what mapstructure reads
	if !ptr.Type().Elem().Implements(docType) {
		source = plain(source)
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: structure.TagName,
		Result:  target,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
			millisToTime,
			toRegexp,
		),
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(source); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrDecode{Source: source, Target: target}, err)
	}
	return nil
}

func plain(value any) any {
	switch t := value.(type) {
	case domain.Document:
		m := make(map[string]any, t.Len())
		for k, v := range t.Iter() {
			m[k] = plain(v)
		}
		return m
	case []any:
		l := make([]any, len(t))
		for n, v := range t {
			l[n] = plain(v)
		}
		return l
	}
	return value
}

// millisToTime reads numbers as unix milliseconds when the field is a date.
func millisToTime(_, to stdreflect.Type, v any) (any, error) {
	if to != timeType {
		return v, nil
	}
	if _, ok := v.(time.Time); ok {
		return v, nil
	}
	if n, ok := structure.AsFloat(v); ok {
		return time.UnixMilli(int64(n)), nil
	}
	return v, nil
}

// toRegexp compiles strings for regular expression fields. Values that are
// already compiled are kept.
func toRegexp(_, to stdreflect.Type, v any) (any, error) {
	if to != regexType {
		return v, nil
	}
	s, ok := v.(string)
	if !ok {
		return v, nil
	}
	if !strings.HasPrefix(s, "/") {
		return regexp.Compile(s)
	}
	parsed, err := data.Parse([]byte(s))
	if err != nil {
		return nil, err
	}
	rgx, ok := parsed.(*regexp.Regexp)
	if !ok {
		return nil, fmt.Errorf("%q is not a regular expression", s)
	}
	return rgx, nil
}
