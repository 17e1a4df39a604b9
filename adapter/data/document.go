// Package data contains the default [domain.Document] implementations and a
// parser for JSON with comments.
package data

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/vinicius-lino-figueiredo/whynomatch/domain"
	"github.com/vinicius-lino-figueiredo/whynomatch/pkg/structure"
)

// E is a single key-value pair of a [D].
type E struct {
	Key   string
	Value any
}

// D implements [domain.Document] keeping keys in insertion order. Setting an
// existing key replaces its value without moving it. The zero value is an
// empty document ready to use.
type D struct {
	entries []E
	index   map[string]int
}

// NewD returns a [D] with the given entries, in order.
func NewD(entries ...E) *D {
	d := &D{
		entries: make([]E, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		d.Set(e.Key, e.Value)
	}
	return d
}

// NewDocument returns a new instance of [domain.Document]. Documents are
// returned as they are, maps are copied in key order and structs in field
// order. Nested values are not converted.
func NewDocument(in any) (domain.Document, error) {
	if in == nil {
		return NewD(), nil
	}
	if doc, ok := in.(domain.Document); ok {
		return doc, nil
	}
	seq, l, err := structure.Seq2(in)
	if err != nil {
		return nil, fmt.Errorf("expected map or struct: %w", err)
	}
	d := &D{
		entries: make([]E, 0, l),
		index:   make(map[string]int, l),
	}
	for k, v := range seq {
		d.Set(k, v)
	}
	return d, nil
}

// Get implements [domain.Document].
func (d *D) Get(key string) any {
	if n, ok := d.index[key]; ok {
		return d.entries[n].Value
	}
	return nil
}

// Set implements [domain.Document].
func (d *D) Set(key string, value any) {
	if n, ok := d.index[key]; ok {
		d.entries[n].Value = value
		return
	}
	if d.index == nil {
		d.index = make(map[string]int)
	}
	d.index[key] = len(d.entries)
	d.entries = append(d.entries, E{Key: key, Value: value})
}

// Unset implements [domain.Document].
func (d *D) Unset(key string) {
	n, ok := d.index[key]
	if !ok {
		return
	}
	d.entries = slices.Delete(d.entries, n, n+1)
	delete(d.index, key)
	for i := n; i < len(d.entries); i++ {
		d.index[d.entries[i].Key] = i
	}
}

// Iter implements [domain.Document].
func (d *D) Iter() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, e := range d.entries {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Keys implements [domain.Document].
func (d *D) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, e := range d.entries {
			if !yield(e.Key) {
				return
			}
		}
	}
}

// Values implements [domain.Document].
func (d *D) Values() iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, e := range d.entries {
			if !yield(e.Value) {
				return
			}
		}
	}
}

// Has implements [domain.Document].
func (d *D) Has(key string) bool {
	_, ok := d.index[key]
	return ok
}

// Len implements [domain.Document].
func (d *D) Len() int {
	return len(d.entries)
}

// Entries returns a copy of the document entries, in order.
func (d *D) Entries() []E {
	return slices.Clone(d.entries)
}

// MarshalJSON implements [json.Marshaler], keeping key order.
func (d *D) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBuffer(append(make([]byte, 0, 256), '{'))
	for n, e := range d.entries {
		if n > 0 {
			_ = buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		_, _ = buf.Write(k)
		_ = buf.WriteByte(':')
		v, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		_, _ = buf.Write(v)
	}
	_ = buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements [json.Unmarshaler]. Comments and the other
// extensions accepted by [Parse] are allowed.
func (d *D) UnmarshalJSON(input []byte) error {
	v, err := Parse(input)
	if err != nil {
		return err
	}
	obj, ok := v.(*D)
	if !ok {
		return fmt.Errorf("expected Document, received %T", v)
	}
	*d = *obj
	return nil
}

// M implements [domain.Document] by using a hashed map. Duplicates replace old
// values. Iteration follows key order, since maps have no declaration order.
type M map[string]any

// Get implements [domain.Document].
func (d M) Get(key string) any {
	return d[key]
}

// Set implements [domain.Document].
func (d M) Set(key string, value any) {
	d[key] = value
}

// Unset implements [domain.Document].
func (d M) Unset(key string) {
	delete(d, key)
}

// Iter implements [domain.Document].
func (d M) Iter() iter.Seq2[string, any] {
	keys := slices.Sorted(maps.Keys(d))
	return func(yield func(string, any) bool) {
		for _, k := range keys {
			if !yield(k, d[k]) {
				return
			}
		}
	}
}

// Keys implements [domain.Document].
func (d M) Keys() iter.Seq[string] {
	return slices.Values(slices.Sorted(maps.Keys(d)))
}

// Len implements [domain.Document].
func (d M) Len() int {
	return len(d)
}

// Values implements [domain.Document].
func (d M) Values() iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, v := range d.Iter() {
			if !yield(v) {
				return
			}
		}
	}
}

// Has implements [domain.Document].
func (d M) Has(key string) bool {
	_, has := d[key]
	return has
}
