package fieldnavigator

import "github.com/vinicius-lino-figueiredo/whynomatch/domain"

// ListGetter is a [domain.Getter] that reads a specific index in a slice of
// [any].
type ListGetter struct {
	List  []any
	Index int
}

// NewListGetter returns a new implementation of [domain.Getter] that will
// represent a value from a slice of [any].
func NewListGetter(list []any, index int) domain.Getter {
	return &ListGetter{List: list, Index: index}
}

// Get implements [domain.Getter].
func (l *ListGetter) Get() (value any, defined bool) {
	if l.Index >= 0 && l.Index < len(l.List) {
		return l.List[l.Index], true
	}
	return nil, false
}

// DocGetter is a [domain.Getter] that reads a specific key in a
// [domain.Document].
type DocGetter struct {
	Doc domain.Document
	Key string
}

// NewDocGetter returns a new implementation of [domain.Getter] that will
// represent a value from a [domain.Document].
func NewDocGetter(doc domain.Document, key string) domain.Getter {
	return &DocGetter{Doc: doc, Key: key}
}

// Get implements [domain.Getter].
func (d *DocGetter) Get() (value any, defined bool) {
	return d.Doc.Get(d.Key), d.Doc.Has(d.Key)
}

// ReadOnlyGetter is a [domain.Getter] that always holds the same defined
// value.
type ReadOnlyGetter struct {
	V any
}

// NewReadOnlyGetter returns a new implementation of [domain.Getter] holding
// the given value.
func NewReadOnlyGetter(v any) domain.Getter {
	return &ReadOnlyGetter{V: v}
}

// Get implements [domain.Getter].
func (r *ReadOnlyGetter) Get() (value any, defined bool) {
	return r.V, true
}
