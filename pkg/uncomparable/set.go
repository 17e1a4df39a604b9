// Package uncomparable contains a set whose values do not need to be
// [comparable]. Values are bucketed by a [domain.Hasher] and told apart by a
// [domain.Comparer], so hashing or comparison failures are returned as errors
// instead of panicking.
package uncomparable

import "github.com/vinicius-lino-figueiredo/whynomatch/domain"

const initialBuckets = 8

// Set is a set of values that do not need to be [comparable]. Two values are
// the same member when the comparer finds them equal, so 1 and 1.0, or two
// lists with equal items, are stored once.
type Set struct {
	buckets  [][]any
	hasher   domain.Hasher
	comparer domain.Comparer
}

// NewSet returns an empty [Set] with the given [domain.Hasher] and
// [domain.Comparer]. The hasher must give the same hash to values the
// comparer finds equal.
func NewSet(hasher domain.Hasher, comparer domain.Comparer) *Set {
	return &Set{
		buckets:  make([][]any, initialBuckets),
		hasher:   hasher,
		comparer: comparer,
	}
}

// Add adds the given values to the set, stopping at the first value that
// cannot be hashed or compared.
func (s *Set) Add(values ...any) error {
	for _, v := range values {
		bucket, found, err := s.find(v)
		if err != nil {
			return err
		}
		if !found {
			s.buckets[bucket] = append(s.buckets[bucket], v)
		}
	}
	return nil
}

// Has reports whether a value equal to v is in the set.
func (s *Set) Has(v any) (bool, error) {
	_, found, err := s.find(v)
	return found, err
}

func (s *Set) find(v any) (uint64, bool, error) {
	h, err := s.hasher.Hash(v)
	if err != nil {
		return 0, false, err
	}
	bucket := h % uint64(len(s.buckets))

	for _, member := range s.buckets[bucket] {
		c, err := s.comparer.Compare(v, member)
		if err != nil {
			return 0, false, err
		}
		if c == 0 {
			return bucket, true, nil
		}
	}
	return bucket, false, nil
}
