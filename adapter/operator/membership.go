package operator

import (
	"regexp"

	"github.com/vinicius-lino-figueiredo/bst"
	"github.com/vinicius-lino-figueiredo/bst/adapter/avl"
	"github.com/vinicius-lino-figueiredo/whynomatch/domain"
)

// membership answers whether a value short-equals any element of a list. Plain
// elements are kept in an AVL tree ordered by the [domain.Comparer], while
// regular expressions are tested one by one against the string form of the
// value.
type membership struct {
	tree        bst.BST[any, int]
	patterns    []*regexp.Regexp
	stringifier domain.Stringifier
}

func (o *Operators) newMembership(list []any) (*membership, error) {
	var cmp bst.Comparer[any, int] = &bstComparer{comparer: o.comparer}
	m := &membership{
		tree:        avl.NewBST(false, 8, cmp),
		stringifier: o.stringifier,
	}
	for n, item := range list {
		if rgx, ok := item.(*regexp.Regexp); ok {
			m.patterns = append(m.patterns, rgx)
			continue
		}
		if err := m.tree.Insert(item, n); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *membership) contains(v any) (bool, error) {
	found, err := m.tree.Search(v)
	if err != nil {
		return false, err
	}
	if found != nil {
		return true, nil
	}
	if len(m.patterns) == 0 {
		return false, nil
	}
	str := m.stringifier.Stringify(v)
	for _, rgx := range m.patterns {
		if rgx.MatchString(str) {
			return true, nil
		}
	}
	return false, nil
}

// bstComparer orders tree keys with a [domain.Comparer]. Values are the
// positions of the keys in the operand, so they are compared directly.
type bstComparer struct {
	comparer domain.Comparer
}

// CompareKeys implements bst.Comparer.
func (bc *bstComparer) CompareKeys(a any, b any) (int, error) {
	return bc.comparer.Compare(a, b)
}

// CompareValues implements bst.Comparer.
func (bc *bstComparer) CompareValues(a int, b int) (bool, error) {
	return a == b, nil
}
