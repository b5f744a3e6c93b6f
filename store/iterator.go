package store

import (
	"bytes"

	"github.com/google/btree"
)

////////////////////////////////////////////////
// Slice -> Iterator

// SliceIterator wraps an Iterator over a slice of models
type SliceIterator struct {
	data []Model
	idx  int
}

var _ Iterator = (*SliceIterator)(nil)

// NewSliceIterator creates a new Iterator over this slice
func NewSliceIterator(data []Model) *SliceIterator {
	return &SliceIterator{
		data: data,
	}
}

// Valid implements Iterator and returns true iff it can be read
func (s *SliceIterator) Valid() bool {
	return s.idx < len(s.data)
}

// Next moves the iterator to the next sequential key in the database, as
// defined by order of iteration.
//
// If Valid returns false, this method will panic.
func (s *SliceIterator) Next() {
	s.assertValid()
	s.idx++
}

func (s *SliceIterator) assertValid() {
	if s.idx >= len(s.data) {
		panic("Passed end of slice")
	}
}

// Key returns the key of the cursor.
func (s *SliceIterator) Key() (key []byte) {
	s.assertValid()
	return s.data[s.idx].Key
}

// Value returns the value of the cursor.
func (s *SliceIterator) Value() (value []byte) {
	s.assertValid()
	return s.data[s.idx].Value
}

// Close releases the Iterator.
func (s *SliceIterator) Close() {
	s.data = nil
}

// mergeIterator combines the items of a cache layer with the parent
// iterator. Cached entries shadow parent entries with the same key and
// deleted entries hide them. Both sources must be sorted in the same
// direction. The parent iterator is consumed and closed.
func mergeIterator(parent Iterator, ours []btree.Item, ascending bool) *SliceIterator {
	defer parent.Close()

	var res []Model
	keep := func(item btree.Item) {
		if s, ok := item.(setItem); ok {
			res = append(res, Model{Key: s.key, Value: s.value})
		}
	}

	i := 0
	for parent.Valid() || i < len(ours) {
		if i >= len(ours) {
			res = append(res, Model{Key: parent.Key(), Value: parent.Value()})
			parent.Next()
			continue
		}
		if !parent.Valid() {
			keep(ours[i])
			i++
			continue
		}

		cmp := bytes.Compare(parent.Key(), ours[i].(keyer).Key())
		if !ascending {
			cmp = -cmp
		}
		switch {
		case cmp < 0:
			res = append(res, Model{Key: parent.Key(), Value: parent.Value()})
			parent.Next()
		case cmp > 0:
			keep(ours[i])
			i++
		default:
			keep(ours[i])
			i++
			parent.Next()
		}
	}
	return NewSliceIterator(res)
}
