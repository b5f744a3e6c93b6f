package store

import (
	"bytes"
	"crypto/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestSuite provides many methods that can be called in package-specific test code.
We just customize the store being tested (pass in constructor), the rest of the
logic is generic to the KVStore interface.

This removes duplication between btree_test.go and iavl/adapter_test.go,
but can be used for any implementation of CacheableKVStore.
*/
type TestSuite struct {
	makeBase TestStoreConstructor
}

// TestStoreConstructor returns a fresh store and a function releasing it.
type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

// NewTestSuite returns a suite running against stores from constructor.
func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{
		makeBase: constructor,
	}
}

// GetSet does basic sanity checks on our cache
//
// Other tests should handle deletes, setting same value,
// iterating over ranges, and general fuzzing
func (s *TestSuite) GetSet(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	// make sure the store is empty at start but returns results
	// that are written to it
	k, v := []byte("french"), []byte("fry")
	assertGetHas(t, base, k, nil)
	base.Set(k, v)
	assertGetHas(t, base, k, v)

	// now layer another btree on top and make sure that we get
	// base data
	cache := base.CacheWrap()
	assertGetHas(t, cache, k, v)

	// writing more data is only visible in the cache
	k2, v2 := []byte("LA"), []byte("Dodgers")
	assertGetHas(t, cache, k2, nil)
	cache.Set(k2, v2)
	assertGetHas(t, cache, k2, v2)
	assertGetHas(t, base, k2, nil)

	// we can write the cache to the base layer...
	cache.Write()
	assertGetHas(t, base, k, v)
	assertGetHas(t, base, k2, v2)

	// we can discard one
	k3, v3 := []byte("Bayern"), []byte("Munich")
	c2 := base.CacheWrap()
	assertGetHas(t, c2, k, v)
	assertGetHas(t, c2, k2, v2)
	c2.Set(k3, v3)
	c2.Discard()

	// and commit another
	c3 := base.CacheWrap()
	assertGetHas(t, c3, k, v)
	assertGetHas(t, c3, k2, v2)
	c3.Delete(k)
	c3.Write()

	// make sure it commits proper
	assertGetHas(t, base, k, nil)
	assertGetHas(t, base, k2, v2)
	assertGetHas(t, base, k3, nil)
}

// CacheConflicts checks that we can handle
// overwriting values and deleting underlying values
func (s *TestSuite) CacheConflicts(t *testing.T) {
	ks := RandKeys(10, 16)
	vs := RandKeys(20, 40)

	cases := map[string]struct {
		parentOps     []Op
		childOps      []Op
		parentQueries []Model // Key is what we query, Value is what we expect
		childQueries  []Model
	}{
		"overwrite one, delete another, add a third": {
			parentOps:     []Op{SetOp(ks[1], vs[1]), SetOp(ks[2], vs[2])},
			childOps:      []Op{SetOp(ks[1], vs[11]), SetOp(ks[3], vs[7]), DelOp(ks[2])},
			parentQueries: []Model{pair(ks[1], vs[1]), pair(ks[2], vs[2]), pair(ks[3], nil)},
			childQueries:  []Model{pair(ks[1], vs[11]), pair(ks[2], nil), pair(ks[3], vs[7])},
		},
		"set after delete": {
			parentOps:     []Op{SetOp(ks[4], vs[4])},
			childOps:      []Op{DelOp(ks[4]), SetOp(ks[4], vs[14])},
			parentQueries: []Model{pair(ks[4], vs[4])},
			childQueries:  []Model{pair(ks[4], vs[14])},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			base, cleanup := s.makeBase()
			defer cleanup()

			parent := base.CacheWrap()
			for _, op := range tc.parentOps {
				op.Apply(parent)
			}

			child := parent.CacheWrap()
			for _, op := range tc.childOps {
				op.Apply(child)
			}

			// now check the parent is unaffected
			for _, q := range tc.parentQueries {
				assertGetHas(t, parent, q.Key, q.Value)
			}
			// the child shows changes
			for _, q := range tc.childQueries {
				assertGetHas(t, child, q.Key, q.Value)
			}

			// write child to parent and make sure it also shows proper data
			child.Write()
			for _, q := range tc.childQueries {
				assertGetHas(t, parent, q.Key, q.Value)
			}
		})
	}
}

// Iteration checks ranges over data spread between the base store and a
// cache layer, including deletes of data held by the base.
func (s *TestSuite) Iteration(t *testing.T) {
	const (
		size        = 50
		deleteCount = 20
	)

	base, cleanup := s.makeBase()
	defer cleanup()

	models := make([]Model, size+deleteCount)
	for i := range models {
		models[i] = pair(RandBytes(8), RandBytes(40))
	}
	// half of the data lives in the base store
	for _, m := range models[:len(models)/2] {
		base.Set(m.Key, m.Value)
	}
	cache := base.CacheWrap()
	for _, m := range models[len(models)/2:] {
		cache.Set(m.Key, m.Value)
	}
	// deletes hit both layers
	for _, m := range models[len(models)/2-deleteCount/2 : len(models)/2+deleteCount/2] {
		cache.Delete(m.Key)
	}
	left := append([]Model{}, models[:len(models)/2-deleteCount/2]...)
	left = append(left, models[len(models)/2+deleteCount/2:]...)
	sort.Slice(left, func(i, j int) bool {
		return bytes.Compare(left[i].Key, left[j].Key) < 0
	})
	require.Len(t, left, size)

	VerifyIterator(t, left, cache.Iterator(nil, nil))
	VerifyIterator(t, left[10:], cache.Iterator(left[10].Key, nil))
	VerifyIterator(t, left[:size-8], cache.Iterator(nil, left[size-8].Key))
	VerifyIterator(t, left[17:28], cache.Iterator(left[17].Key, left[28].Key))

	VerifyIterator(t, reverse(left), cache.ReverseIterator(nil, nil))
	VerifyIterator(t, reverse(left[34:]), cache.ReverseIterator(left[34].Key, nil))
	VerifyIterator(t, reverse(left[:19]), cache.ReverseIterator(nil, left[19].Key))
	VerifyIterator(t, reverse(left[6:26]), cache.ReverseIterator(left[6].Key, left[26].Key))
}

func assertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte) {
	t.Helper()
	assert.Equal(t, val, kv.Get(key), "key %X", key)
	assert.Equal(t, val != nil, kv.Has(key), "key %X", key)
}

// VerifyIterator makes sure the iterator returns exactly the given models.
func VerifyIterator(t testing.TB, models []Model, iter Iterator) {
	t.Helper()
	for i := 0; i < len(models); i++ {
		require.True(t, iter.Valid(), "%d", i)
		assert.Equal(t, models[i].Key, iter.Key(), "%d", i)
		assert.Equal(t, models[i].Value, iter.Value(), "%d", i)
		iter.Next()
	}
	assert.False(t, iter.Valid())
	iter.Close()
}

// reverse returns a copy of the slice with elements in reverse order
func reverse(models []Model) []Model {
	max := len(models)
	res := make([]Model, max)
	for i := 0; i < max; i++ {
		res[i] = models[max-1-i]
	}
	return res
}

func pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// RandKeys returns a slice of count keys, all of length
func RandKeys(count, length int) [][]byte {
	res := make([][]byte, count)
	for i := 0; i < count; i++ {
		res[i] = RandBytes(length)
	}
	return res
}

// RandBytes returns length random bytes.
func RandBytes(length int) []byte {
	res := make([]byte, length)
	_, _ = rand.Read(res)
	return res
}
