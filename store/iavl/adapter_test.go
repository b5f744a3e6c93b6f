package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/custody/store"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func iavlSuite() *store.TestSuite {
	return store.NewTestSuite(func() (store.CacheableKVStore, func()) {
		commit := MockCommitStore()
		return adapter{tree: commit.tree}, func() {}
	})
}

func TestIavlStoreGetSet(t *testing.T) {
	iavlSuite().GetSet(t)
}

func TestIavlStoreCacheConflicts(t *testing.T) {
	iavlSuite().CacheConflicts(t)
}

func TestIavlStoreIteration(t *testing.T) {
	iavlSuite().Iteration(t)
}

func TestCommitStore(t *testing.T) {
	Convey("Given an empty commit store", t, func() {
		s := MockCommitStore()
		So(s.LatestVersion().Version, ShouldEqual, 0)

		Convey("Writes are only visible after commit", func() {
			cache := s.CacheWrap()
			cache.Set([]byte("vault"), []byte("41"))
			cache.Write()
			So(s.Get([]byte("vault")), ShouldBeNil)

			id := s.Commit()
			So(id.Version, ShouldEqual, 1)
			So(id.Hash, ShouldNotBeEmpty)
			So(s.Get([]byte("vault")), ShouldResemble, []byte("41"))
			So(s.LatestVersion().Hash, ShouldResemble, id.Hash)
		})

		Convey("A discarded cache changes nothing", func() {
			cache := s.CacheWrap()
			cache.Set([]byte("vault"), []byte("41"))
			cache.Discard()

			id := s.Commit()
			So(id.Version, ShouldEqual, 1)
			So(s.Get([]byte("vault")), ShouldBeNil)
		})
	})
}

func TestCommitStorePersistence(t *testing.T) {
	dir, err := ioutil.TempDir("", "custody-iavl")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	s, err := NewCommitStore(dir, "state")
	require.NoError(t, err)
	require.NoError(t, s.LoadLatestVersion())

	var last store.CommitID
	for i := 0; i < 4; i++ {
		cache := s.CacheWrap()
		cache.Set([]byte{byte(i)}, []byte{byte(i + 10)})
		cache.Write()
		last = s.Commit()
	}
	assert.Equal(t, int64(4), last.Version)
	assert.Equal(t, []byte{13}, s.Get([]byte{3}))

	// history is pruned, but the latest state is complete
	assert.False(t, s.tree.VersionExists(1))
	assert.True(t, s.tree.VersionExists(4))
	assert.Equal(t, []byte{10}, s.Get([]byte{0}))
}
