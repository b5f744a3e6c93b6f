package custody

// Store interfaces. Handlers only ever see a KVStore: the ledger accounts,
// vault records, sequences and configuration all live in one keyspace and
// are separated by bucket prefixes.

// ReadOnlyKVStore is the read side of a store. Keys must not be nil.
type ReadOnlyKVStore interface {
	// Get returns nil when the key is not stored.
	Get(key []byte) []byte
	Has(key []byte) bool

	// Iterator walks [start, end) in ascending key order. A nil bound is
	// open. Writing inside the range while the iterator is open is not
	// allowed.
	Iterator(start, end []byte) Iterator
	// ReverseIterator walks [start, end) in descending key order.
	ReverseIterator(start, end []byte) Iterator
}

// SetDeleter is the write side shared by KVStore and Batch. Passed slices
// are not modified.
type SetDeleter interface {
	Set(key, value []byte)
	Delete(key []byte)
}

// KVStore is what every handler and controller operates on.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
	// NewBatch collects writes that are applied together on Write.
	NewBatch() Batch
}

// Batch applies all collected writes to its store on Write.
type Batch interface {
	SetDeleter
	Write()
}

// Iterator is a cursor over a key range.
//
//	itr := db.Iterator(start, end)
//	defer itr.Close()
//	for ; itr.Valid(); itr.Next() {
//		key, value := itr.Key(), itr.Value()
//	}
//
// Next, Key and Value panic once Valid returned false.
type Iterator interface {
	Valid() bool
	Next()
	Key() (key []byte)
	Value() (value []byte)
	Close()
}

// CacheableKVStore can stage writes in a KVCacheWrap.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap stages writes on top of another store. Reads see the staged
// data. Write flushes everything to the parent store, Discard drops it.
// A transaction runs inside one so that a failure leaves no partial
// transfer behind.
type KVCacheWrap interface {
	CacheableKVStore
	Write()
	Discard()
}

// CommitKVStore is the persistent root store of the application. It is only
// written through its cache wraps and saved once per block.
type CommitKVStore interface {
	// Get reads the last committed state.
	Get(key []byte) []byte

	CacheWrap() KVCacheWrap

	// Commit saves a new version and returns its identity.
	Commit() CommitID

	// LoadLatestVersion loads the last version saved to disk. After a crash
	// during Commit an older, consistent version is loaded.
	LoadLatestVersion() error

	LatestVersion() CommitID
}

// CommitID identifies a saved version by its number and merkle root.
type CommitID struct {
	Version int64
	Hash    []byte
}
