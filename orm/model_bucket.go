/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called buckets.
Each bucket contains only one type of model, keyed by a
primary key. Models are serialized with their own
Marshal/Unmarshal methods.
*/
package orm

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

var (
	isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	custody.Persistent
	Validate() error
}

// ModelBucket is implemented by buckets that operates on Models rather than
// raw bytes.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	// If given model type cannot be used to contain stored entity, ErrType
	// is returned.
	One(db custody.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given primary key value exists. It
	// returns ErrNotFound if no entity can be found.
	Has(db custody.ReadOnlyKVStore, key []byte) error

	// Put saves given model in the database. The model is validated first.
	Put(db custody.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db custody.KVStore, key []byte) error

	// Register registers the bucket in the query router, under /<name>.
	Register(name string, r custody.QueryRouter)
}

// NewModelBucket returns a ModelBucket storing models of the same type as
// the given prototype under the "<name>:" prefix.
func NewModelBucket(name string, proto Model) ModelBucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}
	return &modelBucket{
		name:   name,
		prefix: append([]byte(name), ':'),
		proto:  reflect.TypeOf(proto),
	}
}

type modelBucket struct {
	name   string
	prefix []byte
	proto  reflect.Type
}

var _ ModelBucket = (*modelBucket)(nil)
var _ custody.QueryHandler = (*modelBucket)(nil)

// dbKey is the full key we store in the db, including prefix.
// We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (mb *modelBucket) dbKey(key []byte) []byte {
	l := len(mb.prefix)
	out := make([]byte, l+len(key))
	copy(out, mb.prefix)
	copy(out[l:], key)
	return out
}

func (mb *modelBucket) One(db custody.ReadOnlyKVStore, key []byte, dest Model) error {
	if reflect.TypeOf(dest) != mb.proto {
		return errors.Wrapf(errors.ErrType, "%s cannot be represented as %T", mb.proto, dest)
	}
	raw := db.Get(mb.dbKey(key))
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "cannot unmarshal %T", dest)
	}
	return nil
}

func (mb *modelBucket) Has(db custody.ReadOnlyKVStore, key []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrNotFound, "nil key")
	}
	if !db.Has(mb.dbKey(key)) {
		return errors.ErrNotFound
	}
	return nil
}

func (mb *modelBucket) Put(db custody.KVStore, key []byte, m Model) error {
	if reflect.TypeOf(m) != mb.proto {
		return errors.Wrapf(errors.ErrType, "cannot store %T in %s bucket", m, mb.name)
	}
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrap(err, "cannot marshal")
	}
	db.Set(mb.dbKey(key), raw)
	return nil
}

func (mb *modelBucket) Delete(db custody.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	db.Delete(mb.dbKey(key))
	return nil
}

func (mb *modelBucket) Register(name string, r custody.QueryRouter) {
	if name == "" {
		name = mb.name
	}
	r.Register("/"+name, mb)
}

// Query handles queries from the QueryRouter
func (mb *modelBucket) Query(db custody.ReadOnlyKVStore, mod string, data []byte) ([]custody.Model, error) {
	switch mod {
	case custody.KeyQueryMod:
		key := mb.dbKey(data)
		value := db.Get(key)
		// return nothing on miss
		if value == nil {
			return nil, nil
		}
		return []custody.Model{custody.Pair(key, value)}, nil
	case custody.PrefixQueryMod:
		start := mb.dbKey(data)
		return ConsumeIterator(db.Iterator(start, prefixEnd(start))), nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
}

// ConsumeIterator will read all remaining data into an
// array and close the iterator
func ConsumeIterator(itr custody.Iterator) []custody.Model {
	defer itr.Close()

	var res []custody.Model
	for ; itr.Valid(); itr.Next() {
		res = append(res, custody.Pair(itr.Key(), itr.Value()))
	}
	return res
}

// prefixEnd returns the first key that does not start with prefix, or nil if
// there is no such key.
func prefixEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
