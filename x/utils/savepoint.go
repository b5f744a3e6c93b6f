package utils

import (
	"github.com/iov-one/custody"
)

// Savepoint runs the rest of the stack on a cache wrap of the store. The
// writes are kept when the call succeeds and dropped when it fails, so a
// failed deposit or withdraw never leaves half a transfer behind.
//
// A Savepoint does nothing until it is enabled with OnCheck, OnDeliver or
// both.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ custody.Decorator = Savepoint{}

func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck enables the savepoint for CheckTx.
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver enables the savepoint for DeliverTx.
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

func (s Savepoint) Check(ctx custody.Context, store custody.KVStore, tx custody.Tx, next custody.Checker) (*custody.CheckResult, error) {
	cache, ok := s.wrap(s.onCheck, store)
	if !ok {
		return next.Check(ctx, store, tx)
	}
	res, err := next.Check(ctx, cache, tx)
	if err := settle(cache, err); err != nil {
		return nil, err
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx custody.Context, store custody.KVStore, tx custody.Tx, next custody.Deliverer) (*custody.DeliverResult, error) {
	cache, ok := s.wrap(s.onDeliver, store)
	if !ok {
		return next.Deliver(ctx, store, tx)
	}
	res, err := next.Deliver(ctx, cache, tx)
	if err := settle(cache, err); err != nil {
		return nil, err
	}
	return res, nil
}

// wrap returns a cache over store when the savepoint is enabled and the
// store supports it.
func (Savepoint) wrap(enabled bool, store custody.KVStore) (custody.KVCacheWrap, bool) {
	if !enabled {
		return nil, false
	}
	cstore, ok := store.(custody.CacheableKVStore)
	if !ok {
		return nil, false
	}
	return cstore.CacheWrap(), true
}

func settle(cache custody.KVCacheWrap, err error) error {
	if err != nil {
		cache.Discard()
		return err
	}
	cache.Write()
	return nil
}
