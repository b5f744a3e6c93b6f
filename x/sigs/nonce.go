package sigs

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// NextNonce returns the next numeric nonce value that should be used during a
// transaction signing.
// Any address can contain a nonce. In practice you always want to acquire a
// nonce for the signer.
func NextNonce(db custody.ReadOnlyKVStore, signer custody.Address) (int64, error) {
	user, err := NewBucket().GetOrCreate(db, signer)
	if err != nil {
		return 0, errors.Wrap(err, "bucket get")
	}
	// If not yet present, nonce counting starts with zero.
	return user.Sequence, nil
}
