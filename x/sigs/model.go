package sigs

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// BucketName is where we store the accounts
const BucketName = "sigs"

// maxSequenceValue is limited by the client. The greatest supported
// nonce value at client side is Number.MAX_SAFE_INTEGER = 2^53 - 1
const maxSequenceValue = (1 << 53) - 1

// UserData is the replay protection state of a single signer.
type UserData struct {
	Pubkey   custody.Address `json:"pubkey"`
	Sequence int64           `json:"sequence"`
}

var _ orm.Model = (*UserData)(nil)

func (u *UserData) Marshal() ([]byte, error) {
	return custody.MarshalBinary(u)
}

func (u *UserData) Unmarshal(raw []byte) error {
	return custody.UnmarshalBinary(raw, u)
}

func (u *UserData) Validate() error {
	var errs error
	if seq := u.Sequence; seq < 0 {
		errs = errors.Append(errs, errors.Wrap(ErrInvalidSequence, "negative"))
	}
	if u.Pubkey.IsZero() {
		errs = errors.Append(errs, errors.Wrap(errors.ErrEmpty, "pubkey"))
	}
	return errs
}

// CheckAndIncrementSequence implements check and increment operation.
// If current sequence value is the same as given expected value then it is
// incremented. Otherwise an error is returned.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", expected, u.Sequence)
	}
	next := u.Sequence + 1
	if next <= 0 || next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

// Bucket extends orm.ModelBucket with GetOrCreate
type Bucket struct {
	orm.ModelBucket
}

// NewBucket creates the proper bucket for this extension
func NewBucket() Bucket {
	return Bucket{
		ModelBucket: orm.NewModelBucket(BucketName, &UserData{}),
	}
}

// GetOrCreate loads the signer state, initializing a fresh one with sequence
// zero if none exist for that key.
func (b Bucket) GetOrCreate(db custody.ReadOnlyKVStore, pubkey custody.Address) (*UserData, error) {
	var user UserData
	switch err := b.One(db, pubkey[:], &user); {
	case err == nil:
		return &user, nil
	case errors.ErrNotFound.Is(err):
		return &UserData{Pubkey: pubkey}, nil
	default:
		return nil, err
	}
}

// Save persists the user under its public key.
func (b Bucket) Save(db custody.KVStore, u *UserData) error {
	return b.Put(db, u.Pubkey[:], u)
}
