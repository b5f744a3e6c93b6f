/*
Package system implements the ledger accounts every other extension moves
lamports through.

An account is a balance plus optional allocated data space. Accounts with
allocated space belong to a program and must stay at or above the rent exempt
minimum for their size.
*/
package system

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// BucketName is where the accounts are stored.
const BucketName = "acct"

// Account is the ledger state of a single address.
type Account struct {
	Lamports uint64 `json:"lamports"`
	// Space is the size of the data allocated for this account. Zero for
	// plain wallets.
	Space uint64 `json:"space"`
	// Owner is the program that allocated the account. Zero for plain
	// wallets.
	Owner custody.Address `json:"owner"`
}

var _ orm.Model = (*Account)(nil)

func (a *Account) Marshal() ([]byte, error) {
	return custody.MarshalBinary(a)
}

func (a *Account) Unmarshal(raw []byte) error {
	return custody.UnmarshalBinary(raw, a)
}

func (a *Account) Validate() error {
	if a.Space != 0 && a.Owner.IsZero() {
		return errors.Wrap(errors.ErrModel, "allocated account without owner")
	}
	if a.Space == 0 && !a.Owner.IsZero() {
		return errors.Wrap(errors.ErrModel, "owned account without space")
	}
	return nil
}

// IsAllocated returns true if a program allocated data space for this account.
func (a *Account) IsAllocated() bool {
	return a.Space != 0
}

// NewBucket returns the bucket holding all accounts, keyed by address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Account{})
}
