package system

import (
	"math/bits"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// Controller is the ledger transfer primitive. It is the only way other
// extensions change account balances.
type Controller interface {
	// Balance returns the lamports held by the address. Unknown addresses
	// hold nothing.
	Balance(db custody.ReadOnlyKVStore, addr custody.Address) (uint64, error)

	// Account returns the account state. ErrNotFound is returned if the
	// address never held anything.
	Account(db custody.ReadOnlyKVStore, addr custody.Address) (*Account, error)

	// Allocate assigns space bytes of data to addr on behalf of owner and
	// funds the account from payer up to the rent exempt minimum. Already
	// held lamports count toward the minimum. The amount taken from payer
	// is returned.
	Allocate(db custody.KVStore, payer, addr custody.Address, space uint64, owner custody.Address) (uint64, error)

	// Transfer moves amount lamports from src to dst. An allocated source
	// cannot fall below its rent exempt minimum.
	Transfer(db custody.KVStore, src, dst custody.Address, amount uint64) error

	// Floor returns the rent exempt minimum for the given data size, using
	// the configuration stored in the database.
	Floor(db custody.ReadOnlyKVStore, space uint64) (uint64, error)
}

// NewController returns a Controller backed by the accounts bucket.
func NewController() Controller {
	return &controller{bucket: NewBucket()}
}

type controller struct {
	bucket orm.ModelBucket
}

var _ Controller = (*controller)(nil)

func (c *controller) Balance(db custody.ReadOnlyKVStore, addr custody.Address) (uint64, error) {
	acc, err := c.Account(db, addr)
	switch {
	case err == nil:
		return acc.Lamports, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}

func (c *controller) Account(db custody.ReadOnlyKVStore, addr custody.Address) (*Account, error) {
	var acc Account
	if err := c.bucket.One(db, addr[:], &acc); err != nil {
		return nil, errors.Wrapf(err, "account %s", addr)
	}
	return &acc, nil
}

// loadOrEmpty returns the stored account or a new, empty one.
func (c *controller) loadOrEmpty(db custody.ReadOnlyKVStore, addr custody.Address) (*Account, error) {
	acc, err := c.Account(db, addr)
	if errors.ErrNotFound.Is(err) {
		return &Account{}, nil
	}
	return acc, err
}

func (c *controller) Floor(db custody.ReadOnlyKVStore, space uint64) (uint64, error) {
	conf, err := LoadConfiguration(db)
	if err != nil {
		return 0, err
	}
	return MinimumBalance(conf, space)
}

func (c *controller) Allocate(db custody.KVStore, payer, addr custody.Address, space uint64, owner custody.Address) (uint64, error) {
	if space == 0 {
		return 0, errors.Wrap(errors.ErrInput, "zero space")
	}
	if owner.IsZero() {
		return 0, errors.Wrap(errors.ErrEmpty, "owner")
	}
	acc, err := c.loadOrEmpty(db, addr)
	if err != nil {
		return 0, err
	}
	if acc.IsAllocated() {
		return 0, errors.Wrapf(errors.ErrDuplicate, "account %s already allocated", addr)
	}
	floor, err := c.Floor(db, space)
	if err != nil {
		return 0, err
	}

	var required uint64
	if acc.Lamports < floor {
		required = floor - acc.Lamports
	}
	if required > 0 {
		if err := c.Transfer(db, payer, addr, required); err != nil {
			return 0, errors.Wrap(err, "fund rent exempt minimum")
		}
		// transfer changed the stored balance
		if acc, err = c.loadOrEmpty(db, addr); err != nil {
			return 0, err
		}
	}
	acc.Space = space
	acc.Owner = owner
	if err := c.bucket.Put(db, addr[:], acc); err != nil {
		return 0, errors.Wrap(err, "save account")
	}
	return required, nil
}

func (c *controller) Transfer(db custody.KVStore, src, dst custody.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero transfer")
	}
	sender, err := c.loadOrEmpty(db, src)
	if err != nil {
		return err
	}
	if sender.Lamports < amount {
		return errors.Wrapf(errors.ErrInsufficientFunds, "%s holds %d, needs %d", src, sender.Lamports, amount)
	}
	if sender.IsAllocated() {
		floor, err := c.Floor(db, sender.Space)
		if err != nil {
			return err
		}
		if sender.Lamports-amount < floor {
			return errors.Wrapf(errors.ErrInsufficientFunds, "%s cannot go below rent exempt minimum %d", src, floor)
		}
	}
	if src.Equals(dst) {
		return nil
	}
	recipient, err := c.loadOrEmpty(db, dst)
	if err != nil {
		return err
	}
	sum, carry := bits.Add64(recipient.Lamports, amount, 0)
	if carry != 0 {
		return errors.Wrapf(errors.ErrOverflow, "%s balance", dst)
	}

	sender.Lamports -= amount
	recipient.Lamports = sum
	if err := c.bucket.Put(db, src[:], sender); err != nil {
		return errors.Wrap(err, "save sender")
	}
	if err := c.bucket.Put(db, dst[:], recipient); err != nil {
		return errors.Wrap(err, "save recipient")
	}
	return nil
}
