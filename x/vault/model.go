package vault

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/x/system"
)

// BucketName is where the vault records are stored, keyed by vault address.
const BucketName = "vault"

// Space is the data size allocated for every vault account: an 8 byte record
// discriminator, the receiver and the bump.
const Space = 8 + custody.AddressLength + 1

// Vault is the record stored for an initialized vault. The balance is held by
// the ledger account of the vault address.
type Vault struct {
	Receiver custody.Address `json:"receiver"`
	Bump     uint8           `json:"bump"`
}

var _ orm.Model = (*Vault)(nil)

func (v *Vault) Marshal() ([]byte, error) {
	return custody.MarshalBinary(v)
}

func (v *Vault) Unmarshal(raw []byte) error {
	return custody.UnmarshalBinary(raw, v)
}

func (v *Vault) Validate() error {
	if err := v.Receiver.Validate(); err != nil {
		return errors.Wrap(err, "receiver")
	}
	return nil
}

// NewBucket returns the bucket holding vault records.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Vault{})
}

// State is the lifecycle state of a vault address. It is either
// Uninitialized or Active.
type State interface {
	isState()
}

// Uninitialized is a vault address before the first deposit. The address may
// already hold lamports sent to it directly.
type Uninitialized struct {
	Address  custody.Address
	Bump     uint8
	Lamports uint64
	// Floor is the rent exempt minimum the first deposit must fund.
	Floor uint64
}

// Active is an initialized vault.
type Active struct {
	Address  custody.Address
	Vault    Vault
	Lamports uint64
	Floor    uint64
}

func (Uninitialized) isState() {}
func (Active) isState()        {}

// Withdrawable returns the lamports held above the floor.
func (a Active) Withdrawable() uint64 {
	if a.Lamports <= a.Floor {
		return 0
	}
	return a.Lamports - a.Floor
}

// Load reads the state of the vault at addr, derived with bump. Accounts that
// do not have the vault layout are reported as ErrInvalidVaultAddress.
func Load(db custody.ReadOnlyKVStore, bank system.Controller, addr custody.Address, bump uint8) (State, error) {
	floor, err := bank.Floor(db, Space)
	if err != nil {
		return nil, errors.Wrap(err, "rent exempt minimum")
	}

	acc, err := bank.Account(db, addr)
	switch {
	case errors.ErrNotFound.Is(err):
		return Uninitialized{Address: addr, Bump: bump, Floor: floor}, nil
	case err != nil:
		return nil, err
	}

	if !acc.IsAllocated() {
		return Uninitialized{Address: addr, Bump: bump, Lamports: acc.Lamports, Floor: floor}, nil
	}
	if acc.Space != Space || !acc.Owner.Equals(ProgramID) {
		return nil, errors.Wrapf(ErrInvalidVaultAddress, "account layout: %d bytes owned by %s", acc.Space, acc.Owner)
	}

	var v Vault
	if err := NewBucket().One(db, addr[:], &v); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrap(ErrInvalidVaultAddress, "allocated account without vault record")
		}
		return nil, err
	}
	if v.Bump != bump {
		return nil, errors.Wrapf(ErrInvalidVaultAddress, "stored bump %d, derived %d", v.Bump, bump)
	}
	return Active{Address: addr, Vault: v, Lamports: acc.Lamports, Floor: floor}, nil
}
