package vault

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

const (
	pathDepositMsg  = "vault/deposit"
	pathWithdrawMsg = "vault/withdraw"
)

// DepositMsg moves Amount lamports from Payer into the vault of Receiver.
type DepositMsg struct {
	// Payer defaults to the main signer.
	Payer    custody.Address `json:"payer"`
	Vault    custody.Address `json:"vault"`
	Receiver custody.Address `json:"receiver"`
	Amount   uint64          `json:"amount"`
}

var _ custody.Msg = (*DepositMsg)(nil)

func (DepositMsg) Path() string {
	return pathDepositMsg
}

func (m *DepositMsg) Marshal() ([]byte, error) {
	return custody.MarshalBinary(m)
}

func (m *DepositMsg) Unmarshal(raw []byte) error {
	return custody.UnmarshalBinary(raw, m)
}

func (m *DepositMsg) Validate() error {
	var errs error
	if m.Amount == 0 {
		errs = errors.Append(errs, errors.Wrap(errors.ErrAmount, "deposit must be positive"))
	}
	if err := m.Vault.Validate(); err != nil {
		errs = errors.Append(errs, errors.Wrap(err, "vault"))
	}
	if err := m.Receiver.Validate(); err != nil {
		errs = errors.Append(errs, errors.Wrap(err, "receiver"))
	}
	return errs
}

// WithdrawMsg moves everything above the rent exempt minimum from the vault of
// Receiver to Receiver.
type WithdrawMsg struct {
	Receiver custody.Address `json:"receiver"`
	Vault    custody.Address `json:"vault"`
}

var _ custody.Msg = (*WithdrawMsg)(nil)

func (WithdrawMsg) Path() string {
	return pathWithdrawMsg
}

func (m *WithdrawMsg) Marshal() ([]byte, error) {
	return custody.MarshalBinary(m)
}

func (m *WithdrawMsg) Unmarshal(raw []byte) error {
	return custody.UnmarshalBinary(raw, m)
}

func (m *WithdrawMsg) Validate() error {
	var errs error
	if err := m.Receiver.Validate(); err != nil {
		errs = errors.Append(errs, errors.Wrap(err, "receiver"))
	}
	if err := m.Vault.Validate(); err != nil {
		errs = errors.Append(errs, errors.Wrap(err, "vault"))
	}
	return errs
}
