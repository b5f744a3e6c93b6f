package system

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

const (
	pathTransferMsg = "system/transfer"

	maxMemoSize = 128
)

// TransferMsg moves lamports between two wallets.
type TransferMsg struct {
	Source      custody.Address `json:"source"`
	Destination custody.Address `json:"destination"`
	Amount      uint64          `json:"amount"`
	Memo        string          `json:"memo,omitempty"`
}

var _ custody.Msg = (*TransferMsg)(nil)

func (TransferMsg) Path() string {
	return pathTransferMsg
}

func (m *TransferMsg) Marshal() ([]byte, error) {
	return custody.MarshalBinary(m)
}

func (m *TransferMsg) Unmarshal(raw []byte) error {
	return custody.UnmarshalBinary(raw, m)
}

func (m *TransferMsg) Validate() error {
	var errs error
	if m.Amount == 0 {
		errs = errors.Append(errs, errors.Wrap(errors.ErrAmount, "non-positive transfer"))
	}
	if err := m.Source.Validate(); err != nil {
		errs = errors.Append(errs, errors.Wrap(err, "source"))
	}
	if err := m.Destination.Validate(); err != nil {
		errs = errors.Append(errs, errors.Wrap(err, "destination"))
	}
	if len(m.Memo) > maxMemoSize {
		errs = errors.Append(errs, errors.Wrapf(errors.ErrInput, "memo longer than %d", maxMemoSize))
	}
	return errs
}
