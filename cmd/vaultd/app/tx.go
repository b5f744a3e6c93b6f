package app

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/sigs"
	"github.com/iov-one/custody/x/system"
	"github.com/iov-one/custody/x/vault"
)

// Tx is the transaction format of the vault chain. Exactly one of the
// message fields is set.
type Tx struct {
	Signatures []*sigs.StdSignature `json:"signatures"`

	DepositMsg      *vault.DepositMsg     `json:"deposit,omitempty"`
	WithdrawMsg     *vault.WithdrawMsg    `json:"withdraw,omitempty"`
	TransferMsg     *system.TransferMsg   `json:"transfer,omitempty"`
	BumpSequenceMsg *sigs.BumpSequenceMsg `json:"bump_sequence,omitempty"`
}

var _ custody.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (custody.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

// NewTx wraps a single message into an unsigned transaction.
func NewTx(msg custody.Msg) (*Tx, error) {
	var tx Tx
	if err := tx.SetMsg(msg); err != nil {
		return nil, err
	}
	return &tx, nil
}

// SetMsg places msg in the matching field, clearing any previous message.
func (tx *Tx) SetMsg(msg custody.Msg) error {
	tx.DepositMsg, tx.WithdrawMsg, tx.TransferMsg, tx.BumpSequenceMsg = nil, nil, nil, nil
	switch m := msg.(type) {
	case *vault.DepositMsg:
		tx.DepositMsg = m
	case *vault.WithdrawMsg:
		tx.WithdrawMsg = m
	case *system.TransferMsg:
		tx.TransferMsg = m
	case *sigs.BumpSequenceMsg:
		tx.BumpSequenceMsg = m
	default:
		return errors.WithType(errors.ErrMsg, msg)
	}
	return nil
}

// GetMsg returns the single message carried by the transaction.
func (tx *Tx) GetMsg() (custody.Msg, error) {
	var found []custody.Msg
	if tx.DepositMsg != nil {
		found = append(found, tx.DepositMsg)
	}
	if tx.WithdrawMsg != nil {
		found = append(found, tx.WithdrawMsg)
	}
	if tx.TransferMsg != nil {
		found = append(found, tx.TransferMsg)
	}
	if tx.BumpSequenceMsg != nil {
		found = append(found, tx.BumpSequenceMsg)
	}
	switch len(found) {
	case 0:
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	case 1:
		return found[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrMsg, "%d messages in one transaction", len(found))
	}
}

func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign. Signatures are not part of them.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := *tx
	unsigned.Signatures = nil
	return unsigned.Marshal()
}

func (tx *Tx) Marshal() ([]byte, error) {
	return custody.MarshalBinary(tx)
}

func (tx *Tx) Unmarshal(raw []byte) error {
	return custody.UnmarshalBinary(raw, tx)
}
