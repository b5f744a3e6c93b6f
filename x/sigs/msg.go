package sigs

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

const (
	pathBumpSequenceMsg = "sigs/bump_sequence"

	maxSequenceIncrement = 1000
	minSequenceIncrement = 1
)

// BumpSequenceMsg increments the sequence of the main signer by Increment.
// Signing it already increments the sequence by one, which is accounted for.
type BumpSequenceMsg struct {
	Increment uint32 `json:"increment"`
}

var _ custody.Msg = (*BumpSequenceMsg)(nil)

func (msg *BumpSequenceMsg) Marshal() ([]byte, error) {
	return custody.MarshalBinary(msg)
}

func (msg *BumpSequenceMsg) Unmarshal(raw []byte) error {
	return custody.UnmarshalBinary(raw, msg)
}

func (msg *BumpSequenceMsg) Validate() error {
	if msg.Increment < minSequenceIncrement {
		return errors.Wrapf(errors.ErrMsg, "increment must be at least %d", minSequenceIncrement)
	}
	if msg.Increment > maxSequenceIncrement {
		return errors.Wrapf(errors.ErrMsg, "increment must not be greater than %d", maxSequenceIncrement)
	}
	return nil
}

func (BumpSequenceMsg) Path() string {
	return pathBumpSequenceMsg
}
