package sigs

import (
	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// SignedTx represents a transaction that contains signatures,
// which can be verified by the auth.Decorator
type SignedTx interface {
	// GetSignBytes returns the canonical byte representation of the Msg.
	// Helpful to store original, unparsed bytes here, just in case.
	GetSignBytes() ([]byte, error)

	// Signatures returns the signature of signers who signed the Msg.
	GetSignatures() []*StdSignature
}

// StdSignature is a single ed25519 signature together with the sequence it
// was created for.
type StdSignature struct {
	Pubkey    custody.Address  `json:"pubkey"`
	Signature solana.Signature `json:"signature"`
	Sequence  int64            `json:"sequence"`
}

// Validate ensures the StdSignature meets basic standards
func (s *StdSignature) Validate() error {
	if s.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if s.Pubkey.IsZero() {
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	}
	if s.Signature == (solana.Signature{}) {
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}
