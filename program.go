package custody

import (
	"crypto/sha256"

	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/custody/errors"
)

// NewProgramID returns the identity of a built-in program. The same name
// always produces the same identity, so every node of the network agrees on
// which program owns which account.
func NewProgramID(name string) Address {
	return Address(sha256.Sum256([]byte("custody/program:" + name)))
}

// ProgramAddress finds the canonical program derived address for the given
// seeds. The bump is searched downwards from 255 and the first candidate
// that is not a valid ed25519 point is returned, so no private key can ever
// sign for the resulting address.
//
// The result only depends on the arguments.
func ProgramAddress(programID Address, seeds ...[]byte) (Address, uint8, error) {
	pub, bump, err := solana.FindProgramAddress(seeds, solana.PublicKey(programID))
	if err != nil {
		return Address{}, 0, errors.Wrapf(errors.ErrInput, "cannot derive program address: %s", err)
	}
	return Address(pub), bump, nil
}

// CreateProgramAddress computes the program derived address for the given
// seeds and bump. It fails if the result lies on the ed25519 curve.
func CreateProgramAddress(programID Address, bump uint8, seeds ...[]byte) (Address, error) {
	all := make([][]byte, 0, len(seeds)+1)
	all = append(all, seeds...)
	all = append(all, []byte{bump})
	pub, err := solana.CreateProgramAddress(all, solana.PublicKey(programID))
	if err != nil {
		return Address{}, errors.Wrapf(errors.ErrInput, "cannot create program address: %s", err)
	}
	return Address(pub), nil
}

// IsOnCurve returns true if the address is a valid ed25519 public key.
func IsOnCurve(a Address) bool {
	return solana.IsOnCurve(a[:])
}
