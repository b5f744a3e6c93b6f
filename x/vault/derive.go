package vault

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// ProgramID is the identity of the vault program. It owns every vault
// account.
var ProgramID = custody.NewProgramID("vault")

var seedPrefix = []byte("vault")

// Derive returns the vault address of the receiver together with the
// canonical bump. It is a pure function.
func Derive(programID, receiver custody.Address) (custody.Address, uint8, error) {
	if receiver.IsZero() {
		return custody.Address{}, 0, errors.Wrap(errors.ErrInput, "empty receiver")
	}
	return custody.ProgramAddress(programID, seedPrefix, receiver[:])
}

// Verify returns an ErrInvalidVaultAddress if addr is not the vault address of
// the receiver.
func Verify(programID, receiver, addr custody.Address) (uint8, error) {
	want, bump, err := Derive(programID, receiver)
	if err != nil {
		return 0, err
	}
	if !want.Equals(addr) {
		return 0, errors.Wrapf(ErrInvalidVaultAddress, "%s is not the vault of %s", addr, receiver)
	}
	return bump, nil
}
