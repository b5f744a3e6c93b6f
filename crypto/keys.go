/*
Package crypto manages the ed25519 keys used to sign transactions.

Keys are solana-go private keys, so an address of a signer is
its public key. Keys can be random, created from a 32 byte seed,
or derived from a master seed along a SLIP-10 path.
*/
package crypto

import (
	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/stellar/go/exp/crypto/derivation"
	"golang.org/x/crypto/ed25519"
)

// DefaultDerivationPath is the SLIP-10 path used when none is given.
const DefaultDerivationPath = "m/44'/501'/0'/0'"

// Signer is the functionality we use from a private key.
// No serializing to support hardware devices as well.
type Signer interface {
	Sign(message []byte) (solana.Signature, error)
	PublicKey() solana.PublicKey
}

var _ Signer = solana.PrivateKey(nil)

// GenPrivateKey returns a random new private key.
func GenPrivateKey() (solana.PrivateKey, error) {
	key, err := solana.NewRandomPrivateKey()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrHuman, "cannot generate key: %s", err)
	}
	return key, nil
}

// PrivateKeyFromSeed will deterministically generate a private key from
// a given 32 byte seed. Use if you have a strong source of external
// randomness, or for deterministic keys in test cases.
func PrivateKeyFromSeed(seed []byte) (solana.PrivateKey, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, errors.Wrapf(errors.ErrInput, "seed must be %d bytes", ed25519.SeedSize)
	}
	return solana.PrivateKey(ed25519.NewKeyFromSeed(seed)), nil
}

// DerivePrivateKey derives a private key from a master seed along the given
// SLIP-10 path, for example "m/44'/501'/0'/0'". Only hardened derivation is
// supported.
func DerivePrivateKey(seed []byte, path string) (solana.PrivateKey, error) {
	if path == "" {
		path = DefaultDerivationPath
	}
	k, err := derivation.DeriveForPath(path, seed)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot derive key using path=%q: %s", path, err)
	}
	return PrivateKeyFromSeed(k.Key)
}

// Address returns the ledger address controlled by the signer.
func Address(s Signer) custody.Address {
	return custody.NewAddress(s.PublicKey())
}

// Verify returns true if sig is a signature of message made by the key of
// the given address.
func Verify(signer custody.Address, message []byte, sig solana.Signature) bool {
	return sig.Verify(signer.PublicKey(), message)
}
