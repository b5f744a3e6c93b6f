package custody

import (
	"encoding/hex"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/custody/crypto/bech32"
	"github.com/iov-one/custody/errors"
)

// AddressLength is the length of all addresses.
const AddressLength = solana.PublicKeyLength

// Bech32Prefix is the human readable part used for the bech32 form of an
// address.
const Bech32Prefix = "cust"

// Address identifies an account on the ledger. It is either an ed25519
// public key of a signer or a program derived address that has no private
// key at all.
type Address [AddressLength]byte

// NewAddress returns the address of the given public key.
func NewAddress(pub solana.PublicKey) Address {
	return Address(pub)
}

// AddressFromBytes copies a raw 32 byte representation into an address.
func AddressFromBytes(raw []byte) (Address, error) {
	var a Address
	if len(raw) != AddressLength {
		return a, errors.Wrapf(errors.ErrInput, "address must be %d bytes, got %d", AddressLength, len(raw))
	}
	copy(a[:], raw)
	return a, nil
}

// ParseAddress decodes a string representation of an address. Accepted
// formats are plain base58 (default), "hex:<hex>" and "bech32:<bech32>".
func ParseAddress(s string) (Address, error) {
	switch {
	case strings.HasPrefix(s, "hex:"):
		raw, err := hex.DecodeString(s[4:])
		if err != nil {
			return Address{}, errors.Wrap(errors.ErrInput, "invalid hex")
		}
		return AddressFromBytes(raw)
	case strings.HasPrefix(s, "bech32:"):
		hrp, raw, err := bech32.Decode(s[7:])
		if err != nil {
			return Address{}, err
		}
		if hrp != Bech32Prefix {
			return Address{}, errors.Wrapf(errors.ErrInput, "unexpected bech32 prefix %q", hrp)
		}
		return AddressFromBytes(raw)
	default:
		pub, err := solana.PublicKeyFromBase58(s)
		if err != nil {
			return Address{}, errors.Wrapf(errors.ErrInput, "invalid base58: %s", err)
		}
		return Address(pub), nil
	}
}

// MustParseAddress is like ParseAddress but panics on error. Use it only for
// static values.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// PublicKey returns the solana representation of this address.
func (a Address) PublicKey() solana.PublicKey {
	return solana.PublicKey(a)
}

// Bytes returns a copy of the raw address.
func (a Address) Bytes() []byte {
	b := make([]byte, AddressLength)
	copy(b, a[:])
	return b
}

// Equals checks if two addresses are the same
func (a Address) Equals(b Address) bool {
	return a == b
}

// IsZero returns true if no byte of the address is set.
func (a Address) IsZero() bool {
	return a == Address{}
}

// String returns the base58 form of the address.
func (a Address) String() string {
	return solana.PublicKey(a).String()
}

// Bech32 returns the bech32 form of the address, without the "bech32:"
// type prefix.
func (a Address) Bech32() (string, error) {
	return bech32.Encode(Bech32Prefix, a[:])
}

// Validate returns an error if the address is not set.
func (a Address) Validate() error {
	if a.IsZero() {
		return errors.Wrap(errors.ErrEmpty, "address")
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler. Both JSON and the
// command line use the base58 form.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText accepts every format supported by ParseAddress. An empty
// string decodes into the zero address.
func (a *Address) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*a = Address{}
		return nil
	}
	addr, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}
