package custodytest

import (
	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
)

// NewKey returns a random signing key. It panics if no randomness is
// available.
func NewKey() solana.PrivateKey {
	key, err := crypto.GenPrivateKey()
	if err != nil {
		panic(err)
	}
	return key
}

// NewAddress returns the address of a fresh random key.
func NewAddress() custody.Address {
	return crypto.Address(NewKey())
}

// SeqKey returns a deterministic key, different for every n.
func SeqKey(n byte) solana.PrivateKey {
	seed := make([]byte, 32)
	seed[31] = n
	key, err := crypto.PrivateKeyFromSeed(seed)
	if err != nil {
		panic(err)
	}
	return key
}
