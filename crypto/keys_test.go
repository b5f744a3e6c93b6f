package crypto

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerify(t *testing.T) {
	key, err := GenPrivateKey()
	require.NoError(t, err)

	msg := []byte("deposit 1000")
	sig, err := key.Sign(msg)
	require.NoError(t, err)

	addr := Address(key)
	assert.True(t, custody.IsOnCurve(addr))
	assert.True(t, Verify(addr, msg, sig))
	assert.False(t, Verify(addr, []byte("deposit 1001"), sig))

	other, err := GenPrivateKey()
	require.NoError(t, err)
	assert.False(t, Verify(Address(other), msg, sig))
}

func TestPrivateKeyFromSeed(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 32)
	a, err := PrivateKeyFromSeed(seed)
	require.NoError(t, err)
	b, err := PrivateKeyFromSeed(seed)
	require.NoError(t, err)
	assert.Equal(t, Address(a), Address(b))

	_, err = PrivateKeyFromSeed([]byte("short"))
	assert.True(t, errors.ErrInput.Is(err))
}

func TestDerivePrivateKey(t *testing.T) {
	seed, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	require.NoError(t, err)

	first, err := DerivePrivateKey(seed, "m/44'/501'/0'/0'")
	require.NoError(t, err)
	again, err := DerivePrivateKey(seed, "")
	require.NoError(t, err)
	assert.Equal(t, Address(first), Address(again), "empty path uses the default")

	second, err := DerivePrivateKey(seed, "m/44'/501'/1'/0'")
	require.NoError(t, err)
	assert.NotEqual(t, Address(first), Address(second))

	_, err = DerivePrivateKey(seed, "m/44/501")
	assert.True(t, errors.ErrInput.Is(err), "non hardened path is rejected")
}
