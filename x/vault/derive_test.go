package vault

import (
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveIsDeterministic(t *testing.T) {
	for i := byte(1); i < 20; i++ {
		receiver := custodytest.NewAddress()

		addr, bump, err := Derive(ProgramID, receiver)
		require.NoError(t, err)
		again, bumpAgain, err := Derive(ProgramID, receiver)
		require.NoError(t, err)

		assert.Equal(t, addr, again)
		assert.Equal(t, bump, bumpAgain)
		assert.False(t, custody.IsOnCurve(addr), "vault address must not be a valid key")

		created, err := custody.CreateProgramAddress(ProgramID, bump, []byte("vault"), receiver[:])
		require.NoError(t, err)
		assert.Equal(t, addr, created)
	}
}

func TestDeriveDoesNotCollide(t *testing.T) {
	seen := make(map[custody.Address]custody.Address)
	for i := byte(0); i < 50; i++ {
		receiver := custody.NewAddress(custodytest.SeqKey(i).PublicKey())
		addr, _, err := Derive(ProgramID, receiver)
		require.NoError(t, err)
		if other, ok := seen[addr]; ok {
			t.Fatalf("%s and %s share vault %s", other, receiver, addr)
		}
		seen[addr] = receiver
	}

	// the program identity is part of the derivation
	receiver := custodytest.NewAddress()
	a, _, err := Derive(ProgramID, receiver)
	require.NoError(t, err)
	b, _, err := Derive(custody.NewProgramID("other"), receiver)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestDeriveRejectsEmptyReceiver(t *testing.T) {
	_, _, err := Derive(ProgramID, custody.Address{})
	assert.True(t, errors.ErrInput.Is(err))
}

func TestVerify(t *testing.T) {
	receiver, other := custodytest.NewAddress(), custodytest.NewAddress()
	addr, bump, err := Derive(ProgramID, receiver)
	require.NoError(t, err)

	got, err := Verify(ProgramID, receiver, addr)
	require.NoError(t, err)
	assert.Equal(t, bump, got)

	_, err = Verify(ProgramID, other, addr)
	assert.True(t, ErrInvalidVaultAddress.Is(err))

	_, err = Verify(ProgramID, receiver, receiver)
	assert.True(t, ErrInvalidVaultAddress.Is(err))
}
