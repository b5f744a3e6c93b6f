package custody

import (
	"encoding/hex"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hexOf(a Address) string {
	return hex.EncodeToString(a[:])
}

func TestNewProgramID(t *testing.T) {
	assert.Equal(t, NewProgramID("vault"), NewProgramID("vault"))
	assert.NotEqual(t, NewProgramID("vault"), NewProgramID("system"))
	assert.False(t, NewProgramID("vault").IsZero())
}

func TestProgramAddress(t *testing.T) {
	program := NewProgramID("derive-test")
	seed := NewProgramID("some-receiver")

	addr, bump, err := ProgramAddress(program, []byte("vault"), seed[:])
	require.NoError(t, err)

	again, againBump, err := ProgramAddress(program, []byte("vault"), seed[:])
	require.NoError(t, err)
	assert.Equal(t, addr, again)
	assert.Equal(t, bump, againBump)

	assert.False(t, IsOnCurve(addr), "derived address must not have a private key")

	created, err := CreateProgramAddress(program, bump, []byte("vault"), seed[:])
	require.NoError(t, err)
	assert.Equal(t, addr, created)

	// Every bump above the canonical one was rejected by the search.
	for b := 255; b > int(bump); b-- {
		_, err := CreateProgramAddress(program, uint8(b), []byte("vault"), seed[:])
		assert.Error(t, err, "bump %d", b)
	}

	other, _, err := ProgramAddress(NewProgramID("another"), []byte("vault"), seed[:])
	require.NoError(t, err)
	assert.NotEqual(t, addr, other)
}

func TestProgramAddressSeedLimits(t *testing.T) {
	program := NewProgramID("derive-test")
	tooLong := make([]byte, solana.MaxSeedLength+1)
	_, _, err := ProgramAddress(program, tooLong)
	assert.Error(t, err)
}

func TestIsOnCurve(t *testing.T) {
	key, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	assert.True(t, IsOnCurve(NewAddress(key.PublicKey())))
}
