package custody

import (
	"fmt"
	"testing"

	"github.com/iov-one/custody/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliverOrError(t *testing.T) {
	res := &DeliverResult{Data: []byte("vault"), Log: "ok"}
	res.Tag([]byte("action"), []byte("deposit"))

	got := DeliverOrError(res, nil, false)
	assert.Equal(t, uint32(0), got.Code)
	assert.Equal(t, []byte("vault"), got.Data)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, "deposit", string(got.Tags[0].Value))

	parsed, err := ParseDeliverOrError(got)
	require.NoError(t, err)
	assert.Equal(t, res.Data, parsed.Data)

	failed := DeliverOrError(nil, errors.Wrap(errors.ErrInsufficientFunds, "payer"), false)
	assert.Equal(t, errors.ErrInsufficientFunds.ABCICode(), failed.Code)
	assert.Equal(t, "cannot deliver tx: payer: insufficient funds", failed.Log)

	_, err = ParseDeliverOrError(failed)
	assert.True(t, errors.ErrInsufficientFunds.Is(err))
}

func TestCheckOrError(t *testing.T) {
	got := CheckOrError(NewCheck(10, "fine"), nil, false)
	assert.Equal(t, uint32(0), got.Code)
	assert.Equal(t, int64(10), got.GasWanted)

	// unregistered errors are hidden unless debug is on
	failed := CheckOrError(nil, fmt.Errorf("secret"), false)
	assert.Equal(t, uint32(1), failed.Code)
	assert.NotContains(t, failed.Log, "secret")

	debug := CheckOrError(nil, fmt.Errorf("secret"), true)
	assert.Contains(t, debug.Log, "secret")
}
