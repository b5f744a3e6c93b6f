package app

import (
	"context"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store/iavl"
	abci "github.com/tendermint/tendermint/abci/types"
)

func TestBaseAppTransactions(t *testing.T) {
	decoder := func(raw []byte) (custody.Tx, error) {
		switch string(raw) {
		case "panic":
			panic("cannot decode")
		case "bad":
			return nil, errors.Wrap(errors.ErrInput, "bad tx")
		}
		return &custodytest.Tx{Msg: &custodytest.Msg{RoutePath: string(raw)}}, nil
	}

	r := NewRouter()
	h := &custodytest.Handler{
		CheckResult:   custody.CheckResult{GasAllocated: 7},
		DeliverResult: custody.DeliverResult{Data: []byte("done")},
		WriteKey:      []byte("written"),
		WriteValue:    []byte("yes"),
	}
	r.Handle("test/ok", h)
	r.Handle("test/fail", &custodytest.Handler{
		CheckErr:   errors.ErrUnauthorized,
		DeliverErr: errors.ErrUnauthorized,
	})

	store := NewStoreApp("test", iavl.MockCommitStore(), custody.NewQueryRouter(), context.Background())
	b := NewBaseApp(store, decoder, r, false)
	b.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1}})

	check := b.CheckTx([]byte("test/ok"))
	assert.Equal(t, uint32(0), check.Code)
	assert.Equal(t, int64(7), check.GasWanted)

	deliver := b.DeliverTx([]byte("test/ok"))
	assert.Equal(t, uint32(0), deliver.Code)
	assert.Equal(t, []byte("done"), deliver.Data)
	assert.Equal(t, []byte("yes"), b.DeliverStore().Get([]byte("written")))

	deliver = b.DeliverTx([]byte("test/fail"))
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), deliver.Code)

	deliver = b.DeliverTx([]byte("test/unknown"))
	assert.Equal(t, errors.ErrNotFound.ABCICode(), deliver.Code)

	check = b.CheckTx([]byte("bad"))
	assert.Equal(t, errors.ErrInput.ABCICode(), check.Code)

	check = b.CheckTx([]byte("panic"))
	assert.Equal(t, errors.ErrPanic.ABCICode(), check.Code)
	assert.Equal(t, "cannot check tx: panic", check.Log)

	assert.Equal(t, 2, h.CallCount())
}
