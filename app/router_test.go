package app

import (
	"context"
	"testing"

	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
)

func TestRouter(t *testing.T) {
	r := NewRouter()

	var good custodytest.Handler
	bad := custodytest.Handler{CheckErr: errors.ErrAmount, DeliverErr: errors.ErrAmount}
	r.Handle("vault/good", &good)
	r.Handle("vault/bad", &bad)

	// invalid registrations panic
	assert.Panics(t, func() { r.Handle("vault/good", &good) })
	assert.Panics(t, func() { r.Handle("l:7", &good) })
	assert.Panics(t, func() { r.Handle("", &good) })

	ctx := context.Background()
	txFor := func(path string) *custodytest.Tx {
		return &custodytest.Tx{Msg: &custodytest.Msg{RoutePath: path}}
	}

	_, err := r.Check(ctx, nil, txFor("vault/good"))
	assert.Nil(t, err)
	_, err = r.Deliver(ctx, nil, txFor("vault/good"))
	assert.Nil(t, err)
	assert.Equal(t, 2, good.CallCount())

	_, err = r.Deliver(ctx, nil, txFor("vault/bad"))
	assert.IsErr(t, errors.ErrAmount, err)
	assert.Equal(t, 1, bad.CallCount())

	_, err = r.Check(ctx, nil, txFor("vault/missing"))
	assert.IsErr(t, errors.ErrNotFound, err)
	_, err = r.Deliver(ctx, nil, txFor("vault/missing"))
	assert.IsErr(t, errors.ErrNotFound, err)

	_, err = r.Deliver(ctx, nil, &custodytest.Tx{})
	assert.IsErr(t, errors.ErrMsg, err)
	_, err = r.Check(ctx, nil, &custodytest.Tx{Err: errors.ErrInput})
	assert.IsErr(t, errors.ErrInput, err)

	assert.Equal(t, 2, good.CallCount())
}
