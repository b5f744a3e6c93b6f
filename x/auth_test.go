package x_test

import (
	"context"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/x"
	"github.com/stretchr/testify/assert"
)

func TestChainAuth(t *testing.T) {
	a, b, c := custodytest.NewAddress(), custodytest.NewAddress(), custodytest.NewAddress()
	ctx := context.Background()

	ctxAuth := &custodytest.CtxAuth{Key: "auth"}
	ctx = ctxAuth.SetSigners(ctx, b, a)
	static := &custodytest.Auth{Signer: a}

	auth := x.ChainAuth(static, ctxAuth)
	assert.Equal(t, []custody.Address{a, b}, auth.GetSigners(ctx))
	assert.True(t, auth.HasAddress(ctx, a))
	assert.True(t, auth.HasAddress(ctx, b))
	assert.False(t, auth.HasAddress(ctx, c))

	main, ok := x.MainSigner(ctx, auth)
	assert.True(t, ok)
	assert.Equal(t, a, main)

	assert.True(t, x.HasAllAddresses(ctx, auth, []custody.Address{a, b}))
	assert.False(t, x.HasAllAddresses(ctx, auth, []custody.Address{a, c}))
}

func TestMainSignerNoSigners(t *testing.T) {
	_, ok := x.MainSigner(context.Background(), &custodytest.Auth{})
	assert.False(t, ok)
}
