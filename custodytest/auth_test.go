package custodytest

import (
	"context"
	"reflect"
	"testing"

	"github.com/iov-one/custody"
)

func TestAuthNoSigners(t *testing.T) {
	var a Auth

	if got := a.GetSigners(nil); got != nil {
		t.Fatalf("unexpected signers: %+v", got)
	}
	if a.HasAddress(nil, NewAddress()) {
		t.Fatal("random address must not be present")
	}
}

func TestAuthUsingSignerAndSigners(t *testing.T) {
	addrs := []custody.Address{
		NewAddress(),
		NewAddress(),
		NewAddress(),
	}

	a := Auth{
		Signer:  addrs[0],
		Signers: addrs[1:],
	}

	if got := a.GetSigners(nil); !reflect.DeepEqual(got, addrs) {
		t.Fatalf("unexpected signers: %v", got)
	}
	for i, addr := range addrs {
		if !a.HasAddress(nil, addr) {
			t.Fatalf("address %d not authenticated", i)
		}
	}
	if a.HasAddress(nil, NewAddress()) {
		t.Fatal("random address must not be present")
	}
}

func TestCtxAuth(t *testing.T) {
	a := &CtxAuth{Key: "auth"}
	ctx := context.Background()

	if got := a.GetSigners(ctx); got != nil {
		t.Fatalf("unexpected signers: %+v", got)
	}

	addr := NewAddress()
	ctx = a.SetSigners(ctx, addr)
	if !a.HasAddress(ctx, addr) {
		t.Fatal("address not authenticated")
	}
	if a.HasAddress(ctx, NewAddress()) {
		t.Fatal("random address must not be present")
	}
}
