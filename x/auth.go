/*
Package x contains the standard extensions of the ledger.

Extensions implement common functionality (Handler, Decorator,
etc.) and are combined together to construct an application.
*/
package x

import (
	"github.com/iov-one/custody"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system,
// rather than hard-coding x/sigs for all extensions.
type Authenticator interface {
	// GetSigners reveals all addresses that authorized the current
	// transaction, in the order they signed it.
	GetSigners(custody.Context) []custody.Address
	// HasAddress checks if any signer matches this address
	HasAddress(custody.Context, custody.Address) bool
}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetSigners combines all signers from all Authenticators, dropping
// duplicates while keeping the order.
func (m MultiAuth) GetSigners(ctx custody.Context) []custody.Address {
	var res []custody.Address
	seen := make(map[custody.Address]struct{})
	for _, impl := range m.impls {
		for _, a := range impl.GetSigners(ctx) {
			if _, ok := seen[a]; ok {
				continue
			}
			seen[a] = struct{}{}
			res = append(res, a)
		}
	}
	return res
}

// HasAddress returns true iff any Authenticator support this
func (m MultiAuth) HasAddress(ctx custody.Context, addr custody.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first signer if any, otherwise the zero address
// and false.
func MainSigner(ctx custody.Context, auth Authenticator) (custody.Address, bool) {
	signers := auth.GetSigners(ctx)
	if len(signers) == 0 {
		return custody.Address{}, false
	}
	return signers[0], true
}

// HasAllAddresses returns true if all elements in required are
// also in context.
func HasAllAddresses(ctx custody.Context, auth Authenticator, required []custody.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}
