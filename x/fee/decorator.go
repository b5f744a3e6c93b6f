/*
Package fee charges the network fee of every signed transaction.

The fee is LamportsPerSignature for every verified signature. It is taken from
the main signer and sent to the collector address. Both values are
configured via the gconf package.
*/
package fee

import (
	"math/bits"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x"
	"github.com/iov-one/custody/x/system"
)

// Decorator deducts the network fee before calling down the stack.
type Decorator struct {
	auth x.Authenticator
	ctrl system.Controller
}

var _ custody.Decorator = Decorator{}

// NewDecorator returns a fee decorator paying with the main signer of the
// transaction.
func NewDecorator(auth x.Authenticator, ctrl system.Controller) Decorator {
	return Decorator{
		auth: auth,
		ctrl: ctrl,
	}
}

// Check verifies and deducts fees before calling down the stack
func (d Decorator) Check(ctx custody.Context, store custody.KVStore, tx custody.Tx, next custody.Checker) (*custody.CheckResult, error) {
	paid, err := d.charge(ctx, store)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	res.GasPayment += int64(paid)
	return res, nil
}

// Deliver verifies and deducts fees before calling down the stack
func (d Decorator) Deliver(ctx custody.Context, store custody.KVStore, tx custody.Tx, next custody.Deliverer) (*custody.DeliverResult, error) {
	if _, err := d.charge(ctx, store); err != nil {
		return nil, err
	}
	return next.Deliver(ctx, store, tx)
}

func (d Decorator) charge(ctx custody.Context, store custody.KVStore) (uint64, error) {
	conf, err := LoadConfiguration(store)
	if err != nil {
		return 0, err
	}
	signers := d.auth.GetSigners(ctx)
	fee, err := Fee(conf, len(signers))
	if err != nil {
		return 0, err
	}
	if fee == 0 {
		return 0, nil
	}
	payer, ok := x.MainSigner(ctx, d.auth)
	if !ok {
		return 0, errors.Wrap(errors.ErrUnauthorized, "fee payer signature missing")
	}
	if err := d.ctrl.Transfer(store, payer, conf.Collector, fee); err != nil {
		return 0, errors.Wrap(err, "network fee")
	}
	custody.GetLogger(ctx).Debug("network fee charged", "payer", payer, "lamports", fee)
	return fee, nil
}

// Fee returns the network fee of a transaction with the given number of
// signatures.
func Fee(conf Configuration, signatures int) (uint64, error) {
	if signatures < 0 {
		return 0, errors.Wrap(errors.ErrInput, "negative signature count")
	}
	hi, fee := bits.Mul64(conf.LamportsPerSignature, uint64(signatures))
	if hi != 0 {
		return 0, errors.Wrap(errors.ErrOverflow, "network fee")
	}
	return fee, nil
}
