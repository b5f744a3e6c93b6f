package system

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x"
)

const transferCost = 100

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r custody.Registry, auth x.Authenticator, control Controller) {
	r.Handle(pathTransferMsg, NewTransferHandler(auth, control))
}

// RegisterQuery will register this bucket as "/accounts"
func RegisterQuery(qr custody.QueryRouter) {
	NewBucket().Register("accounts", qr)
}

// TransferHandler moves lamports between wallets.
type TransferHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ custody.Handler = TransferHandler{}

// NewTransferHandler creates a handler for TransferMsg
func NewTransferHandler(auth x.Authenticator, control Controller) TransferHandler {
	return TransferHandler{
		auth:    auth,
		control: control,
	}
}

// Check just verifies it is properly formed and returns
// the cost of executing it
func (h TransferHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: transferCost}, nil
}

// Deliver moves the lamports from source to destination if
// all preconditions are met
func (h TransferHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Transfer(db, msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	return &custody.DeliverResult{}, nil
}

func (h TransferHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*TransferMsg, error) {
	var msg TransferMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}
	// Program owned accounts only move through their program.
	acc, err := h.control.Account(db, msg.Source)
	if err != nil && !errors.ErrNotFound.Is(err) {
		return nil, err
	}
	if acc != nil && acc.IsAllocated() {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "account owned by %s", acc.Owner)
	}
	return &msg, nil
}
