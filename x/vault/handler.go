package vault

import (
	"encoding/binary"
	"math/bits"
	"strconv"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/x"
	"github.com/iov-one/custody/x/system"
)

const (
	depositCost  int64 = 200
	withdrawCost int64 = 100

	// Result tags. Together they let an indexer rebuild every movement of
	// lamports in and out of a vault.
	TagVault    = "vault"
	TagPayer    = "payer"
	TagReceiver = "receiver"
	TagAmount   = "amount"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r custody.Registry, auth x.Authenticator, bank system.Controller) {
	bucket := NewBucket()
	r.Handle(pathDepositMsg, DepositHandler{auth: auth, bucket: bucket, bank: bank})
	r.Handle(pathWithdrawMsg, WithdrawHandler{auth: auth, bank: bank})
}

// RegisterQuery will register this bucket as "/vaults"
func RegisterQuery(qr custody.QueryRouter) {
	NewBucket().Register("vaults", qr)
}

// DepositHandler moves lamports from the payer into a vault, initializing
// the vault on the first deposit.
type DepositHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	bank   system.Controller
}

var _ custody.Handler = DepositHandler{}

// deposit is the outcome of validating a DepositMsg.
type deposit struct {
	msg   *DepositMsg
	payer custody.Address
	state State
}

// Check verifies the deposit can be executed and returns the cost of
// executing it.
func (h DepositHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: depositCost}, nil
}

// Deliver allocates the vault if needed and moves the lamports.
func (h DepositHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	d, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	switch s := d.state.(type) {
	case Uninitialized:
		if _, err := h.bank.Allocate(db, d.payer, s.Address, Space, ProgramID); err != nil {
			return nil, errors.Wrap(err, "allocate vault")
		}
		v := &Vault{Receiver: d.msg.Receiver, Bump: s.Bump}
		if err := h.bucket.Put(db, s.Address[:], v); err != nil {
			return nil, errors.Wrap(err, "cannot store vault")
		}
		custody.GetLogger(ctx).Info("vault initialized", "vault", s.Address, "receiver", v.Receiver)
	case Active:
	default:
		return nil, errors.Wrapf(errors.ErrHuman, "unknown vault state %T", s)
	}

	if err := h.bank.Transfer(db, d.payer, d.msg.Vault, d.msg.Amount); err != nil {
		return nil, errors.Wrap(err, "deposit")
	}

	res := &custody.DeliverResult{Data: d.msg.Vault.Bytes()}
	res.Tag([]byte(TagVault), []byte(d.msg.Vault.String()))
	res.Tag([]byte(TagPayer), []byte(d.payer.String()))
	res.Tag([]byte(TagReceiver), []byte(d.msg.Receiver.String()))
	res.Tag([]byte(TagAmount), []byte(strconv.FormatUint(d.msg.Amount, 10)))
	return res, nil
}

// validate does all common pre-processing between Check and Deliver. No
// state is modified.
func (h DepositHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*deposit, error) {
	var msg DepositMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	// Payer must authorize this (if not set, defaults to MainSigner).
	payer := msg.Payer
	if payer.IsZero() {
		main, ok := x.MainSigner(ctx, h.auth)
		if !ok {
			return nil, errors.Wrap(errors.ErrUnauthorized, "payer signature missing")
		}
		payer = main
	}
	if !h.auth.HasAddress(ctx, payer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "payer signature missing")
	}

	bump, err := Verify(ProgramID, msg.Receiver, msg.Vault)
	if err != nil {
		return nil, err
	}
	state, err := Load(db, h.bank, msg.Vault, bump)
	if err != nil {
		return nil, err
	}

	// cost is what the payer parts with, held is the vault balance the
	// deposit is added to.
	var cost, held uint64
	switch s := state.(type) {
	case Uninitialized:
		held = s.Lamports
		if held < s.Floor {
			cost = s.Floor - held
			held = s.Floor
		}
	case Active:
		held = s.Lamports
		if s.Vault.Receiver != msg.Receiver {
			return nil, errors.Wrap(ErrInvalidVaultAddress, "vault belongs to another receiver")
		}
	default:
		return nil, errors.Wrapf(errors.ErrHuman, "unknown vault state %T", s)
	}
	cost, carry := bits.Add64(cost, msg.Amount, 0)
	if carry != 0 {
		return nil, errors.Wrap(errors.ErrOverflow, "deposit cost")
	}
	if _, carry := bits.Add64(held, msg.Amount, 0); carry != 0 {
		return nil, errors.Wrap(errors.ErrOverflow, "vault balance")
	}

	balance, err := h.bank.Balance(db, payer)
	if err != nil {
		return nil, err
	}
	if balance < cost {
		return nil, errors.Wrapf(errors.ErrInsufficientFunds, "payer holds %d, deposit costs %d", balance, cost)
	}
	return &deposit{msg: &msg, payer: payer, state: state}, nil
}

// WithdrawHandler moves everything above the rent exempt minimum from a
// vault to its receiver.
type WithdrawHandler struct {
	auth x.Authenticator
	bank system.Controller
}

var _ custody.Handler = WithdrawHandler{}

// Check verifies the withdraw is authorized and returns the cost of
// executing it.
func (h WithdrawHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: withdrawCost}, nil
}

// Deliver drains the vault down to its floor. Data holds the withdrawn
// amount as 8 byte big endian.
func (h WithdrawHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	active, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	amount := active.Withdrawable()
	if amount > 0 {
		if err := h.bank.Transfer(db, active.Address, active.Vault.Receiver, amount); err != nil {
			return nil, errors.Wrap(err, "withdraw")
		}
	}

	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, amount)
	res := &custody.DeliverResult{Data: data}
	res.Tag([]byte(TagVault), []byte(active.Address.String()))
	res.Tag([]byte(TagReceiver), []byte(active.Vault.Receiver.String()))
	res.Tag([]byte(TagAmount), []byte(strconv.FormatUint(amount, 10)))
	return res, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h WithdrawHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*Active, error) {
	var msg WithdrawMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	bump, err := Verify(ProgramID, msg.Receiver, msg.Vault)
	if err != nil {
		return nil, err
	}
	state, err := Load(db, h.bank, msg.Vault, bump)
	if err != nil {
		return nil, err
	}

	switch s := state.(type) {
	case Uninitialized:
		return nil, errors.Wrap(ErrInvalidVaultAddress, "vault not initialized")
	case Active:
		if s.Vault.Receiver != msg.Receiver {
			return nil, errors.Wrap(ErrInvalidVaultAddress, "vault belongs to another receiver")
		}
		if !h.auth.HasAddress(ctx, s.Vault.Receiver) {
			return nil, errors.Wrap(errors.ErrUnauthorized, "receiver signature missing")
		}
		return &s, nil
	default:
		return nil, errors.Wrapf(errors.ErrHuman, "unknown vault state %T", s)
	}
}
