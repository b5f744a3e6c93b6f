package utils

import (
	"github.com/iov-one/custody"
)

// ActionTagger tags every delivered transaction with `action=<msg path>`,
// for example `action=vault/deposit`, so that clients can subscribe to one
// kind of request.
type ActionTagger struct{}

var _ custody.Decorator = ActionTagger{}

const ActionKey = "action"

func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

func (ActionTagger) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Checker) (*custody.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver tags successful results only.
func (ActionTagger) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Deliverer) (*custody.DeliverResult, error) {
	// a tx without a message fails before it reaches the handler
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}

	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.Tag([]byte(ActionKey), []byte(msg.Path()))
	return res, nil
}
