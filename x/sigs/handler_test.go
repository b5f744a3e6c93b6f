package sigs

import (
	"context"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
)

type routes map[string]custody.Handler

func (r routes) Handle(path string, h custody.Handler) { r[path] = h }

func TestBumpSequence(t *testing.T) {
	signer := crypto.Address(custodytest.SeqKey(7))

	cases := map[string]struct {
		initSeq   int64
		signer    custody.Address
		msg       custody.Msg
		wantErr   *errors.Error
		wantSeq   int64
		skipStore bool
	}{
		"increment by one is a no-op beyond signing": {
			initSeq: 3,
			signer:  signer,
			msg:     &BumpSequenceMsg{Increment: 1},
			wantSeq: 3,
		},
		"increment by many": {
			initSeq: 3,
			signer:  signer,
			msg:     &BumpSequenceMsg{Increment: 10},
			wantSeq: 12,
		},
		"zero increment is invalid": {
			initSeq: 3,
			signer:  signer,
			msg:     &BumpSequenceMsg{Increment: 0},
			wantErr: errors.ErrMsg,
			wantSeq: 3,
		},
		"too big increment is invalid": {
			initSeq: 3,
			signer:  signer,
			msg:     &BumpSequenceMsg{Increment: maxSequenceIncrement + 1},
			wantErr: errors.ErrMsg,
			wantSeq: 3,
		},
		"missing signer": {
			initSeq: 3,
			msg:     &BumpSequenceMsg{Increment: 2},
			wantErr: errors.ErrUnauthorized,
			wantSeq: 3,
		},
		"unknown signer": {
			signer:    signer,
			msg:       &BumpSequenceMsg{Increment: 2},
			wantErr:   errors.ErrNotFound,
			skipStore: true,
		},
		"overflow": {
			initSeq: maxSequenceValue - 5,
			signer:  signer,
			msg:     &BumpSequenceMsg{Increment: 10},
			wantErr: errors.ErrOverflow,
			wantSeq: maxSequenceValue - 5,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			b := NewBucket()
			if !tc.skipStore {
				assert.Nil(t, b.Save(db, &UserData{Pubkey: signer, Sequence: tc.initSeq}))
			}

			r := make(routes)
			RegisterRoutes(r, &custodytest.Auth{Signer: tc.signer})
			h := r[pathBumpSequenceMsg]

			tx := &custodytest.Tx{Msg: tc.msg}
			_, err := h.Check(context.Background(), db, tx)
			assert.IsErr(t, tc.wantErr, err)
			_, err = h.Deliver(context.Background(), db, tx)
			assert.IsErr(t, tc.wantErr, err)

			if tc.skipStore {
				return
			}
			seq, err := NextNonce(db, signer)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantSeq, seq)
		})
	}
}
