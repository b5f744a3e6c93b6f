package system

import (
	"math"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
	"github.com/iov-one/custody/store"
)

// newTestStore returns a store with the default rent configuration and the
// given balances.
func newTestStore(t testing.TB, balances map[custody.Address]uint64) custody.CacheableKVStore {
	t.Helper()
	db := store.MemStore()
	conf := DefaultConfiguration()
	assert.Nil(t, gconf.Save(db, confKey, &conf))
	b := NewBucket()
	for addr, lamports := range balances {
		assert.Nil(t, b.Put(db, addr[:], &Account{Lamports: lamports}))
	}
	return db
}

func TestMinimumBalance(t *testing.T) {
	cases := map[string]struct {
		conf    Configuration
		space   uint64
		want    uint64
		wantErr *errors.Error
	}{
		"default configuration, vault sized account": {
			conf:  DefaultConfiguration(),
			space: 41,
			want:  1176240,
		},
		"default configuration, no data": {
			conf:  DefaultConfiguration(),
			space: 0,
			want:  890880,
		},
		"fractional threshold rounds down": {
			conf: Configuration{
				LamportsPerByteYear: 3,
				StorageOverhead:     0,
				ExemptionThreshold:  custody.Fraction{Numerator: 1, Denominator: 2},
			},
			space: 3,
			want:  4,
		},
		"free storage": {
			conf: Configuration{
				ExemptionThreshold: custody.Fraction{Numerator: 2, Denominator: 1},
			},
			space: 1000,
			want:  0,
		},
		"size overflow": {
			conf:    DefaultConfiguration(),
			space:   math.MaxUint64,
			wantErr: errors.ErrOverflow,
		},
		"rent overflow": {
			conf:    DefaultConfiguration(),
			space:   math.MaxUint64 / 1000,
			wantErr: errors.ErrOverflow,
		},
		"invalid threshold": {
			conf:    Configuration{LamportsPerByteYear: 1},
			space:   1,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := MinimumBalance(tc.conf, tc.space)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr == nil {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestTransfer(t *testing.T) {
	alice, bob := custodytest.NewAddress(), custodytest.NewAddress()

	cases := map[string]struct {
		balances  map[custody.Address]uint64
		src, dst  custody.Address
		amount    uint64
		wantErr   *errors.Error
		wantAlice uint64
		wantBob   uint64
	}{
		"move everything": {
			balances:  map[custody.Address]uint64{alice: 500},
			src:       alice,
			dst:       bob,
			amount:    500,
			wantAlice: 0,
			wantBob:   500,
		},
		"partial": {
			balances:  map[custody.Address]uint64{alice: 500, bob: 1},
			src:       alice,
			dst:       bob,
			amount:    200,
			wantAlice: 300,
			wantBob:   201,
		},
		"insufficient funds": {
			balances:  map[custody.Address]uint64{alice: 500},
			src:       alice,
			dst:       bob,
			amount:    501,
			wantErr:   errors.ErrInsufficientFunds,
			wantAlice: 500,
		},
		"unknown source": {
			src:     alice,
			dst:     bob,
			amount:  1,
			wantErr: errors.ErrInsufficientFunds,
		},
		"zero amount": {
			balances:  map[custody.Address]uint64{alice: 500},
			src:       alice,
			dst:       bob,
			wantErr:   errors.ErrAmount,
			wantAlice: 500,
		},
		"recipient overflow": {
			balances:  map[custody.Address]uint64{alice: 10, bob: math.MaxUint64 - 5},
			src:       alice,
			dst:       bob,
			amount:    10,
			wantErr:   errors.ErrOverflow,
			wantAlice: 10,
			wantBob:   math.MaxUint64 - 5,
		},
		"to self": {
			balances:  map[custody.Address]uint64{alice: 10},
			src:       alice,
			dst:       alice,
			amount:    7,
			wantAlice: 10,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := newTestStore(t, tc.balances)
			ctrl := NewController()

			err := ctrl.Transfer(db, tc.src, tc.dst, tc.amount)
			assert.IsErr(t, tc.wantErr, err)

			got, err := ctrl.Balance(db, alice)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantAlice, got)
			got, err = ctrl.Balance(db, bob)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantBob, got)
		})
	}
}

func TestAllocate(t *testing.T) {
	payer, target := custodytest.NewAddress(), custodytest.NewAddress()
	owner := custody.NewProgramID("test")
	const space = 41
	floor, err := MinimumBalance(DefaultConfiguration(), space)
	assert.Nil(t, err)

	cases := map[string]struct {
		balances   map[custody.Address]uint64
		owner      custody.Address
		space      uint64
		wantErr    *errors.Error
		wantPaid   uint64
		wantPayer  uint64
		wantTarget uint64
	}{
		"fresh account": {
			balances:   map[custody.Address]uint64{payer: floor + 10},
			owner:      owner,
			space:      space,
			wantPaid:   floor,
			wantPayer:  10,
			wantTarget: floor,
		},
		"prefunded account only tops up": {
			balances:   map[custody.Address]uint64{payer: floor, target: 100},
			owner:      owner,
			space:      space,
			wantPaid:   floor - 100,
			wantPayer:  100,
			wantTarget: floor,
		},
		"account already above the floor": {
			balances:   map[custody.Address]uint64{payer: 5, target: floor + 1},
			owner:      owner,
			space:      space,
			wantPaid:   0,
			wantPayer:  5,
			wantTarget: floor + 1,
		},
		"payer cannot fund": {
			balances:  map[custody.Address]uint64{payer: floor - 1},
			owner:     owner,
			space:     space,
			wantErr:   errors.ErrInsufficientFunds,
			wantPayer: floor - 1,
		},
		"missing owner": {
			balances:  map[custody.Address]uint64{payer: floor},
			space:     space,
			wantErr:   errors.ErrEmpty,
			wantPayer: floor,
		},
		"zero space": {
			balances:  map[custody.Address]uint64{payer: floor},
			owner:     owner,
			wantErr:   errors.ErrInput,
			wantPayer: floor,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := newTestStore(t, tc.balances)
			ctrl := NewController()

			paid, err := ctrl.Allocate(db, payer, target, tc.space, tc.owner)
			assert.IsErr(t, tc.wantErr, err)
			assert.Equal(t, tc.wantPaid, paid)

			got, err := ctrl.Balance(db, payer)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantPayer, got)
			got, err = ctrl.Balance(db, target)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantTarget, got)

			if tc.wantErr != nil {
				return
			}
			acc, err := ctrl.Account(db, target)
			assert.Nil(t, err)
			assert.Equal(t, uint64(space), acc.Space)
			assert.Equal(t, tc.owner, acc.Owner)

			// second allocation is refused
			_, err = ctrl.Allocate(db, payer, target, tc.space, tc.owner)
			assert.IsErr(t, errors.ErrDuplicate, err)
		})
	}
}

func TestTransferKeepsAllocatedAccountAboveFloor(t *testing.T) {
	payer, target, dst := custodytest.NewAddress(), custodytest.NewAddress(), custodytest.NewAddress()
	floor, err := MinimumBalance(DefaultConfiguration(), 41)
	assert.Nil(t, err)

	db := newTestStore(t, map[custody.Address]uint64{payer: floor + 1000})
	ctrl := NewController()
	_, err = ctrl.Allocate(db, payer, target, 41, custody.NewProgramID("test"))
	assert.Nil(t, err)
	assert.Nil(t, ctrl.Transfer(db, payer, target, 1000))

	err = ctrl.Transfer(db, target, dst, 1001)
	assert.IsErr(t, errors.ErrInsufficientFunds, err)

	assert.Nil(t, ctrl.Transfer(db, target, dst, 1000))
	got, err := ctrl.Balance(db, target)
	assert.Nil(t, err)
	assert.Equal(t, floor, got)
}

func TestFloorRequiresConfiguration(t *testing.T) {
	_, err := NewController().Floor(store.MemStore(), 41)
	assert.IsErr(t, errors.ErrNotFound, err)
}
