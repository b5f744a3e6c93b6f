package app

import (
	"fmt"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/app"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/sigs"
	"github.com/iov-one/custody/x/system"
	"github.com/iov-one/custody/x/vault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	chainID = "vault-test-1"
	txFee   = 5000
	// floor of a vault account with the default rent configuration
	floor = 1176240
)

// testChain drives a BaseApp one transaction per block.
type testChain struct {
	t      *testing.T
	app    app.BaseApp
	height int64
}

func newTestChain(t *testing.T, collector custody.Address, balances map[custody.Address]uint64) *testChain {
	t.Helper()

	application, err := GenerateApp("", log.NewNopLogger(), false)
	require.NoError(t, err)
	base := application.(app.BaseApp)

	var accounts string
	for addr, lamports := range balances {
		if accounts != "" {
			accounts += ","
		}
		accounts += fmt.Sprintf(`{"address": %q, "lamports": %d}`, addr, lamports)
	}
	genesis := fmt.Sprintf(`{
		"system": [%s],
		"conf": {
			"fee": {"lamports_per_signature": %d, "collector": %q}
		}
	}`, accounts, txFee, collector)

	base.InitChain(abci.RequestInitChain{ChainId: chainID, AppStateBytes: []byte(genesis)})
	base.Commit()
	return &testChain{t: t, app: base, height: 1}
}

// sequence reads the next expected sequence of the signer from the
// committed state.
func (c *testChain) sequence(addr custody.Address) int64 {
	res := c.app.Query(abci.RequestQuery{Path: "/auth", Data: addr[:]})
	require.Equal(c.t, uint32(0), res.Code, res.Log)

	var user sigs.UserData
	err := app.UnmarshalOneResult(res.Value, &user)
	if errors.ErrNotFound.Is(err) {
		return 0
	}
	require.NoError(c.t, err)
	return user.Sequence
}

// balance reads the committed balance of addr.
func (c *testChain) balance(addr custody.Address) uint64 {
	res := c.app.Query(abci.RequestQuery{Path: "/accounts", Data: addr[:]})
	require.Equal(c.t, uint32(0), res.Code, res.Log)

	var acct system.Account
	err := app.UnmarshalOneResult(res.Value, &acct)
	if errors.ErrNotFound.Is(err) {
		return 0
	}
	require.NoError(c.t, err)
	return acct.Lamports
}

// sign returns the serialized msg signed by key with its next sequence.
func (c *testChain) sign(key solana.PrivateKey, msg custody.Msg) []byte {
	c.t.Helper()

	tx, err := NewTx(msg)
	require.NoError(c.t, err)
	signer := custody.NewAddress(key.PublicKey())
	sig, err := sigs.SignTx(key, tx, chainID, c.sequence(signer))
	require.NoError(c.t, err)
	tx.Signatures = []*sigs.StdSignature{sig}
	raw, err := tx.Marshal()
	require.NoError(c.t, err)
	return raw
}

// send signs msg with key and runs it in a new block.
func (c *testChain) send(key solana.PrivateKey, msg custody.Msg) abci.ResponseDeliverTx {
	c.t.Helper()
	return c.run(c.sign(key, msg))
}

// run passes raw through CheckTx and DeliverTx in a new block. The ABCI
// code of both calls must be the same.
func (c *testChain) run(raw []byte) abci.ResponseDeliverTx {
	c.t.Helper()

	c.height++
	c.app.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{ChainID: chainID, Height: c.height, Time: time.Now()},
	})
	check := c.app.CheckTx(raw)
	deliver := c.app.DeliverTx(raw)
	assert.Equal(c.t, check.Code, deliver.Code, "check: %s, deliver: %s", check.Log, deliver.Log)
	c.app.EndBlock(abci.RequestEndBlock{Height: c.height})
	c.app.Commit()
	return deliver
}

func TestVaultLifecycle(t *testing.T) {
	p1, p2, p3 := custodytest.NewKey(), custodytest.NewKey(), custodytest.NewKey()
	r := custodytest.NewKey()
	collector := custodytest.NewAddress()
	addr := func(k solana.PrivateKey) custody.Address { return custody.NewAddress(k.PublicKey()) }

	c := newTestChain(t, collector, map[custody.Address]uint64{
		addr(p1): 10000000,
		addr(p2): 10000000,
		addr(r):  100000,
	})

	v, _, err := vault.Derive(vault.ProgramID, addr(r))
	require.NoError(t, err)

	// 1. first deposit initializes the vault
	res := c.send(p1, &vault.DepositMsg{Vault: v, Receiver: addr(r), Amount: 1})
	require.Equal(t, uint32(0), res.Code, res.Log)
	assert.Equal(t, v.Bytes(), res.Data)
	tags := resultTags(res)
	assert.Equal(t, "vault/deposit", tags["action"])
	assert.Equal(t, v.String(), tags[vault.TagVault])
	assert.Equal(t, addr(p1).String(), tags[vault.TagPayer])
	assert.Equal(t, addr(r).String(), tags[vault.TagReceiver])
	assert.Equal(t, "1", tags[vault.TagAmount])
	assert.Equal(t, uint64(floor+1), c.balance(v))
	assert.Equal(t, uint64(10000000-txFee-floor-1), c.balance(addr(p1)))
	assert.Equal(t, uint64(txFee), c.balance(collector))

	// 2. a second payer adds to the same vault
	res = c.send(p2, &vault.DepositMsg{Vault: v, Receiver: addr(r), Amount: 1})
	require.Equal(t, uint32(0), res.Code, res.Log)
	assert.Equal(t, uint64(floor+2), c.balance(v))
	assert.Equal(t, uint64(10000000-txFee-1), c.balance(addr(p2)))

	// 3. an unfunded payer cannot deposit
	res = c.send(p3, &vault.DepositMsg{Vault: v, Receiver: addr(r), Amount: 1})
	assert.Equal(t, errors.ErrInsufficientFunds.ABCICode(), res.Code)
	assert.Equal(t, uint64(floor+2), c.balance(v))
	assert.Equal(t, uint64(0), c.balance(addr(p3)))

	// 4. the receiver drains the vault down to the floor
	res = c.send(r, &vault.WithdrawMsg{Vault: v, Receiver: addr(r)})
	require.Equal(t, uint32(0), res.Code, res.Log)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 2}, res.Data)
	tags = resultTags(res)
	assert.Equal(t, "vault/withdraw", tags["action"])
	assert.Equal(t, addr(r).String(), tags[vault.TagReceiver])
	assert.Equal(t, "2", tags[vault.TagAmount])
	assert.Equal(t, uint64(floor), c.balance(v))
	assert.Equal(t, uint64(100000+2-txFee), c.balance(addr(r)))

	// 5. nobody else can withdraw
	res = c.send(p1, &vault.WithdrawMsg{Vault: v, Receiver: addr(r)})
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), res.Code)
	assert.Equal(t, uint64(floor), c.balance(v))
	// the failed request did not charge a fee
	assert.Equal(t, uint64(10000000-txFee-floor-1), c.balance(addr(p1)))
}

func TestDepositCannotSpendTheFee(t *testing.T) {
	p, r := custodytest.NewKey(), custodytest.NewKey()
	collector := custodytest.NewAddress()
	payer := custody.NewAddress(p.PublicKey())
	receiver := custody.NewAddress(r.PublicKey())

	// enough for the floor and the deposit, one lamport short once the
	// fee is taken
	funds := uint64(floor + 1 + txFee - 1)
	c := newTestChain(t, collector, map[custody.Address]uint64{payer: funds})

	v, _, err := vault.Derive(vault.ProgramID, receiver)
	require.NoError(t, err)

	res := c.send(p, &vault.DepositMsg{Vault: v, Receiver: receiver, Amount: 1})
	assert.Equal(t, errors.ErrInsufficientFunds.ABCICode(), res.Code, res.Log)
	assert.Equal(t, funds, c.balance(payer))
	assert.Equal(t, uint64(0), c.balance(v))
	assert.Equal(t, uint64(0), c.balance(collector))

	// one more lamport is enough
	c = newTestChain(t, collector, map[custody.Address]uint64{payer: funds + 1})
	res = c.send(p, &vault.DepositMsg{Vault: v, Receiver: receiver, Amount: 1})
	require.Equal(t, uint32(0), res.Code, res.Log)
	assert.Equal(t, uint64(0), c.balance(payer))
	assert.Equal(t, uint64(floor+1), c.balance(v))
	assert.Equal(t, uint64(txFee), c.balance(collector))
}

// resultTags collects the tags of a delivered transaction.
func resultTags(res abci.ResponseDeliverTx) map[string]string {
	tags := make(map[string]string, len(res.Tags))
	for _, kv := range res.Tags {
		tags[string(kv.Key)] = string(kv.Value)
	}
	return tags
}

func TestVaultAddressSpoofing(t *testing.T) {
	p, r := custodytest.NewKey(), custodytest.NewKey()
	collector := custodytest.NewAddress()
	payer := custody.NewAddress(p.PublicKey())
	receiver := custody.NewAddress(r.PublicKey())

	c := newTestChain(t, collector, map[custody.Address]uint64{
		payer:    10000000,
		receiver: 100000,
	})

	// a vault address that was not derived from the receiver
	res := c.send(p, &vault.DepositMsg{Vault: collector, Receiver: receiver, Amount: 1})
	assert.Equal(t, vault.ErrInvalidVaultAddress.ABCICode(), res.Code)
	// a failed request leaves every balance untouched, fee included
	assert.Equal(t, uint64(0), c.balance(collector))
	assert.Equal(t, uint64(10000000), c.balance(payer))

	// withdraw from a vault that was never funded
	v, _, err := vault.Derive(vault.ProgramID, receiver)
	require.NoError(t, err)
	res = c.send(r, &vault.WithdrawMsg{Vault: v, Receiver: receiver})
	assert.Equal(t, vault.ErrInvalidVaultAddress.ABCICode(), res.Code)
	assert.Equal(t, uint64(0), c.balance(v))

	// the vault of one receiver cannot be claimed for another
	res = c.send(p, &vault.DepositMsg{Vault: v, Receiver: payer, Amount: 1})
	assert.Equal(t, vault.ErrInvalidVaultAddress.ABCICode(), res.Code)
}

func TestPlainTransfer(t *testing.T) {
	p := custodytest.NewKey()
	payer := custody.NewAddress(p.PublicKey())
	collector, dest := custodytest.NewAddress(), custodytest.NewAddress()

	c := newTestChain(t, collector, map[custody.Address]uint64{payer: 100000})

	raw := c.sign(p, &system.TransferMsg{Source: payer, Destination: dest, Amount: 1234, Memo: "rent"})
	res := c.run(raw)
	require.Equal(t, uint32(0), res.Code, res.Log)
	assert.Equal(t, uint64(1234), c.balance(dest))
	assert.Equal(t, uint64(100000-1234-txFee), c.balance(payer))
	assert.Equal(t, int64(1), c.sequence(payer))

	// replaying the same signed bytes is rejected
	res = c.run(raw)
	assert.Equal(t, sigs.ErrInvalidSequence.ABCICode(), res.Code)
	assert.Equal(t, uint64(1234), c.balance(dest))

	res = c.send(p, &sigs.BumpSequenceMsg{Increment: 5})
	require.Equal(t, uint32(0), res.Code, res.Log)
	assert.Equal(t, int64(6), c.sequence(payer))
}
