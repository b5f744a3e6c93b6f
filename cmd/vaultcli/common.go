package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/cmd/vaultd/app"
	"github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/rpc/client"
	ctypes "github.com/tendermint/tendermint/rpc/core/types"
	tmtypes "github.com/tendermint/tendermint/types"
	"golang.org/x/crypto/ed25519"
)

// node is the part of the tendermint rpc client used by the commands.
type node interface {
	BroadcastTxCommit(tx tmtypes.Tx) (*ctypes.ResultBroadcastTxCommit, error)
	ABCIQuery(path string, data common.HexBytes) (*ctypes.ResultABCIQuery, error)
}

// dialNode returns a client of the node listening at addr. Tests replace it.
var dialNode = func(addr string) node {
	return client.NewHTTP(addr, "/websocket")
}

// writeTx serializes the transaction. The first bytes written contain the
// size of the transaction so that transactions can be streamed.
func writeTx(w io.Writer, tx *app.Tx) (int, error) {
	b, err := tx.Marshal()
	if err != nil {
		return 0, err
	}

	var size [txHeaderSize]byte
	binary.BigEndian.PutUint32(size[:], uint32(len(b)))

	if n, err := w.Write(size[:]); err != nil {
		return n, err
	}
	if n, err := w.Write(b); err != nil {
		return n + txHeaderSize, err
	}
	return txHeaderSize + len(b), nil
}

func readTx(r io.Reader) (*app.Tx, int, error) {
	var size [txHeaderSize]byte
	if n, err := io.ReadFull(r, size[:]); err != nil {
		return nil, n, err
	}
	msgSize := binary.BigEndian.Uint32(size[:])
	raw := make([]byte, msgSize)
	if n, err := io.ReadFull(r, raw); err != nil {
		return nil, n + txHeaderSize, err
	}

	var tx app.Tx
	if err := tx.Unmarshal(raw); err != nil {
		return nil, int(msgSize + txHeaderSize), err
	}
	return &tx, int(msgSize + txHeaderSize), nil
}

const txHeaderSize = 4

// readKey loads a private key written by keygen.
func readKey(path string) (solana.PrivateKey, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read private key file: %s", err)
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("invalid private key length: %d", len(raw))
	}
	return solana.PrivateKey(raw), nil
}

// parseAddress parses an address flag value, naming the flag on error.
func parseAddress(name, value string) (custody.Address, error) {
	if value == "" {
		return custody.Address{}, fmt.Errorf("--%s is required", name)
	}
	addr, err := custody.ParseAddress(value)
	if err != nil {
		return custody.Address{}, fmt.Errorf("invalid --%s: %s", name, err)
	}
	return addr, nil
}
