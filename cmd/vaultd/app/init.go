package app

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/system"
)

// defaultLamports funds the development account created by GenInitOptions.
const defaultLamports = 1000000000000

// GenInitOptions will produce some basic options for one rich
// account, to use for dev mode
//
// You can set the funded address and its lamports:
//   vaultd init [address] [lamports]
func GenInitOptions(args []string) (json.RawMessage, error) {
	var addr custody.Address
	if len(args) > 0 {
		a, err := custody.ParseAddress(args[0])
		if err != nil {
			return nil, errors.Wrap(err, "address")
		}
		addr = a
	} else {
		// if no address provided, auto-generate one
		// and print out the secret
		key, err := crypto.GenPrivateKey()
		if err != nil {
			return nil, err
		}
		addr = crypto.Address(key)
		fmt.Printf("secret: %s\n", key)
	}

	lamports := uint64(defaultLamports)
	if len(args) > 1 {
		n, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "lamports: %s", err)
		}
		lamports = n
	}

	state := struct {
		System []system.GenesisAccount `json:"system"`
		Conf   map[string]interface{}  `json:"conf"`
	}{
		System: []system.GenesisAccount{{Address: addr, Lamports: lamports}},
		Conf: map[string]interface{}{
			"system": system.DefaultConfiguration(),
		},
	}
	return json.MarshalIndent(state, "", "  ")
}
