package main

import (
	"fmt"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/app"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/sigs"
	"github.com/spf13/cobra"
)

func newSignCommand() *cobra.Command {
	var (
		keyPath, tmAddr, chainID string
		seq                      int64
	)
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a transaction read from stdin",
		Long: `Read a transaction from the standard input, sign it with the private key
and write the signed transaction to the standard output.

Unless --seq is given, the next sequence of the signer is queried from the
node at --tm.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !custody.IsValidChainID(chainID) {
				return fmt.Errorf("invalid --chain-id: %q", chainID)
			}
			key, err := readKey(keyPath)
			if err != nil {
				return err
			}
			tx, _, err := readTx(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("cannot read transaction: %s", err)
			}

			if seq < 0 {
				seq, err = signerSequence(dialNode(tmAddr), crypto.Address(key))
				if err != nil {
					return err
				}
			}

			sig, err := sigs.SignTx(key, tx, chainID, seq)
			if err != nil {
				return fmt.Errorf("cannot sign transaction: %s", err)
			}
			tx.Signatures = append(tx.Signatures, sig)

			_, err = writeTx(cmd.OutOrStdout(), tx)
			return err
		},
	}
	cmd.Flags().StringVar(&keyPath, "key", defaultKeyPath(),
		"Path to the private key file. You can use VAULTCLI_PRIV_KEY environment variable to set it.")
	cmd.Flags().StringVar(&tmAddr, "tm", defaultNodeAddr(),
		"Tendermint node address. Use proper NETWORK name. You can use VAULTCLI_TM_ADDR environment variable to set it.")
	cmd.Flags().StringVar(&chainID, "chain-id", env("VAULTCLI_CHAIN_ID", ""),
		"Chain the signature is valid for. You can use VAULTCLI_CHAIN_ID environment variable to set it.")
	cmd.Flags().Int64Var(&seq, "seq", -1, "Sequence to sign with, queried from the node when negative.")
	return cmd
}

// signerSequence returns the next sequence expected from signer.
// Signers that never sent a transaction start at zero.
func signerSequence(n node, signer custody.Address) (int64, error) {
	var user sigs.UserData
	switch err := queryOne(n, "/auth", signer, &user); {
	case err == nil:
		return user.Sequence, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, fmt.Errorf("cannot query sequence: %s", err)
	}
}

// queryOne loads the single model stored under key at path. ErrNotFound
// is returned when nothing is stored.
func queryOne(n node, path string, key custody.Address, obj custody.Persistent) error {
	resp, err := n.ABCIQuery(path, key[:])
	if err != nil {
		return err
	}
	if !resp.Response.IsOK() {
		return fmt.Errorf("query failed: %s", resp.Response.Log)
	}
	return app.UnmarshalOneResult(resp.Response.Value, obj)
}
