package main

import (
	"encoding/binary"
	"fmt"

	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/system"
	"github.com/spf13/cobra"
	tmtypes "github.com/tendermint/tendermint/types"
)

func newSubmitCommand() *cobra.Command {
	var tmAddr string
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a signed transaction read from stdin",
		Long: `Read a transaction from the standard input and submit it to the network.
The command blocks until the transaction is included in a block.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tx, _, err := readTx(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("cannot read transaction: %s", err)
			}
			raw, err := tx.Marshal()
			if err != nil {
				return fmt.Errorf("cannot serialize transaction: %s", err)
			}

			resp, err := dialNode(tmAddr).BroadcastTxCommit(tmtypes.Tx(raw))
			if err != nil {
				return fmt.Errorf("cannot broadcast transaction: %s", err)
			}
			if resp.CheckTx.IsErr() {
				return fmt.Errorf("check tx failed: code %d: %s", resp.CheckTx.Code, resp.CheckTx.Log)
			}
			if resp.DeliverTx.IsErr() {
				return fmt.Errorf("deliver tx failed: code %d: %s", resp.DeliverTx.Code, resp.DeliverTx.Log)
			}

			out := cmd.OutOrStdout()
			switch {
			case tx.DepositMsg != nil:
				fmt.Fprintf(out, "deposited %d into vault %s\n", tx.DepositMsg.Amount, tx.DepositMsg.Vault)
			case tx.WithdrawMsg != nil && len(resp.DeliverTx.Data) == 8:
				amount := binary.BigEndian.Uint64(resp.DeliverTx.Data)
				fmt.Fprintf(out, "withdrew %d from vault %s\n", amount, tx.WithdrawMsg.Vault)
			}
			_, err = fmt.Fprintf(out, "transaction %X included at height %d\n", resp.Hash, resp.Height)
			return err
		},
	}
	cmd.Flags().StringVar(&tmAddr, "tm", defaultNodeAddr(),
		"Tendermint node address. Use proper NETWORK name. You can use VAULTCLI_TM_ADDR environment variable to set it.")
	return cmd
}

func newBalanceCommand() *cobra.Command {
	var tmAddr, addrFl string
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Print the committed lamports of an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := parseAddress("address", addrFl)
			if err != nil {
				return err
			}
			var acct system.Account
			if err := queryOne(dialNode(tmAddr), "/accounts", addr, &acct); err != nil && !errors.ErrNotFound.Is(err) {
				return fmt.Errorf("cannot query balance: %s", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), acct.Lamports)
			return err
		},
	}
	cmd.Flags().StringVar(&tmAddr, "tm", defaultNodeAddr(),
		"Tendermint node address. Use proper NETWORK name. You can use VAULTCLI_TM_ADDR environment variable to set it.")
	cmd.Flags().StringVar(&addrFl, "address", "", "Account to look up.")
	return cmd
}
