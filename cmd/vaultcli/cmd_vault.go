package main

import (
	"fmt"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/cmd/vaultd/app"
	"github.com/iov-one/custody/x/vault"
	"github.com/spf13/cobra"
)

func newDeriveCommand() *cobra.Command {
	var receiverFl string
	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Print the vault address and bump of a receiver",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			receiver, err := parseAddress("receiver", receiverFl)
			if err != nil {
				return err
			}
			addr, bump, err := vault.Derive(vault.ProgramID, receiver)
			if err != nil {
				return fmt.Errorf("cannot derive vault address: %s", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %d\n", addr, bump)
			return err
		},
	}
	cmd.Flags().StringVar(&receiverFl, "receiver", "", "Address of the vault receiver.")
	return cmd
}

// vaultOf returns the vault address given on the command line or the one
// derived from the receiver.
func vaultOf(vaultFl string, receiver custody.Address) (custody.Address, error) {
	if vaultFl != "" {
		return parseAddress("vault", vaultFl)
	}
	addr, _, err := vault.Derive(vault.ProgramID, receiver)
	if err != nil {
		return custody.Address{}, fmt.Errorf("cannot derive vault address: %s", err)
	}
	return addr, nil
}

func newDepositCommand() *cobra.Command {
	var (
		receiverFl, vaultFl, payerFl string
		amount                       uint64
	)
	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Create a transaction depositing lamports into a vault",
		Long: `Create a transaction depositing lamports into the vault of a receiver.

The vault address is derived from the receiver unless given. The payer
defaults to the first signer of the transaction.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			receiver, err := parseAddress("receiver", receiverFl)
			if err != nil {
				return err
			}
			v, err := vaultOf(vaultFl, receiver)
			if err != nil {
				return err
			}
			msg := &vault.DepositMsg{Vault: v, Receiver: receiver, Amount: amount}
			if payerFl != "" {
				if msg.Payer, err = parseAddress("payer", payerFl); err != nil {
					return err
				}
			}
			return writeMsg(cmd, msg)
		},
	}
	cmd.Flags().StringVar(&receiverFl, "receiver", "", "Address of the vault receiver.")
	cmd.Flags().StringVar(&vaultFl, "vault", "", "Vault address, derived from the receiver if not given.")
	cmd.Flags().StringVar(&payerFl, "payer", "", "Address paying for the deposit, the first signer if not given.")
	cmd.Flags().Uint64Var(&amount, "amount", 0, "Lamports to deposit.")
	return cmd
}

func newWithdrawCommand() *cobra.Command {
	var receiverFl, vaultFl string
	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Create a transaction withdrawing everything above the rent floor from a vault",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			receiver, err := parseAddress("receiver", receiverFl)
			if err != nil {
				return err
			}
			v, err := vaultOf(vaultFl, receiver)
			if err != nil {
				return err
			}
			return writeMsg(cmd, &vault.WithdrawMsg{Vault: v, Receiver: receiver})
		},
	}
	cmd.Flags().StringVar(&receiverFl, "receiver", "", "Address of the vault receiver, who must sign.")
	cmd.Flags().StringVar(&vaultFl, "vault", "", "Vault address, derived from the receiver if not given.")
	return cmd
}

// writeMsg validates msg and writes it as an unsigned transaction.
func writeMsg(cmd *cobra.Command, msg custody.Msg) error {
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("invalid message: %s", err)
	}
	tx, err := app.NewTx(msg)
	if err != nil {
		return err
	}
	_, err = writeTx(cmd.OutOrStdout(), tx)
	return err
}
