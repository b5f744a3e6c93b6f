/*
vaultcli is a command line client for the vaultd application.

Every command reads from standard input and writes to standard output, so
that commands can be combined into a pipeline. For example, to fund a vault:

  $ vaultcli deposit --receiver <address> --amount 100 \
      | vaultcli sign \
      | vaultcli submit
*/
package main

import (
	"fmt"
	"os"

	"github.com/iov-one/custody"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "vaultcli",
		Short:         "Command line client for the vaultd application",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newKeygenCommand(),
		newKeyaddrCommand(),
		newDeriveCommand(),
		newDepositCommand(),
		newWithdrawCommand(),
		newTransferCommand(),
		newSignCommand(),
		newSubmitCommand(),
		newBalanceCommand(),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), custody.Version())
				return err
			},
		},
	)
	return root
}

// env returns the value of an environment variable if provided (even if empty)
// or a fallback value.
func env(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}

func defaultKeyPath() string {
	return env("VAULTCLI_PRIV_KEY", os.Getenv("HOME")+"/.vaultd.priv.key")
}

func defaultNodeAddr() string {
	return env("VAULTCLI_TM_ADDR", "http://localhost:26657")
}
