package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/custody/crypto"
	"github.com/spf13/cobra"
)

func newKeygenCommand() *cobra.Command {
	var keyPath, seedHex, path string
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a new private key",
		Long: `Generate a new private key.

When successful a new file with binary content containing private key is
created. This command fails if the private key file already exists.

With --seed the key is derived from the hex encoded master seed along the
SLIP-10 --path instead of being random.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(keyPath); !os.IsNotExist(err) {
				// Do not allow to overwrite already existing private key. User
				// must manually delete it first.
				return fmt.Errorf("private key file %q already exists, delete this file and try again", keyPath)
			}

			var (
				key solana.PrivateKey
				err error
			)
			if seedHex == "" {
				key, err = crypto.GenPrivateKey()
			} else {
				seed, herr := hex.DecodeString(seedHex)
				if herr != nil {
					return fmt.Errorf("invalid seed: %s", herr)
				}
				key, err = crypto.DerivePrivateKey(seed, path)
			}
			if err != nil {
				return err
			}

			fd, err := os.OpenFile(keyPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0600)
			if err != nil {
				return fmt.Errorf("cannot create private key file: %s", err)
			}
			defer fd.Close()

			if _, err := fd.Write(key); err != nil {
				return fmt.Errorf("cannot write private key: %s", err)
			}
			if err := fd.Close(); err != nil {
				return fmt.Errorf("cannot close private key file: %s", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), crypto.Address(key))
			return err
		},
	}
	cmd.Flags().StringVar(&keyPath, "key", defaultKeyPath(),
		"Path to the private key file. You can use VAULTCLI_PRIV_KEY environment variable to set it.")
	cmd.Flags().StringVar(&seedHex, "seed", "", "Hex encoded master seed to derive the key from.")
	cmd.Flags().StringVar(&path, "path", crypto.DefaultDerivationPath, "SLIP-10 derivation path used with --seed.")
	return cmd
}

func newKeyaddrCommand() *cobra.Command {
	var keyPath string
	cmd := &cobra.Command{
		Use:   "keyaddr",
		Short: "Print out the address associated with your private key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := readKey(keyPath)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), crypto.Address(key))
			return err
		},
	}
	cmd.Flags().StringVar(&keyPath, "key", defaultKeyPath(),
		"Path to the private key file. You can use VAULTCLI_PRIV_KEY environment variable to set it.")
	return cmd
}
