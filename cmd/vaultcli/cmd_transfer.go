package main

import (
	"github.com/iov-one/custody/x/system"
	"github.com/spf13/cobra"
)

func newTransferCommand() *cobra.Command {
	var (
		srcFl, dstFl, memo string
		amount             uint64
	)
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Create a transaction moving lamports between accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := parseAddress("src", srcFl)
			if err != nil {
				return err
			}
			dst, err := parseAddress("dst", dstFl)
			if err != nil {
				return err
			}
			return writeMsg(cmd, &system.TransferMsg{
				Source:      src,
				Destination: dst,
				Amount:      amount,
				Memo:        memo,
			})
		},
	}
	cmd.Flags().StringVar(&srcFl, "src", "", "Address the lamports are taken from, must sign.")
	cmd.Flags().StringVar(&dstFl, "dst", "", "Address receiving the lamports.")
	cmd.Flags().Uint64Var(&amount, "amount", 0, "Lamports to move.")
	cmd.Flags().StringVar(&memo, "memo", "", "Optional note.")
	return cmd
}
