package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newWalletCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Connect or disconnect the wallet used to sign transactions",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "connect <address>",
			Short: "Connect a wallet address",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				address, err := app.session.Connect(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Connected wallet %s\n", address.Hex())
				return nil
			},
		},
		&cobra.Command{
			Use:   "disconnect",
			Short: "Disconnect the current wallet",
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := app.session.Disconnect(cmd.Context()); err != nil {
					return err
				}

				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Wallet disconnected")
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show the connected wallet",
			RunE: func(cmd *cobra.Command, _ []string) error {
				address, connected := app.session.Address()
				if !connected {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "wallet: not connected")
					return nil
				}

				count, err := app.farm.UserStakeCount(cmd.Context())
				if err != nil {
					return err
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wallet: %s\nstakes: %d\n", address.Hex(), count)
				return nil
			},
		},
	)

	return cmd
}
