package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStakeCmd(app *app) *cobra.Command {
	var poolArg string
	var amount string
	var yes bool

	cmd := &cobra.Command{
		Use:   "stake",
		Short: "Stake an encrypted amount into a pool",
		Long:  "Stake an amount into a pool. The amount is encrypted before submission; staking again into the same pool adds to your position.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			poolID, err := parsePoolID(poolArg)
			if err != nil {
				return err
			}

			wf, err := app.farm.BeginStake(poolID)
			if err != nil {
				return err
			}
			pool, err := app.farm.Ledger().Pool(poolID)
			if err != nil {
				return err
			}

			verb := "Stake"
			if pool.IsStaked {
				verb = "Add"
			}

			p := newPrompt(cmd)
			raw := amount
			if raw == "" {
				raw, err = p.ask(fmt.Sprintf("%s amount (%s): ", verb, pool.Token))
				if err != nil {
					return err
				}
			}

			sanitized, err := wf.SetAmount(raw)
			if err != nil {
				return err
			}
			if err := wf.Submit(); err != nil {
				wf.Cancel()
				return err
			}

			done, err := driveTransaction(cmd, app, p, wf, transactionOptions{
				yes:        yes,
				question:   fmt.Sprintf("%s %s %s into %s?", verb, sanitized, pool.Token, sanitizeForTerminal(pool.Name)),
				processing: "Encrypting and submitting stake...",
			})
			if err != nil || !done {
				return err
			}

			position, _ := wf.Position()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Staked %s %s into %s (stake #%d, total %s %s)\n",
				sanitized, pool.Token, sanitizeForTerminal(pool.Name), position.StakeID, position.Amount, position.Token)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "tx: %s\n", wf.TxHash().Hex())
			return wf.Dismiss()
		},
	}

	cmd.Flags().StringVar(&poolArg, "pool", "", "Pool ID")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount to stake (prompted when omitted)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	_ = cmd.MarkFlagRequired("pool")

	return cmd
}
