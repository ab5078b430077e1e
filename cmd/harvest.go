package cmd

import (
	"fmt"

	"github.com/bnema/secrecy-farm-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newHarvestCmd(app *app) *cobra.Command {
	var stakeArg string
	var poolArg string
	var yes bool

	cmd := &cobra.Command{
		Use:   "harvest",
		Short: "Claim encrypted rewards for a stake position",
		RunE: func(cmd *cobra.Command, _ []string) error {
			stakeID, err := resolveHarvestStake(app, stakeArg, poolArg)
			if err != nil {
				return err
			}

			wf, err := app.farm.BeginHarvest(stakeID)
			if err != nil {
				return err
			}
			pool, err := app.farm.Ledger().PoolByStakeID(stakeID)
			if err != nil {
				return err
			}
			name := sanitizeForTerminal(pool.Name)

			done, err := driveTransaction(cmd, app, newPrompt(cmd), wf, transactionOptions{
				yes:        yes,
				question:   fmt.Sprintf("Harvest rewards for stake #%d in %s?", stakeID, name),
				processing: "Submitting reward claim...",
			})
			if err != nil || !done {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Harvested rewards for stake #%d in %s\n", stakeID, name)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "tx: %s\n", wf.TxHash().Hex())
			return wf.Dismiss()
		},
	}

	cmd.Flags().StringVar(&stakeArg, "stake", "", "Stake ID")
	cmd.Flags().StringVar(&poolArg, "pool", "", "Pool ID (harvests the position held in that pool)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.MarkFlagsOneRequired("stake", "pool")
	cmd.MarkFlagsMutuallyExclusive("stake", "pool")

	return cmd
}

func resolveHarvestStake(app *app, stakeArg string, poolArg string) (domain.StakeID, error) {
	if stakeArg != "" {
		return parseStakeID(stakeArg)
	}

	poolID, err := parsePoolID(poolArg)
	if err != nil {
		return 0, err
	}
	position, ok := app.farm.Ledger().PositionForPool(poolID)
	if !ok {
		return 0, fmt.Errorf("no position in pool %d: %w", poolID, domain.ErrUnknownStake)
	}
	return position.StakeID, nil
}
