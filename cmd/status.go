package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	dashboardadapter "github.com/bnema/secrecy-farm-cli/internal/adapters/render/dashboard"
	"github.com/bnema/secrecy-farm-cli/internal/domain"
	"github.com/spf13/cobra"
)

type metricsOutput struct {
	TotalStakedValue      string `json:"total_staked_value"`
	PendingRewardEstimate string `json:"pending_reward_estimate"`
	PrivacyScore          int    `json:"privacy_score"`
	Positions             int    `json:"positions"`
}

func newMetricsCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Show staked value, estimated rewards and privacy score",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dashboard := app.farm.Dashboard()

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(metricsOutput{
					TotalStakedValue:      dashboard.TotalStakedValue.String(),
					PendingRewardEstimate: dashboard.PendingRewardEstimate.String(),
					PrivacyScore:          dashboard.PrivacyScore,
					Positions:             len(dashboard.Positions),
				})
			}

			rendered, err := dashboardadapter.RenderMetrics(dashboard)
			if err != nil {
				return fmt.Errorf("render metrics: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newStatusCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show wallet, pools, positions and metrics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rendered, err := app.renderDashboard(app.farm.Dashboard(), dashboardadapter.RenderOptions{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render status: %w", err)
			}

			if _, err := fmt.Fprintln(cmd.OutOrStdout(), rendered); err != nil {
				return err
			}

			count, err := app.farm.UserStakeCount(cmd.Context())
			switch {
			case errors.Is(err, domain.ErrNotConnected):
				return nil
			case err != nil:
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "On-chain stakes: %d\n", count)
			return err
		},
	}
}
