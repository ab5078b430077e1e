package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	dashboardadapter "github.com/bnema/secrecy-farm-cli/internal/adapters/render/dashboard"
	"github.com/bnema/secrecy-farm-cli/internal/domain"
	"github.com/spf13/cobra"
)

type positionOutput struct {
	StakeID       uint64    `json:"stake_id"`
	PoolID        uint64    `json:"pool_id"`
	Amount        string    `json:"amount"`
	Token         string    `json:"token"`
	CreatedAt     time.Time `json:"created_at"`
	LastHarvestAt time.Time `json:"last_harvest_at"`
}

func toPositionOutputs(positions []domain.StakePosition) []positionOutput {
	out := make([]positionOutput, 0, len(positions))
	for _, position := range positions {
		out = append(out, positionOutput{
			StakeID:       uint64(position.StakeID),
			PoolID:        uint64(position.PoolID),
			Amount:        position.Amount,
			Token:         position.Token,
			CreatedAt:     position.CreatedAt.UTC(),
			LastHarvestAt: position.LastHarvestAt.UTC(),
		})
	}
	return out
}

func newPositionCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "position",
		Short: "Inspect your stake positions",
	}

	cmd.AddCommand(newPositionListCmd(app))

	return cmd
}

func newPositionListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stake positions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dashboard := app.farm.Dashboard()

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(toPositionOutputs(dashboard.Positions))
			}

			rendered, err := dashboardadapter.RenderPositions(dashboard, dashboardadapter.RenderOptions{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render positions: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
