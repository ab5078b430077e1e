package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	dashboardadapter "github.com/bnema/secrecy-farm-cli/internal/adapters/render/dashboard"
	"github.com/bnema/secrecy-farm-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newPoolCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool",
		Short: "Browse confidential farming pools",
	}

	cmd.AddCommand(
		newPoolListCmd(app),
		newPoolInfoCmd(app),
	)

	return cmd
}

func newPoolListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List pools and whether you hold a position in each",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rendered, err := dashboardadapter.RenderPools(app.farm.Ledger().ListPools())
			if err != nil {
				return fmt.Errorf("render pools: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}
}

func newPoolInfoCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <pool-id>",
		Short: "Show on-chain information for a pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			poolID, err := parsePoolID(args[0])
			if err != nil {
				return err
			}

			snapshot, err := app.farm.PoolInfo(cmd.Context(), poolID)
			if err != nil {
				return err
			}
			snapshot.Name = sanitizeForTerminal(snapshot.Name)
			snapshot.Description = sanitizeForTerminal(snapshot.Description)

			rendered, err := dashboardadapter.RenderPoolSnapshot(snapshot, dashboardadapter.RenderOptions{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render pool info: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}
}

func parsePoolID(raw string) (domain.PoolID, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid pool id %q", raw)
	}
	return domain.PoolID(id), nil
}

func parseStakeID(raw string) (domain.StakeID, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid stake id %q", raw)
	}
	return domain.StakeID(id), nil
}

func sanitizeForTerminal(value string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, value)
}
