package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sf",
		Short:         "Secrecy Farm CLI (sf): confidential yield farming from the terminal",
		Long:          "sf (Secrecy Farm CLI) lists confidential farming pools, stakes encrypted amounts, harvests rewards and tracks your positions and estimated rewards locally.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newWalletCmd(app),
		newPoolCmd(app),
		newPositionCmd(app),
		newMetricsCmd(app),
		newStatusCmd(app),
		newStakeCmd(app),
		newHarvestCmd(app),
	)

	return rootCmd
}
