package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func main() {
	log.SetReportTimestamp(false)

	var verbose bool
	rootCmd := &cobra.Command{
		Use:           "verification-center",
		Short:         "Inspect and serve Tinfoil verification documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logs")

	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newBadgeCmd())
	rootCmd.AddCommand(newStepsCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newPushCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
