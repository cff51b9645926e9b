package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	timeout time.Duration

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:              "fracta [paths...]",
	Short:            "fracta - a symbolic production engine for permission assertions",
	TraverseChildren: true, // Prioritize subcommands
	Run: func(cmd *cobra.Command, args []string) {
		// no subcommand
		if len(args) == 0 {
			// display help when only 'fracta' is entered
			_ = cmd.Help()
			return
		}
		// Format: fracta [path1 path2 ...] => behaves like the produce subcommand
		produceCmd.Run(produceCmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	var err error
	logger, err = zap.NewProduction()
	if err != nil {
		// Run without logging rather than with a nil logger.
		logger = zap.NewNop()
	}

	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Set a timeout for scenario runs")

	rootCmd.AddCommand(produceCmd)
	rootCmd.AddCommand(axiomsCmd)
}
