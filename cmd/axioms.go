package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fracta-labs/fracta/formatter"
	"github.com/fracta-labs/fracta/verify"
)

var axiomsCmd = &cobra.Command{
	Use:   "axioms [path]",
	Short: "Print the function axioms of a scenario",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println("error: Please provide exactly one scenario file")
			os.Exit(1)
		}

		sc, err := verify.LoadScenario(args[0])
		if err != nil {
			logger.Error("Error loading scenario", zap.String("file", args[0]), zap.Error(err))
			os.Exit(1)
		}

		axioms, warnings, err := verify.Axioms(sc)
		if err != nil {
			logger.Error("Error building axioms", zap.Error(err))
			os.Exit(1)
		}

		fmt.Print(formatter.Axioms(axioms))
		if len(warnings) > 0 {
			fmt.Print(formatter.Warnings(warnings))
		}
	},
}
