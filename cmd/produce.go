package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fracta-labs/fracta/formatter"
	"github.com/fracta-labs/fracta/verify"
)

var (
	showFacts bool
	quietHeap bool
	watchMode bool
)

var produceCmd = &cobra.Command{
	Use:   "produce [paths...]",
	Short: "Run scenario files through the production engine",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide scenario file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		reports, err := verify.ProcessPaths(ctx, logger, args)
		if err != nil {
			logger.Error("Error running scenarios", zap.Error(err))
			os.Exit(1)
		}

		failed := false
		for _, rep := range reports {
			printReport(rep)
			if !rep.Succeeded() {
				failed = true
			}
		}

		if watchMode {
			w, err := verify.NewWatcher(logger, args)
			if err != nil {
				logger.Error("Error starting watch mode", zap.Error(err))
				os.Exit(1)
			}
			w.OnReport = printReport
			if err := w.Watch(context.Background()); err != nil && err != context.Canceled {
				logger.Error("Watch mode ended", zap.Error(err))
				os.Exit(1)
			}
			return
		}

		if failed {
			os.Exit(1)
		}
	},
}

func printReport(rep *verify.Report) {
	fmt.Printf("=== %s ===\n", rep.Name)
	if !quietHeap {
		fmt.Print(formatter.Heap(rep.Heap))
	}
	if showFacts {
		fmt.Print(formatter.Facts(rep.Facts))
	}
	if len(rep.Warnings) > 0 {
		fmt.Print(formatter.Warnings(rep.Warnings))
	}
	if !rep.Succeeded() {
		fmt.Print(formatter.Failures(rep.Failures))
	}
}

func init() {
	produceCmd.Flags().BoolVar(&showFacts, "facts", false, "Print assumed background facts per scenario")
	produceCmd.Flags().BoolVar(&quietHeap, "no-heap", false, "Suppress heap output")
	produceCmd.Flags().BoolVar(&watchMode, "watch", false, "Keep running, re-producing scenarios when their files change")
}
