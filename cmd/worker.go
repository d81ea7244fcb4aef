package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/siimplelab/minimal-timer/internal/clock"
)

// workerCmd is the entry point the clock controller re-executes the binary
// with. Execute short-circuits it before fx wiring; this registration keeps
// the subcommand visible to cobra as a backstop.
var workerCmd = &cobra.Command{
	Use:    clock.WorkerCommandName,
	Hidden: true,

	Run: func(cmd *cobra.Command, args []string) {
		runWorkerProcess()
	},
}

func runWorkerProcess() {
	logger := newFileLogger(workerLogName)
	defer logger.Sync() //nolint:errcheck

	if err := clock.RunWorker(os.Stdin, os.Stdout, logger); err != nil {
		logger.Error("worker clock failed", zap.Error(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
