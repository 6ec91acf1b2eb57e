// This file implements the run command, which executes the full study and
// reports the per-condition summary.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/adalundhe/alphasim/core/config"
	"github.com/adalundhe/alphasim/core/report"
	"github.com/adalundhe/alphasim/core/results"
	"github.com/adalundhe/alphasim/core/runner"
)

var (
	runConfigPath   string
	runSeed         uint64
	runWorkers      int
	runReplications int
	runCSVPath      string
	runVerbose      bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the reliability simulation study",
	Long: `Run executes every condition of the design grid for the configured
number of replications, classifies each alpha estimate against the
acceptability threshold, and prints one summary row per condition.`,
	RunE: runStudy,
}

func init() {
	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "", "path to a yaml study configuration")
	runCmd.Flags().Uint64Var(&runSeed, "seed", 0, "base random seed (0 keeps the configured seed)")
	runCmd.Flags().IntVar(&runWorkers, "workers", 0, "worker pool size (0 uses all processors)")
	runCmd.Flags().IntVar(&runReplications, "replications", 0, "replications per condition (0 keeps the configured count)")
	runCmd.Flags().StringVar(&runCSVPath, "csv", "", "also write the summary as CSV to this path")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(runCmd)
}

func runStudy(cmd *cobra.Command, args []string) error {
	logger := newLogger(runVerbose)

	cfg, err := config.Load(runConfigPath)
	if err != nil {
		return err
	}
	if runSeed != 0 {
		cfg.Seed = runSeed
	}
	if runWorkers != 0 {
		cfg.Workers = runWorkers
	}
	if runReplications != 0 {
		cfg.Replications = runReplications
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	grid, err := cfg.Grid()
	if err != nil {
		return err
	}

	r, err := runner.New(grid, cfg.RunnerConfig(), logger)
	if err != nil {
		return err
	}
	agg := results.NewAggregator(grid, cfg.Threshold)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := r.Run(ctx, agg); err != nil {
		return err
	}

	rows := agg.Summarize()
	if err := report.WriteTable(cmd.OutOrStdout(), rows); err != nil {
		return err
	}
	if failed := agg.TotalFailed(); failed > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d replications produced no usable estimate\n", failed)
	}

	if runCSVPath != "" {
		f, err := os.Create(runCSVPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", runCSVPath, err)
		}
		defer f.Close()
		if err := report.WriteCSV(f, rows); err != nil {
			return fmt.Errorf("writing %s: %w", runCSVPath, err)
		}
		logger.Info("summary written", "path", runCSVPath, "rows", len(rows))
	}

	return nil
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
