package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"pairwatch/config"
)

var (
	startSymbolA   string
	startSymbolB   string
	startTimeframe string
	startWindow    int
	startThreshold float64
	startLimit     int
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the remote analytics pipeline",
	Long: `Start the remote pipeline with the configured watch. Flags override
individual watch fields; out-of-range values are clamped.`,
	RunE: runStart,
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the remote analytics pipeline",
	RunE:  runStop,
}

func init() {
	startCmd.Flags().StringVar(&startSymbolA, "symbol-a", "", "First instrument")
	startCmd.Flags().StringVar(&startSymbolB, "symbol-b", "", "Second instrument")
	startCmd.Flags().StringVar(&startTimeframe, "timeframe", "", "Bar interval (1s, 1m, 5m)")
	startCmd.Flags().IntVar(&startWindow, "window", 0, "Rolling window length")
	startCmd.Flags().Float64Var(&startThreshold, "threshold", 0, "Alert threshold")
	startCmd.Flags().IntVar(&startLimit, "limit", 0, "Row limit")
}

// applyStartFlags layers explicit flags over the configured watch, clamped
// the same way the console's controls clamp.
func applyStartFlags(cmd *cobra.Command, watch *config.WatchConfig) {
	if cmd.Flags().Changed("symbol-a") {
		watch.SymbolA = startSymbolA
	}
	if cmd.Flags().Changed("symbol-b") {
		watch.SymbolB = startSymbolB
	}
	if cmd.Flags().Changed("timeframe") {
		watch.SetTimeframe(startTimeframe)
	}
	if cmd.Flags().Changed("window") {
		watch.SetWindow(startWindow)
	}
	if cmd.Flags().Changed("threshold") {
		watch.SetThreshold(startThreshold)
	}
	if cmd.Flags().Changed("limit") {
		watch.SetLimit(startLimit)
	}
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, api, err := loadConfigAndClient()
	if err != nil {
		return err
	}
	applyStartFlags(cmd, &cfg.Watch)

	ctx := context.Background()
	if err := api.Start(ctx, cfg.Watch); err != nil {
		return fmt.Errorf("failed to start pipeline: %w", err)
	}

	// The backend owns run-state; confirm with a fresh read.
	status, err := api.Status(ctx)
	if err != nil {
		fmt.Println("Start accepted (status read failed, check again shortly)")
		return nil
	}
	if status.Running {
		fmt.Printf("Pipeline running: %s/%s @ %s\n", cfg.Watch.SymbolA, cfg.Watch.SymbolB, cfg.Watch.Timeframe)
	} else {
		fmt.Println("Start accepted, pipeline warming up")
	}
	return nil
}

func runStop(cmd *cobra.Command, args []string) error {
	_, api, err := loadConfigAndClient()
	if err != nil {
		return err
	}
	if err := api.Stop(context.Background()); err != nil {
		return fmt.Errorf("failed to stop pipeline: %w", err)
	}
	fmt.Println("Pipeline stopped")
	return nil
}
