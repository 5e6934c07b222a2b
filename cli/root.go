package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pairwatch/client"
	"pairwatch/config"
)

var (
	flagConfigPath string
	flagServer     string
)

var rootCmd = &cobra.Command{
	Use:   "pairwatch",
	Short: "Operator console for a pairs-trading analytics pipeline",
	Long: `pairwatch is a terminal console for a statistical-arbitrage engine.

It configures a trading-pair watch (symbols, timeframe, rolling window,
alert threshold, row limit), starts and stops the remote analytics
pipeline, and renders its live output: spread, z-score, hedge ratio,
candles and alerts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to pairwatch.yaml (default: ./pairwatch.yaml or ~/.config/pairwatch/)")
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "Analytics service address (overrides config)")

	rootCmd.AddCommand(consoleCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(exportCmd)
}

// Execute runs the CLI.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// loadConfigAndClient resolves the effective configuration and builds the
// service client from it.
func loadConfigAndClient() (*config.Config, *client.Client, error) {
	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if flagServer != "" {
		cfg.Server.Address = flagServer
	}
	return cfg, client.New(cfg.Server.Address, cfg.Server.Timeout), nil
}
