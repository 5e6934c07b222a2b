package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"pairwatch/client"
	"pairwatch/display"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the current watch's analytics as CSV",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output directory (default: export dir from config)")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, api, err := loadConfigAndClient()
	if err != nil {
		return err
	}

	dir := cfg.Export.Dir
	if exportOut != "" {
		dir = exportOut
	}

	data, err := api.Export(context.Background(), client.AnalyticsRequestFrom(cfg.Watch))
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	path := filepath.Join(dir, display.ExportFilename(cfg.Watch.SymbolA, cfg.Watch.SymbolB))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Printf("Exported %d bytes to %s\n", len(data), path)
	return nil
}
