package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"pairwatch/client"
	"pairwatch/display"
)

var statusPlain bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show pipeline state and the latest analytics snapshot",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusPlain, "plain", false, "Print an unstyled summary")
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, api, err := loadConfigAndClient()
	if err != nil {
		return err
	}

	ctx := context.Background()
	var (
		status   *client.PipelineStatus
		snapshot *client.AnalyticsSnapshot
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		status, err = api.Status(gctx)
		if err != nil {
			return fmt.Errorf("failed to read pipeline status: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		snapshot, err = api.Analytics(gctx, client.AnalyticsRequestFrom(cfg.Watch))
		if err != nil && !errors.Is(err, client.ErrNoData) {
			return fmt.Errorf("failed to read analytics: %w", err)
		}
		// No data yet is a valid answer for a one-shot summary.
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	summary := renderStatusSummary(cfg.Watch.SymbolA, cfg.Watch.SymbolB, status, snapshot)
	if shouldUseStyledStatus(isInteractiveTerminal(), statusPlain) {
		theme := newTUITheme()
		fmt.Println(theme.panel.Render(summary))
		return nil
	}
	fmt.Print(summary)
	return nil
}

func renderStatusSummary(symbolA, symbolB string, status *client.PipelineStatus, snapshot *client.AnalyticsSnapshot) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("pairwatch status (%s/%s)\n", symbolA, symbolB))

	if status.Running {
		sb.WriteString("Pipeline: running")
		if len(status.Symbols) > 0 {
			sb.WriteString(" [" + strings.Join(status.Symbols, ", ") + "]")
		}
		sb.WriteString("\n")
	} else {
		sb.WriteString("Pipeline: idle\n")
	}

	if snapshot == nil {
		sb.WriteString("Analytics: no data\n")
		return sb.String()
	}

	var beta *float64
	if snapshot.HedgeRatio != nil {
		beta = &snapshot.HedgeRatio.Beta
	}
	sb.WriteString(fmt.Sprintf("Observations: %d\n", len(snapshot.Timestamps)))
	sb.WriteString(fmt.Sprintf("Current z-score: %s\n", display.FormatMetric(snapshot.Metrics.CurrentZScore, 3)))
	sb.WriteString(fmt.Sprintf("Hedge ratio (beta): %s\n", display.FormatMetric(beta, 4)))
	sb.WriteString(fmt.Sprintf("Half-life: %s\n", display.FormatMetric(snapshot.Metrics.HalfLife, 1)))
	sb.WriteString(fmt.Sprintf("Decorrelation: %s\n", display.FormatDecorrelation(snapshot)))
	sb.WriteString(fmt.Sprintf("Alerts: %d\n", len(snapshot.Alerts)))
	return sb.String()
}
