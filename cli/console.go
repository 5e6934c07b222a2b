package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pairwatch/config"
	"pairwatch/logger"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Run the live operator console",
	Long: `Run the interactive console: edit the trading-pair watch, start and
stop the remote pipeline, and observe live analytics.

Keys:
  tab / shift+tab  - Move between configuration fields
  left / right     - Adjust the focused field
  enter            - Edit a symbol (enter commits, esc cancels)
  s / x            - Start / stop the pipeline
  e                - Export analytics as CSV
  esc              - Dismiss the error banner
  q                - Quit`,
	RunE: runConsole,
}

func runConsole(cmd *cobra.Command, args []string) error {
	if !isInteractiveTerminal() {
		return fmt.Errorf("console requires an interactive terminal")
	}

	cfg, api, err := loadConfigAndClient()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer log.Sync()

	model := newConsoleModel(api, cfg, log)
	p := tea.NewProgram(model, tea.WithAltScreen())

	// Hot reload: config file edits while the console runs re-point the
	// client without restarting the pollers.
	watchCtx, cancelWatch := context.WithCancel(context.Background())
	defer cancelWatch()
	go func() {
		err := config.Watch(watchCtx, flagConfigPath,
			func(fresh *config.Config) {
				if flagServer != "" {
					fresh.Server.Address = flagServer
				}
				p.Send(configReloadMsg{cfg: fresh})
			},
			func(err error) {
				log.Warn("config reload failed", zap.Error(err))
			},
		)
		if err != nil && watchCtx.Err() == nil {
			log.Warn("config watcher stopped", zap.Error(err))
		}
	}()

	log.Info("console starting", zap.String("server", cfg.Server.Address))
	_, err = p.Run()
	return err
}
