// Package cmd defines the venda command tree. The bare command launches the
// TUI board; subcommands expose the same store operations for scripting.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/venda-crm/venda/internal/app"
	"github.com/venda-crm/venda/internal/logging"
	"github.com/venda-crm/venda/internal/models"
	"github.com/venda-crm/venda/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "venda",
	Short: "Venda - a terminal sales-pipeline CRM",
	Long:  `Venda is a terminal kanban board for tracking sales leads through pipeline stages, with follow-up reminders.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return launchTUI(cmd.Context())
	},
	SilenceUsage: true,
}

// Execute runs the command tree with signal-aware context.
func Execute() error {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	return rootCmd.ExecuteContext(ctx)
}

func launchTUI(ctx context.Context) error {
	if err := logging.Init(); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	a, err := app.New(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	p := tea.NewProgram(tui.NewApp(a), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

// openApp builds the application container for CLI subcommands.
func openApp(ctx context.Context) (*app.App, error) {
	return app.New(ctx)
}

// requireSession fails unless a session marker is stored. Mutating commands
// call this so the CLI honors the same gate as the board.
func requireSession(ctx context.Context, a *app.App) error {
	if !a.Session.IsAuthenticated(ctx) {
		return fmt.Errorf("%w: run 'venda login' first", models.ErrNotAuthenticated)
	}
	return nil
}
