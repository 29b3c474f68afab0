package bootstrap

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"focusflow/internal/ui/app"
)

// RunTUI blocks until the user quits. Focus reporting is on so that leaving
// the terminal counts as leaving the session.
func RunTUI(ctx context.Context, a *App) error {
	model := app.NewModel(app.Ports{
		Focus:     a.FocusCLI,
		Wallet:    a.WalletCLI,
		Store:     a.InventoryCLI,
		Tasks:     a.TasksCLI,
		Build:     a.BuildCLI,
		Notify:    a.NotifyCLI,
		Reminders: a.TasksCLI,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
