package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/wishlist/internal/app"
)

// Run starts the full-screen client and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, d *app.Dispatcher, prefs ViewPrefs, opt Options) error {
	p := tea.NewProgram(
		New(ctx, d, prefs, opt),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
