package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/timegrid/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(cliCtx *Context) error {
	if err := cliCtx.Store.Load(); err != nil {
		return err
	}

	user, err := cliCtx.UserID()
	if err != nil {
		return err
	}

	model, err := tui.NewModel(cliCtx.Store, user)
	if err != nil {
		return fmt.Errorf("failed to start TUI: %w", err)
	}
	defer model.Shutdown()

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
