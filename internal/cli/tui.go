package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/unwind/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	p := tea.NewProgram(tui.NewApp(ctx.Session, ctx.Store, ctx.Notifier), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
