package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/moodlit/internal/cli"
	"github.com/julianstephens/moodlit/internal/session"
	"github.com/julianstephens/moodlit/internal/tui"
)

type TuiCmd struct{}

func (TuiCmd) Access() session.Access { return session.Authenticated }

func (c *TuiCmd) Run(ctx *cli.Context) error {
	deps := tui.Deps{
		Dashboards: ctx.Client,
		Records:    ctx.Records(),
		Daily:      ctx.Daily(),
		Picks:      ctx.Rotator(),
		Now:        ctx.Now,
	}
	p := tea.NewProgram(tui.NewModel(ctx.Ctx(), deps), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui exited: %w", err)
	}
	return nil
}
