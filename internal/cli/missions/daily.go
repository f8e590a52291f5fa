package missions

import (
	"errors"
	"fmt"

	"github.com/julianstephens/moodlit/internal/cli"
	"github.com/julianstephens/moodlit/internal/mission"
	"github.com/julianstephens/moodlit/internal/models"
	"github.com/julianstephens/moodlit/internal/session"
	"github.com/julianstephens/moodlit/internal/tui"
)

type MissionCmd struct {
	Today    TodayCmd    `cmd:"" default:"1" help:"List today's missions."`
	Generate GenerateCmd `cmd:"" help:"Generate today's missions."`
	Complete CompleteCmd `cmd:"" help:"Complete one of today's missions."`
}

type TodayCmd struct{}

func (TodayCmd) Access() session.Access { return session.Authenticated }

func (c *TodayCmd) Run(ctx *cli.Context) error {
	list, err := ctx.Daily().Refresh(ctx.Ctx())
	if err != nil {
		return err
	}
	if len(list) == 0 {
		ctx.Println("No missions for today. Run 'moodlit mission generate'.")
		return nil
	}
	printMissions(ctx, list)
	return nil
}

type GenerateCmd struct{}

func (GenerateCmd) Access() session.Access { return session.Authenticated }

func (c *GenerateCmd) Run(ctx *cli.Context) error {
	list, err := ctx.Daily().Generate(ctx.Ctx())
	if err != nil {
		return err
	}
	ctx.Printf("Today's missions (%d):\n", len(list))
	printMissions(ctx, list)
	return nil
}

type CompleteCmd struct {
	ID int64 `arg:"" help:"Mission id from 'moodlit mission today'."`
}

func (CompleteCmd) Access() session.Access { return session.Authenticated }

func (c *CompleteCmd) Run(ctx *cli.Context) error {
	board := ctx.Daily()
	if _, err := board.Refresh(ctx.Ctx()); err != nil {
		return err
	}

	res, applied, err := board.Complete(ctx.Ctx(), c.ID)
	if err != nil {
		if errors.Is(err, mission.ErrMissionNotFound) {
			return fmt.Errorf("mission %d is not on today's list", c.ID)
		}
		return err
	}
	if !applied {
		ctx.Printf("Mission #%d is already complete.\n", c.ID)
		return nil
	}

	ctx.Printf("✓ Completed: %s (+%d xp)\n", res.Mission.Title, res.Mission.Reward)
	if res.LevelUp {
		ctx.Printf("Level up! You reached level %d\n", res.Progress.Level)
	}
	threshold := mission.LevelThreshold(res.Progress.Level)
	ctx.Printf("Level %d  %s %d/%d xp\n", res.Progress.Level, tui.Gauge(res.Progress.Experience, threshold), res.Progress.Experience, threshold)
	return nil
}

func printMissions(ctx *cli.Context, list []models.Mission) {
	for _, m := range list {
		mark := " "
		if m.IsCompleted() {
			mark = "✓"
		}
		ctx.Printf("  [%s] #%d %s (+%d xp)\n", mark, m.ID, m.Title, m.Reward)
		if m.Content != "" {
			ctx.Printf("        %s\n", m.Content)
		}
	}
}
