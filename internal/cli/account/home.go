package account

import (
	"fmt"
	"strings"

	"github.com/julianstephens/moodlit/internal/cli"
	"github.com/julianstephens/moodlit/internal/mission"
	"github.com/julianstephens/moodlit/internal/session"
	"github.com/julianstephens/moodlit/internal/tui"
)

type HomeCmd struct{}

func (HomeCmd) Access() session.Access { return session.Authenticated }

func (c *HomeCmd) Run(ctx *cli.Context) error {
	dash, err := ctx.Client.Dashboard(ctx.Ctx())
	if err != nil {
		return fmt.Errorf("failed to load dashboard: %w", err)
	}

	ctx.Printf("Hi, %s\n\n", dash.Nickname)

	name := dash.Character.Name
	if name == "" {
		name = ctx.Session.Character().Name
	}
	if name != "" {
		ctx.Printf("Character: %s\n", name)
	} else if !ctx.Session.HasCompletedTest() {
		ctx.Println("No character yet. Take the quiz with 'moodlit test take'.")
	}

	level := dash.Character.Level
	if level < 1 {
		level = 1
	}
	threshold := mission.LevelThreshold(level)
	ctx.Printf("Level %d  %s %d/%d xp\n\n", level, tui.Gauge(dash.Character.Experience, threshold), dash.Character.Experience, threshold)

	if len(dash.TodayMissions) == 0 {
		ctx.Println("Today's missions: none yet ('moodlit mission generate')")
	} else {
		ctx.Println("Today's missions:")
		for _, m := range dash.TodayMissions {
			mark := " "
			if m.IsCompleted() {
				mark = "✓"
			}
			ctx.Printf("  [%s] #%d %s (+%d xp)\n", mark, m.ID, m.Title, m.Reward)
		}
	}

	if r := dash.RecentRecord; r != nil {
		ctx.Printf("\nLast entry: %s  mood %d  %s\n", r.Date, r.MoodLevel, strings.Join(r.Keywords, ", "))
	}
	return nil
}
