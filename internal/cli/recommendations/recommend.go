package recommendations

import (
	"github.com/julianstephens/moodlit/internal/cli"
	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/models"
	"github.com/julianstephens/moodlit/internal/session"
)

type RecommendCmd struct {
	Show ShowCmd `cmd:"" default:"1" help:"Show the current recommendation."`
	Next NextCmd `cmd:"" help:"Advance to the next recommendation."`
}

type ShowCmd struct {
	Reset bool `help:"Start again from the first recommendation."`
}

func (ShowCmd) Access() session.Access { return session.Authenticated }

func (c *ShowCmd) Run(ctx *cli.Context) error {
	return pick(ctx, false, c.Reset)
}

type NextCmd struct{}

func (NextCmd) Access() session.Access { return session.Authenticated }

func (c *NextCmd) Run(ctx *cli.Context) error {
	return pick(ctx, true, false)
}

// pick resumes the saved cursor, optionally advances it, prints the pick and
// saves the new position
func pick(ctx *cli.Context, advance, reset bool) error {
	rot := ctx.Rotator()

	resumed := false
	if reset {
		if err := ctx.Store.DeleteValue(constants.KeyRecommendationCursor); err != nil {
			logger.Debug("no recommendation cursor to clear", "error", err)
		}
	} else if page, index, ok := ctx.LoadCursor(); ok {
		if err := rot.Resume(ctx.Ctx(), page, index); err != nil {
			return err
		}
		resumed = true
	}

	var (
		rec models.Recommendation
		ok  bool
		err error
	)
	if advance && resumed {
		rec, ok, err = rot.Next(ctx.Ctx())
	} else {
		rec, ok, err = rot.Current(ctx.Ctx())
	}
	if err != nil {
		return err
	}
	if !ok {
		ctx.Println("No recommendations right now.")
		return nil
	}

	if err := ctx.SaveCursor(rot.Position()); err != nil {
		logger.Warn("failed to save recommendation cursor", "error", err)
	}

	ctx.Printf("%s  [%s]\n", rec.Title, rec.Kind)
	if rec.Location != "" {
		ctx.Printf("%s\n", rec.Location)
	}
	ctx.Printf("\n%s\n", rec.Description)
	return nil
}
