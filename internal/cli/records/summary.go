package records

import (
	"fmt"
	"strings"

	"github.com/julianstephens/moodlit/internal/cli"
	"github.com/julianstephens/moodlit/internal/emotion"
	"github.com/julianstephens/moodlit/internal/session"
)

type SummaryCmd struct {
	Month string `arg:"" optional:"" help:"Month as YYYY-MM. Defaults to the current month."`
}

func (SummaryCmd) Access() session.Access { return session.Authenticated }

func (c *SummaryCmd) Run(ctx *cli.Context) error {
	year, month, err := ctx.ResolveMonth(c.Month)
	if err != nil {
		return err
	}
	recs, err := ctx.Records().FetchRange(ctx.Ctx(), year, month)
	if err != nil {
		return fmt.Errorf("failed to load %d-%02d: %w", year, int(month), err)
	}

	sum := emotion.Summarize(year, month, recs)
	ctx.Printf("%d-%02d: %d entries\n", sum.Year, sum.Month, sum.Count)
	if sum.Count == 0 {
		return nil
	}
	ctx.Printf("Average mood: %.2f\n", sum.AverageMood)
	ctx.Printf("Median mood:  %.1f\n", sum.MedianMood)
	if len(sum.TopKeywords) > 0 {
		ctx.Printf("Top keywords: %s\n", strings.Join(sum.TopKeywords, ", "))
	}
	return nil
}
