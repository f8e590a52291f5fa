package records

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/moodlit/internal/cli"
	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/models"
	"github.com/julianstephens/moodlit/internal/session"
	"github.com/julianstephens/moodlit/internal/tui"
	"github.com/julianstephens/moodlit/internal/tui/components/calendar"
)

type RecordCmd struct {
	Get     GetCmd     `cmd:"" help:"Show the entry for a day."`
	Set     SetCmd     `cmd:"" help:"Create or update the entry for a day."`
	Delete  DeleteCmd  `cmd:"" help:"Hide the entry for a day."`
	Month   MonthCmd   `cmd:"" help:"Show a month of entries."`
	Summary SummaryCmd `cmd:"" help:"Summarize a month of entries."`
}

type GetCmd struct {
	Date string `arg:"" optional:"" help:"Day (YYYY-MM-DD, today, yesterday). Defaults to today."`
}

func (GetCmd) Access() session.Access { return session.Authenticated }

func (c *GetCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	rec, ok, err := ctx.Records().Get(ctx.Ctx(), date)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", date, err)
	}
	if !ok {
		ctx.Printf("%s: no entry\n", date)
		return nil
	}
	ctx.Printf("%s  mood %d\n", rec.Date, rec.MoodLevel)
	if len(rec.Keywords) > 0 {
		ctx.Printf("Keywords: %s\n", strings.Join(rec.Keywords, ", "))
	}
	if rec.Memo != "" {
		ctx.Printf("Memo: %s\n", rec.Memo)
	}
	return nil
}

type SetCmd struct {
	Date     string   `arg:"" optional:"" help:"Day (YYYY-MM-DD, today, yesterday). Defaults to today."`
	Mood     int      `help:"Mood from 1 (awful) to 5 (great). Prompts when omitted." short:"m"`
	Keywords []string `help:"Comma-separated keywords." short:"k" sep:","`
	Memo     string   `help:"Free-text memo."`
}

func (SetCmd) Access() session.Access { return session.Authenticated }

func (c *SetCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	store := ctx.Records()

	mood, keywords, memo := c.Mood, c.Keywords, c.Memo
	if mood == 0 {
		existing, _, err := store.Get(ctx.Ctx(), date)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", date, err)
		}
		mood, keywords, memo = c.seed(existing)
		mood, keywords, memo, err = prompt(date, mood, keywords, memo)
		if err != nil {
			return err
		}
	}

	rec, err := store.Save(ctx.Ctx(), date, mood, keywords, memo)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Saved %s (mood %d)\n", rec.Date, rec.MoodLevel)
	return nil
}

// seed prefills the prompt: flags given on the command line win over the
// stored entry
func (c *SetCmd) seed(existing models.EmotionRecord) (int, []string, string) {
	keywords, memo := existing.Keywords, existing.Memo
	if len(c.Keywords) > 0 {
		keywords = c.Keywords
	}
	if c.Memo != "" {
		memo = c.Memo
	}
	return existing.MoodLevel, keywords, memo
}

func prompt(date string, mood int, keywords []string, memo string) (int, []string, string, error) {
	if mood == 0 {
		mood = 3
	}
	kw := strings.Join(keywords, ", ")
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Mood on "+date).
				Options(tui.MoodOptions()...).
				Value(&mood),
			huh.NewInput().
				Title("Keywords").
				Description("Comma-separated").
				Value(&kw),
			huh.NewText().
				Title("Memo").
				Value(&memo),
		),
	)
	if err := form.Run(); err != nil {
		return 0, nil, "", fmt.Errorf("entry cancelled: %w", err)
	}
	return mood, strings.Split(kw, ","), memo, nil
}

type DeleteCmd struct {
	Date string `arg:"" help:"Day to hide (YYYY-MM-DD, today, yesterday)."`
}

func (DeleteCmd) Access() session.Access { return session.Authenticated }

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	if err := ctx.Records().SoftDelete(ctx.Ctx(), date); err != nil {
		return err
	}
	ctx.Printf("✓ Removed entry for %s\n", date)
	return nil
}

type MonthCmd struct {
	Month string `arg:"" optional:"" help:"Month as YYYY-MM. Defaults to the current month."`
	List  bool   `help:"Print a list instead of a calendar grid."`
}

func (MonthCmd) Access() session.Access { return session.Authenticated }

func (c *MonthCmd) Run(ctx *cli.Context) error {
	year, month, err := ctx.ResolveMonth(c.Month)
	if err != nil {
		return err
	}
	recs, err := ctx.Records().FetchRange(ctx.Ctx(), year, month)
	if err != nil {
		return fmt.Errorf("failed to load %d-%02d: %w", year, int(month), err)
	}

	if !c.List {
		cal := calendar.New(year, month)
		cal.SetRecords(recs)
		if today, err := time.Parse(constants.DateFormat, ctx.Today()); err == nil && today.Year() == year && today.Month() == month {
			cal.MoveDay(today.Day() - 1)
		}
		ctx.Println(cal.View())
		return nil
	}

	if len(recs) == 0 {
		ctx.Printf("No entries for %d-%02d\n", year, int(month))
		return nil
	}
	dates := make([]string, 0, len(recs))
	for d := range recs {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	for _, d := range dates {
		rec := recs[d]
		ctx.Printf("%s  mood %d  %s\n", d, rec.MoodLevel, strings.Join(rec.Keywords, ", "))
	}
	return nil
}
