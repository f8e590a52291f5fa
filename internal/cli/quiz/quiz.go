package quiz

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/moodlit/internal/api"
	"github.com/julianstephens/moodlit/internal/archetype"
	"github.com/julianstephens/moodlit/internal/cli"
	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/models"
	"github.com/julianstephens/moodlit/internal/session"
	"github.com/julianstephens/moodlit/internal/tui"
)

type TakeCmd struct {
	Answers string `help:"Comma-separated answers (1-4) for all 12 questions. Skips the interactive quiz."`
}

func (TakeCmd) Access() session.Access { return session.TestFlow }

func (c *TakeCmd) Run(ctx *cli.Context) error {
	var (
		answers []int
		err     error
	)
	if strings.TrimSpace(c.Answers) != "" {
		answers, err = ParseAnswers(c.Answers)
	} else {
		answers, err = ask()
	}
	if err != nil {
		return err
	}

	local, err := archetype.Score(answers)
	if err != nil {
		return err
	}

	server, err := ctx.Client.SubmitTest(ctx.Ctx(), answers)
	switch {
	case err == nil:
		result := archetype.Normalize(server, archetype.Key(local.Key))
		if err := ctx.Session.MarkTestCompleted(result); err != nil {
			return err
		}
		Print(ctx, result)
		return nil
	case errors.Is(err, api.ErrNetwork):
		logger.Warn("quiz submission failed, showing local result", "error", err)
		local.Offline = true
		Print(ctx, local)
		ctx.Println("\n⚠ Scored offline. The result is not saved; run 'moodlit test take' again once you are back online.")
		return nil
	default:
		return fmt.Errorf("failed to submit quiz: %w", err)
	}
}

// ParseAnswers reads "1,2,3,..." into a validated answer sequence
func ParseAnswers(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	answers := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", archetype.ErrInvalidAnswers, p)
		}
		answers = append(answers, n)
	}
	if err := archetype.Validate(answers); err != nil {
		return nil, err
	}
	return answers, nil
}

func ask() ([]int, error) {
	answers := make([]int, archetype.QuestionCount)
	groups := make([]*huh.Group, 0, archetype.QuestionCount)
	for i, q := range archetype.Questions {
		opts := make([]huh.Option[int], len(q.Options))
		for j, o := range q.Options {
			opts[j] = huh.NewOption(o.Text, j+1)
		}
		answers[i] = archetype.MinAnswer
		groups = append(groups, huh.NewGroup(
			huh.NewSelect[int]().
				Title(fmt.Sprintf("%d/%d  %s", i+1, archetype.QuestionCount, q.Prompt)).
				Options(opts...).
				Value(&answers[i]),
		))
	}
	if err := huh.NewForm(groups...).Run(); err != nil {
		return nil, fmt.Errorf("quiz cancelled: %w", err)
	}
	return answers, nil
}

type ResultCmd struct {
	ID string `arg:"" optional:"" help:"Result id. Defaults to your last result."`
}

func (ResultCmd) Access() session.Access { return session.Authenticated }

func (c *ResultCmd) Run(ctx *cli.Context) error {
	id := c.ID
	if id == "" {
		id = ctx.Session.Character().ID
	}
	if id == "" {
		return errors.New("no quiz result yet; run 'moodlit test take'")
	}

	server, err := ctx.Client.TestResult(ctx.Ctx(), id)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return fmt.Errorf("no quiz result with id %s", id)
		}
		return fmt.Errorf("failed to load quiz result: %w", err)
	}
	Print(ctx, archetype.Normalize(server, archetype.Key(ctx.Session.Character().Key)))
	return nil
}

// Print renders an archetype result
func Print(ctx *cli.Context, r models.ArchetypeResult) {
	ctx.Printf("You are: %s\n\n", r.Name)
	ctx.Printf("  Energy       %s %3d%%\n", tui.Gauge(r.Gauges.EnergyLevel, 100), r.Gauges.EnergyLevel)
	ctx.Printf("  Adaptability %s %3d%%\n", tui.Gauge(r.Gauges.Adaptability, 100), r.Gauges.Adaptability)
	ctx.Printf("  Resilience   %s %3d%%\n", tui.Gauge(r.Gauges.Resilience, 100), r.Gauges.Resilience)
	if len(r.Tags) > 0 {
		ctx.Printf("\n%s\n", strings.Join(r.Tags, " · "))
	}
	if r.Description != "" {
		ctx.Printf("\n%s\n", r.Description)
	}
}
