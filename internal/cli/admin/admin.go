package admin

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/julianstephens/moodlit/internal/api"
	"github.com/julianstephens/moodlit/internal/cli"
	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/models"
	"github.com/julianstephens/moodlit/internal/session"
)

type AdminCmd struct {
	Submissions SubmissionsCmd `cmd:"" help:"List roadmap proof submissions."`
	Approve     DecideCmd      `cmd:"" help:"Approve a submission."`
	Reject      RejectCmd      `cmd:"" help:"Reject a submission."`
}

type SubmissionsCmd struct {
	Status string `help:"Only show submissions in this state (pending, approved, none)."`
}

func (SubmissionsCmd) Access() session.Access { return session.Authenticated }

func (c *SubmissionsCmd) Run(ctx *cli.Context) error {
	subs, err := ctx.Client.Submissions(ctx.Ctx())
	if err != nil {
		return adminError(err)
	}

	shown := 0
	for _, s := range subs {
		if c.Status != "" && s.Status.String() != c.Status {
			continue
		}
		shown++
		ctx.Printf("%s  mission #%d  %-8s  %s  %s\n", s.ID, s.MissionID, s.Status, s.Nickname, s.SubmittedAt.Format(constants.DateFormat))
		ctx.Printf("    %s\n", s.Review)
		if len(s.PhotoNames) > 0 {
			ctx.Printf("    photos: %s\n", strings.Join(s.PhotoNames, ", "))
		}
	}
	if shown == 0 {
		ctx.Println("No submissions.")
	}
	return nil
}

type DecideCmd struct {
	ID string `arg:"" help:"Submission id."`
}

func (DecideCmd) Access() session.Access { return session.Authenticated }

func (c *DecideCmd) Run(ctx *cli.Context) error {
	return decide(ctx, c.ID, true)
}

type RejectCmd struct {
	ID string `arg:"" help:"Submission id."`
}

func (RejectCmd) Access() session.Access { return session.Authenticated }

func (c *RejectCmd) Run(ctx *cli.Context) error {
	return decide(ctx, c.ID, false)
}

func decide(ctx *cli.Context, id string, approved bool) error {
	sub, err := ctx.Client.Decide(ctx.Ctx(), models.ApprovalDecision{SubmissionID: id, Approved: approved})
	if err != nil {
		var apiErr *api.APIError
		switch {
		case errors.Is(err, api.ErrNotFound):
			return fmt.Errorf("no submission with id %s", id)
		case errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict:
			return fmt.Errorf("submission %s was already decided", id)
		}
		return adminError(err)
	}
	verb := "Rejected"
	if approved {
		verb = "Approved"
	}
	ctx.Printf("✓ %s submission %s (mission #%d by %s)\n", verb, sub.ID, sub.MissionID, sub.Nickname)
	return nil
}

func adminError(err error) error {
	if errors.Is(err, api.ErrForbidden) {
		return fmt.Errorf("admin access required: %w", err)
	}
	return err
}
