package account

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/moodlit/internal/api"
	"github.com/julianstephens/moodlit/internal/cli"
	"github.com/julianstephens/moodlit/internal/models"
	"github.com/julianstephens/moodlit/internal/session"
)

type SignupCmd struct {
	Email    string `help:"Account email." short:"e"`
	Password string `help:"Account password." env:"MOODLIT_PASSWORD"`
	Nickname string `help:"Name shown on the dashboard." short:"n"`
}

func (SignupCmd) Access() session.Access { return session.PublicOnly }

func (c *SignupCmd) Run(ctx *cli.Context) error {
	req := models.SignupRequest{
		Email:    strings.TrimSpace(c.Email),
		Password: c.Password,
		Nickname: strings.TrimSpace(c.Nickname),
	}
	if req.Email == "" || req.Password == "" || req.Nickname == "" {
		if err := promptSignup(&req); err != nil {
			return err
		}
	}

	available, err := ctx.Client.CheckEmail(ctx.Ctx(), req.Email)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if !available {
		return fmt.Errorf("%s is already registered; try 'moodlit login'", req.Email)
	}

	if err := ctx.Client.Signup(ctx.Ctx(), req); err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest {
			return fmt.Errorf("signup rejected: %s", apiErr.Message)
		}
		return fmt.Errorf("signup failed: %w", err)
	}

	ctx.Printf("✓ Account created for %s\n", req.Email)
	ctx.Println("Next: log in with 'moodlit login'.")
	return nil
}

func promptSignup(req *models.SignupRequest) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&req.Email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&req.Password),
			huh.NewInput().
				Title("Nickname").
				Value(&req.Nickname),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("signup cancelled: %w", err)
	}
	req.Email = strings.TrimSpace(req.Email)
	req.Nickname = strings.TrimSpace(req.Nickname)
	return nil
}

type CheckEmailCmd struct {
	Email string `arg:"" help:"Email address to check."`
}

func (CheckEmailCmd) Access() session.Access { return session.PublicOnly }

func (c *CheckEmailCmd) Run(ctx *cli.Context) error {
	available, err := ctx.Client.CheckEmail(ctx.Ctx(), strings.TrimSpace(c.Email))
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if available {
		ctx.Printf("✓ %s is available\n", c.Email)
	} else {
		ctx.Printf("❌ %s is already registered\n", c.Email)
	}
	return nil
}
