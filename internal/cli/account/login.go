package account

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/moodlit/internal/api"
	"github.com/julianstephens/moodlit/internal/cli"
	"github.com/julianstephens/moodlit/internal/models"
	"github.com/julianstephens/moodlit/internal/session"
)

type LoginCmd struct {
	Email    string `help:"Account email. Prompted for when omitted." short:"e"`
	Password string `help:"Account password. Prompted for when omitted." env:"MOODLIT_PASSWORD"`
}

func (LoginCmd) Access() session.Access { return session.PublicOnly }

func (c *LoginCmd) Run(ctx *cli.Context) error {
	creds := models.Credentials{Email: strings.TrimSpace(c.Email), Password: c.Password}
	if creds.Email == "" || creds.Password == "" {
		if err := promptCredentials(&creds); err != nil {
			return err
		}
	}

	res, err := ctx.Client.Login(ctx.Ctx(), creds)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return errors.New("invalid email or password")
		}
		return fmt.Errorf("login failed: %w", err)
	}
	if err := ctx.Session.Begin(res); err != nil {
		return err
	}

	ctx.Printf("✓ Logged in as %s\n", res.Nickname)
	if !res.TestCompleted {
		ctx.Println("Next: take the personality quiz with 'moodlit test take'.")
	}
	return nil
}

func promptCredentials(creds *models.Credentials) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&creds.Email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&creds.Password),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("login cancelled: %w", err)
	}
	creds.Email = strings.TrimSpace(creds.Email)
	return nil
}

type LogoutCmd struct{}

func (LogoutCmd) Access() session.Access { return session.Authenticated }

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	if err := ctx.Session.End(); err != nil {
		return err
	}
	ctx.Println("✓ Logged out")
	return nil
}
