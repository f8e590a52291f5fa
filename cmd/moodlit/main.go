package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/moodlit/internal/cli"
	"github.com/julianstephens/moodlit/internal/cli/account"
	"github.com/julianstephens/moodlit/internal/cli/admin"
	"github.com/julianstephens/moodlit/internal/cli/missions"
	"github.com/julianstephens/moodlit/internal/cli/quiz"
	"github.com/julianstephens/moodlit/internal/cli/recommendations"
	"github.com/julianstephens/moodlit/internal/cli/records"
	"github.com/julianstephens/moodlit/internal/cli/system"
	"github.com/julianstephens/moodlit/internal/config"
	"github.com/julianstephens/moodlit/internal/constants"
	apperrors "github.com/julianstephens/moodlit/internal/errors"
	"github.com/julianstephens/moodlit/internal/keyring"
	"github.com/julianstephens/moodlit/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"string" default:"${config_path}"`
	Store   string `help:"Store path or PostgreSQL connection string. Overrides the config file. Credentials must NOT be embedded in the connection string; use .pgpass or PGPASSWORD."`
	APIURL  string `name:"api-url" help:"Backend base URL. Overrides the config file."`
	Debug   bool   `help:"Log debug output to stderr."`

	Login      account.LoginCmd      `cmd:"" help:"Log in to your account."`
	Logout     account.LogoutCmd     `cmd:"" help:"Log out and forget the stored credentials."`
	Signup     account.SignupCmd     `cmd:"" help:"Create an account."`
	CheckEmail account.CheckEmailCmd `cmd:"" name:"check-email" help:"Check whether an email is available."`
	Home       account.HomeCmd       `cmd:"" help:"Show your dashboard."`
	Test       struct {
		Take   quiz.TakeCmd   `cmd:"" help:"Take the personality quiz." default:"1"`
		Result quiz.ResultCmd `cmd:"" help:"Show a quiz result."`
	} `cmd:"" help:"Personality quiz."`
	Record    records.RecordCmd           `cmd:"" help:"Daily mood entries."`
	Mission   missions.MissionCmd         `cmd:"" help:"Daily missions."`
	Roadmap   missions.RoadmapCmd         `cmd:"" help:"Roadmap missions."`
	Recommend recommendations.RecommendCmd `cmd:"" help:"Places and programs to try."`
	Admin     admin.AdminCmd              `cmd:"" help:"Review roadmap submissions (admin only)."`
	Tui       system.TuiCmd               `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Init      system.InitCmd              `cmd:"" help:"Write the config file and initialize local storage."`
	Doctor    system.DoctorCmd            `cmd:"" help:"Run health checks and diagnostics."`
	Backup    system.BackupCmd            `cmd:"" help:"Snapshot and restore the local store."`
	ServeMock system.ServeMockCmd         `cmd:"" name:"serve-mock" help:"Run the in-memory mock backend."`
	Inspect   system.DebugCmd             `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic", "recovered", r)
			fmt.Fprintln(os.Stderr, apperrors.RecoveryMessage())
			os.Exit(1)
		}
	}()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Mood journal, daily missions and a little character that grows with you"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}
	if CLI.Store != "" {
		cfg.Store = config.ExpandHome(CLI.Store)
	}
	if CLI.APIURL != "" {
		cfg.APIURL = CLI.APIURL
	}
	cfg.Debug = cfg.Debug || CLI.Debug
	if err := cfg.Validate(); err != nil {
		apperrors.Fatal(err)
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: cfg.Dir()}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	store, err := cli.NewStore(cfg.Store)
	if err != nil {
		apperrors.Fatal(err)
	}
	// doctor reports on the store as it is; everything else brings it up to date
	openStore := store.Init
	if ctx.Command() == "doctor" {
		openStore = store.Load
	}
	if err := openStore(); err != nil {
		apperrors.Fatal(fmt.Errorf("failed to open store %s: %w", store.GetConfigPath(), err))
	}
	defer store.Close()

	appCtx, err := cli.New(cfg, store, keyring.NewTokenStore())
	if err != nil {
		apperrors.Fatal(err)
	}
	base, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	appCtx.Base = base

	if err := cli.Guard(selectedCommand(ctx), appCtx.Session); err != nil {
		var guardErr *cli.GuardError
		if errors.As(err, &guardErr) {
			logger.Debug("command blocked by guard", "command", ctx.Command(), "redirect", guardErr.Redirect)
		}
		store.Close()
		apperrors.Fatal(err)
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}

// selectedCommand is the command struct kong is about to run
func selectedCommand(ctx *kong.Context) any {
	node := ctx.Selected()
	if node == nil || !node.Target.IsValid() {
		return nil
	}
	if node.Target.CanAddr() {
		return node.Target.Addr().Interface()
	}
	return node.Target.Interface()
}
