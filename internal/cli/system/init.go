package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/moodlit/internal/cli"
	"github.com/julianstephens/moodlit/internal/config"
)

type InitCmd struct {
	Force  bool   `help:"Overwrite an existing config file."`
	Source string `help:"Store path or connection string to copy local state from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	path := ctx.Config.Path()
	if path == "" {
		return errors.New("no config path set")
	}

	_, err := os.Stat(path)
	switch {
	case err == nil && !c.Force:
		ctx.Printf("Config already exists at: %s (use --force to overwrite)\n", path)
	case err == nil || errors.Is(err, os.ErrNotExist):
		if err := ctx.Config.Save(); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		ctx.Printf("Wrote config to: %s\n", path)
	default:
		return fmt.Errorf("failed to access config: %w", err)
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized moodlit storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		if sameStore(c.Source, ctx.Store.GetConfigPath()) {
			return fmt.Errorf("source and destination are the same: %s", c.Source)
		}
		ctx.Printf("Copying local state from: %s\n", c.Source)
		n, err := copyState(ctx, c.Source)
		if err != nil {
			return fmt.Errorf("copy failed: %w", err)
		}
		ctx.Printf("Copied %d values\n", n)
	}
	return nil
}

func sameStore(a, b string) bool {
	absA, errA := filepath.Abs(config.ExpandHome(a))
	absB, errB := filepath.Abs(config.ExpandHome(b))
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}

// copyState moves every stored key (session flags, suppression set, cursor)
// from another store into the active one
func copyState(ctx *cli.Context, source string) (int, error) {
	src, err := cli.NewStore(source)
	if err != nil {
		return 0, err
	}
	if err := src.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source store: %w", err)
	}
	defer src.Close()

	keys, err := src.Keys()
	if err != nil {
		return 0, fmt.Errorf("failed to list source keys: %w", err)
	}
	for _, k := range keys {
		v, err := src.GetValue(k)
		if err != nil {
			return 0, fmt.Errorf("failed to read %s: %w", k, err)
		}
		if err := ctx.Store.SetValue(k, v); err != nil {
			return 0, fmt.Errorf("failed to write %s: %w", k, err)
		}
	}
	return len(keys), nil
}
