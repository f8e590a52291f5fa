package system

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/moodlit/internal/cli"
)

type DebugCmd struct {
	StorePath *DebugStorePathCmd `cmd:"" help:"Show the local store path."`
	DumpState *DebugDumpStateCmd `cmd:"" help:"Dump local state as JSON."`
}

type DebugStorePathCmd struct{}

func (cmd *DebugStorePathCmd) Run(ctx *cli.Context) error {
	output := map[string]string{
		"store":  ctx.Store.GetConfigPath(),
		"config": ctx.Config.Path(),
		"api":    ctx.Client.BaseURL(),
	}
	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}

// DebugDumpStateCmd prints every stored key. Tokens live in the keyring
// and never appear here.
type DebugDumpStateCmd struct {
	Key string `arg:"" optional:"" help:"Only dump this key."`
}

func (cmd *DebugDumpStateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}

	state := map[string]string{}
	if cmd.Key != "" {
		v, err := ctx.Store.GetValue(cmd.Key)
		if err != nil {
			return fmt.Errorf("key not found: %s", cmd.Key)
		}
		state[cmd.Key] = v
	} else {
		keys, err := ctx.Store.Keys()
		if err != nil {
			return fmt.Errorf("failed to list keys: %w", err)
		}
		for _, k := range keys {
			v, err := ctx.Store.GetValue(k)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", k, err)
			}
			state[k] = v
		}
	}

	jsonBytes, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}
