package system

import (
	"fmt"
	"path/filepath"

	"github.com/julianstephens/moodlit/internal/backup"
	"github.com/julianstephens/moodlit/internal/cli"
	"github.com/julianstephens/moodlit/internal/storage/postgres"
)

type BackupCmd struct {
	Create  BackupCreateCmd  `cmd:"" help:"Snapshot the local store." default:"1"`
	List    BackupListCmd    `cmd:"" help:"List snapshots, newest first."`
	Restore BackupRestoreCmd `cmd:"" help:"Replace the local store with a snapshot."`
}

func backupManager(ctx *cli.Context) (*backup.Manager, error) {
	path := ctx.Store.GetConfigPath()
	if postgres.IsConnString(path) || postgres.IsDSN(path) {
		return nil, backup.ErrUnsupported
	}
	return backup.NewManager(path), nil
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}
	path, err := mgr.Create()
	if err != nil {
		return err
	}
	ctx.Printf("✓ Backup written to %s\n", path)
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}
	backups, err := mgr.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		ctx.Printf("No backups in %s.\n", mgr.Dir())
		return nil
	}
	for _, b := range backups {
		ctx.Printf("%s  %s  %d bytes\n", b.Timestamp.Local().Format("2006-01-02 15:04:05"), filepath.Base(b.Path), b.Size)
	}
	return nil
}

// BackupRestoreCmd closes the open store before swapping the file
type BackupRestoreCmd struct {
	File string `arg:"" help:"Snapshot file name or path." type:"string"`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}
	path := c.File
	if filepath.Base(path) == path {
		path = filepath.Join(mgr.Dir(), path)
	}
	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	safety, err := mgr.Restore(path)
	if err != nil {
		return err
	}
	if safety != "" {
		ctx.Printf("Previous store saved to %s\n", safety)
	}
	ctx.Printf("✓ Restored %s\n", filepath.Base(path))
	return nil
}
