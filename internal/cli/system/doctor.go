package system

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/moodlit/internal/cli"
	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/emotion"
	"github.com/julianstephens/moodlit/internal/keyring"
	"github.com/julianstephens/moodlit/internal/mockserver"
)

// schemaStore is implemented by the SQL backends
type schemaStore interface {
	GetDB() *sql.DB
	ValidateSchema() error
	Migrate() (int, error)
}

type DoctorCmd struct {
	Migrate bool `help:"Apply pending schema migrations before checking."`
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	fail := func(name string, err error) {
		ctx.Printf("❌ %s: FAIL\n", name)
		ctx.Printf("   Error: %v\n", err)
		hasError = true
	}

	storeReachable := false
	if err := checkStoreReachable(ctx); err != nil {
		fail("Store reachable", err)
	} else {
		ctx.Println("✓ Store reachable: OK")
		storeReachable = true
	}

	sqlStore, isSQL := ctx.Store.(schemaStore)
	switch {
	case !storeReachable:
		ctx.Println("⊘ Schema version: SKIPPED (store not reachable)")
	case !isSQL:
		ctx.Println("⊘ Schema version: SKIPPED (JSON store has no schema)")
	default:
		if cmd.Migrate {
			if path, err := snapshotBeforeMigrate(ctx); err != nil {
				fail("Pre-migration backup", err)
			} else {
				ctx.Printf("✓ Pre-migration backup: %s\n", path)
			}
			if n, err := sqlStore.Migrate(); err != nil {
				fail("Migrations", err)
			} else if n > 0 {
				ctx.Printf("✓ Migrations: applied %d\n", n)
			}
		}
		if err := sqlStore.ValidateSchema(); err != nil {
			fail("Schema version", err)
		} else {
			ctx.Println("✓ Schema version: OK")
		}
	}

	if storeReachable {
		if err := checkSuppression(ctx); err != nil {
			fail("Hidden dates", err)
		} else {
			ctx.Println("✓ Hidden dates: OK")
		}
	} else {
		ctx.Println("⊘ Hidden dates: SKIPPED (store not reachable)")
	}

	if storeReachable {
		checkBackups(ctx)
	}

	if keyring.IsAvailable() {
		ctx.Println("✓ Keyring: OK")
	} else {
		ctx.Println("⚠ Keyring: WARNING")
		ctx.Println("   OS keyring unavailable; logins will not persist")
	}

	if err := checkClock(ctx); err != nil {
		fail("Clock", err)
	} else {
		ctx.Println("✓ Clock: OK")
	}

	backendUp := false
	if err := ctx.Client.Health(ctx.Ctx()); err != nil {
		fail("Backend reachable", fmt.Errorf("%s: %w", ctx.Client.BaseURL(), err))
	} else {
		ctx.Println("✓ Backend reachable: OK")
		backendUp = true
	}

	switch {
	case !ctx.Session.IsAuthenticated():
		ctx.Println("⊘ Session: SKIPPED (not logged in)")
	case !backendUp:
		ctx.Println("⊘ Session: SKIPPED (backend not reachable)")
	default:
		if _, err := ctx.Client.Dashboard(ctx.Ctx()); err != nil {
			fail("Session", err)
		} else {
			ctx.Printf("✓ Session: OK (%s)\n", ctx.Session.Nickname())
		}
	}

	checkMockLock(ctx)

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}
	if s, ok := ctx.Store.(schemaStore); ok {
		db := s.GetDB()
		if db == nil {
			return errors.New("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSuppression(ctx *cli.Context) error {
	dates, err := emotion.NewPersistentSuppression(ctx.Store).Dates()
	if err != nil {
		return err
	}
	for _, d := range dates {
		if err := emotion.ValidateDate(d); err != nil {
			return fmt.Errorf("hidden date set holds %q", d)
		}
	}
	return nil
}

func snapshotBeforeMigrate(ctx *cli.Context) (string, error) {
	mgr, err := backupManager(ctx)
	if err != nil {
		return "", err
	}
	return mgr.Create()
}

// checkBackups only reports; missing snapshots are a warning
func checkBackups(ctx *cli.Context) {
	mgr, err := backupManager(ctx)
	if err != nil {
		ctx.Println("⊘ Backups: SKIPPED (not a file store)")
		return
	}
	backups, err := mgr.List()
	if err != nil {
		ctx.Println("⚠ Backups: WARNING")
		ctx.Printf("   %v\n", err)
		return
	}
	if len(backups) == 0 {
		ctx.Println("⚠ Backups: WARNING")
		ctx.Printf("   no snapshots in %s; run `%s backup`\n", mgr.Dir(), constants.AppName)
		return
	}
	ctx.Printf("✓ Backups: OK (%d, latest %s)\n", len(backups), backups[0].Timestamp.Local().Format("2006-01-02 15:04"))
}

func checkClock(ctx *cli.Context) error {
	now, err := time.Parse(constants.DateFormat, ctx.Today())
	if err != nil {
		return err
	}
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", ctx.Today())
	}
	return nil
}

// checkMockLock only reports; a stale lockfile is a warning
func checkMockLock(ctx *cli.Context) {
	path := mockserver.LockfilePath(ctx.Config.Dir())
	if _, err := os.Stat(path); err != nil {
		ctx.Println("⊘ Mock backend: SKIPPED (not started)")
		return
	}
	lock, err := mockserver.FindRunning(path)
	if err != nil {
		ctx.Println("⚠ Mock backend: WARNING")
		ctx.Printf("   stale lockfile %s: %v\n", path, err)
		return
	}
	ctx.Printf("✓ Mock backend: OK (%s, pid %d)\n", lock.URL(), lock.PID)
}
