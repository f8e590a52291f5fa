// Package backup snapshots the local state store (SQLite or JSON file).
package backup

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/logger"
)

const (
	// MaxBackups is the number of snapshots kept after rotation
	MaxBackups = 14
	// DirName is the backup directory next to the store
	DirName = "backups"

	filePrefix = constants.AppName + "-"
)

// ErrUnsupported is returned for stores that are not local files
var ErrUnsupported = errors.New("backups are only supported for file stores")

// Info describes one snapshot
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager creates, lists and restores snapshots of one store file
type Manager struct {
	storePath string
	dir       string
	ext       string
	now       func() time.Time
}

func NewManager(storePath string) *Manager {
	ext := filepath.Ext(storePath)
	if ext == "" {
		ext = ".db"
	}
	return &Manager{
		storePath: storePath,
		dir:       filepath.Join(filepath.Dir(storePath), DirName),
		ext:       ext,
		now:       time.Now,
	}
}

func (m *Manager) Dir() string {
	return m.dir
}

func (m *Manager) isJSON() bool {
	return strings.EqualFold(m.ext, ".json")
}

// Create snapshots the store and prunes old snapshots
func (m *Manager) Create() (string, error) {
	path, err := m.create()
	if err != nil {
		return "", err
	}
	if err := m.rotate(); err != nil {
		logger.Warn("failed to rotate old backups", "error", err)
	}
	return path, nil
}

func (m *Manager) create() (string, error) {
	if _, err := os.Stat(m.storePath); err != nil {
		return "", fmt.Errorf("store does not exist: %s", m.storePath)
	}
	if err := os.MkdirAll(m.dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	// ulids sort by creation time, so names never collide and List can
	// order them lexically
	id := ulid.MustNew(ulid.Timestamp(m.now()), ulid.DefaultEntropy())
	dest := filepath.Join(m.dir, filePrefix+strings.ToLower(id.String())+m.ext)

	var err error
	if m.isJSON() {
		err = copyFile(m.storePath, dest)
	} else {
		err = vacuumInto(m.storePath, dest)
	}
	if err != nil {
		return "", fmt.Errorf("failed to back up store: %w", err)
	}
	logger.Info("store backed up", "path", dest)
	return dest, nil
}

func vacuumInto(src, dest string) error {
	db, err := sql.Open("sqlite", src)
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}
	if _, err := db.Exec("VACUUM INTO ?", dest); err != nil {
		db.Close()
		return copyFile(src, dest)
	}
	return nil
}

// List returns snapshots newest first
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if errors.Is(err, os.ErrNotExist) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []Info{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, m.ext) {
			continue
		}
		id, err := ulid.ParseStrict(strings.ToUpper(strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), m.ext)))
		if err != nil {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Path:      filepath.Join(m.dir, name),
			Timestamp: ulid.Time(id.Time()),
			Size:      info.Size(),
		})
	}
	sort.Slice(backups, func(i, j int) bool {
		return filepath.Base(backups[i].Path) > filepath.Base(backups[j].Path)
	})
	return backups, nil
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for i := MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// Restore replaces the store with a snapshot. The current store is
// snapshotted first; the returned path names that safety copy. The store
// must be closed by the caller.
func (m *Manager) Restore(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("backup file does not exist: %s", path)
	}
	if err := m.verify(path); err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	var safety string
	if _, err := os.Stat(m.storePath); err == nil {
		if safety, err = m.create(); err != nil {
			return "", fmt.Errorf("failed to back up current store before restore: %w", err)
		}
	}

	tmp := m.storePath + ".restore.tmp"
	if err := copyFile(path, tmp); err != nil {
		return "", fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tmp, m.storePath); err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil {
			logger.Warn("failed to remove temporary file", "path", tmp, "error", rmErr)
		}
		return "", fmt.Errorf("failed to restore store: %w", err)
	}
	logger.Info("store restored", "from", path)
	return safety, nil
}

func (m *Manager) verify(path string) error {
	if m.isJSON() {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if !json.Valid(data) {
			return errors.New("not a JSON document")
		}
		return nil
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()
	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.ReadFrom(in); err != nil {
		return err
	}
	return out.Sync()
}
