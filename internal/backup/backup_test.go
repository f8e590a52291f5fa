package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/storage"
	"github.com/julianstephens/moodlit/internal/storage/sqlite"
)

func setupSQLiteStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "moodlit.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	if err := store.SetValue(constants.KeyNickname, "before"); err != nil {
		t.Fatal(err)
	}
	return store
}

// clock returns a manager clock that moves a second per call
func clock(start time.Time) func() time.Time {
	n := 0
	return func() time.Time {
		n++
		return start.Add(time.Duration(n) * time.Second)
	}
}

func TestCreate_SQLite(t *testing.T) {
	store := setupSQLiteStore(t)
	mgr := NewManager(store.GetConfigPath())

	path, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "moodlit-") || filepath.Ext(path) != ".db" {
		t.Errorf("unexpected backup name %s", path)
	}
	if filepath.Dir(path) != mgr.Dir() {
		t.Errorf("backup written to %s, want %s", filepath.Dir(path), mgr.Dir())
	}

	snap := sqlite.NewStore(path)
	if err := snap.Load(); err != nil {
		t.Fatalf("backup is not a loadable store: %v", err)
	}
	defer snap.Close()
	if v, err := snap.GetValue(constants.KeyNickname); err != nil || v != "before" {
		t.Errorf("backup value = %q, %v", v, err)
	}
}

func TestCreate_MissingStore(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "absent.db"))
	if _, err := mgr.Create(); err == nil {
		t.Error("expected error for a store that does not exist")
	}
}

func TestList(t *testing.T) {
	store := setupSQLiteStore(t)
	mgr := NewManager(store.GetConfigPath())

	backups, err := mgr.List()
	if err != nil || len(backups) != 0 {
		t.Fatalf("List before any backup = %v, %v", backups, err)
	}

	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	mgr.now = clock(start)
	for i := 0; i < 3; i++ {
		if _, err := mgr.Create(); err != nil {
			t.Fatal(err)
		}
	}
	// unrelated files are ignored
	if err := os.WriteFile(filepath.Join(mgr.Dir(), "notes.txt"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	backups, err = mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 3 {
		t.Fatalf("got %d backups, want 3", len(backups))
	}
	if !backups[0].Timestamp.After(backups[2].Timestamp) {
		t.Error("backups are not newest first")
	}
	if !backups[2].Timestamp.Equal(start.Add(time.Second)) {
		t.Errorf("oldest timestamp = %v", backups[2].Timestamp)
	}
	if backups[0].Size == 0 {
		t.Error("backup size not reported")
	}
}

func TestCreate_Rotates(t *testing.T) {
	store := setupSQLiteStore(t)
	mgr := NewManager(store.GetConfigPath())
	mgr.now = clock(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))

	var first string
	for i := 0; i < MaxBackups+3; i++ {
		path, err := mgr.Create()
		if err != nil {
			t.Fatal(err)
		}
		if i == 0 {
			first = path
		}
	}
	backups, err := mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != MaxBackups {
		t.Errorf("kept %d backups, want %d", len(backups), MaxBackups)
	}
	if _, err := os.Stat(first); !os.IsNotExist(err) {
		t.Error("oldest backup survived rotation")
	}
}

func TestRestore_SQLite(t *testing.T) {
	store := setupSQLiteStore(t)
	path := store.GetConfigPath()
	mgr := NewManager(path)

	snapshot, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}
	if err := store.SetValue(constants.KeyNickname, "after"); err != nil {
		t.Fatal(err)
	}
	store.Close()

	safety, err := mgr.Restore(snapshot)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if safety == "" {
		t.Error("no safety copy of the replaced store")
	}

	reopened := sqlite.NewStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()
	if v, _ := reopened.GetValue(constants.KeyNickname); v != "before" {
		t.Errorf("restored nickname = %q, want before", v)
	}

	saved := sqlite.NewStore(safety)
	if err := saved.Load(); err != nil {
		t.Fatal(err)
	}
	defer saved.Close()
	if v, _ := saved.GetValue(constants.KeyNickname); v != "after" {
		t.Errorf("safety copy nickname = %q, want after", v)
	}
	if _, err := os.Stat(path + ".restore.tmp"); !os.IsNotExist(err) {
		t.Error("temporary restore file left behind")
	}
}

func TestRestore_RejectsInvalidSnapshot(t *testing.T) {
	store := setupSQLiteStore(t)
	mgr := NewManager(store.GetConfigPath())

	bogus := filepath.Join(t.TempDir(), "moodlit-bogus.db")
	if err := os.WriteFile(bogus, []byte("not a database at all, just words"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.Restore(bogus); err == nil {
		t.Error("expected error restoring a corrupt snapshot")
	}
	if _, err := mgr.Restore(filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Error("expected error restoring a missing snapshot")
	}
	if v, err := store.GetValue(constants.KeyNickname); err != nil || v != "before" {
		t.Errorf("store changed after a failed restore: %q, %v", v, err)
	}
}

func TestJSONStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	store := storage.NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	if err := store.SetValue(constants.KeyNickname, "before"); err != nil {
		t.Fatal(err)
	}

	mgr := NewManager(path)
	snapshot, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if filepath.Ext(snapshot) != ".json" {
		t.Errorf("JSON snapshot has extension %q", filepath.Ext(snapshot))
	}
	if err := store.SetValue(constants.KeyNickname, "after"); err != nil {
		t.Fatal(err)
	}

	if _, err := mgr.Restore(snapshot); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	if v, _ := store.GetValue(constants.KeyNickname); v != "before" {
		t.Errorf("restored nickname = %q, want before", v)
	}

	bad := filepath.Join(mgr.Dir(), "moodlit-broken.json")
	if err := os.WriteFile(bad, []byte("{"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.Restore(bad); err == nil {
		t.Error("expected error restoring malformed JSON")
	}
}
