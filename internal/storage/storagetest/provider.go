// Package storagetest holds the behavioral checks every storage.Provider
// backend must pass.
package storagetest

import (
	"errors"
	"testing"

	"github.com/julianstephens/moodlit/internal/storage"
)

// Run exercises p, which must be initialized.
func Run(t *testing.T, p storage.Provider) {
	t.Helper()

	t.Run("missing key", func(t *testing.T) {
		if _, err := p.GetValue("nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetValue(nope) error = %v, want ErrNotFound", err)
		}
	})

	t.Run("set and get", func(t *testing.T) {
		if err := p.SetValue("nickname", "sunny"); err != nil {
			t.Fatalf("SetValue() failed: %v", err)
		}
		got, err := p.GetValue("nickname")
		if err != nil {
			t.Fatalf("GetValue() failed: %v", err)
		}
		if got != "sunny" {
			t.Errorf("GetValue() = %q, want %q", got, "sunny")
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		if err := p.SetValue("testCompleted", "false"); err != nil {
			t.Fatal(err)
		}
		if err := p.SetValue("testCompleted", "true"); err != nil {
			t.Fatal(err)
		}
		got, err := p.GetValue("testCompleted")
		if err != nil {
			t.Fatal(err)
		}
		if got != "true" {
			t.Errorf("GetValue() = %q after overwrite, want true", got)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := p.SetValue("characterKey", "explorer"); err != nil {
			t.Fatal(err)
		}
		if err := p.DeleteValue("characterKey"); err != nil {
			t.Fatalf("DeleteValue() failed: %v", err)
		}
		if _, err := p.GetValue("characterKey"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetValue() after delete error = %v, want ErrNotFound", err)
		}
		if err := p.DeleteValue("characterKey"); err != nil {
			t.Errorf("DeleteValue() on missing key = %v, want nil", err)
		}
	})

	t.Run("keys sorted", func(t *testing.T) {
		keys, err := p.Keys()
		if err != nil {
			t.Fatalf("Keys() failed: %v", err)
		}
		for i := 1; i < len(keys); i++ {
			if keys[i-1] > keys[i] {
				t.Errorf("Keys() not sorted: %v", keys)
			}
		}
		found := false
		for _, k := range keys {
			if k == "nickname" {
				found = true
			}
		}
		if !found {
			t.Errorf("Keys() = %v, missing nickname", keys)
		}
	})
}
