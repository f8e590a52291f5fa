package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSaveAndLoad(t *testing.T) {
	gokeyring.MockInit()
	store := NewTokenStore()

	want := Tokens{Access: "access-abc", Refresh: "refresh-xyz"}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestSaveEmptyAccessToken(t *testing.T) {
	gokeyring.MockInit()

	if err := NewTokenStore().Save(Tokens{Refresh: "r"}); err == nil {
		t.Error("Save() with empty access token should return an error")
	}
}

func TestLoadNotFound(t *testing.T) {
	gokeyring.MockInit()

	_, err := NewTokenStore().Load()
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() error = %v, want %v", err, ErrNotFound)
	}
}

func TestLoadWithoutRefreshToken(t *testing.T) {
	gokeyring.MockInit()
	store := NewTokenStore()

	if err := store.Save(Tokens{Access: "only-access"}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got.Access != "only-access" || got.Refresh != "" {
		t.Errorf("Load() = %+v", got)
	}
}

func TestClear(t *testing.T) {
	gokeyring.MockInit()
	store := NewTokenStore()

	if err := store.Save(Tokens{Access: "a", Refresh: "r"}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	if _, err := store.Load(); !errors.Is(err, ErrNotFound) {
		t.Errorf("after Clear(), Load() error = %v, want %v", err, ErrNotFound)
	}

	// Clearing twice is fine
	if err := store.Clear(); err != nil {
		t.Errorf("second Clear() failed: %v", err)
	}
}

func TestIsAvailable(t *testing.T) {
	gokeyring.MockInit()

	if !IsAvailable() {
		t.Error("IsAvailable() = false, want true in mock mode")
	}
}
