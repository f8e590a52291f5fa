package session

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/keyring"
	"github.com/julianstephens/moodlit/internal/models"
	"github.com/julianstephens/moodlit/internal/storage"
)

func newStore(t *testing.T) storage.Provider {
	t.Helper()
	s := storage.NewJSONStore(filepath.Join(t.TempDir(), "state.json"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	return s
}

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{Subject: "user-1", ExpiresAt: jwt.NewNumericDate(exp)}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("SignedString() failed: %v", err)
	}
	return tok
}

func TestLoadLoggedOut(t *testing.T) {
	gokeyring.MockInit()
	s, err := Load(keyring.NewTokenStore(), newStore(t), time.Now())
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if s.IsAuthenticated() || s.HasCompletedTest() {
		t.Errorf("fresh session authenticated=%v completed=%v", s.IsAuthenticated(), s.HasCompletedTest())
	}
}

func TestBeginPersistsAcrossLoad(t *testing.T) {
	gokeyring.MockInit()
	tokens := keyring.NewTokenStore()
	store := newStore(t)
	now := time.Now()

	s, err := Load(tokens, store, now)
	if err != nil {
		t.Fatal(err)
	}
	access := signed(t, now.Add(time.Hour))
	err = s.Begin(models.LoginResult{
		AccessToken:   access,
		RefreshToken:  "refresh-1",
		UserID:        "user-1",
		Nickname:      "sunny",
		TestCompleted: false,
	})
	if err != nil {
		t.Fatalf("Begin() failed: %v", err)
	}
	if err := s.MarkTestCompleted(models.ArchetypeResult{ResultID: "r-1", Key: "dreamer", Name: "Gentle Dreamer"}); err != nil {
		t.Fatalf("MarkTestCompleted() failed: %v", err)
	}

	reloaded, err := Load(tokens, store, now)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.AccessToken() != access || reloaded.RefreshToken() != "refresh-1" {
		t.Error("tokens not restored")
	}
	if !reloaded.IsAuthenticated() || !reloaded.HasCompletedTest() {
		t.Errorf("reloaded authenticated=%v completed=%v", reloaded.IsAuthenticated(), reloaded.HasCompletedTest())
	}
	if reloaded.Nickname() != "sunny" || reloaded.UserID() != "user-1" {
		t.Errorf("nickname=%q user=%q", reloaded.Nickname(), reloaded.UserID())
	}
	want := models.Character{ID: "r-1", Key: "dreamer", Name: "Gentle Dreamer"}
	if got := reloaded.Character(); got != want {
		t.Errorf("Character() = %+v, want %+v", got, want)
	}
	if v, _ := store.GetValue(constants.KeyTestCompleted); v != "true" {
		t.Errorf("testCompleted = %q, want \"true\"", v)
	}
}

func TestBeginRestoresCharacter(t *testing.T) {
	gokeyring.MockInit()
	tokens := keyring.NewTokenStore()
	store := newStore(t)
	now := time.Now()

	s, _ := Load(tokens, store, now)
	if err := s.MarkTestCompleted(models.ArchetypeResult{ResultID: "r-1", Key: "guardian", Name: "Steady Guardian"}); err != nil {
		t.Fatal(err)
	}
	if err := s.End(); err != nil {
		t.Fatal(err)
	}

	err := s.Begin(models.LoginResult{
		AccessToken:   signed(t, now.Add(time.Hour)),
		UserID:        "user-1",
		TestCompleted: true,
		CharacterID:   "r-1",
		CharacterKey:  "guardian",
		CharacterName: "Steady Guardian",
	})
	if err != nil {
		t.Fatalf("Begin() failed: %v", err)
	}
	want := models.Character{ID: "r-1", Key: "guardian", Name: "Steady Guardian"}
	if got := s.Character(); got != want {
		t.Errorf("Character() after Begin = %+v, want %+v", got, want)
	}

	reloaded, err := Load(tokens, store, now)
	if err != nil {
		t.Fatal(err)
	}
	if got := reloaded.Character(); got != want {
		t.Errorf("Character() after Load = %+v, want %+v", got, want)
	}
}

func TestEndClearsEverything(t *testing.T) {
	gokeyring.MockInit()
	tokens := keyring.NewTokenStore()
	store := newStore(t)
	if err := store.SetValue(constants.KeyDeletedEmotionDates, `["2024-05-01"]`); err != nil {
		t.Fatal(err)
	}

	s, _ := Load(tokens, store, time.Now())
	if err := s.Begin(models.LoginResult{AccessToken: "opaque", UserID: "u", TestCompleted: true}); err != nil {
		t.Fatal(err)
	}
	if err := s.End(); err != nil {
		t.Fatalf("End() failed: %v", err)
	}

	if s.IsAuthenticated() || s.HasCompletedTest() {
		t.Error("session still authenticated after End()")
	}
	if _, err := tokens.Load(); !errors.Is(err, keyring.ErrNotFound) {
		t.Errorf("tokens.Load() error = %v, want ErrNotFound", err)
	}
	for _, k := range sessionKeys {
		if _, err := store.GetValue(k); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("%s survived End(): %v", k, err)
		}
	}
	if _, err := store.GetValue(constants.KeyDeletedEmotionDates); err != nil {
		t.Errorf("suppression set removed on logout: %v", err)
	}
}

func TestExpiredTokenForcesLogout(t *testing.T) {
	gokeyring.MockInit()
	tokens := keyring.NewTokenStore()
	store := newStore(t)
	now := time.Now()

	if err := tokens.Save(keyring.Tokens{Access: signed(t, now.Add(-time.Minute)), Refresh: "r"}); err != nil {
		t.Fatal(err)
	}
	if err := store.SetValue(constants.KeyTestCompleted, "true"); err != nil {
		t.Fatal(err)
	}

	s, err := Load(tokens, store, now)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if s.IsAuthenticated() || s.HasCompletedTest() {
		t.Error("expired token kept the session alive")
	}
	if _, err := tokens.Load(); !errors.Is(err, keyring.ErrNotFound) {
		t.Errorf("expired token not cleared: %v", err)
	}
}

func TestForceLogout(t *testing.T) {
	gokeyring.MockInit()
	s, _ := Load(keyring.NewTokenStore(), newStore(t), time.Now())
	if err := s.Begin(models.LoginResult{AccessToken: "opaque"}); err != nil {
		t.Fatal(err)
	}
	s.ForceLogout()
	if s.IsAuthenticated() {
		t.Error("ForceLogout() left the session authenticated")
	}
}

func TestTokenExpired(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{name: "empty", token: "", want: false},
		{name: "opaque", token: "not-a-jwt", want: false},
		{name: "future", token: signed(t, now.Add(time.Hour)), want: false},
		{name: "past", token: signed(t, now.Add(-time.Hour)), want: true},
		{name: "exactly now", token: signed(t, now), want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TokenExpired(tt.token, now); got != tt.want {
				t.Errorf("TokenExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}
