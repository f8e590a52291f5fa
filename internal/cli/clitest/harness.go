// Package clitest runs CLI commands against an in-process mock backend.
package clitest

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/moodlit/internal/cli"
	"github.com/julianstephens/moodlit/internal/config"
	"github.com/julianstephens/moodlit/internal/keyring"
	"github.com/julianstephens/moodlit/internal/mockserver"
	"github.com/julianstephens/moodlit/internal/models"
	"github.com/julianstephens/moodlit/internal/storage"
)

// Harness is a cli.Context wired to a fresh mock backend, a JSON state file
// and the in-memory keyring
type Harness struct {
	Ctx    *cli.Context
	Out    *bytes.Buffer
	Server *httptest.Server
	Store  *storage.JSONStore
	Tokens *keyring.TokenStore

	cfg config.Config
}

func New(t *testing.T) *Harness {
	t.Helper()
	gokeyring.MockInit()

	srv := httptest.NewServer(mockserver.New(mockserver.Options{}).Handler())
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	store := storage.NewJSONStore(filepath.Join(dir, "state.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	cfg := config.Default()
	cfg.APIURL = srv.URL
	cfg.Store = store.GetConfigPath()
	cfg.Timeout = 5 * time.Second

	h := &Harness{
		Out:    &bytes.Buffer{},
		Server: srv,
		Store:  store,
		Tokens: keyring.NewTokenStore(),
		cfg:    cfg,
	}
	h.Reload(t)
	// a previous test may have left tokens behind in the shared mock keyring
	if err := h.Ctx.Session.End(); err != nil {
		t.Fatalf("failed to clear session: %v", err)
	}
	return h
}

// Reload rebuilds the context as a new process would, from the keyring and
// the state file
func (h *Harness) Reload(t *testing.T) {
	t.Helper()
	ctx, err := cli.New(h.cfg, h.Store, h.Tokens)
	if err != nil {
		t.Fatalf("cli.New() failed: %v", err)
	}
	ctx.Out = h.Out
	ctx.Base = context.Background()
	h.Ctx = ctx
}

// Login signs in through the backend and stores the session
func (h *Harness) Login(t *testing.T, email, password string) models.LoginResult {
	t.Helper()
	res, err := h.Ctx.Client.Login(h.Ctx.Ctx(), models.Credentials{Email: email, Password: password})
	if err != nil {
		t.Fatalf("Login(%s) failed: %v", email, err)
	}
	if err := h.Ctx.Session.Begin(res); err != nil {
		t.Fatalf("Session.Begin() failed: %v", err)
	}
	return res
}

// LoginDemo signs in as the seeded demo user
func (h *Harness) LoginDemo(t *testing.T) models.LoginResult {
	return h.Login(t, mockserver.DemoEmail, mockserver.DemoPassword)
}

// LoginAdmin signs in as the seeded admin
func (h *Harness) LoginAdmin(t *testing.T) models.LoginResult {
	return h.Login(t, mockserver.AdminEmail, mockserver.AdminPassword)
}

// Output returns and clears what commands printed
func (h *Harness) Output() string {
	s := h.Out.String()
	h.Out.Reset()
	return s
}
