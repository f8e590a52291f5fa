// Package session holds the login state read once at startup and the route
// guard evaluated before every command.
package session

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/keyring"
	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/models"
	"github.com/julianstephens/moodlit/internal/storage"
)

// TokenStore is where credentials are kept. *keyring.TokenStore implements it.
type TokenStore interface {
	Load() (keyring.Tokens, error)
	Save(keyring.Tokens) error
	Clear() error
}

// sessionKeys are removed from the local store on logout
var sessionKeys = []string{
	constants.KeyTestCompleted,
	constants.KeyNickname,
	constants.KeyUserID,
	constants.KeyCharacterKey,
	constants.KeyCharacterName,
	constants.KeyCharacterID,
}

// Session is the authenticated user's state
type Session struct {
	tokens TokenStore
	store  storage.Provider

	mu            sync.RWMutex
	access        string
	refresh       string
	userID        string
	nickname      string
	testCompleted bool
	character     models.Character
}

// Load builds the session from the keyring and the local store. An expired
// access token is discarded and the session starts logged out.
func Load(tokens TokenStore, store storage.Provider, now time.Time) (*Session, error) {
	s := &Session{tokens: tokens, store: store}

	t, err := tokens.Load()
	switch {
	case err == nil:
	case errors.Is(err, keyring.ErrNotFound):
		return s, nil
	default:
		logger.Warn("could not read credentials, starting logged out", "error", err)
		return s, nil
	}

	if TokenExpired(t.Access, now) {
		logger.Info("stored access token has expired, logging out")
		if err := s.End(); err != nil {
			return nil, err
		}
		return s, nil
	}

	s.access = t.Access
	s.refresh = t.Refresh
	s.userID = s.value(constants.KeyUserID)
	s.nickname = s.value(constants.KeyNickname)
	s.testCompleted, _ = strconv.ParseBool(s.value(constants.KeyTestCompleted))
	s.character = models.Character{
		ID:   s.value(constants.KeyCharacterID),
		Key:  s.value(constants.KeyCharacterKey),
		Name: s.value(constants.KeyCharacterName),
	}
	return s, nil
}

// TokenExpired reports whether token is a JWT whose exp is not after now.
// The signature is not checked; that is the backend's job. Opaque tokens and
// tokens without exp are never considered expired.
func TokenExpired(token string, now time.Time) bool {
	if token == "" {
		return false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !now.Before(exp.Time)
}

// Begin stores a successful login
func (s *Session) Begin(res models.LoginResult) error {
	if err := s.tokens.Save(keyring.Tokens{Access: res.AccessToken, Refresh: res.RefreshToken}); err != nil {
		return fmt.Errorf("failed to store credentials: %w", err)
	}
	values := map[string]string{
		constants.KeyUserID:        res.UserID,
		constants.KeyNickname:      res.Nickname,
		constants.KeyTestCompleted: strconv.FormatBool(res.TestCompleted),
	}
	if res.CharacterID != "" {
		values[constants.KeyCharacterID] = res.CharacterID
		values[constants.KeyCharacterKey] = res.CharacterKey
		values[constants.KeyCharacterName] = res.CharacterName
	}
	for k, v := range values {
		if err := s.store.SetValue(k, v); err != nil {
			return fmt.Errorf("failed to persist %s: %w", k, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = res.AccessToken
	s.refresh = res.RefreshToken
	s.userID = res.UserID
	s.nickname = res.Nickname
	s.testCompleted = res.TestCompleted
	s.character = models.Character{ID: res.CharacterID, Key: res.CharacterKey, Name: res.CharacterName}
	logger.Info("session started", "user_id", res.UserID, "test_completed", res.TestCompleted)
	return nil
}

// End clears credentials and session flags. The suppression set is kept;
// it belongs to the device, not the login.
func (s *Session) End() error {
	if err := s.tokens.Clear(); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	for _, k := range sessionKeys {
		if err := s.store.DeleteValue(k); err != nil && !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("failed to clear %s: %w", k, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = ""
	s.refresh = ""
	s.userID = ""
	s.nickname = ""
	s.testCompleted = false
	s.character = models.Character{}
	return nil
}

// ForceLogout ends the session after the backend rejected the credential.
// It is wired as the HTTP client's unauthorized hook.
func (s *Session) ForceLogout() {
	logger.Warn("credential rejected by server, logging out")
	if err := s.End(); err != nil {
		logger.Error("forced logout failed", "error", err)
	}
}

// MarkTestCompleted records the archetype from a finished quiz
func (s *Session) MarkTestCompleted(res models.ArchetypeResult) error {
	values := map[string]string{
		constants.KeyTestCompleted: "true",
		constants.KeyCharacterKey:  res.Key,
		constants.KeyCharacterName: res.Name,
		constants.KeyCharacterID:   res.ResultID,
	}
	for k, v := range values {
		if err := s.store.SetValue(k, v); err != nil {
			return fmt.Errorf("failed to persist %s: %w", k, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.testCompleted = true
	s.character.ID = res.ResultID
	s.character.Key = res.Key
	s.character.Name = res.Name
	return nil
}

// AccessToken is the bearer credential, or "" when logged out
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access != ""
}

func (s *Session) HasCompletedTest() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.testCompleted
}

func (s *Session) Nickname() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nickname
}

func (s *Session) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

func (s *Session) Character() models.Character {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.character
}

func (s *Session) value(key string) string {
	v, err := s.store.GetValue(key)
	if err != nil {
		return ""
	}
	return v
}
