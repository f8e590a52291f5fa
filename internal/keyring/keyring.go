package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/moodlit/internal/constants"
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Tokens is the credential pair issued at login
type Tokens struct {
	Access  string
	Refresh string
}

// TokenStore persists session credentials in the OS keyring
type TokenStore struct {
	service string
}

// NewTokenStore returns a store scoped to the application service name
func NewTokenStore() *TokenStore {
	return &TokenStore{service: constants.AppName}
}

// Load returns the stored tokens. ErrNotFound means the user never logged in
// or logged out; a missing refresh token alone is tolerated.
func (s *TokenStore) Load() (Tokens, error) {
	access, err := s.get(constants.KeyringAccessToken)
	if err != nil {
		return Tokens{}, err
	}
	refresh, err := s.get(constants.KeyringRefreshToken)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return Tokens{}, err
	}
	return Tokens{Access: access, Refresh: refresh}, nil
}

// Save stores both tokens
func (s *TokenStore) Save(t Tokens) error {
	if t.Access == "" {
		return errors.New("access token cannot be empty")
	}
	if err := keyring.Set(s.service, constants.KeyringAccessToken, t.Access); err != nil {
		return fmt.Errorf("failed to store access token in keyring: %w", err)
	}
	if t.Refresh != "" {
		if err := keyring.Set(s.service, constants.KeyringRefreshToken, t.Refresh); err != nil {
			return fmt.Errorf("failed to store refresh token in keyring: %w", err)
		}
	}
	return nil
}

// Clear removes both tokens. Missing entries are not an error.
func (s *TokenStore) Clear() error {
	for _, user := range []string{constants.KeyringAccessToken, constants.KeyringRefreshToken} {
		if err := keyring.Delete(s.service, user); err != nil && err != keyring.ErrNotFound {
			return fmt.Errorf("failed to delete %s from keyring: %w", user, err)
		}
	}
	return nil
}

func (s *TokenStore) get(user string) (string, error) {
	v, err := keyring.Get(s.service, user)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return v, nil
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || err == keyring.ErrNotFound
}
