package storage

import "errors"

// ErrNotFound is returned by GetValue for a key that was never set or was deleted
var ErrNotFound = errors.New("key not found")

// Provider is the local key-value state the client keeps between runs:
// session flags, archetype info and the emotion suppression set. Tokens live
// in the OS keyring instead.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	GetValue(key string) (string, error)
	SetValue(key, value string) error
	DeleteValue(key string) error
	// Keys lists every stored key in ascending order
	Keys() ([]string, error)

	// Utils
	GetConfigPath() string
}
