package mockserver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/moodlit/internal/constants"
)

var findProcessFunc = ps.FindProcess

// Lock is the content of the mock backend lockfile
type Lock struct {
	Port int
	PID  int
}

// URL is the base URL clients should use
func (l Lock) URL() string {
	return fmt.Sprintf("http://127.0.0.1:%d", l.Port)
}

// LockfilePath is where serve-mock announces itself inside dir
func LockfilePath(dir string) string {
	return filepath.Join(dir, constants.MockLockfileName)
}

// WriteLockfile records port and the current pid as "port|pid"
func WriteLockfile(dir string, port int) (string, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create lockfile directory: %w", err)
	}
	path := LockfilePath(dir)
	content := fmt.Sprintf("%d|%d", port, os.Getpid())
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return "", fmt.Errorf("failed to write lockfile: %w", err)
	}
	return path, nil
}

// ReadLockfile parses the lockfile without checking the process
func ReadLockfile(path string) (Lock, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Lock{}, errors.New("mock backend is not running")
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 2 {
		return Lock{}, errors.New("lockfile is malformed")
	}

	port, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Lock{}, errors.New("invalid port number in lockfile")
	}
	if port < 1 || port > 65535 {
		return Lock{}, fmt.Errorf("port number %d is outside valid range (1-65535)", port)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Lock{}, errors.New("invalid process ID in lockfile")
	}
	return Lock{Port: port, PID: pid}, nil
}

// FindRunning reads the lockfile and checks that its pid belongs to a live
// moodlit process
func FindRunning(path string) (Lock, error) {
	lock, err := ReadLockfile(path)
	if err != nil {
		return Lock{}, err
	}

	process, err := findProcessFunc(lock.PID)
	if err != nil || process == nil {
		return Lock{}, errors.New("mock backend process not running")
	}
	if !strings.HasPrefix(process.Executable(), constants.MockExecutable) {
		return Lock{}, fmt.Errorf("process with PID %d is not %s (is %s)", lock.PID, constants.MockExecutable, process.Executable())
	}
	return lock, nil
}

// RemoveLockfile deletes the lockfile if it still names this process
func RemoveLockfile(path string) error {
	lock, err := ReadLockfile(path)
	if err != nil {
		return nil
	}
	if lock.PID != os.Getpid() {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}
