package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/moodlit/internal/logger"
)

// Failure classes shared by every package that talks to the backend.
var (
	// ErrNetwork means the request never got a response
	ErrNetwork = errors.New("network unavailable")
	// ErrUnauthorized means the credential was rejected or has expired
	ErrUnauthorized = errors.New("authentication required")
	// ErrValidation means input was rejected before any request was issued
	ErrValidation = errors.New("invalid input")
)

const (
	msgNetwork      = "Could not reach the server. Check your connection and try again."
	msgUnauthorized = "Your session has expired. Please log in again with 'moodlit login'."
	msgRecovery     = "Something went wrong. Run the command again; if it keeps failing, run 'moodlit doctor'."
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// UserMessage turns an error into the text shown to the user. Network and
// credential failures get a fixed message; everything else is formatted.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNetwork):
		return Format(errors.New(msgNetwork))
	case errors.Is(err, ErrUnauthorized):
		return Format(errors.New(msgUnauthorized))
	default:
		return Format(err)
	}
}

// RecoveryMessage is printed by the top-level boundary after a panic
func RecoveryMessage() string {
	return msgRecovery
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", UserMessage(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
