// Package logger owns the process-wide charmbracelet logger. Every helper
// is a no-op until Init or UseWriter runs, so packages can log from tests
// without setup.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/moodlit/internal/constants"
)

// Logger is the global logger instance
var Logger *log.Logger

// Rotation limits for <ConfigDir>/logs/moodlit.log
const (
	maxSizeMB  = 5
	maxBackups = 3
	maxAgeDays = 14
)

// Config holds logger configuration
type Config struct {
	Debug     bool
	ConfigDir string
}

// Init builds the global logger. Output goes to a rotating file under
// <ConfigDir>/logs; debug mode lowers the level, reports callers and
// mirrors every line to stderr.
func Init(cfg Config) error {
	logDir := filepath.Join(cfg.ConfigDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	var out io.Writer = &lumberjack.Logger{
		Filename:   filepath.Join(logDir, constants.AppName+".log"),
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}
	opts := log.Options{
		ReportTimestamp: true,
		Level:           log.InfoLevel,
		Prefix:          constants.AppName,
	}
	if cfg.Debug {
		out = io.MultiWriter(os.Stderr, out)
		opts.Level = log.DebugLevel
		opts.ReportCaller = true
	}

	Logger = log.NewWithOptions(out, opts)
	return nil
}

// UseWriter points the global logger at w at debug level. Tests use it to
// capture output.
func UseWriter(w io.Writer) {
	Logger = log.NewWithOptions(w, log.Options{
		Level:  log.DebugLevel,
		Prefix: constants.AppName,
	})
}

func logAt(level log.Level, msg string, keyvals []interface{}) {
	if Logger == nil {
		return
	}
	Logger.Helper()
	Logger.Log(level, msg, keyvals...)
}

// Debug logs request tracing and fallbacks that are only useful with --debug
func Debug(msg string, keyvals ...interface{}) { logAt(log.DebugLevel, msg, keyvals) }

// Info logs state changes worth keeping in the log file
func Info(msg string, keyvals ...interface{}) { logAt(log.InfoLevel, msg, keyvals) }

// Warn logs recoverable failures the user may want to look into
func Warn(msg string, keyvals ...interface{}) { logAt(log.WarnLevel, msg, keyvals) }

// Error logs failures that end the current command
func Error(msg string, keyvals ...interface{}) { logAt(log.ErrorLevel, msg, keyvals) }

// Scoped prepends a fixed set of key/value pairs to every line. It reads the
// global logger on each call, so a Scoped created before Init still logs.
type Scoped struct {
	keyvals []interface{}
}

// With returns a Scoped logger carrying keyvals
func With(keyvals ...interface{}) Scoped {
	return Scoped{keyvals: keyvals}
}

func (s Scoped) merge(keyvals []interface{}) []interface{} {
	out := make([]interface{}, 0, len(s.keyvals)+len(keyvals))
	out = append(out, s.keyvals...)
	return append(out, keyvals...)
}

func (s Scoped) Debug(msg string, keyvals ...interface{}) {
	logAt(log.DebugLevel, msg, s.merge(keyvals))
}

func (s Scoped) Info(msg string, keyvals ...interface{}) {
	logAt(log.InfoLevel, msg, s.merge(keyvals))
}

func (s Scoped) Warn(msg string, keyvals ...interface{}) {
	logAt(log.WarnLevel, msg, s.merge(keyvals))
}
