package constants

const (
	AppName            = "moodlit"
	DefaultKeyringUser = "session"
	DefaultConfigDir   = "~/.config/moodlit"
	DefaultConfigPath  = "~/.config/moodlit/config.yaml"
	DefaultStorePath   = "~/.config/moodlit/moodlit.db"
	DefaultAPIURL      = "http://127.0.0.1:8787"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// EnvPrefix is prepended to every environment variable the config layer reads
	EnvPrefix = "MOODLIT_"

	// Mock backend lockfile, written by serve-mock as "port|pid"
	MockLockfileName = "moodlit-mock.lock"
	MockExecutable   = "moodlit"
)
