package constants

const (
	// AppName is used for config paths, keyring entries, and log prefixes.
	AppName = "ritual"

	// DateFormat is the canonical day-key layout (YYYY-MM-DD).
	DateFormat = "2006-01-02"

	// StateKey is the storage key the full snapshot is persisted under.
	StateKey = "ritual/state"

	// DefaultConfigPath is the default location of the file-backed store.
	DefaultConfigPath = "~/.config/ritual"

	// DefaultKeyringUser is the keyring account name for the postgres DSN.
	DefaultKeyringUser = "default"

	// ConnectionEnvVar overrides the postgres connection string.
	ConnectionEnvVar = "RITUAL_DB_CONNECTION"
)
