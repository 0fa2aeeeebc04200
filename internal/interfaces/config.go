package interfaces

// Config represents the application configuration
type Config struct {
	SettingsFile    string `toml:"settings_file"`
	PresetsFile     string `toml:"presets_file"`
	IconsDir        string `toml:"icons_dir"`
	Notifier        string `toml:"notifier"`
	NotifyTimeoutMs int    `toml:"notify_timeout_ms"`
	LogLevel        string `toml:"log_level"`
}

// ConfigManager handles configuration loading and resolution
type ConfigManager interface {
	// Load loads configuration from the specified path
	Load(path string) (*Config, error)

	// Resolve applies precedence rules (flags > env > config > defaults)
	Resolve() (*Config, error)

	// Validate validates the configuration values
	Validate(config *Config) error
}
