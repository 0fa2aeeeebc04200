package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
	"silver-settings/internal/interfaces"
)

var _ interfaces.ConfigManager = (*Manager)(nil)

// Manager implements the ConfigManager interface
type Manager struct {
	v     *viper.Viper
	flags map[string]interface{} // Store flag values for precedence
}

// NewManager creates a new configuration manager
func NewManager() *Manager {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix("SILVER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	return &Manager{
		v:     v,
		flags: make(map[string]interface{}),
	}
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("settings_file", "~/.config/silver/silverrc.toml")
	v.SetDefault("presets_file", "~/.config/silver/windecopresetsrc.toml")
	v.SetDefault("icons_dir", "~/.local/share/icons/hicolor/scalable/apps")
	v.SetDefault("notifier", "dbus")
	v.SetDefault("notify_timeout_ms", 2000)
	v.SetDefault("log_level", "warn")
}

// DefaultPath returns the configuration file used when none is given
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "silver", "settings.toml"), nil
}

// Load loads configuration from the specified path
func (m *Manager) Load(path string) (*interfaces.Config, error) {
	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}
	path = expandPath(path)

	// A missing config file means defaults
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return m.getConfigFromViper(), nil
	}

	m.v.SetConfigFile(path)

	if err := m.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return m.getConfigFromViper(), nil
}

// SetFlag sets a flag value for precedence resolution
func (m *Manager) SetFlag(key string, value interface{}) {
	m.flags[key] = value
}

// Resolve applies precedence rules (flags > env > config > defaults)
func (m *Manager) Resolve() (*interfaces.Config, error) {
	config := m.getConfigFromViper()

	m.applyFlagOverrides(config)

	return config, nil
}

// applyFlagOverrides applies flag values over the configuration
func (m *Manager) applyFlagOverrides(config *interfaces.Config) {
	if str, ok := m.stringFlag("settings_file"); ok {
		config.SettingsFile = expandPath(str)
	}
	if str, ok := m.stringFlag("presets_file"); ok {
		config.PresetsFile = expandPath(str)
	}
	if str, ok := m.stringFlag("icons_dir"); ok {
		config.IconsDir = expandPath(str)
	}
	if str, ok := m.stringFlag("notifier"); ok {
		config.Notifier = str
	}
	if str, ok := m.stringFlag("log_level"); ok {
		config.LogLevel = str
	}
	if val, exists := m.flags["notify_timeout_ms"]; exists {
		if ms, ok := val.(int); ok && ms > 0 {
			config.NotifyTimeoutMs = ms
		}
	}
}

func (m *Manager) stringFlag(key string) (string, bool) {
	val, exists := m.flags[key]
	if !exists || val == nil {
		return "", false
	}
	str, ok := val.(string)
	return str, ok && str != ""
}

// Validate validates the configuration values
func (m *Manager) Validate(config *interfaces.Config) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if config.SettingsFile == "" {
		return fmt.Errorf("settings_file must not be empty")
	}
	if config.PresetsFile == "" {
		return fmt.Errorf("presets_file must not be empty")
	}
	if config.SettingsFile == config.PresetsFile {
		return fmt.Errorf("settings_file and presets_file must be different files: %s", config.SettingsFile)
	}
	if config.IconsDir == "" {
		return fmt.Errorf("icons_dir must not be empty")
	}

	validNotifiers := map[string]bool{
		"dbus": true,
		"none": true,
	}
	if !validNotifiers[config.Notifier] {
		return fmt.Errorf("invalid notifier: %s (must be 'dbus' or 'none')", config.Notifier)
	}

	if config.NotifyTimeoutMs <= 0 {
		return fmt.Errorf("invalid notify_timeout_ms: %d (must be positive)", config.NotifyTimeoutMs)
	}

	if _, err := log.ParseLevel(config.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %s", config.LogLevel)
	}

	return nil
}

// getConfigFromViper converts viper configuration to Config struct
// This handles env > config > defaults precedence (flags are applied separately)
func (m *Manager) getConfigFromViper() *interfaces.Config {
	return &interfaces.Config{
		SettingsFile:    expandPath(m.v.GetString("settings_file")),
		PresetsFile:     expandPath(m.v.GetString("presets_file")),
		IconsDir:        expandPath(m.v.GetString("icons_dir")),
		Notifier:        m.v.GetString("notifier"),
		NotifyTimeoutMs: m.v.GetInt("notify_timeout_ms"),
		LogLevel:        m.v.GetString("log_level"),
	}
}

// expandPath expands ~ to user home directory
func expandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(homeDir, path[2:])
}
