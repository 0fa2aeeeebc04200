package config

import (
	"os"
	"path/filepath"
	"testing"

	"silver-settings/internal/interfaces"
)

func TestNewManager(t *testing.T) {
	manager := NewManager()
	if manager == nil {
		t.Fatal("NewManager() returned nil")
	}
	if manager.v == nil {
		t.Fatal("NewManager() created manager with nil viper instance")
	}
}

func TestManager_Load_MissingFileUsesDefaults(t *testing.T) {
	manager := NewManager()

	config, err := manager.Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if config.Notifier != "dbus" {
		t.Errorf("Expected Notifier to be 'dbus', got %s", config.Notifier)
	}
	if config.LogLevel != "warn" {
		t.Errorf("Expected LogLevel to be 'warn', got %s", config.LogLevel)
	}
	if config.NotifyTimeoutMs != 2000 {
		t.Errorf("Expected NotifyTimeoutMs to be 2000, got %d", config.NotifyTimeoutMs)
	}
	if filepath.Base(config.PresetsFile) != "windecopresetsrc.toml" {
		t.Errorf("Unexpected default PresetsFile %s", config.PresetsFile)
	}
}

func TestManager_Load_CustomFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "settings.toml")

	configContent := `
settings_file = "/custom/silverrc.toml"
presets_file = "/custom/presets.toml"
icons_dir = "/custom/icons"
notifier = "none"
notify_timeout_ms = 750
log_level = "debug"
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	manager := NewManager()
	config, err := manager.Load(configPath)
	if err != nil {
		t.Fatalf("Load(%s) failed: %v", configPath, err)
	}

	if config.SettingsFile != "/custom/silverrc.toml" {
		t.Errorf("Expected SettingsFile to be '/custom/silverrc.toml', got %s", config.SettingsFile)
	}
	if config.PresetsFile != "/custom/presets.toml" {
		t.Errorf("Expected PresetsFile to be '/custom/presets.toml', got %s", config.PresetsFile)
	}
	if config.Notifier != "none" {
		t.Errorf("Expected Notifier to be 'none', got %s", config.Notifier)
	}
	if config.NotifyTimeoutMs != 750 {
		t.Errorf("Expected NotifyTimeoutMs to be 750, got %d", config.NotifyTimeoutMs)
	}
}

func TestManager_Load_InvalidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(configPath, []byte("notifier = "), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewManager().Load(configPath); err == nil {
		t.Error("Expected error for malformed config file")
	}
}

func TestManager_Validate(t *testing.T) {
	manager := NewManager()

	valid := func() *interfaces.Config {
		return &interfaces.Config{
			SettingsFile:    "/tmp/silverrc.toml",
			PresetsFile:     "/tmp/presets.toml",
			IconsDir:        "/tmp/icons",
			Notifier:        "dbus",
			NotifyTimeoutMs: 1000,
			LogLevel:        "info",
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *interfaces.Config)
		nilCfg  bool
		wantErr bool
	}{
		{name: "nil config", nilCfg: true, wantErr: true},
		{name: "valid config", mutate: func(c *interfaces.Config) {}},
		{name: "no notifier", mutate: func(c *interfaces.Config) { c.Notifier = "none" }},
		{name: "invalid notifier", mutate: func(c *interfaces.Config) { c.Notifier = "smoke" }, wantErr: true},
		{name: "empty settings file", mutate: func(c *interfaces.Config) { c.SettingsFile = "" }, wantErr: true},
		{name: "empty presets file", mutate: func(c *interfaces.Config) { c.PresetsFile = "" }, wantErr: true},
		{name: "same file twice", mutate: func(c *interfaces.Config) { c.PresetsFile = c.SettingsFile }, wantErr: true},
		{name: "empty icons dir", mutate: func(c *interfaces.Config) { c.IconsDir = "" }, wantErr: true},
		{name: "zero timeout", mutate: func(c *interfaces.Config) { c.NotifyTimeoutMs = 0 }, wantErr: true},
		{name: "invalid log level", mutate: func(c *interfaces.Config) { c.LogLevel = "chatty" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg *interfaces.Config
			if !tt.nilCfg {
				cfg = valid()
				tt.mutate(cfg)
			}
			err := manager.Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestManager_SetFlag(t *testing.T) {
	manager := NewManager()

	manager.SetFlag("log_level", "debug")
	manager.SetFlag("notifier", "none")

	if manager.flags["log_level"] != "debug" {
		t.Errorf("Expected flag 'log_level' to be 'debug', got %v", manager.flags["log_level"])
	}
	if manager.flags["notifier"] != "none" {
		t.Errorf("Expected flag 'notifier' to be 'none', got %v", manager.flags["notifier"])
	}
}

func TestManager_Resolve_FlagPrecedence(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "settings.toml")

	configContent := `
log_level = "info"
notifier = "none"
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	manager := NewManager()

	if _, err := manager.Load(configPath); err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	manager.SetFlag("log_level", "debug")
	manager.SetFlag("notifier", "")

	config, err := manager.Resolve()
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}

	if config.LogLevel != "debug" {
		t.Errorf("Expected LogLevel to be 'debug' (from flag), got %s", config.LogLevel)
	}

	// empty flag values do not override
	if config.Notifier != "none" {
		t.Errorf("Expected Notifier to be 'none' (from config), got %s", config.Notifier)
	}
}

func TestManager_Resolve_EnvironmentVariables(t *testing.T) {
	t.Setenv("SILVER_NOTIFIER", "none")
	t.Setenv("SILVER_LOG_LEVEL", "error")

	manager := NewManager()

	config, err := manager.Resolve()
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}

	if config.Notifier != "none" {
		t.Errorf("Expected Notifier to be 'none' (from env), got %s", config.Notifier)
	}
	if config.LogLevel != "error" {
		t.Errorf("Expected LogLevel to be 'error' (from env), got %s", config.LogLevel)
	}
}

func TestExpandPath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{
			name:     "absolute path",
			path:     "/absolute/path",
			expected: "/absolute/path",
		},
		{
			name:     "relative path",
			path:     "relative/path",
			expected: "relative/path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.path)
			if result != tt.expected {
				t.Errorf("expandPath(%s) = %s, expected %s", tt.path, result, tt.expected)
			}
		})
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		result := expandPath("~/test/path")
		expected := filepath.Join(homeDir, "test/path")
		if result != expected {
			t.Errorf("expandPath(~/test/path) = %s, expected %s", result, expected)
		}
	}
}
