package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"silver-settings/internal/config"
	"silver-settings/internal/icons"
	"silver-settings/internal/interactive"
	"silver-settings/internal/interfaces"
	"silver-settings/internal/notify"
	"silver-settings/internal/orchestrator"
	"silver-settings/pkg/models"
)

// Run executes the main application logic. With no command on a terminal
// the user is asked which preset to load.
func Run(request *models.Request) (orchestrator.Status, error) {
	var picker *interactive.Picker
	if interactive.IsTerminal() {
		picker = interactive.NewPicker()
	}
	return run(request, os.Stdout, picker)
}

func run(request *models.Request, out io.Writer, picker *interactive.Picker) (orchestrator.Status, error) {
	cfg, err := LoadConfiguration(request)
	if err != nil {
		return orchestrator.StatusError, fmt.Errorf("configuration error: %w", err)
	}

	logger := NewLogger(cfg.LogLevel)
	orch, err := newOrchestrator(cfg, logger, out)
	if err != nil {
		return orchestrator.StatusError, err
	}

	status := orch.Run(request)
	if status != orchestrator.StatusNoCommand || picker == nil {
		return status, nil
	}

	names, err := orch.PresetNames()
	if err != nil {
		return orchestrator.StatusError, err
	}

	chosen, err := picker.CollectRequest(names)
	if err != nil {
		if errors.Is(err, interactive.ErrCancelled) {
			return orchestrator.StatusDone, nil
		}
		return orchestrator.StatusError, fmt.Errorf("failed to collect inputs: %w", err)
	}
	if chosen == nil {
		return orchestrator.StatusDone, nil
	}
	return orch.Run(chosen), nil
}

// LoadConfiguration loads, resolves and validates the configuration for request
func LoadConfiguration(request *models.Request) (*interfaces.Config, error) {
	manager := config.NewManager()

	if _, err := manager.Load(request.ConfigPath); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	manager.SetFlag("log_level", request.LogLevel)

	cfg, err := manager.Resolve()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve configuration: %w", err)
	}

	if err := manager.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// NewLogger creates the stderr logger. Unknown levels fall back to warn.
func NewLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "silver-settings",
	})

	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.WarnLevel
	}
	logger.SetLevel(lvl)
	return logger
}

func newOrchestrator(cfg *interfaces.Config, logger *log.Logger, out io.Writer) (*orchestrator.Orchestrator, error) {
	timeout := time.Duration(cfg.NotifyTimeoutMs) * time.Millisecond
	notifier, err := notify.New(cfg.Notifier, timeout, logger)
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	return orchestrator.New(cfg, orchestrator.Deps{
		Notifier: notifier,
		Icons:    icons.Factory(cfg.IconsDir, logger),
		Out:      out,
		Logger:   logger,
	}), nil
}

// ListPresets prints every preset in the catalog, installing the bundled ones first
func ListPresets(request *models.Request, out io.Writer) error {
	cfg, err := LoadConfiguration(request)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	orch, err := newOrchestrator(cfg, NewLogger(cfg.LogLevel), out)
	if err != nil {
		return err
	}

	presets, err := orch.Presets()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, headerStyle.Render("Preset catalog: "+contractPath(cfg.PresetsFile)))
	fmt.Fprintln(out)
	if len(presets) == 0 {
		fmt.Fprintln(out, "Presets: (none found)")
		return nil
	}

	rows := make([][]string, 0, len(presets))
	for _, p := range presets {
		source := "user"
		if p.Bundled {
			source = "bundled"
		}
		rows = append(rows, []string{p.Name, source, strconv.Itoa(len(p.Values))})
	}
	fmt.Fprintln(out, renderTable([]string{"Preset", "Source", "Keys"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight}))
	return nil
}

// contractPath converts a full path back to use ~ for the home directory
func contractPath(path string) string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	homeDirWithSlash := homeDir + string(filepath.Separator)
	if path == homeDir {
		return "~"
	}
	if strings.HasPrefix(path, homeDirWithSlash) {
		return "~" + path[len(homeDir):]
	}
	return path
}
