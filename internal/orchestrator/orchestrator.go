package orchestrator

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"silver-settings/internal/interfaces"
	"silver-settings/internal/preset"
	"silver-settings/internal/settings"
	"silver-settings/internal/store"
	"silver-settings/internal/version"
	"silver-settings/pkg/models"
)

// Status is the outcome of one invocation
type Status int

const (
	// StatusNoCommand means no intent was given and the caller may fall back
	// to its default behavior
	StatusNoCommand Status = iota
	StatusDone
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusNoCommand:
		return "no-command"
	case StatusDone:
		return "done"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Deps are the collaborators an Orchestrator drives. Zero fields get
// production defaults from New.
type Deps struct {
	OpenStore  interfaces.StoreOpener
	Notifier   interfaces.Notifier
	Icons      interfaces.IconGeneratorFactory
	Out        io.Writer
	Logger     *log.Logger
	AppVersion string
}

// Orchestrator runs the import, load and icon intents of a request in order
type Orchestrator struct {
	cfg        *interfaces.Config
	openStore  interfaces.StoreOpener
	notifier   interfaces.Notifier
	icons      interfaces.IconGeneratorFactory
	out        io.Writer
	logger     *log.Logger
	appVersion string
}

// New creates an orchestrator for the stores and icon directory named in cfg
func New(cfg *interfaces.Config, deps Deps) *Orchestrator {
	o := &Orchestrator{
		cfg:        cfg,
		openStore:  deps.OpenStore,
		notifier:   deps.Notifier,
		icons:      deps.Icons,
		out:        deps.Out,
		logger:     deps.Logger,
		appVersion: deps.AppVersion,
	}

	if o.openStore == nil {
		o.openStore = store.Opener
	}
	if o.out == nil {
		o.out = os.Stdout
	}
	if o.logger == nil {
		o.logger = log.Default()
	}
	if o.appVersion == "" {
		o.appVersion = version.Long()
	}
	return o
}

// Run executes the intents of request. Import runs first, then the preset
// load, then icon generation. A failed import skips the load in the same
// invocation; a failed load skips only the icon refresh it implies.
func (o *Orchestrator) Run(request *models.Request) Status {
	if !request.HasCommand() {
		return StatusNoCommand
	}

	status := StatusDone
	importFailed := false

	if request.ImportPath != "" {
		if err := o.importPreset(request.ImportPath, request.ForceImport); err != nil {
			o.reportError(err)
			status = StatusError
			importFailed = true
		}
	}

	loaded := false
	if request.LoadPreset != "" {
		if importFailed {
			o.logger.Warn("skipping preset load after failed import", "preset", request.LoadPreset)
		} else if err := o.loadPreset(request.LoadPreset); err != nil {
			o.reportError(err)
			status = StatusError
		} else {
			loaded = true
		}
	}

	if request.GenerateIcons || loaded {
		if err := o.generateIcons(); err != nil {
			o.reportError(err)
			status = StatusError
		}
	}

	return status
}

// PresetNames lists the catalog after making sure the bundled presets are installed
func (o *Orchestrator) PresetNames() ([]string, error) {
	catalog, err := o.openCatalog()
	if err != nil {
		return nil, err
	}
	catalog.ImportBundledPresets(false)
	return catalog.Names(), nil
}

// Presets returns every preset in the catalog in name order
func (o *Orchestrator) Presets() ([]*preset.Preset, error) {
	catalog, err := o.openCatalog()
	if err != nil {
		return nil, err
	}
	catalog.ImportBundledPresets(false)

	names := catalog.Names()
	presets := make([]*preset.Preset, 0, len(names))
	for _, name := range names {
		if p, ok := catalog.Get(name); ok {
			presets = append(presets, p)
		}
	}
	return presets, nil
}

func (o *Orchestrator) openCatalog() (*preset.Catalog, error) {
	presets, err := o.openStore(o.cfg.PresetsFile)
	if err != nil {
		return nil, NewStoreError(o.cfg.PresetsFile, err)
	}
	return preset.NewCatalog(presets, o.appVersion, o.logger), nil
}

func (o *Orchestrator) importPreset(path string, force bool) error {
	catalog, err := o.openCatalog()
	if err != nil {
		return err
	}

	name, err := catalog.ImportFile(path, force)
	if err != nil {
		if _, ok := preset.VerdictOf(err); ok {
			return NewImportError(path, err)
		}
		return NewStoreError(o.cfg.PresetsFile, err)
	}

	o.reportf("Preset, \"%s\" imported.", name)
	return nil
}

func (o *Orchestrator) loadPreset(name string) error {
	catalog, err := o.openCatalog()
	if err != nil {
		return err
	}
	catalog.ImportBundledPresets(false)

	if !catalog.IsPresetPresent(name) {
		return NewPresetNotFoundError(name)
	}

	settingsStore, err := o.openStore(o.cfg.SettingsFile)
	if err != nil {
		return NewStoreError(o.cfg.SettingsFile, err)
	}
	live := settings.Load(settingsStore)

	if err := catalog.LoadPresetAndSave(live, settingsStore, name, o.notifier); err != nil {
		return NewStoreError(o.cfg.SettingsFile, err)
	}

	o.reportf("Preset, \"%s\" loaded...", name)
	return nil
}

// generateIcons renders the system icons from a fresh read of the persisted settings
func (o *Orchestrator) generateIcons() error {
	settingsStore, err := o.openStore(o.cfg.SettingsFile)
	if err != nil {
		return NewStoreError(o.cfg.SettingsFile, err)
	}
	live := settings.Load(settingsStore)

	if o.icons != nil {
		if err := o.icons(live.Snapshot()).Generate(); err != nil {
			o.logger.Warn("icon generation failed", "dir", o.cfg.IconsDir, "error", err)
		}
	}

	o.reportf("silver and silver-dark system icons generated.")
	return nil
}
