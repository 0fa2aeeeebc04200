package preset

import (
	"embed"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"silver-settings/internal/interfaces"
	"silver-settings/internal/settings"
)

//go:embed bundled/*.toml
var bundledFiles embed.FS

// Catalog is the set of named presets kept in a catalog store, one
// "Windeco Preset <name>" group per preset.
type Catalog struct {
	store      interfaces.ConfigStore
	appVersion string
	bundled    fs.FS
	logger     *log.Logger
}

// NewCatalog creates a catalog over s. Preset files are checked against appVersion.
func NewCatalog(s interfaces.ConfigStore, appVersion string, logger *log.Logger) *Catalog {
	bundled, _ := fs.Sub(bundledFiles, "bundled")
	return &Catalog{
		store:      s,
		appVersion: appVersion,
		bundled:    bundled,
		logger:     logger,
	}
}

// Import validates raw and, if valid, stores it under its display name,
// replacing any preset of the same name. On failure the catalog is untouched.
func (c *Catalog) Import(raw []byte, force bool) (string, error) {
	p, err := Validate(raw, c.appVersion, force)
	if err != nil {
		return "", err
	}

	if err := c.put(p); err != nil {
		return "", err
	}

	c.logger.Debug("preset imported", "name", p.Name, "keys", len(p.Values))
	return p.Name, nil
}

// ImportFile reads the preset file at path and imports it.
// An unreadable file is reported as InvalidGlobalGroup.
func (c *Catalog) ImportFile(path string, force bool) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", &ValidationError{Verdict: InvalidGlobalGroup, Err: err}
	}
	return c.Import(raw, force)
}

// put stores p and syncs; the previous entry is restored if the sync fails
func (c *Catalog) put(p *Preset) error {
	group := GroupPrefix + p.Name
	previous, existed := c.store.Group(group)

	c.store.SetGroup(group, storedValues(p))
	if err := c.store.Sync(); err != nil {
		if existed {
			c.store.SetGroup(group, previous)
		} else {
			c.store.DeleteGroup(group)
		}
		return fmt.Errorf("failed to save preset %q: %w", p.Name, err)
	}
	return nil
}

// ImportBundledPresets installs every bundled preset that is missing or
// outdated. User presets sharing a bundled name are kept unless force is set.
// Bundled files that fail validation are skipped; failures never reach the caller.
func (c *Catalog) ImportBundledPresets(force bool) {
	files, err := fs.Glob(c.bundled, "*.toml")
	if err != nil {
		c.logger.Warn("failed to list bundled presets", "error", err)
		return
	}

	changed := false
	for _, file := range files {
		raw, err := fs.ReadFile(c.bundled, file)
		if err != nil {
			c.logger.Debug("skipping unreadable bundled preset", "file", file, "error", err)
			continue
		}

		// bundled presets ship with the application, so their version is not checked
		p, err := Validate(raw, c.appVersion, true)
		if err != nil {
			c.logger.Debug("skipping invalid bundled preset", "file", file, "error", err)
			continue
		}
		p.Bundled = true

		group := GroupPrefix + p.Name
		existing, ok := c.store.Group(group)
		if ok && existing[bundledKey] != "true" && !force {
			c.logger.Debug("keeping user preset over bundled preset", "name", p.Name)
			continue
		}

		stored := storedValues(p)
		if ok && maps.Equal(existing, stored) {
			continue
		}
		c.store.SetGroup(group, stored)
		changed = true
	}

	if !changed {
		return
	}
	if err := c.store.Sync(); err != nil {
		c.logger.Warn("failed to save bundled presets", "error", err)
	}
}

// IsPresetPresent reports whether a preset called name is in the catalog
func (c *Catalog) IsPresetPresent(name string) bool {
	return c.store.HasGroup(GroupPrefix + name)
}

// Get returns the preset called name
func (c *Catalog) Get(name string) (*Preset, bool) {
	group, ok := c.store.Group(GroupPrefix + name)
	if !ok {
		return nil, false
	}

	p := &Preset{Name: name, Bundled: group[bundledKey] == "true"}
	delete(group, bundledKey)
	p.Values = group
	return p, true
}

// Names returns the names of all presets in sorted order
func (c *Catalog) Names() []string {
	var names []string
	for _, group := range c.store.GroupNames() {
		if name, ok := strings.CutPrefix(group, GroupPrefix); ok && name != "" {
			names = append(names, name)
		}
	}
	return names
}

// LoadPresetAndSave applies the preset called name onto live, persists live
// into settingsStore and then, when notifier is non-nil, tells the compositor
// its decoration cache is stale and to reload its configuration.
// Callers check IsPresetPresent first; an unknown name does nothing.
func (c *Catalog) LoadPresetAndSave(live *settings.Settings, settingsStore interfaces.ConfigStore, name string, notifier interfaces.Notifier) error {
	p, ok := c.Get(name)
	if !ok {
		return nil
	}

	Apply(p, live)
	if err := live.Save(settingsStore); err != nil {
		return err
	}
	c.logger.Debug("preset applied", "name", name, "keys", len(p.Values))

	if notifier != nil {
		notifier.NotifyCacheStale()
		notifier.NotifyConfigReloaded()
	}
	return nil
}

func storedValues(p *Preset) map[string]string {
	values := maps.Clone(p.Values)
	if values == nil {
		values = make(map[string]string)
	}
	if p.Bundled {
		values[bundledKey] = "true"
	}
	return values
}
