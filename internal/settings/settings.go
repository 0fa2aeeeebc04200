// Package settings holds the live window decoration settings: the schema of
// recognised keys with their defaults, and loading/saving against a store.
package settings

import (
	"fmt"
	"maps"
	"slices"

	"silver-settings/internal/interfaces"
)

// Group is the settings store group the decoration settings live in.
const Group = "Windeco"

// Key is one recognised setting with its default value
type Key struct {
	Name    string
	Default string
}

// Schema lists every key a preset may carry.
var Schema = []Key{
	{Name: "ButtonIconStyle", Default: "StyleSilver"},
	{Name: "ButtonShape", Default: "ShapeSmallCircle"},
	{Name: "IconSize", Default: "IconMedium"},
	{Name: "SystemIconSize", Default: "SystemIcon16"},
	{Name: "BoldButtonIcons", Default: "BoldIconsHiDpiOnly"},
	{Name: "ButtonIconColorsActive", Default: "TitleBarText"},
	{Name: "ButtonIconColorsInactive", Default: "TitleBarText"},
	{Name: "ButtonBackgroundColorsActive", Default: "TitleBarTextNegativeClose"},
	{Name: "ButtonBackgroundColorsInactive", Default: "TitleBarTextNegativeClose"},
	{Name: "ButtonBackgroundOpacityActive", Default: "15"},
	{Name: "ButtonSpacingLeft", Default: "7"},
	{Name: "ButtonSpacingRight", Default: "7"},
	{Name: "TitleAlignment", Default: "AlignCenterFullWidth"},
	{Name: "TitleBarTopMargin", Default: "1.5"},
	{Name: "TitleBarBottomMargin", Default: "1.5"},
	{Name: "TitleBarLeftMargin", Default: "1"},
	{Name: "TitleBarRightMargin", Default: "1"},
	{Name: "ActiveTitleBarOpacity", Default: "100"},
	{Name: "InactiveTitleBarOpacity", Default: "100"},
	{Name: "DrawBackgroundGradient", Default: "false"},
	{Name: "DrawBorderOnMaximizedWindows", Default: "false"},
	{Name: "WindowCornerRadius", Default: "3"},
	{Name: "ShadowSize", Default: "ShadowLarge"},
	{Name: "ShadowStrength", Default: "255"},
	{Name: "ShadowColor", Default: "0,0,0"},
	{Name: "ThinWindowOutlineStyleActive", Default: "WindowOutlineContrast"},
	{Name: "ThinWindowOutlineThickness", Default: "1"},
	{Name: "ColorizeThinWindowOutlineWithButton", Default: "true"},
	{Name: "AnimationsEnabled", Default: "true"},
	{Name: "AnimationsSpeedRelativeSystem", Default: "0"},
}

var known = func() map[string]string {
	m := make(map[string]string, len(Schema))
	for _, k := range Schema {
		m[k.Name] = k.Default
	}
	return m
}()

// IsKnownKey reports whether key belongs to the schema
func IsKnownKey(key string) bool {
	_, ok := known[key]
	return ok
}

// Settings is the in-memory copy of the current decoration configuration
type Settings struct {
	values map[string]string
}

// New returns settings holding the schema defaults
func New() *Settings {
	return &Settings{values: maps.Clone(known)}
}

// Load returns the defaults overlaid with the values persisted in s.
// Keys outside the schema are ignored.
func Load(s interfaces.ConfigStore) *Settings {
	settings := New()
	group, ok := s.Group(Group)
	if !ok {
		return settings
	}
	for key, value := range group {
		if IsKnownKey(key) {
			settings.values[key] = value
		}
	}
	return settings
}

// Get returns the value of key, or "" if unset
func (s *Settings) Get(key string) string {
	return s.values[key]
}

// Set overwrites a single value
func (s *Settings) Set(key, value string) {
	s.values[key] = value
}

// Keys returns the keys currently held, sorted
func (s *Settings) Keys() []string {
	return slices.Sorted(maps.Keys(s.values))
}

// Snapshot returns a copy of all values
func (s *Settings) Snapshot() map[string]string {
	return maps.Clone(s.values)
}

// Save writes every value into the settings group and syncs the store.
// Keys already in the group that the settings do not hold are preserved.
func (s *Settings) Save(st interfaces.ConfigStore) error {
	group, ok := st.Group(Group)
	if !ok {
		group = make(map[string]string, len(s.values))
	}
	maps.Copy(group, s.values)
	st.SetGroup(Group, group)

	if err := st.Sync(); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
