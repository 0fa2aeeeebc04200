package preset

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"silver-settings/internal/settings"
	"silver-settings/internal/store"
)

// Validate checks a raw preset file and returns the preset it describes.
// Checks run in a fixed order and the first failure is returned:
// global group, version, content group, keys. force suppresses the version check.
func Validate(raw []byte, appVersion string, force bool) (*Preset, error) {
	doc, global, err := parseGlobal(raw)
	if err != nil {
		return nil, err
	}

	if !force {
		if err := checkVersion(global, appVersion); err != nil {
			return nil, err
		}
	}

	groupName, content, err := resolveGroup(doc, global)
	if err != nil {
		return nil, err
	}

	values, err := checkKeys(content)
	if err != nil {
		return nil, err
	}

	return &Preset{
		Name:   displayName(global, groupName),
		Values: values,
	}, nil
}

func parseGlobal(raw []byte) (map[string]any, map[string]any, error) {
	var doc map[string]any
	if err := toml.Unmarshal(raw, &doc); err != nil {
		return nil, nil, &ValidationError{Verdict: InvalidGlobalGroup, Err: err}
	}

	global, ok := doc[GlobalGroup].(map[string]any)
	if !ok {
		return nil, nil, &ValidationError{
			Verdict: InvalidGlobalGroup,
			Err:     fmt.Errorf("missing group %q", GlobalGroup),
		}
	}
	return doc, global, nil
}

// checkVersion treats an absent version tag as matching (legacy files)
func checkVersion(global map[string]any, appVersion string) error {
	raw, ok := global[versionKey]
	if !ok {
		return nil
	}
	found, ok := store.FormatValue(raw)
	if !ok || found != appVersion {
		return &ValidationError{Verdict: InvalidVersion, Version: fmt.Sprint(raw)}
	}
	return nil
}

// resolveGroup follows the global group's identifier key to the content group
func resolveGroup(doc, global map[string]any) (string, map[string]any, error) {
	groupName, ok := global[groupKey].(string)
	if !ok {
		return "", nil, &ValidationError{
			Verdict: InvalidGroup,
			Err:     fmt.Errorf("global group has no %q key", groupKey),
		}
	}
	if !strings.HasPrefix(groupName, GroupPrefix) || len(groupName) == len(GroupPrefix) {
		return "", nil, &ValidationError{
			Verdict: InvalidGroup,
			Err:     fmt.Errorf("%q is not a preset group", groupName),
		}
	}

	content, ok := doc[groupName].(map[string]any)
	if !ok {
		return "", nil, &ValidationError{
			Verdict: InvalidGroup,
			Err:     fmt.Errorf("group %q not found", groupName),
		}
	}
	return groupName, content, nil
}

// checkKeys walks the content group in sorted key order and rejects the
// first key outside the settings schema or holding a non-scalar value.
func checkKeys(content map[string]any) (map[string]string, error) {
	values := make(map[string]string, len(content))
	for _, key := range slices.Sorted(maps.Keys(content)) {
		if !settings.IsKnownKey(key) {
			return nil, &ValidationError{Verdict: InvalidKey, Key: key}
		}
		value, ok := store.FormatValue(content[key])
		if !ok {
			return nil, &ValidationError{Verdict: InvalidKey, Key: key}
		}
		values[key] = value
	}
	return values, nil
}

func displayName(global map[string]any, groupName string) string {
	if name, ok := global[nameKey].(string); ok {
		if name = strings.TrimSpace(name); name != "" {
			return name
		}
	}
	return strings.TrimPrefix(groupName, GroupPrefix)
}
