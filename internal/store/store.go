package store

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/pelletier/go-toml/v2"
	"silver-settings/internal/interfaces"
)

// Store is a TOML file of named tables, each holding string key/value pairs.
// It implements interfaces.ConfigStore.
type Store struct {
	path   string
	groups map[string]map[string]string
}

// Open loads the store at path. A missing file yields an empty store;
// the file is only created on the first Sync.
func Open(path string) (*Store, error) {
	s := &Store{
		path:   path,
		groups: make(map[string]map[string]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read store %s: %w", path, err)
	}

	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse store %s: %w", path, err)
	}

	for name, raw := range doc {
		table, ok := raw.(map[string]any)
		if !ok {
			// top-level keys outside any group are not part of the store model
			continue
		}
		group := make(map[string]string, len(table))
		for key, value := range table {
			if str, ok := FormatValue(value); ok {
				group[key] = str
			}
		}
		s.groups[name] = group
	}

	return s, nil
}

// Opener adapts Open to interfaces.StoreOpener
func Opener(path string) (interfaces.ConfigStore, error) {
	return Open(path)
}

// Path returns the backing file of the store
func (s *Store) Path() string {
	return s.path
}

// GroupNames returns all group names in sorted order
func (s *Store) GroupNames() []string {
	return slices.Sorted(maps.Keys(s.groups))
}

// HasGroup reports whether the named group exists
func (s *Store) HasGroup(name string) bool {
	_, ok := s.groups[name]
	return ok
}

// Group returns a copy of the named group
func (s *Store) Group(name string) (map[string]string, bool) {
	group, ok := s.groups[name]
	if !ok {
		return nil, false
	}
	return maps.Clone(group), true
}

// SetGroup replaces the named group with a copy of values
func (s *Store) SetGroup(name string, values map[string]string) {
	group := maps.Clone(values)
	if group == nil {
		group = make(map[string]string)
	}
	s.groups[name] = group
}

// DeleteGroup removes the named group
func (s *Store) DeleteGroup(name string) {
	delete(s.groups, name)
}

// Sync atomically writes the store to disk: temp file, then rename over path.
func (s *Store) Sync() error {
	data, err := toml.Marshal(s.groups)
	if err != nil {
		return fmt.Errorf("failed to encode store %s: %w", s.path, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write store %s: %w", s.path, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace store %s: %w", s.path, err)
	}
	return nil
}

// FormatValue renders a scalar TOML value as the string form kept in a store.
// Tables and arrays are not scalars and report false.
func FormatValue(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case int:
		return strconv.Itoa(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return "", false
	}
}
