package interfaces

// ConfigStore is a persistent store of named groups holding string key/value pairs.
// Mutations stay in memory until Sync is called.
type ConfigStore interface {
	// Path returns the backing file of the store
	Path() string

	// GroupNames returns all group names in sorted order
	GroupNames() []string

	// HasGroup reports whether the named group exists
	HasGroup(name string) bool

	// Group returns a copy of the key/value pairs of the named group
	Group(name string) (map[string]string, bool)

	// SetGroup replaces the named group with values
	SetGroup(name string, values map[string]string)

	// DeleteGroup removes the named group
	DeleteGroup(name string)

	// Sync writes the store to its backing file
	Sync() error
}

// StoreOpener opens the store backed by path
type StoreOpener func(path string) (ConfigStore, error)
