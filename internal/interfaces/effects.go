package interfaces

// Notifier signals a running compositor that configuration changed.
// Calls are best effort and never report failure to the caller.
type Notifier interface {
	// NotifyCacheStale asks the compositor to drop its decoration color cache
	NotifyCacheStale()

	// NotifyConfigReloaded asks the compositor to reload its configuration
	NotifyConfigReloaded()
}

// IconGenerator derives the light and dark system icons from a settings snapshot
type IconGenerator interface {
	Generate() error
}

// IconGeneratorFactory builds an IconGenerator from a snapshot of the live settings
type IconGeneratorFactory func(values map[string]string) IconGenerator
