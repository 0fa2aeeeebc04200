package preset

import (
	"silver-settings/internal/settings"
)

// Apply overlays the preset's values onto live. Keys the preset does not
// mention keep their current value.
func Apply(p *Preset, live *settings.Settings) {
	for key, value := range p.Values {
		live.Set(key, value)
	}
}
