package orchestrator

import (
	"errors"
	"fmt"
)

// reportf writes one user-facing line
func (o *Orchestrator) reportf(format string, args ...any) {
	fmt.Fprintf(o.out, format+"\n", args...)
}

// reportError writes the user-facing form of err and logs its cause
func (o *Orchestrator) reportError(err error) {
	var settingsErr *SettingsError
	if !errors.As(err, &settingsErr) {
		o.reportf("ERROR: %s", err)
		return
	}

	o.reportf("ERROR: %s", settingsErr.Message)
	if settingsErr.Guidance != "" {
		o.reportf("%s", settingsErr.Guidance)
	}
	if settingsErr.Cause != nil {
		o.logger.Debug("intent failed", "type", settingsErr.Type, "cause", settingsErr.Cause)
	}
}
