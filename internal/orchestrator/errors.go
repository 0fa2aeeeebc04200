package orchestrator

import (
	"errors"
	"fmt"

	"silver-settings/internal/preset"
)

// Error types for different categories of failures
var (
	ErrPresetImport     = errors.New("preset import error")
	ErrPresetNotFound   = errors.New("preset not found")
	ErrStoreUnavailable = errors.New("configuration store error")
)

// SettingsError is a failure of one command intent, with the message shown
// to the user and optional guidance
type SettingsError struct {
	Type     error
	Verdict  preset.Verdict
	Message  string
	Guidance string
	Cause    error
}

func (e *SettingsError) Error() string {
	if e.Guidance != "" {
		return fmt.Sprintf("%s: %s\n%s", e.Type, e.Message, e.Guidance)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *SettingsError) Unwrap() error {
	return e.Cause
}

// NewImportError converts a preset validation failure for the file at path
func NewImportError(path string, cause error) *SettingsError {
	verdict, _ := preset.VerdictOf(cause)
	err := &SettingsError{
		Type:    ErrPresetImport,
		Verdict: verdict,
		Cause:   cause,
	}

	switch verdict {
	case preset.InvalidVersion:
		err.Message = fmt.Sprintf("The file to import at \"%s\" was created for a different version of Silver.", path)
		err.Guidance = "To force import, use the --force-import-invalid-version option."
	case preset.InvalidGroup:
		err.Message = fmt.Sprintf("No preset group found in Silver Preset file at \"%s\".", path)
	case preset.InvalidKey:
		var verr *preset.ValidationError
		errors.As(cause, &verr)
		err.Message = fmt.Sprintf("Invalid key \"%s\" in Silver Preset file at \"%s\".", verr.Key, path)
	default:
		err.Message = fmt.Sprintf("Invalid Silver Preset file to import at \"%s\".", path)
	}
	return err
}

// NewPresetNotFoundError reports a load of a preset missing from the catalog
func NewPresetNotFoundError(name string) *SettingsError {
	return &SettingsError{
		Type:     ErrPresetNotFound,
		Message:  fmt.Sprintf("Preset, \"%s\" not found.", name),
		Guidance: "Import it first with --import-preset <preset filename>.",
	}
}

// NewStoreError reports a configuration store that could not be read or written
func NewStoreError(path string, cause error) *SettingsError {
	return &SettingsError{
		Type:     ErrStoreUnavailable,
		Message:  fmt.Sprintf("Unable to access configuration at \"%s\".", path),
		Guidance: "Check that the file is valid TOML and that you have read/write permission.",
		Cause:    cause,
	}
}
