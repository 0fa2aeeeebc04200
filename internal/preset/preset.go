// Package preset implements the window decoration preset catalog: validating
// preset files, importing them and the bundled presets into a catalog store,
// and applying a catalog entry onto the live settings.
//
// A preset file is a TOML document with a global group naming the content
// group that holds the settings:
//
//	["Silver Window Decoration Preset File"]
//	version = "6.4"
//	preset = "Windeco Preset Test"
//
//	["Windeco Preset Test"]
//	ButtonShape = "ShapeSmallSquare"
package preset

import (
	"errors"
	"fmt"
)

const (
	// GlobalGroup is the top-level group every preset file must carry
	GlobalGroup = "Silver Window Decoration Preset File"

	// GroupPrefix prefixes every content group, in files and in the catalog
	GroupPrefix = "Windeco Preset "

	versionKey = "version"
	groupKey   = "preset"
	nameKey    = "name"

	// bundledKey marks catalog entries installed from the bundled presets
	bundledKey = "BundledPreset"
)

// Preset is a named set of decoration settings
type Preset struct {
	Name    string
	Values  map[string]string
	Bundled bool
}

// Verdict is the outcome of validating a preset file
type Verdict int

const (
	VerdictOK Verdict = iota
	InvalidGlobalGroup
	InvalidVersion
	InvalidGroup
	InvalidKey
)

func (v Verdict) String() string {
	switch v {
	case VerdictOK:
		return "ok"
	case InvalidGlobalGroup:
		return "invalid global group"
	case InvalidVersion:
		return "invalid version"
	case InvalidGroup:
		return "invalid group"
	case InvalidKey:
		return "invalid key"
	default:
		return fmt.Sprintf("verdict(%d)", int(v))
	}
}

// ValidationError reports why a preset file was rejected.
// Exactly one verdict is reported per validation.
type ValidationError struct {
	Verdict Verdict
	// Key is the first unrecognised key, set for InvalidKey
	Key string
	// Version is the version tag found in the file, set for InvalidVersion
	Version string
	Err     error
}

func (e *ValidationError) Error() string {
	switch e.Verdict {
	case InvalidKey:
		return fmt.Sprintf("%s: %q", e.Verdict, e.Key)
	case InvalidVersion:
		return fmt.Sprintf("%s: %q", e.Verdict, e.Version)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Verdict, e.Err)
	}
	return e.Verdict.String()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// VerdictOf extracts the verdict carried by err. A nil error is VerdictOK;
// errors that are not validation errors report false.
func VerdictOf(err error) (Verdict, bool) {
	if err == nil {
		return VerdictOK, true
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Verdict, true
	}
	return VerdictOK, false
}
