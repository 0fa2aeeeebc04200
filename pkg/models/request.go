package models

// Request holds the command intents of one invocation. Any combination may be set.
type Request struct {
	ConfigPath    string
	LogLevel      string
	ImportPath    string
	ForceImport   bool
	LoadPreset    string
	GenerateIcons bool
}

// HasCommand reports whether at least one command intent was requested
func (r *Request) HasCommand() bool {
	return r.ImportPath != "" || r.LoadPreset != "" || r.GenerateIcons
}
