package interactive

import (
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"golang.org/x/term"
	"silver-settings/pkg/models"
)

const noneOption = "None"

// ErrCancelled is returned when the user aborts a prompt
var ErrCancelled = errors.New("selection cancelled")

type askFunc func(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error

// Picker asks which preset to apply when no command was given on the command line
type Picker struct {
	ask askFunc
}

// NewPicker creates a picker that prompts on the terminal
func NewPicker() *Picker {
	return &Picker{ask: survey.AskOne}
}

// IsTerminal reports whether stdin is attached to a terminal
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// CollectRequest builds a request from the user's choices. It returns nil
// when the user picks nothing to do.
func (p *Picker) CollectRequest(presets []string) (*models.Request, error) {
	request := &models.Request{}

	selected, err := p.selectPreset(presets)
	if err != nil {
		return nil, err
	}
	if selected != noneOption {
		// loading a preset regenerates the icons on its own
		request.LoadPreset = selected
		return request, nil
	}

	regenerate, err := p.selectYesNo(
		"Regenerate the system icons from the current settings?",
		"Icons are written as silver and silver-dark SVGs",
		false,
	)
	if err != nil {
		return nil, err
	}
	request.GenerateIcons = regenerate

	if !request.HasCommand() {
		return nil, nil
	}
	return request, nil
}

// selectPreset offers every preset followed by "None"
func (p *Picker) selectPreset(presets []string) (string, error) {
	options := append([]string{}, presets...)
	options = append(options, noneOption)

	prompt := &survey.Select{
		Message: "Select a window decoration preset to load:",
		Options: options,
		Help:    "The preset is applied to your decoration settings and the compositor is asked to reload",
	}

	var selected string
	if err := p.ask(prompt, &selected); err != nil {
		return "", wrapAskError(err)
	}
	return selected, nil
}

func (p *Picker) selectYesNo(message, help string, defaultValue bool) (bool, error) {
	prompt := &survey.Confirm{
		Message: message,
		Help:    help,
		Default: defaultValue,
	}

	var result bool
	if err := p.ask(prompt, &result); err != nil {
		return false, wrapAskError(err)
	}
	return result, nil
}

func wrapAskError(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrCancelled
	}
	return fmt.Errorf("prompt failed: %w", err)
}
