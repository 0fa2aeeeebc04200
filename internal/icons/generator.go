// Package icons renders the light and dark system icons from the live settings.
package icons

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/charmbracelet/log"
	"silver-settings/internal/interfaces"
)

//go:embed templates/system-icon.svg.tmpl
var templateFS embed.FS

const templateName = "system-icon.svg.tmpl"

// Variant is one generated icon
type Variant struct {
	Name       string
	Foreground string
	Background string
}

// Variants are the icons written by Generate
var Variants = []Variant{
	{Name: "silver", Foreground: "#232629", Background: "#eff0f1"},
	{Name: "silver-dark", Foreground: "#eff0f1", Background: "#31363b"},
}

// iconData is what the icon template sees
type iconData struct {
	Name       string
	Foreground string
	Background string
	Settings   map[string]string
}

// Generator writes one SVG per variant into its output directory
type Generator struct {
	outputDir string
	values    map[string]string
	logger    *log.Logger
}

// NewGenerator creates a generator for a snapshot of the live settings
func NewGenerator(outputDir string, values map[string]string, logger *log.Logger) *Generator {
	return &Generator{
		outputDir: outputDir,
		values:    values,
		logger:    logger,
	}
}

// Factory returns an interfaces.IconGeneratorFactory writing into outputDir
func Factory(outputDir string, logger *log.Logger) interfaces.IconGeneratorFactory {
	return func(values map[string]string) interfaces.IconGenerator {
		return NewGenerator(outputDir, values, logger)
	}
}

// Generate renders every variant, writing <outputDir>/<name>.svg
func (g *Generator) Generate() error {
	tmpl, err := loadTemplate()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(g.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create icon directory %s: %w", g.outputDir, err)
	}

	for _, v := range Variants {
		path := filepath.Join(g.outputDir, v.Name+".svg")
		content, err := render(tmpl, iconData{
			Name:       v.Name,
			Foreground: v.Foreground,
			Background: v.Background,
			Settings:   g.values,
		})
		if err != nil {
			return fmt.Errorf("failed to render icon %s: %w", v.Name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write icon %s: %w", path, err)
		}
		g.logger.Debug("icon written", "path", path)
	}
	return nil
}

// loadTemplate parses the embedded icon template with the sprig helpers registered
func loadTemplate() (*template.Template, error) {
	content, err := templateFS.ReadFile("templates/" + templateName)
	if err != nil {
		return nil, fmt.Errorf("failed to read icon template: %w", err)
	}

	tmpl, err := template.New(templateName).Option("missingkey=zero").Funcs(sprig.TxtFuncMap()).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse icon template: %w", err)
	}
	return tmpl, nil
}

func render(tmpl *template.Template, data iconData) (string, error) {
	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
