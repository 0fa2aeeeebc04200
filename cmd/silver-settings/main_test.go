package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"silver-settings/internal/version"
	"silver-settings/pkg/models"
)

func newFlagCommand() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Flags().String("config", "", "")
	cmd.Flags().String("log-level", "", "")
	cmd.Flags().String("import-preset", "", "")
	cmd.Flags().Bool("force-import-invalid-version", false, "")
	cmd.Flags().String("load-windeco-preset", "", "")
	cmd.Flags().Bool("generate-system-icons", false, "")
	return cmd
}

func TestBuildRequestFromFlags(t *testing.T) {
	tests := []struct {
		name     string
		flags    map[string]string
		expected models.Request
	}{
		{
			name:     "no flags",
			expected: models.Request{},
		},
		{
			name: "import with force",
			flags: map[string]string{
				"import-preset":                "/tmp/test.klpw",
				"force-import-invalid-version": "true",
			},
			expected: models.Request{ImportPath: "/tmp/test.klpw", ForceImport: true},
		},
		{
			name: "load and icons",
			flags: map[string]string{
				"load-windeco-preset":   "Silver Square",
				"generate-system-icons": "true",
			},
			expected: models.Request{LoadPreset: "Silver Square", GenerateIcons: true},
		},
		{
			name: "config and log level",
			flags: map[string]string{
				"config":    "/tmp/settings.toml",
				"log-level": "debug",
			},
			expected: models.Request{ConfigPath: "/tmp/settings.toml", LogLevel: "debug"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newFlagCommand()
			for flag, value := range tt.flags {
				if err := cmd.Flags().Set(flag, value); err != nil {
					t.Fatalf("Set(%s) failed: %v", flag, err)
				}
			}

			result, err := buildRequestFromFlags(cmd)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if *result != tt.expected {
				t.Errorf("buildRequestFromFlags() = %+v, expected %+v", *result, tt.expected)
			}
		})
	}
}

func TestBuildRequestFromFlags_GlobalFlagsOnly(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("config", "", "")
	cmd.Flags().String("log-level", "", "")
	if err := cmd.Flags().Set("config", "/tmp/settings.toml"); err != nil {
		t.Fatal(err)
	}

	result, err := buildRequestFromFlags(cmd)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.ConfigPath != "/tmp/settings.toml" || result.HasCommand() {
		t.Errorf("Unexpected request %+v", *result)
	}
}

func TestBuildRequestFromFlags_MissingGlobalFlag(t *testing.T) {
	if _, err := buildRequestFromFlags(&cobra.Command{}); err == nil {
		t.Error("Expected error when config flag is not defined")
	}
}

func TestRootCommand_Flags(t *testing.T) {
	shorthands := map[string]string{
		"import-preset":                "i",
		"force-import-invalid-version": "f",
		"load-windeco-preset":          "w",
		"generate-system-icons":        "g",
		"version":                      "v",
	}

	for name, short := range shorthands {
		flag := rootCmd.Flags().Lookup(name)
		if flag == nil {
			t.Errorf("Missing flag --%s", name)
			continue
		}
		if flag.Shorthand != short {
			t.Errorf("--%s shorthand = %q, want %q", name, flag.Shorthand, short)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	defer versionCmd.SetOut(nil)

	versionCmd.Run(versionCmd, nil)

	if !strings.Contains(out.String(), version.Long()) {
		t.Errorf("Version output %q missing %q", out.String(), version.Long())
	}
}
