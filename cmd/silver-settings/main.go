package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"silver-settings/internal/app"
	"silver-settings/internal/orchestrator"
	"silver-settings/internal/version"
	"silver-settings/pkg/models"
)

// errCommandFailed ends the process with a failure status; the reason was
// already printed by the command itself
var errCommandFailed = errors.New("command failed")

var rootCmd = &cobra.Command{
	Use:   "silver-settings",
	Short: "Import, load and apply Silver window decoration presets",
	Long: `silver-settings manages Silver window decoration presets from the command line.

Preset files can be imported into the preset catalog, a preset can be loaded into
the active decoration settings, and the silver and silver-dark system icons can be
regenerated. Options may be combined; they run in the order import, load, icons.

Run without options on a terminal to pick a preset interactively.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionFlag, _ := cmd.Flags().GetBool("version"); versionFlag {
			fmt.Fprintln(cmd.OutOrStdout(), version.Long())
			return nil
		}

		request, err := buildRequestFromFlags(cmd)
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}

		status, err := app.Run(request)
		if err != nil {
			return err
		}

		switch status {
		case orchestrator.StatusNoCommand:
			return cmd.Help()
		case orchestrator.StatusError:
			return errCommandFailed
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print detailed version information including the Silver version, go version and platform.",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "silver-settings version %s\n", version.Long())
		fmt.Fprintf(out, "  go version: %s\n", runtime.Version())
		fmt.Fprintf(out, "  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available presets",
	Long:  "List every preset in the preset catalog, including the bundled presets.",
	RunE: func(cmd *cobra.Command, args []string) error {
		request, err := buildRequestFromFlags(cmd)
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}
		return app.ListPresets(request, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(listCmd)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file path (default ~/.config/silver/settings.toml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error (overrides config)")

	// Main command flags
	rootCmd.Flags().StringP("import-preset", "i", "", "import a Silver Preset file (.klpw) into the preset catalog")
	rootCmd.Flags().BoolP("force-import-invalid-version", "f", false, "import a preset file even if it was made for a different version")
	rootCmd.Flags().StringP("load-windeco-preset", "w", "", "load the named preset into the window decoration settings")
	rootCmd.Flags().BoolP("generate-system-icons", "g", false, "generate the silver and silver-dark system icons")
	rootCmd.Flags().BoolP("version", "v", false, "print version information")
}

// buildRequestFromFlags constructs a Request from command flags. Flags the
// command does not define are left at their zero value.
func buildRequestFromFlags(cmd *cobra.Command) (*models.Request, error) {
	request := &models.Request{}
	flags := cmd.Flags()
	var err error

	if request.ConfigPath, err = flags.GetString("config"); err != nil {
		return nil, fmt.Errorf("invalid config flag: %w", err)
	}
	if request.LogLevel, err = flags.GetString("log-level"); err != nil {
		return nil, fmt.Errorf("invalid log-level flag: %w", err)
	}

	if flags.Lookup("import-preset") == nil {
		return request, nil
	}

	if request.ImportPath, err = flags.GetString("import-preset"); err != nil {
		return nil, fmt.Errorf("invalid import-preset flag: %w", err)
	}
	if request.ForceImport, err = flags.GetBool("force-import-invalid-version"); err != nil {
		return nil, fmt.Errorf("invalid force-import-invalid-version flag: %w", err)
	}
	if request.LoadPreset, err = flags.GetString("load-windeco-preset"); err != nil {
		return nil, fmt.Errorf("invalid load-windeco-preset flag: %w", err)
	}
	if request.GenerateIcons, err = flags.GetBool("generate-system-icons"); err != nil {
		return nil, fmt.Errorf("invalid generate-system-icons flag: %w", err)
	}

	return request, nil
}

func main() {
	// Disable usage on error to show only our custom error messages
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errCommandFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
