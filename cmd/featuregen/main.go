package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/v0xg/featuregen/internal/config"
	"github.com/v0xg/featuregen/internal/logging"
)

var (
	verbose    bool
	configFile string
)

func main() {
	// Load .env file if present (silently ignore if not found)
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "featuregen",
		Short: "Generate Gherkin test scenarios from HTML pages",
		Long: `featuregen catalogs the testable elements of HTML pages (forms, inputs,
buttons, links, headings, images, tables), then writes a Gherkin feature file
for them. When a generative model is reachable it drafts the scenarios;
otherwise a fixed rule-based set is used.

Examples:
  featuregen analyze ./site
  featuregen generate ./site -o site.feature
  featuregen generate --url https://myapp.com --verify --snapshot page.png`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed progress")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML config file")

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newGenerateCmd(),
		newDetectCmd(),
		newInspectCmd(),
		newStatusCmd(),
	)
	return rootCmd
}

// setup loads configuration and builds the logger every subcommand uses.
// Log output goes to errOut so stdout stays clean for documents.
func setup(errOut io.Writer) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.Verbose = true
	}

	level := logging.LevelWarn
	if cfg.Verbose {
		level = logging.LevelDebug
	}
	return cfg, logging.Init(level, errOut), nil
}
