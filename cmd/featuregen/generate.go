package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/v0xg/featuregen/internal/ai"
	"github.com/v0xg/featuregen/internal/config"
	"github.com/v0xg/featuregen/internal/scenario"
	"github.com/v0xg/featuregen/internal/snapshot"
)

func newGenerateCmd() *cobra.Command {
	var (
		noAI         bool
		format       string
		output       string
		providerName string
		model        string
		url          string
		verify       bool
		snapshotPath string
	)

	cmd := &cobra.Command{
		Use:   "generate [path]",
		Short: "Write a Gherkin feature file for an HTML file, directory or live page",
		Args:  cobra.RangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, "gherkin", "json"); err != nil {
				return err
			}
			target, err := targetArg(args, url)
			if err != nil {
				return err
			}
			if url == "" && (verify || snapshotPath != "") {
				return fmt.Errorf("--verify and --snapshot need --url")
			}

			cfg, logger, err := setup(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if providerName != "" {
				cfg.AI.Provider = providerName
			}
			if model != "" {
				cfg.AI.Model = model
			}

			ctx := cmd.Context()
			progress := cmd.ErrOrStderr()

			b, err := collect(ctx, progress, cfg, logger, target, url)
			if err != nil {
				return err
			}
			defer b.Close()

			var provider ai.Provider
			if cfg.AI.Enabled && !noAI {
				provider = newProvider(ctx, progress, cfg, logger)
			}

			synth := scenario.New(provider, scenario.WithLogger(logger))
			if !synth.CanGenerate(len(b.catalogs)) {
				return fmt.Errorf("nothing to generate from")
			}

			fmt.Fprintf(progress, "→ Synthesizing scenarios... ")
			res := synth.Synthesize(ctx, b.catalogs, scenario.Options{
				UseGenerative: provider != nil,
				Timeout:       cfg.AI.Timeout,
				ProbeTimeout:  cfg.AI.ProbeTimeout,
				Frameworks:    b.frameworks,
			})
			fmt.Fprintf(progress, "done (%d scenarios, %s)\n", res.ScenarioCount, res.Method)

			if verify {
				fmt.Fprintf(progress, "→ Verifying locators... ")
				report := b.browser.VerifyLocators(locators(b.catalogs))
				fmt.Fprintf(progress, "done (%d/%d resolve)\n", report.Resolved, report.Total)
				for _, missing := range report.Missing {
					logger.Info("locator did not resolve", "xpath", missing)
				}
			}

			if snapshotPath != "" {
				fmt.Fprintf(progress, "→ Writing snapshot... ")
				data, err := b.browser.Screenshot()
				if err != nil {
					fmt.Fprintln(progress, "failed")
					return err
				}
				size, err := snapshot.WriteThumbnail(data, snapshotPath, snapshot.Options{MaxWidth: snapshot.DefaultMaxWidth})
				if err != nil {
					fmt.Fprintln(progress, "failed")
					return fmt.Errorf("snapshot failed: %w", err)
				}
				fmt.Fprintf(progress, "done (%s, %.1f KB)\n", snapshotPath, float64(size)/1024)
			}

			content := res.Content
			if format == "json" {
				content, err = toJSON(res)
				if err != nil {
					return err
				}
			}
			return emit(cmd.OutOrStdout(), progress, output, content)
		},
	}

	cmd.Flags().BoolVar(&noAI, "no-ai", false, "Skip the generative model and use rule-based scenarios")
	cmd.Flags().StringVar(&format, "format", "gherkin", "Output format: gherkin, json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&providerName, "provider", "", "AI provider: ollama, claude, openai, gemini (default: from config)")
	cmd.Flags().StringVar(&model, "model", "", "Specific model override")
	cmd.Flags().StringVar(&url, "url", "", "Render and analyze a live page instead of a path")
	cmd.Flags().BoolVar(&verify, "verify", false, "Check generated locators against the rendered page (needs --url)")
	cmd.Flags().StringVar(&snapshotPath, "snapshot", "", "Write a PNG thumbnail of the rendered page (needs --url)")
	return cmd
}

// newProvider returns nil when the provider cannot be built; generation
// then falls back to rule-based scenarios instead of failing.
func newProvider(ctx context.Context, progress io.Writer, cfg *config.Config, logger *slog.Logger) ai.Provider {
	// The default model and base URL are Ollama's; hosted providers keep
	// their own unless one was configured explicitly.
	model, baseURL := cfg.AI.Model, cfg.AI.BaseURL
	if defaults := config.Default().AI; !isOllama(cfg.AI.Provider) {
		if model == defaults.Model {
			model = ""
		}
		if baseURL == defaults.BaseURL {
			baseURL = ""
		}
	}

	p, err := ai.NewProvider(ctx, ai.Options{
		Provider: cfg.AI.Provider,
		Model:    model,
		APIKey:   cfg.AI.APIKey,
		BaseURL:  baseURL,
		Timeout:  cfg.AI.Timeout,
	})
	if err != nil {
		fmt.Fprintf(progress, "⚠ %s unavailable, using rule-based scenarios\n", cfg.AI.Provider)
		logger.Warn("provider init failed", "provider", cfg.AI.Provider, "error", err)
		return nil
	}
	logger.Debug("provider ready", "provider", p.Name(), "model", p.Model())
	return p
}

func isOllama(name string) bool {
	return name == "" || strings.EqualFold(name, "ollama")
}
