package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/v0xg/featuregen/internal/config"
	"github.com/v0xg/featuregen/internal/core"
	"github.com/v0xg/featuregen/internal/framework"
	"github.com/v0xg/featuregen/internal/markup"
)

func newInspectCmd() *cobra.Command {
	var analyzerName string

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Run a single analyzer on one file and print its raw result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			registry, err := newRegistry(cfg, logger)
			if err != nil {
				return err
			}

			path := args[0]
			var a core.Analyzer
			if analyzerName != "" {
				var ok bool
				if a, ok = registry.Get(analyzerName); !ok {
					return fmt.Errorf("unknown analyzer %q (registered: %v)", analyzerName, registry.Names())
				}
			} else {
				candidates := registry.For(path)
				if len(candidates) == 0 {
					return fmt.Errorf("no analyzer accepts %s", path)
				}
				a = candidates[0]
			}

			var result any
			switch a := a.(type) {
			case *markup.Analyzer:
				result = a.Analyze(path)
			case *framework.Detector:
				result = a.Analyze(path)
			default:
				return fmt.Errorf("analyzer %q cannot be inspected", a.Name())
			}

			out, err := toJSON(result)
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), cmd.ErrOrStderr(), "", out)
		},
	}

	cmd.Flags().StringVar(&analyzerName, "analyzer", "", "Analyzer to use: html, framework (default: first that accepts the file)")
	return cmd
}

func newRegistry(cfg *config.Config, logger *slog.Logger) (*core.Registry, error) {
	r := core.NewRegistry()
	analyzers := []core.Analyzer{
		markup.NewAnalyzer(
			markup.WithMaxContentScan(cfg.MaxFileSize),
			markup.WithLogger(logger),
		),
		framework.NewDetector(
			framework.WithSkipDirs(cfg.SkipDirs),
			framework.WithMaxContentScan(cfg.MaxFileSize),
			framework.WithLogger(logger),
		),
	}
	for _, a := range analyzers {
		if err := r.Register(a); err != nil {
			return nil, err
		}
	}
	return r, nil
}
