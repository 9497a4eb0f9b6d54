package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/v0xg/featuregen/internal/crawler"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show configuration and whether the AI provider and browser are reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			registry, err := newRegistry(cfg, logger)
			if err != nil {
				return err
			}

			var b strings.Builder
			b.WriteString(headerStyle.Render("featuregen status") + "\n")
			row(&b, "config file", valueOr(configFile, "(defaults)"))
			row(&b, "analyzers", strings.Join(registry.Names(), ", "))
			row(&b, "max file size", fmt.Sprintf("%d bytes", cfg.MaxFileSize))
			row(&b, "max files", cfg.MaxFiles)
			row(&b, "skip dirs", strings.Join(cfg.SkipDirs, " "))
			row(&b, "ai enabled", yesNo(cfg.AI.Enabled, "yes", "no"))

			if cfg.AI.Enabled {
				ctx := cmd.Context()
				p := newProvider(ctx, cmd.ErrOrStderr(), cfg, logger)
				if p == nil {
					row(&b, "provider", errStyle.Render(cfg.AI.Provider+" (not configured)"))
				} else {
					probeCtx, cancel := context.WithTimeout(ctx, cfg.AI.ProbeTimeout)
					available := p.Available(probeCtx)
					cancel()
					row(&b, "provider", fmt.Sprintf("%s / %s", p.Name(), p.Model()))
					row(&b, "provider reachable", yesNo(available, "yes", "no, rule-based fallback"))
				}
			}
			row(&b, "browser (--url)", yesNo(crawler.Available(), "found", "not found"))

			return emit(cmd.OutOrStdout(), cmd.ErrOrStderr(), "", b.String())
		},
	}
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
