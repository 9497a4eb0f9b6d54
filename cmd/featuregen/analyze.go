package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/v0xg/featuregen/internal/markup"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		format string
		output string
		url    string
	)

	cmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Catalog the testable elements of an HTML file or directory",
		Args:  cobra.RangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, "summary", "json"); err != nil {
				return err
			}
			target, err := targetArg(args, url)
			if err != nil {
				return err
			}

			cfg, logger, err := setup(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			b, err := collect(cmd.Context(), cmd.ErrOrStderr(), cfg, logger, target, url)
			if err != nil {
				return err
			}
			defer b.Close()

			var content string
			if format == "json" {
				content, err = toJSON(b.catalogs)
				if err != nil {
					return err
				}
			} else {
				content = summarize(b.catalogs, b.frameworks)
			}
			return emit(cmd.OutOrStdout(), cmd.ErrOrStderr(), output, content)
		},
	}

	cmd.Flags().StringVar(&format, "format", "summary", "Output format: summary, json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&url, "url", "", "Render and analyze a live page instead of a path")
	return cmd
}

func targetArg(args []string, url string) (string, error) {
	switch {
	case url != "" && len(args) > 0:
		return "", fmt.Errorf("give either a path or --url, not both")
	case url != "":
		return "", nil
	case len(args) == 0:
		return "", fmt.Errorf("a path or --url is required")
	}
	return args[0], nil
}

func summarize(catalogs []*markup.Catalog, frameworks []string) string {
	var b strings.Builder
	if len(frameworks) > 0 {
		fmt.Fprintf(&b, "%s %s\n\n", headerStyle.Render("Frameworks:"), strings.Join(frameworks, ", "))
	}
	for _, c := range catalogs {
		b.WriteString(headerStyle.Render(c.FilePath) + "\n")
		if c.Failed() {
			b.WriteString("  " + errStyle.Render("error: "+c.Error) + "\n\n")
			continue
		}
		for _, k := range markup.Kinds {
			row(&b, string(k), c.Summary.Count(k))
		}
		row(&b, "locators", len(c.Locators))
		if c.ContentScanSkipped {
			row(&b, "content scan", warnStyle.Render("skipped (file too large)"))
		}
		for _, ev := range c.Evidence {
			row(&b, "evidence", fmt.Sprintf("%s (%s)", ev.Framework, ev.String()))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
