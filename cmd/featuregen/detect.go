package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/v0xg/featuregen/internal/framework"
)

func newDetectCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "detect <dir>",
		Short: "Identify the web frameworks used in a project directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, "summary", "json"); err != nil {
				return err
			}
			cfg, logger, err := setup(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			d := framework.NewDetector(
				framework.WithSkipDirs(cfg.SkipDirs),
				framework.WithMaxContentScan(cfg.MaxFileSize),
				framework.WithLogger(logger),
			)
			res, err := d.DetectDir(args[0])
			if err != nil {
				return fmt.Errorf("detection failed: %w", err)
			}

			if format == "json" {
				out, err := toJSON(res)
				if err != nil {
					return err
				}
				return emit(cmd.OutOrStdout(), cmd.ErrOrStderr(), "", out)
			}
			return emit(cmd.OutOrStdout(), cmd.ErrOrStderr(), "", describeDetection(res))
		},
	}

	cmd.Flags().StringVar(&format, "format", "summary", "Output format: summary, json")
	return cmd
}

func describeDetection(res *framework.Result) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(res.Path) + "\n")
	row(&b, "files scanned", res.FilesScanned)
	if len(res.FrameworksDetected) == 0 {
		row(&b, "frameworks", warnStyle.Render("none detected"))
		return b.String()
	}
	for _, name := range res.FrameworksDetected {
		row(&b, name, fmt.Sprintf("%.0f%% confidence", res.Confidence[name]*100))
		for _, ev := range res.Evidence[name] {
			fmt.Fprintf(&b, "  %s  %s\n", labelStyle.Render(""), ev.String())
		}
	}
	return b.String()
}
