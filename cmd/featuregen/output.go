package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4A9EFF"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Width(22)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECB71"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD93D"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
)

func row(w io.Writer, label string, value any) {
	fmt.Fprintf(w, "  %s%v\n", labelStyle.Render(label), value)
}

func yesNo(ok bool, yes, no string) string {
	if ok {
		return okStyle.Render(yes)
	}
	return warnStyle.Render(no)
}

// emit writes content to path, or to stdout when path is empty.
func emit(stdout, progress io.Writer, path, content string) error {
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if path == "" {
		_, err := io.WriteString(stdout, content)
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(progress, "✓ Saved to %s (%.1f KB)\n", path, float64(len(content))/1024)
	return nil
}

func toJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func checkFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return fmt.Errorf("unknown format %q (supported: %s)", format, strings.Join(allowed, ", "))
}
