package scenario

import (
	"fmt"
	"strings"
	"time"
)

const defaultFeatureName = "Web Application Testing"

// FeatureName titles the document after the detected frameworks.
func FeatureName(frameworks []string) string {
	if len(frameworks) == 0 {
		return defaultFeatureName
	}
	return strings.Join(frameworks, ", ") + " Application Testing"
}

// Metadata is rendered as the trailing comment block.
type Metadata struct {
	Method      Method
	Model       string
	Summary     Summary
	GeneratedAt time.Time
}

// Render writes a Gherkin feature document.
func Render(name string, scenarios []Scenario, meta Metadata) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Feature: %s\n", name)
	b.WriteString("  As a quality assurance engineer\n")
	b.WriteString("  I want to test all aspects of the web application\n")
	b.WriteString("  So that I can ensure quality and reliability\n")
	b.WriteString("\n")

	b.WriteString("  Background:\n")
	b.WriteString("    Given the web application is running and accessible\n")
	b.WriteString("    And I have a clean browser session\n")
	b.WriteString("\n")

	for _, s := range scenarios {
		if len(s.Tags) > 0 {
			fmt.Fprintf(&b, "  %s\n", strings.Join(s.Tags, " "))
		}
		fmt.Fprintf(&b, "  Scenario: %s\n", s.Title)
		for _, step := range s.Steps {
			fmt.Fprintf(&b, "    %s\n", step)
		}
		b.WriteString("\n")
	}

	sum := meta.Summary
	fmt.Fprintf(&b, "# Generated by featuregen (%s)\n", meta.Method)
	if meta.Method == MethodGenerative && meta.Model != "" {
		fmt.Fprintf(&b, "# AI Model: %s\n", meta.Model)
	}
	b.WriteString("# Analysis Summary:\n")
	fmt.Fprintf(&b, "#   Files analyzed: %d\n", sum.TotalFiles)
	fmt.Fprintf(&b, "#   Forms found: %d\n", sum.TotalForms)
	fmt.Fprintf(&b, "#   Buttons found: %d\n", sum.TotalButtons)
	fmt.Fprintf(&b, "#   Links found: %d\n", sum.TotalLinks)
	fmt.Fprintf(&b, "#   Authentication flow: %t\n", sum.HasAuthenticationFlow)
	fmt.Fprintf(&b, "#   Generated at: %s", meta.GeneratedAt.Format(time.DateTime))

	return b.String()
}
