package scenario

import (
	"fmt"
	"strings"
)

const (
	maxPromptIDs     = 10
	maxPromptButtons = 5
	maxPromptForms   = 3
)

const scenarioPrompt = `You are a BDD testing expert. Generate realistic Gherkin scenarios for a web application based on this analysis:

ANALYSIS RESULTS:
%s

FRAMEWORKS DETECTED: %s

FILES ANALYZED: %d

SPECIFIC ELEMENTS FOUND:
- IDs: %s
- Button types: %s
- Form actions: %s

REQUIREMENTS:
1. Generate 6-8 realistic test scenarios
2. Focus on actual functionality found in the analysis
3. Include both positive and negative test cases
4. Use proper Gherkin format (Given/When/Then)
5. Add appropriate tags (@automation, @smoke, @ui, @form, @navigation, etc.)
6. Make scenarios specific to the detected elements

EXAMPLE FORMAT:
@automation @smoke
Scenario: Specific functionality test
  Given I am on the [specific page]
  When I [specific action with detected elements]
  Then I should [expected result]
  And [additional verification]

Generate comprehensive scenarios that would actually test the functionality represented by these HTML elements. Focus on user workflows that make sense for this application.

SCENARIOS:`

// BuildPrompt describes the view to a generative collaborator.
func BuildPrompt(view *CombinedView) string {
	e := view.Elements

	var found []string
	if n := len(e.Forms); n > 0 {
		found = append(found, fmt.Sprintf("- %d form(s) detected", n))
		if view.HasAuthentication {
			found = append(found, "- Authentication/login functionality detected")
		}
	}
	if n := len(e.Buttons); n > 0 {
		found = append(found, fmt.Sprintf("- %d interactive button(s)", n))
	}
	if n := len(e.Links); n > 0 {
		found = append(found, fmt.Sprintf("- %d navigation link(s)", n))
	}
	if n := len(e.Tables); n > 0 {
		found = append(found, fmt.Sprintf("- %d data table(s)", n))
	}
	if n := len(e.Images); n > 0 {
		found = append(found, fmt.Sprintf("- %d image(s)", n))
	}

	frameworks := strings.Join(view.Frameworks, ", ")
	if frameworks == "" {
		frameworks = "HTML/Generic Web"
	}

	buttonTypes := make([]string, 0, maxPromptButtons)
	for _, b := range head(e.Buttons, maxPromptButtons) {
		buttonTypes = append(buttonTypes, valueOr(b.Type, "button"))
	}
	actions := make([]string, 0, maxPromptForms)
	for _, f := range head(e.Forms, maxPromptForms) {
		actions = append(actions, valueOr(f.Action, "unknown"))
	}

	return fmt.Sprintf(scenarioPrompt,
		strings.Join(found, "\n"),
		frameworks,
		len(view.Files),
		strings.Join(head(e.IDs, maxPromptIDs), ", "),
		strings.Join(buttonTypes, ", "),
		strings.Join(actions, ", "),
	)
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
