package scenario

// TemplateKind names one rule-based scenario.
type TemplateKind string

const (
	TemplateAuthentication TemplateKind = "authentication"
	TemplatePageLoad       TemplateKind = "page_load"
)

// Template is a fixed scenario and the condition under which it applies.
type Template struct {
	Title                  string
	Tags                   []string
	Steps                  []string
	RequiresAuthentication bool
}

// templateOrder is the order fallback scenarios are emitted in.
var templateOrder = []TemplateKind{TemplateAuthentication, TemplatePageLoad}

var templates = map[TemplateKind]Template{
	TemplateAuthentication: {
		Title: "User Authentication with Valid Credentials",
		Tags:  []string{"@smoke", "@authentication", "@automation"},
		Steps: []string{
			"Given I am on the login page",
			"When I enter valid username and password",
			"And I click the login button",
			"Then I should be redirected to the dashboard",
			"And I should see a welcome message",
		},
		RequiresAuthentication: true,
	},
	TemplatePageLoad: {
		Title: "Page Load and Basic Functionality",
		Tags:  []string{"@smoke", "@ui", "@automation"},
		Steps: []string{
			"Given I navigate to the application",
			"When the page loads completely",
			"Then all elements should be displayed correctly",
			"And there should be no JavaScript errors",
		},
	},
}

// LookupTemplate returns a copy of the named template.
func LookupTemplate(kind TemplateKind) (Template, bool) {
	t, ok := templates[kind]
	if !ok {
		return Template{}, false
	}
	t.Tags = append([]string(nil), t.Tags...)
	t.Steps = append([]string(nil), t.Steps...)
	return t, true
}

// RuleBased returns the deterministic fallback set for a view.
func RuleBased(view *CombinedView) []Scenario {
	var out []Scenario
	for _, kind := range templateOrder {
		t, _ := LookupTemplate(kind)
		if t.RequiresAuthentication && !view.HasAuthentication {
			continue
		}
		out = append(out, Scenario{Title: t.Title, Tags: t.Tags, Steps: t.Steps})
	}
	return out
}
