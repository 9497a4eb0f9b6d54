package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponseSingleScenario(t *testing.T) {
	got := ParseResponse("@smoke @ui\nScenario: Login works\nGiven I am on login\nWhen I submit\nThen I see dashboard\n")

	require.Len(t, got, 1)
	assert.Equal(t, "Login works", got[0].Title)
	assert.Equal(t, []string{"@smoke", "@ui"}, got[0].Tags)
	assert.Equal(t, []string{"Given I am on login", "When I submit", "Then I see dashboard"}, got[0].Steps)
}

func TestParseResponseNoScenario(t *testing.T) {
	assert.Empty(t, ParseResponse("Here are some ideas:\nGiven nothing\n@smoke\n"))
	assert.Empty(t, ParseResponse(""))
}

func TestParseResponseTolerant(t *testing.T) {
	text := "SCENARIOS:\n" +
		"```gherkin\n" +
		"  @automation @form  \n" +
		"  Scenario:   Submit contact form  \n" +
		"    Given I am on the contact page\n" +
		"    Some commentary the model added\n" +
		"    When I fill in the form\n" +
		"\n" +
		"    But I leave email empty\n" +
		"    Then I see an error\n" +
		"Scenario: Untagged\n" +
		"  And it still parses\n" +
		"```\n"

	got := ParseResponse(text)
	require.Len(t, got, 2)

	assert.Equal(t, "Submit contact form", got[0].Title)
	assert.Equal(t, []string{"@automation", "@form"}, got[0].Tags)
	assert.Equal(t, []string{
		"Given I am on the contact page",
		"When I fill in the form",
		"But I leave email empty",
		"Then I see an error",
	}, got[0].Steps)

	assert.Equal(t, "Untagged", got[1].Title)
	assert.Empty(t, got[1].Tags)
	assert.Equal(t, []string{"And it still parses"}, got[1].Steps)
}

func TestParserPendingTagsCarryForward(t *testing.T) {
	p := NewParser()

	assert.Equal(t, StateSeeking, p.Feed("@first"))
	assert.Equal(t, StateSeeking, p.Feed("@second"))
	assert.Equal(t, []string{"@second"}, p.PendingTags())

	assert.Equal(t, StateInScenario, p.Feed("Scenario: One"))
	assert.Empty(t, p.PendingTags())
	p.Feed("Given a step")

	// A tag line inside a scenario is held for the next one.
	assert.Equal(t, StateInScenario, p.Feed("@next"))
	assert.Equal(t, []string{"@next"}, p.PendingTags())
	p.Feed("Then still the first scenario")

	p.Feed("Scenario: Two")
	got := p.Close()

	require.Len(t, got, 2)
	assert.Equal(t, []string{"@second"}, got[0].Tags)
	assert.Equal(t, []string{"Given a step", "Then still the first scenario"}, got[0].Steps)
	assert.Equal(t, []string{"@next"}, got[1].Tags)
	assert.Empty(t, got[1].Steps)
	assert.Equal(t, StateSeeking, p.State())
}

func TestParserIgnoresStepsWhileSeeking(t *testing.T) {
	p := NewParser()
	assert.Equal(t, StateSeeking, p.Feed("Given an orphan step"))
	assert.Empty(t, p.Close())
}

func TestParseTagsNormalizesPrefix(t *testing.T) {
	assert.Equal(t, []string{"@smoke", "@ui"}, parseTags("@smoke ui"))
}

func TestParserStateString(t *testing.T) {
	assert.Equal(t, "seeking", StateSeeking.String())
	assert.Equal(t, "in-scenario", StateInScenario.String())
}
