package scenario

import "strings"

// Scenario is one titled, tagged sequence of Gherkin steps.
type Scenario struct {
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
	Steps []string `json:"steps"`
}

// ParserState is the response parser's position in the text.
type ParserState int

const (
	// StateSeeking is outside any scenario, waiting for a Scenario: line.
	StateSeeking ParserState = iota
	// StateInScenario collects steps for the open scenario.
	StateInScenario
)

func (s ParserState) String() string {
	switch s {
	case StateSeeking:
		return "seeking"
	case StateInScenario:
		return "in-scenario"
	}
	return "unknown"
}

var stepKeywords = []string{"Given", "When", "Then", "And", "But"}

// Parser turns loosely formatted model output into scenarios, one line at
// a time. A tag line always sets the tags for the next Scenario: line,
// even when it appears inside an open scenario.
type Parser struct {
	state   ParserState
	pending []string
	current *Scenario
	done    []Scenario
}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) State() ParserState { return p.state }

// PendingTags returns the tags waiting for the next scenario.
func (p *Parser) PendingTags() []string {
	return append([]string(nil), p.pending...)
}

// Feed applies one line of input and returns the resulting state.
func (p *Parser) Feed(line string) ParserState {
	line = strings.TrimSpace(line)
	if line == "" {
		return p.state
	}

	switch {
	case strings.HasPrefix(line, "@"):
		p.pending = parseTags(line)
	case strings.HasPrefix(line, "Scenario:"):
		p.flush()
		p.current = &Scenario{
			Title: strings.TrimSpace(strings.TrimPrefix(line, "Scenario:")),
			Tags:  p.pending,
			Steps: []string{},
		}
		p.pending = nil
		p.state = StateInScenario
	case p.state == StateInScenario && isStep(line):
		p.current.Steps = append(p.current.Steps, line)
	}
	return p.state
}

// Close flushes any open scenario and returns everything parsed so far.
func (p *Parser) Close() []Scenario {
	p.flush()
	p.state = StateSeeking
	return p.done
}

func (p *Parser) flush() {
	if p.current == nil {
		return
	}
	if p.current.Tags == nil {
		p.current.Tags = []string{}
	}
	p.done = append(p.done, *p.current)
	p.current = nil
}

// ParseResponse parses a whole response. It never fails; text without a
// Scenario: line yields no scenarios.
func ParseResponse(text string) []Scenario {
	p := NewParser()
	for _, line := range strings.Split(text, "\n") {
		p.Feed(line)
	}
	return p.Close()
}

func parseTags(line string) []string {
	fields := strings.Fields(line)
	tags := make([]string, 0, len(fields))
	for _, f := range fields {
		if !strings.HasPrefix(f, "@") {
			f = "@" + f
		}
		tags = append(tags, f)
	}
	return tags
}

func isStep(line string) bool {
	for _, kw := range stepKeywords {
		if strings.HasPrefix(line, kw) {
			return true
		}
	}
	return false
}
