package markup

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/v0xg/featuregen/internal/framework"
)

// The scanners below are deliberately shallow: paired tags are matched
// non-greedily across newlines, void tags by their opening tag alone, and
// anything unbalanced simply does not match.
var (
	idPattern       = regexp.MustCompile(`(?i)id\s*=\s*["']([^"']+)["']`)
	classPattern    = regexp.MustCompile(`(?i)class\s*=\s*["']([^"']+)["']`)
	namePattern     = regexp.MustCompile(`(?i)name\s*=\s*["']([^"']+)["']`)
	dataAttrPattern = regexp.MustCompile(`(?i)(data-[\w-]+)\s*=\s*["']([^"']*)["']`)

	formPattern        = regexp.MustCompile(`(?is)<form\b([^>]*)>(.*?)</form>`)
	inputPattern       = regexp.MustCompile(`(?i)<input\b([^>]*)/?>`)
	buttonPattern      = regexp.MustCompile(`(?is)<button\b([^>]*)>(.*?)</button>`)
	inputButtonPattern = regexp.MustCompile(`(?i)<input\b([^>]*type\s*=\s*["'](?:button|submit|reset)["'][^>]*)/?>`)
	linkPattern        = regexp.MustCompile(`(?is)<a\b([^>]*)>(.*?)</a>`)
	imagePattern       = regexp.MustCompile(`(?i)<img\b([^>]*)/?>`)
	tablePattern       = regexp.MustCompile(`(?is)<table\b([^>]*)>(.*?)</table>`)
	rowPattern         = regexp.MustCompile(`(?i)<tr\b[^>]*>`)
	headerPattern      = regexp.MustCompile(`(?i)<th\b[^>]*>`)
	tagPattern         = regexp.MustCompile(`<[^>]+>`)

	headingPatterns = func() []*regexp.Regexp {
		out := make([]*regexp.Regexp, 6)
		for level := 1; level <= 6; level++ {
			out[level-1] = regexp.MustCompile(fmt.Sprintf(`(?is)<h%d\b([^>]*)>(.*?)</h%d>`, level, level))
		}
		return out
	}()

	attrPatterns = func() map[string]*regexp.Regexp {
		names := []string{"id", "class", "name", "href", "src", "alt", "action", "method", "type", "value", "placeholder", "target"}
		out := make(map[string]*regexp.Regexp, len(names))
		for _, name := range names {
			out[name] = attrRegexp(name)
		}
		return out
	}()
)

func attrRegexp(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + regexp.QuoteMeta(name) + `\s*=\s*["']([^"']*)["']`)
}

// attribute returns the first quoted value of name inside an attribute
// string, or "" when absent.
func attribute(attrs, name string) string {
	re, ok := attrPatterns[name]
	if !ok {
		re = attrRegexp(name)
	}
	m := re.FindStringSubmatch(attrs)
	if m == nil {
		return ""
	}
	return m[1]
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// stripTags removes nested markup from captured text.
func stripTags(s string) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(s, ""))
}

// Extract catalogs the testable elements of one document. It never fails;
// content above framework.MaxContentScanBytes skips the content scan only.
func Extract(content string) *Catalog {
	return extract(content, framework.MaxContentScanBytes)
}

func extract(content string, maxContentScan int64) *Catalog {
	elements := Elements{
		IDs:            extractIDs(content),
		Classes:        extractClasses(content),
		Names:          extractNames(content),
		DataAttributes: extractDataAttributes(content),
		Forms:          extractForms(content),
		Inputs:         extractInputs(content),
		Buttons:        extractButtons(content),
		Links:          extractLinks(content),
		Headings:       extractHeadings(content),
		Images:         extractImages(content),
		Tables:         extractTables(content),
	}

	c := &Catalog{
		Elements: elements,
		Locators: Locators(elements),
		Summary:  Summarize(elements),
	}
	if int64(len(content)) > maxContentScan {
		c.ContentScanSkipped = true
	} else {
		c.Evidence = framework.ScanContentLimit(content, maxContentScan)
	}
	return c
}

func extractIDs(content string) []string {
	var ids []string
	for _, m := range idPattern.FindAllStringSubmatch(content, -1) {
		ids = append(ids, m[1])
	}
	return uniqueOrdered(ids)
}

func extractClasses(content string) []string {
	var classes []string
	for _, m := range classPattern.FindAllStringSubmatch(content, -1) {
		classes = append(classes, strings.Fields(m[1])...)
	}
	return uniqueOrdered(classes)
}

func extractNames(content string) []string {
	matches := namePattern.FindAllStringSubmatch(content, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

func extractDataAttributes(content string) []DataAttribute {
	matches := dataAttrPattern.FindAllStringSubmatch(content, -1)
	attrs := make([]DataAttribute, 0, len(matches))
	for _, m := range matches {
		attrs = append(attrs, DataAttribute{Attribute: m[1], Value: m[2]})
	}
	return attrs
}

func extractForms(content string) []Form {
	matches := formPattern.FindAllStringSubmatch(content, -1)
	forms := make([]Form, 0, len(matches))
	for i, m := range matches {
		attrs, inner := m[1], m[2]
		forms = append(forms, Form{
			FormID:  fmt.Sprintf("form_%d", i),
			Action:  attribute(attrs, "action"),
			Method:  valueOr(attribute(attrs, "method"), "GET"),
			Inputs:  extractInputs(inner),
			Buttons: extractButtons(inner),
		})
	}
	return forms
}

func extractInputs(content string) []Input {
	matches := inputPattern.FindAllStringSubmatch(content, -1)
	inputs := make([]Input, 0, len(matches))
	for _, m := range matches {
		attrs := m[1]
		inputs = append(inputs, Input{
			Type:        valueOr(attribute(attrs, "type"), "text"),
			Name:        attribute(attrs, "name"),
			ID:          attribute(attrs, "id"),
			Placeholder: attribute(attrs, "placeholder"),
			Value:       attribute(attrs, "value"),
			// Presence test on the raw attribute text: data-required="false" counts too.
			Required: strings.Contains(strings.ToLower(attrs), "required"),
		})
	}
	return inputs
}

func extractButtons(content string) []Button {
	var buttons []Button
	for _, m := range buttonPattern.FindAllStringSubmatch(content, -1) {
		attrs := m[1]
		buttons = append(buttons, Button{
			Type:  valueOr(attribute(attrs, "type"), "button"),
			Text:  stripTags(m[2]),
			ID:    attribute(attrs, "id"),
			Class: attribute(attrs, "class"),
		})
	}
	for _, m := range inputButtonPattern.FindAllStringSubmatch(content, -1) {
		attrs := m[1]
		buttons = append(buttons, Button{
			Type:  attribute(attrs, "type"),
			Text:  attribute(attrs, "value"),
			ID:    attribute(attrs, "id"),
			Class: attribute(attrs, "class"),
		})
	}
	if buttons == nil {
		buttons = []Button{}
	}
	return buttons
}

func extractLinks(content string) []Link {
	matches := linkPattern.FindAllStringSubmatch(content, -1)
	links := make([]Link, 0, len(matches))
	for _, m := range matches {
		attrs := m[1]
		links = append(links, Link{
			Href:   attribute(attrs, "href"),
			Text:   stripTags(m[2]),
			ID:     attribute(attrs, "id"),
			Class:  attribute(attrs, "class"),
			Target: attribute(attrs, "target"),
		})
	}
	return links
}

// extractHeadings scans each level separately and then restores document
// order by match offset.
func extractHeadings(content string) []Heading {
	type positioned struct {
		offset  int
		heading Heading
	}
	var found []positioned
	for i, re := range headingPatterns {
		level := fmt.Sprintf("h%d", i+1)
		for _, idx := range re.FindAllStringSubmatchIndex(content, -1) {
			attrs := content[idx[2]:idx[3]]
			found = append(found, positioned{
				offset: idx[0],
				heading: Heading{
					Level: level,
					Text:  stripTags(content[idx[4]:idx[5]]),
					ID:    attribute(attrs, "id"),
					Class: attribute(attrs, "class"),
				},
			})
		}
	}
	slices.SortStableFunc(found, func(a, b positioned) int { return a.offset - b.offset })

	headings := make([]Heading, 0, len(found))
	for _, p := range found {
		headings = append(headings, p.heading)
	}
	return headings
}

func extractImages(content string) []Image {
	matches := imagePattern.FindAllStringSubmatch(content, -1)
	images := make([]Image, 0, len(matches))
	for _, m := range matches {
		attrs := m[1]
		images = append(images, Image{
			Src:   attribute(attrs, "src"),
			Alt:   attribute(attrs, "alt"),
			ID:    attribute(attrs, "id"),
			Class: attribute(attrs, "class"),
		})
	}
	return images
}

func extractTables(content string) []Table {
	matches := tablePattern.FindAllStringSubmatch(content, -1)
	tables := make([]Table, 0, len(matches))
	for i, m := range matches {
		attrs, inner := m[1], m[2]
		tables = append(tables, Table{
			TableID: fmt.Sprintf("table_%d", i),
			ID:      attribute(attrs, "id"),
			Class:   attribute(attrs, "class"),
			Rows:    len(rowPattern.FindAllStringIndex(inner, -1)),
			Headers: len(headerPattern.FindAllStringIndex(inner, -1)),
		})
	}
	return tables
}

// uniqueOrdered drops repeats while keeping first-seen order.
func uniqueOrdered(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
