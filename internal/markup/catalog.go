package markup

import "github.com/v0xg/featuregen/internal/framework"

// FrameworkHTML is the framework label stamped on every analyzed document.
const FrameworkHTML = "HTML"

// Kind identifies one family of testable element.
type Kind string

const (
	KindID            Kind = "ids"
	KindClass         Kind = "classes"
	KindName          Kind = "names"
	KindDataAttribute Kind = "data_attributes"
	KindForm          Kind = "forms"
	KindInput         Kind = "inputs"
	KindButton        Kind = "buttons"
	KindLink          Kind = "links"
	KindHeading       Kind = "headings"
	KindImage         Kind = "images"
	KindTable         Kind = "tables"
)

// Kinds lists every element kind in catalog order.
var Kinds = []Kind{
	KindID, KindClass, KindName, KindDataAttribute, KindForm, KindInput,
	KindButton, KindLink, KindHeading, KindImage, KindTable,
}

// IsSet reports whether the kind is deduplicated as a set.
func (k Kind) IsSet() bool {
	return k == KindID || k == KindClass
}

type DataAttribute struct {
	Attribute string `json:"attribute"`
	Value     string `json:"value"`
}

// Form is a <form> element together with the inputs and buttons inside it.
type Form struct {
	FormID  string   `json:"form_id"`
	Action  string   `json:"action"`
	Method  string   `json:"method"`
	Inputs  []Input  `json:"inputs"`
	Buttons []Button `json:"buttons"`
}

type Input struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	ID          string `json:"id"`
	Placeholder string `json:"placeholder"`
	Value       string `json:"value"`
	Required    bool   `json:"required"`
}

// Button comes from either a <button> element or an <input> of type
// button, submit or reset.
type Button struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	ID    string `json:"id"`
	Class string `json:"class"`
}

type Link struct {
	Href   string `json:"href"`
	Text   string `json:"text"`
	ID     string `json:"id"`
	Class  string `json:"class"`
	Target string `json:"target"`
}

type Heading struct {
	Level string `json:"level"` // h1..h6
	Text  string `json:"text"`
	ID    string `json:"id"`
	Class string `json:"class"`
}

type Image struct {
	Src   string `json:"src"`
	Alt   string `json:"alt"`
	ID    string `json:"id"`
	Class string `json:"class"`
}

type Table struct {
	TableID string `json:"table_id"`
	ID      string `json:"id"`
	Class   string `json:"class"`
	Rows    int    `json:"rows"`
	Headers int    `json:"headers"`
}

// Elements holds every record found in one document. IDs and Classes are
// sets kept in first-seen order; everything else follows document order.
type Elements struct {
	IDs            []string        `json:"ids"`
	Classes        []string        `json:"classes"`
	Names          []string        `json:"names"`
	DataAttributes []DataAttribute `json:"data_attributes"`
	Forms          []Form          `json:"forms"`
	Inputs         []Input         `json:"inputs"`
	Buttons        []Button        `json:"buttons"`
	Links          []Link          `json:"links"`
	Headings       []Heading       `json:"headings"`
	Images         []Image         `json:"images"`
	Tables         []Table         `json:"tables"`
}

// Len returns the number of records of the given kind.
func (e Elements) Len(k Kind) int {
	switch k {
	case KindID:
		return len(e.IDs)
	case KindClass:
		return len(e.Classes)
	case KindName:
		return len(e.Names)
	case KindDataAttribute:
		return len(e.DataAttributes)
	case KindForm:
		return len(e.Forms)
	case KindInput:
		return len(e.Inputs)
	case KindButton:
		return len(e.Buttons)
	case KindLink:
		return len(e.Links)
	case KindHeading:
		return len(e.Headings)
	case KindImage:
		return len(e.Images)
	case KindTable:
		return len(e.Tables)
	}
	return 0
}

// Summary counts records per kind.
type Summary struct {
	TotalIDs            int `json:"total_ids"`
	TotalClasses        int `json:"total_classes"`
	TotalNames          int `json:"total_names"`
	TotalForms          int `json:"total_forms"`
	TotalInputs         int `json:"total_inputs"`
	TotalButtons        int `json:"total_buttons"`
	TotalLinks          int `json:"total_links"`
	TotalHeadings       int `json:"total_headings"`
	TotalImages         int `json:"total_images"`
	TotalTables         int `json:"total_tables"`
	TotalDataAttributes int `json:"total_data_attributes"`
}

// Summarize counts e.
func Summarize(e Elements) Summary {
	return Summary{
		TotalIDs:            len(e.IDs),
		TotalClasses:        len(e.Classes),
		TotalNames:          len(e.Names),
		TotalForms:          len(e.Forms),
		TotalInputs:         len(e.Inputs),
		TotalButtons:        len(e.Buttons),
		TotalLinks:          len(e.Links),
		TotalHeadings:       len(e.Headings),
		TotalImages:         len(e.Images),
		TotalTables:         len(e.Tables),
		TotalDataAttributes: len(e.DataAttributes),
	}
}

// Count returns the summary figure for k.
func (s Summary) Count(k Kind) int {
	switch k {
	case KindID:
		return s.TotalIDs
	case KindClass:
		return s.TotalClasses
	case KindName:
		return s.TotalNames
	case KindDataAttribute:
		return s.TotalDataAttributes
	case KindForm:
		return s.TotalForms
	case KindInput:
		return s.TotalInputs
	case KindButton:
		return s.TotalButtons
	case KindLink:
		return s.TotalLinks
	case KindHeading:
		return s.TotalHeadings
	case KindImage:
		return s.TotalImages
	case KindTable:
		return s.TotalTables
	}
	return 0
}

// Catalog is the element inventory of one document.
type Catalog struct {
	FilePath           string               `json:"file_path"`
	Framework          string               `json:"framework"`
	Encoding           string               `json:"encoding,omitempty"`
	Elements           Elements             `json:"elements"`
	Locators           []string             `json:"xpaths"`
	Summary            Summary              `json:"summary"`
	Evidence           []framework.Evidence `json:"content_evidence,omitempty"`
	ContentScanSkipped bool                 `json:"content_scan_skipped,omitempty"`
	Error              string               `json:"error,omitempty"`
}

// Failed reports whether the document could not be read or decoded.
func (c *Catalog) Failed() bool {
	return c.Error != ""
}
