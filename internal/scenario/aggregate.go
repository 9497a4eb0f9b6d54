package scenario

import (
	"fmt"
	"slices"
	"strings"

	"github.com/v0xg/featuregen/internal/markup"
)

// authKeywords flag a form as part of a login flow when any of them appears
// in one of its inputs' attributes.
var authKeywords = []string{"login", "password", "username", "email", "signin", "auth"}

// CombinedView is the union of a batch of catalogs.
type CombinedView struct {
	Frameworks []string        `json:"frameworks"`
	Files      []string        `json:"files_analyzed"`
	Failed     []string        `json:"files_failed,omitempty"`
	Elements   markup.Elements `json:"all_elements"`

	HasForms          bool `json:"has_forms"`
	HasNavigation     bool `json:"has_navigation"`
	HasAuthentication bool `json:"has_authentication"`
}

// Summary is the count block carried into results and rendered metadata.
type Summary struct {
	markup.Summary
	FrameworksDetected    []string `json:"frameworks_detected"`
	TotalFiles            int      `json:"total_files"`
	HasAuthenticationFlow bool     `json:"has_authentication_flow"`
}

// Combine merges catalogs in order. IDs and classes are unioned in
// first-seen order; every other kind is concatenated. Catalogs that failed
// to load contribute only their path to Failed. A loaded catalog without a
// path, such as one built straight from markup.Extract, is still counted
// under a positional placeholder. extraFrameworks (typically
// from a directory scan) join the catalogs' own framework labels.
func Combine(catalogs []*markup.Catalog, extraFrameworks ...string) *CombinedView {
	view := &CombinedView{}
	frameworks := make(map[string]struct{})
	seenIDs := make(map[string]struct{})
	seenClasses := make(map[string]struct{})

	for _, name := range extraFrameworks {
		if name != "" {
			frameworks[name] = struct{}{}
		}
	}

	for i, c := range catalogs {
		if c == nil {
			continue
		}
		if c.Failed() {
			view.Failed = append(view.Failed, c.FilePath)
			continue
		}
		if c.Framework != "" {
			frameworks[c.Framework] = struct{}{}
		}
		path := c.FilePath
		if path == "" {
			path = fmt.Sprintf("<document %d>", i+1)
		}
		view.Files = append(view.Files, path)

		e := c.Elements
		view.Elements.IDs = union(view.Elements.IDs, seenIDs, e.IDs)
		view.Elements.Classes = union(view.Elements.Classes, seenClasses, e.Classes)
		view.Elements.Names = append(view.Elements.Names, e.Names...)
		view.Elements.DataAttributes = append(view.Elements.DataAttributes, e.DataAttributes...)
		view.Elements.Forms = append(view.Elements.Forms, e.Forms...)
		view.Elements.Inputs = append(view.Elements.Inputs, e.Inputs...)
		view.Elements.Buttons = append(view.Elements.Buttons, e.Buttons...)
		view.Elements.Links = append(view.Elements.Links, e.Links...)
		view.Elements.Headings = append(view.Elements.Headings, e.Headings...)
		view.Elements.Images = append(view.Elements.Images, e.Images...)
		view.Elements.Tables = append(view.Elements.Tables, e.Tables...)

		if len(e.Forms) > 0 {
			view.HasForms = true
		}
		if len(e.Links) > 0 {
			view.HasNavigation = true
		}
		if !view.HasAuthentication && hasAuthForm(e.Forms) {
			view.HasAuthentication = true
		}
	}

	for name := range frameworks {
		view.Frameworks = append(view.Frameworks, name)
	}
	slices.Sort(view.Frameworks)
	return view
}

// Summary counts the combined elements.
func (v *CombinedView) Summary() Summary {
	return Summary{
		Summary:               markup.Summarize(v.Elements),
		FrameworksDetected:    slices.Clone(v.Frameworks),
		TotalFiles:            len(v.Files),
		HasAuthenticationFlow: v.HasAuthentication,
	}
}

func union(dst []string, seen map[string]struct{}, src []string) []string {
	for _, s := range src {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		dst = append(dst, s)
	}
	return dst
}

func hasAuthForm(forms []markup.Form) bool {
	for _, f := range forms {
		for _, in := range f.Inputs {
			if isAuthInput(in) {
				return true
			}
		}
	}
	return false
}

func isAuthInput(in markup.Input) bool {
	attrs := strings.ToLower(strings.Join([]string{in.Type, in.Name, in.ID, in.Placeholder, in.Value}, " "))
	for _, kw := range authKeywords {
		if strings.Contains(attrs, kw) {
			return true
		}
	}
	return false
}
