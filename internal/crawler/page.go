package crawler

// Page is a rendered snapshot of a live URL.
type Page struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	HTML  string `json:"-"`
	IsSPA bool   `json:"isSPA"`
}

// LocatorReport says which generated locators match on a rendered page.
type LocatorReport struct {
	Total    int      `json:"total"`
	Resolved int      `json:"resolved"`
	Missing  []string `json:"missing,omitempty"`
}

// Ratio is the resolved fraction, or 0 for an empty report.
func (r LocatorReport) Ratio() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Resolved) / float64(r.Total)
}
