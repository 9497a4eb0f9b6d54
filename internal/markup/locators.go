package markup

import "fmt"

const maxLocatorsPerKind = 5

var formLocators = []string{
	"//form",
	"//input[@type='submit']",
	"//input[@type='button']",
	"//button[@type='submit']",
}

var commonLocators = []string{
	"//a[contains(@href, 'login')]",
	"//a[contains(@href, 'logout')]",
	"//input[@type='email']",
	"//input[@type='password']",
	"//div[contains(@class, 'error')]",
	"//div[contains(@class, 'success')]",
	"//h1 | //h2 | //h3",
	"//table//tr",
	"//img[@alt]",
}

// Locators derives XPath suggestions: the first five ids and classes, the
// form locators when the document has forms, then the common library.
func Locators(e Elements) []string {
	var out []string
	for _, id := range head(e.IDs, maxLocatorsPerKind) {
		out = append(out, fmt.Sprintf("//*[@id='%s']", id))
	}
	for _, class := range head(e.Classes, maxLocatorsPerKind) {
		out = append(out, fmt.Sprintf("//*[@class='%s']", class))
	}
	if len(e.Forms) > 0 {
		out = append(out, formLocators...)
	}
	return append(out, commonLocators...)
}

func head(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
