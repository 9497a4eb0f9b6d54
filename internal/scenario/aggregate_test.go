package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v0xg/featuregen/internal/markup"
)

func catalog(path, html string) *markup.Catalog {
	c := markup.Extract(html)
	c.FilePath = path
	c.Framework = markup.FrameworkHTML
	return c
}

func TestCombineLoginForm(t *testing.T) {
	c := catalog("login.html", `<form action="/login" method="POST"><input type="password" name="pwd"></form>`)

	require.Len(t, c.Elements.Forms, 1)
	assert.Equal(t, "POST", c.Elements.Forms[0].Method)
	assert.Equal(t, "/login", c.Elements.Forms[0].Action)
	require.Len(t, c.Elements.Inputs, 1)
	assert.Equal(t, markup.Input{Type: "password", Name: "pwd"}, c.Elements.Inputs[0])

	view := Combine([]*markup.Catalog{c})
	assert.True(t, view.HasAuthentication)
	assert.True(t, view.HasForms)
	assert.False(t, view.HasNavigation)
	assert.Equal(t, []string{"login.html"}, view.Files)
	assert.Equal(t, []string{markup.FrameworkHTML}, view.Frameworks)
}

func TestCombineCounts(t *testing.T) {
	a := catalog("a.html", `
		<div id="main" class="box wide"><a href="/x">X</a></div>
		<form><input name="q"><button>Go</button></form>
		<img src="a.png" alt="A">`)
	b := catalog("b.html", `
		<div id="main" class="box"><a href="/y">Y</a><a href="/z">Z</a></div>
		<span id="other" class="narrow"></span>
		<table><tr><th>h</th></tr></table>`)

	view := Combine([]*markup.Catalog{a, b})
	sum := view.Summary()

	for _, k := range markup.Kinds {
		total := a.Summary.Count(k) + b.Summary.Count(k)
		if k.IsSet() {
			assert.LessOrEqual(t, sum.Count(k), total, k)
			continue
		}
		assert.Equal(t, total, sum.Count(k), k)
	}

	assert.Equal(t, []string{"main", "other"}, view.Elements.IDs)
	assert.Equal(t, []string{"box", "wide", "narrow"}, view.Elements.Classes)
	assert.Equal(t, 2, sum.TotalFiles)
	assert.True(t, view.HasNavigation)
	assert.False(t, view.HasAuthentication)
}

func TestCombineDisjointSetsAddUp(t *testing.T) {
	a := catalog("a.html", `<p id="one" class="x"></p>`)
	b := catalog("b.html", `<p id="two" class="y"></p>`)

	sum := Combine([]*markup.Catalog{a, b}).Summary()
	assert.Equal(t, 2, sum.TotalIDs)
	assert.Equal(t, 2, sum.TotalClasses)
}

func TestCombineSkipsFailedCatalogs(t *testing.T) {
	good := catalog("good.html", `<a href="/">home</a>`)
	bad := &markup.Catalog{FilePath: "missing.html", Framework: markup.FrameworkHTML, Error: "no such file"}

	view := Combine([]*markup.Catalog{bad, nil, good})
	assert.Equal(t, []string{"good.html"}, view.Files)
	assert.Equal(t, []string{"missing.html"}, view.Failed)
	assert.Len(t, view.Elements.Links, 1)
}

func TestCombineCountsUnnamedCatalogs(t *testing.T) {
	named := catalog("a.html", `<p id="a"></p>`)
	inline := markup.Extract(`<button id="save">Save</button>`)
	require.Empty(t, inline.FilePath)

	view := Combine([]*markup.Catalog{named, inline})
	assert.Equal(t, []string{"a.html", "<document 2>"}, view.Files)
	assert.Equal(t, 2, view.Summary().TotalFiles)
	assert.Len(t, view.Elements.Buttons, 1)
}

func TestCombineFrameworks(t *testing.T) {
	view := Combine(nil, "React", "", "Django")
	assert.Equal(t, []string{"Django", "React"}, view.Frameworks)

	view = Combine([]*markup.Catalog{{FilePath: "x.html"}})
	assert.Empty(t, view.Frameworks)
}

func TestAuthenticationKeywords(t *testing.T) {
	tests := []struct {
		name  string
		input markup.Input
		want  bool
	}{
		{"email type", markup.Input{Type: "email"}, true},
		{"username name", markup.Input{Name: "UserName"}, true},
		{"signin id", markup.Input{ID: "signin-field"}, true},
		{"auth placeholder", markup.Input{Placeholder: "Auth code"}, true},
		{"login value", markup.Input{Value: "LOGIN"}, true},
		{"search", markup.Input{Type: "search", Name: "q"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isAuthInput(tt.input))
		})
	}
}

func TestAuthenticationIgnoresInputsOutsideForms(t *testing.T) {
	view := Combine([]*markup.Catalog{catalog("a.html", `<input type="password" name="pwd">`)})
	assert.False(t, view.HasAuthentication)
}
