package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v0xg/featuregen/internal/markup"
	"github.com/v0xg/featuregen/internal/scenario"
)

const loginHTML = `<html><body>
<h1 id="title">Sign in</h1>
<form action="/login" method="post">
  <input type="email" name="email" required>
  <input type="password" name="password">
  <button type="submit" class="btn primary">Sign in</button>
</form>
<a href="/help">Help</a>
</body></html>`

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func site(t *testing.T) string {
	t.Helper()
	t.Setenv("FEATUREGEN_AI_ENABLED", "false")
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "login.html"), []byte(loginHTML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"dependencies":{"react":"^18.0.0"}}`), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "node_modules", "x"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "node_modules", "x", "index.html"), []byte("<form></form>"), 0o644))
	return dir
}

func TestGenerateRuleBased(t *testing.T) {
	dir := site(t)

	out, progress, err := run(t, "generate", dir, "--no-ai")
	require.NoError(t, err)

	// package.json is a signature file for every JS framework and .html
	// files count towards Django, so the directory detector reports several.
	feature, _, _ := strings.Cut(out, "\n")
	assert.True(t, strings.HasPrefix(feature, "Feature: "), feature)
	assert.Contains(t, feature, "HTML")
	assert.Contains(t, feature, "React")
	assert.True(t, strings.HasSuffix(feature, " Application Testing"), feature)
	assert.Contains(t, out, "  Scenario: User Authentication with Valid Credentials\n")
	assert.Contains(t, out, "  Scenario: Page Load and Basic Functionality\n")
	assert.Contains(t, out, "#   Files analyzed: 1\n")
	assert.Contains(t, progress, "→ Synthesizing scenarios... done (2 scenarios, rule-based)")
}

func TestGenerateJSONToFile(t *testing.T) {
	dir := site(t)
	dest := filepath.Join(t.TempDir(), "out.json")

	_, progress, err := run(t, "generate", filepath.Join(dir, "login.html"), "--format", "json", "-o", dest)
	require.NoError(t, err)
	assert.Contains(t, progress, "✓ Saved to "+dest)

	raw, err := os.ReadFile(dest)
	require.NoError(t, err)
	var res scenario.Result
	require.NoError(t, json.Unmarshal(raw, &res))
	assert.Equal(t, scenario.MethodRuleBased, res.Method)
	assert.Equal(t, 2, res.ScenarioCount)
	assert.Equal(t, 1, res.Summary.TotalForms)
	assert.True(t, res.Summary.HasAuthenticationFlow)
}

func TestAnalyzeJSON(t *testing.T) {
	dir := site(t)

	out, _, err := run(t, "analyze", dir, "--format", "json")
	require.NoError(t, err)

	var catalogs []markup.Catalog
	require.NoError(t, json.Unmarshal([]byte(out), &catalogs))
	require.Len(t, catalogs, 1)
	assert.Equal(t, filepath.Join(dir, "login.html"), catalogs[0].FilePath)
	assert.Equal(t, 2, catalogs[0].Summary.TotalInputs)
	assert.Equal(t, []string{"email", "password"}, catalogs[0].Elements.Names)
}

func TestDetectJSON(t *testing.T) {
	dir := site(t)

	out, _, err := run(t, "detect", dir, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"React"`)
}

func TestInspectPicksAnalyzer(t *testing.T) {
	dir := site(t)

	out, _, err := run(t, "inspect", filepath.Join(dir, "login.html"))
	require.NoError(t, err)
	assert.Contains(t, out, `"xpaths"`)

	out, _, err = run(t, "inspect", filepath.Join(dir, "package.json"), "--analyzer", "framework")
	require.NoError(t, err)
	assert.Contains(t, out, `"frameworks_detected"`)

	_, _, err = run(t, "inspect", filepath.Join(dir, "login.html"), "--analyzer", "nope")
	assert.Error(t, err)
}

func TestArgumentErrors(t *testing.T) {
	dir := site(t)

	_, _, err := run(t, "generate")
	assert.Error(t, err)

	_, _, err = run(t, "generate", dir, "--url", "http://example.com")
	assert.Error(t, err)

	_, _, err = run(t, "generate", dir, "--verify")
	assert.Error(t, err)

	_, _, err = run(t, "generate", dir, "--format", "yaml")
	assert.Error(t, err)

	_, _, err = run(t, "generate", t.TempDir())
	assert.Error(t, err)
}
