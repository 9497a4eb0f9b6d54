package crawler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-rod/rod/lib/launcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocatorReportRatio(t *testing.T) {
	assert.Equal(t, 0.0, LocatorReport{}.Ratio())
	assert.Equal(t, 0.75, LocatorReport{Total: 4, Resolved: 3}.Ratio())
}

const loginPage = `<!DOCTYPE html>
<html><head><title>Sign in</title></head>
<body>
  <form id="login" action="/login" method="post">
    <input type="email" name="email">
    <button type="submit">Go</button>
  </form>
</body></html>`

func TestRender(t *testing.T) {
	if testing.Short() || !Available() {
		t.Skip("no local Chrome/Chromium")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(loginPage))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	rendered, b, err := Render(ctx, srv.URL, Options{Timeout: 20 * time.Second})
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, "Sign in", rendered.Title)
	assert.Contains(t, rendered.HTML, `action="/login"`)
	assert.False(t, rendered.IsSPA)

	report := b.VerifyLocators([]string{"//*[@id='login']", "//*[@id='nope']", "//form", "//*[@"})
	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 2, report.Resolved)
	assert.Equal(t, []string{"//*[@id='nope']", "//*[@"}, report.Missing)

	png, err := b.Screenshot()
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])
}

func TestBrowserClose_ZeroValue(t *testing.T) {
	assert.NotPanics(t, func() { (&Browser{}).Close() })
}

func TestBrowserClose_KillsUnconnectedChrome(t *testing.T) {
	if testing.Short() || !Available() {
		t.Skip("no local Chrome/Chromium")
	}

	path, _ := launcher.LookPath()
	l := launcher.New().Bin(path).Headless(true)
	_, err := l.Launch()
	require.NoError(t, err)
	require.NotZero(t, l.PID())

	// No CDP connection was ever made, so only the launcher can stop it.
	(&Browser{launcher: l}).Close()

	exited := make(chan struct{})
	go func() {
		l.Cleanup()
		close(exited)
	}()
	select {
	case <-exited:
	case <-time.After(15 * time.Second):
		t.Fatal("chrome still running after Close")
	}
}
