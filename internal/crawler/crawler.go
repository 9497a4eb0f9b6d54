package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Options configures the headless browser
type Options struct {
	Width      int
	Height     int
	Timeout    time.Duration // page load ceiling
	ProfileDir string        // Chrome/Chromium profile directory for authenticated sessions
	Logger     *slog.Logger
}

// Browser wraps the Rod browser and the page it rendered
type Browser struct {
	browser  *rod.Browser
	page     *rod.Page
	launcher *launcher.Launcher
	logger   *slog.Logger
}

// Close cleans up browser resources
func (b *Browser) Close() {
	if b.page != nil {
		_ = b.page.Close()
	}
	if b.browser != nil {
		_ = b.browser.Close()
	}
	// Browser.Close asks Chrome to exit over CDP; Kill reaps the process
	// when that never arrives.
	if b.launcher != nil {
		b.launcher.Kill()
	}
}

// Available reports whether a local Chrome/Chromium can be found.
func Available() bool {
	_, ok := launcher.LookPath()
	return ok
}

// Render opens url in a headless browser, waits for it to settle and
// returns its serialized DOM. The returned Browser keeps the page open for
// Screenshot and VerifyLocators; callers must Close it.
func Render(ctx context.Context, url string, opts Options) (*Page, *Browser, error) {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Width == 0 {
		opts.Width = 1280
	}
	if opts.Height == 0 {
		opts.Height = 800
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	path, _ := launcher.LookPath()
	l := launcher.New().Bin(path).Headless(true)
	if opts.ProfileDir != "" {
		l = l.UserDataDir(opts.ProfileDir)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(u).Context(ctx)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, nil, fmt.Errorf("connect browser: %w", err)
	}
	b := &Browser{browser: browser, launcher: l, logger: logger}

	page, err := browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		b.Close()
		return nil, nil, fmt.Errorf("open %s: %w", url, err)
	}
	b.page = page

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             opts.Width,
		Height:            opts.Height,
		DeviceScaleFactor: 1,
	}); err != nil {
		b.Close()
		return nil, nil, fmt.Errorf("set viewport: %w", err)
	}

	if err := page.Timeout(opts.Timeout).WaitLoad(); err != nil {
		b.Close()
		return nil, nil, fmt.Errorf("wait for %s: %w", url, err)
	}

	// Don't hang on persistent connections (WebSockets, polling, etc.)
	page.Timeout(5*time.Second).WaitRequestIdle(500*time.Millisecond, nil, nil, nil)()

	isSPA := detectSPA(page)
	if isSPA {
		// Client-rendered apps need time to download bundles and hydrate
		waitForInteractiveElements(page, 5*time.Second)
	}

	rendered, err := b.snapshot(isSPA)
	if err != nil {
		b.Close()
		return nil, nil, err
	}
	logger.Debug("page rendered", "url", rendered.URL, "title", rendered.Title, "spa", isSPA, "bytes", len(rendered.HTML))
	return rendered, b, nil
}

func (b *Browser) snapshot(isSPA bool) (*Page, error) {
	html, err := b.page.HTML()
	if err != nil {
		return nil, fmt.Errorf("read page html: %w", err)
	}
	info, err := b.page.Info()
	if err != nil {
		return nil, fmt.Errorf("read page info: %w", err)
	}
	return &Page{URL: info.URL, Title: info.Title, HTML: html, IsSPA: isSPA}, nil
}

// Screenshot captures the current viewport as PNG.
func (b *Browser) Screenshot() ([]byte, error) {
	data, err := b.page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}
	return data, nil
}

// VerifyLocators evaluates each XPath locator against the rendered page.
// Locators the browser rejects count as missing.
func (b *Browser) VerifyLocators(locators []string) LocatorReport {
	report := LocatorReport{Total: len(locators)}
	for _, xpath := range locators {
		els, err := b.page.ElementsX(xpath)
		if err != nil {
			b.logger.Debug("locator rejected", "xpath", xpath, "error", err)
		}
		if err == nil && len(els) > 0 {
			report.Resolved++
		} else {
			report.Missing = append(report.Missing, xpath)
		}
	}
	return report
}

// waitForInteractiveElements polls until interactive elements appear or timeout
func waitForInteractiveElements(page *rod.Page, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	checkInterval := 200 * time.Millisecond

	for time.Now().Before(deadline) {
		res, err := page.Eval(`() => {
			const els = document.querySelectorAll('button, [role="button"], input:not([type="hidden"]), textarea, a[href], form');
			let visible = 0;
			els.forEach(el => { if (el.offsetParent) visible++; });
			return visible;
		}`)
		if err != nil {
			return
		}
		if res.Value.Int() > 0 {
			// Found elements, wait a tiny bit more for any final renders
			time.Sleep(300 * time.Millisecond)
			return
		}
		time.Sleep(checkInterval)
	}
}

// detectSPA checks if the page is a Single Page Application
func detectSPA(page *rod.Page) bool {
	res, err := page.Eval(`() => {
		// React
		if (window.__REACT_DEVTOOLS_GLOBAL_HOOK__ || document.querySelector('[data-reactroot]') || document.querySelector('#__next')) return true;
		// Vue
		if (window.__VUE__ || document.querySelector('[data-v-app]')) return true;
		// Angular
		if (window.ng || document.querySelector('[ng-version]') || document.querySelector('app-root')) return true;
		// Svelte
		if (document.querySelector('[class*="svelte-"]')) return true;
		return false;
	}`)
	if err != nil {
		return false
	}
	return res.Value.Bool()
}
