package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/v0xg/featuregen/internal/config"
	"github.com/v0xg/featuregen/internal/crawler"
	"github.com/v0xg/featuregen/internal/framework"
	"github.com/v0xg/featuregen/internal/markup"
)

// batch is everything gathered from one input: a file, a directory or a
// rendered URL.
type batch struct {
	catalogs   []*markup.Catalog
	frameworks []string
	browser    *crawler.Browser // set for --url inputs; caller closes
}

func (b *batch) Close() {
	if b.browser != nil {
		b.browser.Close()
	}
}

func collect(ctx context.Context, progress io.Writer, cfg *config.Config, logger *slog.Logger, target, url string) (*batch, error) {
	analyzer := markup.NewAnalyzer(
		markup.WithMaxContentScan(cfg.MaxFileSize),
		markup.WithLogger(logger),
	)

	if url != "" {
		fmt.Fprintf(progress, "→ Rendering %s... ", url)
		page, browser, err := crawler.Render(ctx, url, crawler.Options{Logger: logger})
		if err != nil {
			fmt.Fprintln(progress, "failed")
			return nil, fmt.Errorf("render failed: %w", err)
		}
		fmt.Fprintf(progress, "done (%q, %d bytes)\n", page.Title, len(page.HTML))
		return &batch{
			catalogs: []*markup.Catalog{analyzer.AnalyzeContent(page.URL, page.HTML)},
			browser:  browser,
		}, nil
	}

	info, err := os.Stat(target)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		fmt.Fprintf(progress, "→ Analyzing %s... ", target)
		c := analyzer.Analyze(target)
		if c.Failed() {
			fmt.Fprintln(progress, "failed")
		} else {
			fmt.Fprintf(progress, "done (%d elements)\n", countElements(c))
		}
		return &batch{catalogs: []*markup.Catalog{c}}, nil
	}

	fmt.Fprintf(progress, "→ Detecting frameworks in %s... ", target)
	detector := framework.NewDetector(
		framework.WithSkipDirs(cfg.SkipDirs),
		framework.WithMaxContentScan(cfg.MaxFileSize),
		framework.WithLogger(logger),
	)
	detected, err := detector.DetectDir(target)
	if err != nil {
		fmt.Fprintln(progress, "failed")
		return nil, fmt.Errorf("framework detection failed: %w", err)
	}
	fmt.Fprintf(progress, "done (%d found)\n", len(detected.FrameworksDetected))

	paths, err := markup.FindDocuments(target, cfg.SkipDirs, cfg.MaxFiles)
	if err != nil {
		return nil, fmt.Errorf("find documents: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no HTML files found in %s", target)
	}

	fmt.Fprintf(progress, "→ Analyzing %d HTML files... ", len(paths))
	b := &batch{frameworks: detected.FrameworksDetected}
	failed := 0
	for _, path := range paths {
		c := analyzer.Analyze(path)
		if c.Failed() {
			failed++
		}
		b.catalogs = append(b.catalogs, c)
	}
	if failed > 0 {
		fmt.Fprintf(progress, "done (%d unreadable)\n", failed)
	} else {
		fmt.Fprintln(progress, "done")
	}
	return b, nil
}

func countElements(c *markup.Catalog) int {
	n := 0
	for _, k := range markup.Kinds {
		n += c.Summary.Count(k)
	}
	return n
}

// locators gathers every catalog's locators without duplicates.
func locators(catalogs []*markup.Catalog) []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range catalogs {
		for _, l := range c.Locators {
			if !seen[l] {
				seen[l] = true
				out = append(out, l)
			}
		}
	}
	return out
}
