package markup

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/v0xg/featuregen/internal/framework"
)

var documentExtensions = map[string]bool{".html": true, ".htm": true}

// Analyzer turns HTML files into Catalogs.
type Analyzer struct {
	maxContentScan int64
	logger         *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithMaxContentScan sets the size above which the content-pattern scan is
// skipped.
func WithMaxContentScan(n int64) Option {
	return func(a *Analyzer) { a.maxContentScan = n }
}

func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		maxContentScan: framework.MaxContentScanBytes,
		logger:         slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Analyzer) Name() string { return "html" }

// CanAnalyze accepts .html and .htm files.
func (a *Analyzer) CanAnalyze(path string) bool {
	return documentExtensions[strings.ToLower(filepath.Ext(path))]
}

// Analyze reads, decodes and extracts one file. A read or decode failure
// is returned as a Catalog with Error set and no elements.
func (a *Analyzer) Analyze(path string) *Catalog {
	raw, err := os.ReadFile(path)
	if err != nil {
		a.logger.Warn("cannot read document", "path", path, "error", err)
		return failedCatalog(path, err)
	}
	content, encoding, err := Decode(raw)
	if err != nil {
		a.logger.Warn("cannot decode document", "path", path, "error", err)
		return failedCatalog(path, err)
	}
	c := a.AnalyzeContent(path, content)
	c.Encoding = encoding
	return c
}

// AnalyzeContent extracts already decoded markup, labelling it with source.
func (a *Analyzer) AnalyzeContent(source, content string) *Catalog {
	c := extract(content, a.maxContentScan)
	c.FilePath = source
	c.Framework = FrameworkHTML
	if c.ContentScanSkipped {
		a.logger.Debug("content scan skipped", "path", source, "bytes", len(content))
	}
	a.logger.Debug("document analyzed", "path", source,
		"forms", c.Summary.TotalForms, "inputs", c.Summary.TotalInputs, "buttons", c.Summary.TotalButtons)
	return c
}

func failedCatalog(path string, err error) *Catalog {
	return &Catalog{
		FilePath:  path,
		Framework: FrameworkHTML,
		Error:     err.Error(),
	}
}

// FindDocuments returns up to limit HTML files below root in lexical
// order, skipping directories named in skipDirs. A limit <= 0 means no cap.
func FindDocuments(root string, skipDirs []string, limit int) ([]string, error) {
	skip := make(map[string]bool, len(skipDirs))
	for _, d := range skipDirs {
		skip[d] = true
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() && path != root {
				return fs.SkipDir
			}
			return err
		}
		if d.IsDir() {
			if path != root && skip[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}
		if documentExtensions[strings.ToLower(filepath.Ext(path))] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("find documents in %s: %w", root, err)
	}

	sort.Strings(paths)
	if limit > 0 && len(paths) > limit {
		paths = paths[:limit]
	}
	return paths, nil
}
