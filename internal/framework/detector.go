package framework

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultSkipDirs are never descended into during directory detection.
var DefaultSkipDirs = []string{".git", "node_modules", "__pycache__", ".venv", "venv"}

// Result is the outcome of a framework detection run.
type Result struct {
	Type               string                `json:"type"` // directory_analysis | file_analysis
	Path               string                `json:"path"`
	FrameworksDetected []string              `json:"frameworks_detected"`
	Evidence           map[string][]Evidence `json:"evidence"`
	FilesScanned       int                   `json:"files_scanned"`
	Confidence         map[string]float64    `json:"confidence,omitempty"`
	Error              string                `json:"error,omitempty"`
}

// Detector identifies web frameworks from file names, dependency manifests,
// extensions and content patterns.
type Detector struct {
	skipDirs       map[string]bool
	maxContentScan int64
	logger         *slog.Logger
}

// Option configures a Detector.
type Option func(*Detector)

// WithSkipDirs replaces the directory names skipped while walking.
func WithSkipDirs(dirs []string) Option {
	return func(d *Detector) {
		d.skipDirs = make(map[string]bool, len(dirs))
		for _, dir := range dirs {
			d.skipDirs[dir] = true
		}
	}
}

// WithMaxContentScan overrides the content-pattern size guard.
func WithMaxContentScan(n int64) Option {
	return func(d *Detector) { d.maxContentScan = n }
}

// WithLogger sets the logger used for skipped files.
func WithLogger(l *slog.Logger) Option {
	return func(d *Detector) { d.logger = l }
}

// NewDetector creates a Detector with the default skip list.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{
		maxContentScan: MaxContentScanBytes,
		logger:         slog.New(slog.DiscardHandler),
	}
	WithSkipDirs(DefaultSkipDirs)(d)
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Detector) Name() string { return "framework" }

// CanAnalyze accepts directories and known signature files.
func (d *Detector) CanAnalyze(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if info.IsDir() {
		return true
	}
	return IsSignatureFile(strings.ToLower(filepath.Base(path)))
}

// Analyze runs DetectDir or DetectFile depending on path. Failures are
// reported in Result.Error.
func (d *Detector) Analyze(path string) *Result {
	info, err := os.Stat(path)
	if err != nil {
		return &Result{Path: path, Error: err.Error(), Evidence: map[string][]Evidence{}}
	}
	var res *Result
	if info.IsDir() {
		res, err = d.DetectDir(path)
	} else {
		res, err = d.DetectFile(path)
	}
	if err != nil {
		return &Result{Path: path, Error: err.Error(), Evidence: map[string][]Evidence{}}
	}
	return res
}

// DetectDir walks root and aggregates evidence from every file.
func (d *Detector) DetectDir(root string) (*Result, error) {
	evidence := make(map[string][]Evidence)
	scanned := 0

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			d.logger.Debug("skipping unreadable path", "path", path, "error", err)
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			if path != root && d.skipDirs[entry.Name()] {
				return fs.SkipDir
			}
			return nil
		}
		scanned++
		for name, found := range d.checkFile(path) {
			evidence[name] = append(evidence[name], found...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return &Result{
		Type:               "directory_analysis",
		Path:               root,
		FrameworksDetected: detectedNames(evidence),
		Evidence:           evidence,
		FilesScanned:       scanned,
		Confidence:         confidence(evidence),
	}, nil
}

// DetectFile checks a single file.
func (d *Detector) DetectFile(path string) (*Result, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	evidence := d.checkFile(path)
	return &Result{
		Type:               "file_analysis",
		Path:               path,
		FrameworksDetected: detectedNames(evidence),
		Evidence:           evidence,
		FilesScanned:       1,
		Confidence:         confidence(evidence),
	}, nil
}

// checkFile returns the evidence found in path, keyed by framework.
func (d *Detector) checkFile(path string) map[string][]Evidence {
	found := make(map[string][]Evidence)
	fileName := strings.ToLower(filepath.Base(path))

	var content string
	if info, err := os.Stat(path); err == nil && info.Size() <= d.maxContentScan {
		if raw, err := os.ReadFile(path); err == nil {
			content = strings.ToValidUTF8(string(raw), "")
		} else {
			d.logger.Debug("cannot read file", "path", path, "error", err)
		}
	}

	for _, name := range Names() {
		sig := signatures[name]
		var ev []Evidence

		if contains(sig.Files, fileName) {
			ev = append(ev, Evidence{Framework: name, Kind: EvidenceFile, Detail: fileName})
			switch fileName {
			case "package.json":
				ev = append(ev, jsonDependencies(name, content, sig.Dependencies, EvidenceDependency, "dependencies", "devDependencies")...)
			case "composer.json":
				ev = append(ev, jsonDependencies(name, content, sig.Dependencies, EvidencePHPDep, "require", "require-dev")...)
			case "requirements.txt":
				lower := strings.ToLower(content)
				for _, dep := range sig.Dependencies {
					if strings.Contains(lower, strings.ToLower(dep)) {
						ev = append(ev, Evidence{Framework: name, Kind: EvidencePythonDep, Detail: dep})
					}
				}
			}
		}

		for _, ext := range sig.Extensions {
			if strings.HasSuffix(fileName, ext) {
				ev = append(ev, Evidence{Framework: name, Kind: EvidenceExtension, Detail: ext})
			}
		}

		for _, pattern := range sig.ContentPatterns {
			if content != "" && strings.Contains(content, pattern) {
				ev = append(ev, Evidence{Framework: name, Kind: EvidenceContent, Detail: pattern})
			}
		}

		if len(ev) > 0 {
			found[name] = ev
		}
	}
	return found
}

// jsonDependencies looks up deps in the named sections of a JSON manifest.
// Malformed manifests yield no evidence.
func jsonDependencies(framework, content string, deps []string, kind EvidenceKind, sections ...string) []Evidence {
	if content == "" || len(deps) == 0 {
		return nil
	}
	var manifest map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &manifest); err != nil {
		return nil
	}
	all := make(map[string]struct{})
	for _, section := range sections {
		raw, ok := manifest[section]
		if !ok {
			continue
		}
		var entries map[string]any
		if err := json.Unmarshal(raw, &entries); err != nil {
			continue
		}
		for dep := range entries {
			all[dep] = struct{}{}
		}
	}
	var ev []Evidence
	for _, dep := range deps {
		if _, ok := all[dep]; ok {
			ev = append(ev, Evidence{Framework: framework, Kind: kind, Detail: dep})
		}
	}
	return ev
}

func detectedNames(evidence map[string][]Evidence) []string {
	names := make([]string, 0, len(evidence))
	for name := range evidence {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// confidence scores 0.25 per piece of evidence, capped at 1.
func confidence(evidence map[string][]Evidence) map[string]float64 {
	scores := make(map[string]float64, len(evidence))
	for name, ev := range evidence {
		score := math.Min(float64(len(ev))*0.25, 1.0)
		scores[name] = math.Round(score*100) / 100
	}
	return scores
}
