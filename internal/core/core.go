// Package core holds the capability contract shared by analyzers and
// generators, and the registry the CLI resolves analyzers through.
package core

import (
	"fmt"
	"sort"
)

// Analyzer is implemented by everything that inspects files.
type Analyzer interface {
	Name() string
	CanAnalyze(path string) bool
}

// Generator is implemented by everything that turns analysis results into
// test artifacts.
type Generator interface {
	Name() string
	CanGenerate(results int) bool
}

// Registry maps analyzer names to analyzers. It is built once by the
// caller and is not safe for concurrent mutation.
type Registry struct {
	analyzers map[string]Analyzer
}

func NewRegistry() *Registry {
	return &Registry{analyzers: make(map[string]Analyzer)}
}

// Register adds a under its own name. Registering the same name twice is an
// error.
func (r *Registry) Register(a Analyzer) error {
	name := a.Name()
	if _, exists := r.analyzers[name]; exists {
		return fmt.Errorf("analyzer %q already registered", name)
	}
	r.analyzers[name] = a
	return nil
}

func (r *Registry) Get(name string) (Analyzer, bool) {
	a, ok := r.analyzers[name]
	return a, ok
}

// Names returns registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.analyzers))
	for name := range r.analyzers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Len() int {
	return len(r.analyzers)
}

// For returns the analyzers that accept path, in name order.
func (r *Registry) For(path string) []Analyzer {
	var out []Analyzer
	for _, name := range r.Names() {
		a, _ := r.Get(name)
		if a.CanAnalyze(path) {
			out = append(out, a)
		}
	}
	return out
}
