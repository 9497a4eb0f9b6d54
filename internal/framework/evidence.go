package framework

import (
	"fmt"
	"strings"
)

// EvidenceKind classifies why a framework was suspected.
type EvidenceKind string

const (
	EvidenceFile       EvidenceKind = "file"
	EvidenceDependency EvidenceKind = "dependency"
	EvidencePythonDep  EvidenceKind = "python_dependency"
	EvidencePHPDep     EvidenceKind = "php_dependency"
	EvidenceExtension  EvidenceKind = "extension"
	EvidenceContent    EvidenceKind = "content"
)

// Evidence is one observation pointing at a framework.
type Evidence struct {
	Framework string       `json:"framework"`
	Kind      EvidenceKind `json:"kind"`
	Detail    string       `json:"detail"`
}

func (e Evidence) String() string {
	switch e.Kind {
	case EvidenceFile:
		return "Framework file: " + e.Detail
	case EvidenceDependency:
		return "Dependency: " + e.Detail
	case EvidencePythonDep:
		return "Python dependency: " + e.Detail
	case EvidencePHPDep:
		return "PHP dependency: " + e.Detail
	case EvidenceExtension:
		return "File pattern: " + e.Detail
	case EvidenceContent:
		return "Content pattern: " + e.Detail
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
}

// ScanContent checks content against every framework's content patterns.
// Content longer than MaxContentScanBytes is not scanned.
func ScanContent(content string) []Evidence {
	return scanContent(content, MaxContentScanBytes)
}

func scanContent(content string, limit int64) []Evidence {
	if int64(len(content)) > limit {
		return nil
	}
	var evidence []Evidence
	for _, name := range Names() {
		for _, pattern := range signatures[name].ContentPatterns {
			if strings.Contains(content, pattern) {
				evidence = append(evidence, Evidence{Framework: name, Kind: EvidenceContent, Detail: pattern})
			}
		}
	}
	return evidence
}

// ScanContentLimit is ScanContent with a caller supplied size guard.
func ScanContentLimit(content string, limit int64) []Evidence {
	return scanContent(content, limit)
}
