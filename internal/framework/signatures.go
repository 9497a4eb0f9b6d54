package framework

import "sort"

// MaxContentScanBytes is the largest document the content-pattern scan will
// look at. Bigger inputs produce no content evidence.
const MaxContentScanBytes = 1_000_000

// Signature describes how a framework shows up in a codebase.
type Signature struct {
	Files           []string // exact file names, lower case
	Dependencies    []string // package.json / requirements.txt / composer.json entries
	Extensions      []string // file name suffixes
	ContentPatterns []string // literal substrings
}

var signatures = map[string]Signature{
	"React": {
		Files:           []string{"package.json"},
		Dependencies:    []string{"react", "react-dom"},
		Extensions:      []string{".jsx", ".tsx"},
		ContentPatterns: []string{"import React", `from "react"`},
	},
	"Vue.js": {
		Files:           []string{"package.json"},
		Dependencies:    []string{"vue"},
		Extensions:      []string{".vue"},
		ContentPatterns: []string{"<template>", "Vue.component"},
	},
	"Angular": {
		Files:           []string{"package.json", "angular.json"},
		Dependencies:    []string{"@angular/core"},
		Extensions:      []string{".component.ts"},
		ContentPatterns: []string{"@Component", "@NgModule"},
	},
	"Django": {
		Files:           []string{"manage.py", "settings.py", "requirements.txt"},
		Dependencies:    []string{"django"},
		Extensions:      []string{".html"},
		ContentPatterns: []string{"{% load", "{{ ", "django."},
	},
	"Flask": {
		Files:           []string{"app.py", "requirements.txt"},
		Dependencies:    []string{"flask"},
		ContentPatterns: []string{"from flask import", "@app.route"},
	},
	"Express.js": {
		Files:           []string{"package.json"},
		Dependencies:    []string{"express"},
		ContentPatterns: []string{`require("express")`, "app.listen("},
	},
	"Laravel": {
		Files:           []string{"composer.json", "artisan"},
		Dependencies:    []string{"laravel/framework"},
		Extensions:      []string{".blade.php"},
		ContentPatterns: []string{"@extends", "@section"},
	},
	"Spring Boot": {
		Files:           []string{"pom.xml", "build.gradle"},
		ContentPatterns: []string{"spring-boot-starter", "@SpringBootApplication"},
	},
}

// Names returns every known framework in sorted order.
func Names() []string {
	names := make([]string, 0, len(signatures))
	for name := range signatures {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns a copy of the signature registered for name.
func Lookup(name string) (Signature, bool) {
	sig, ok := signatures[name]
	if !ok {
		return Signature{}, false
	}
	return Signature{
		Files:           append([]string(nil), sig.Files...),
		Dependencies:    append([]string(nil), sig.Dependencies...),
		Extensions:      append([]string(nil), sig.Extensions...),
		ContentPatterns: append([]string(nil), sig.ContentPatterns...),
	}, true
}

// IsSignatureFile reports whether name (base name, any case) is listed in
// some framework's Files.
func IsSignatureFile(name string) bool {
	for _, sig := range signatures {
		if contains(sig.Files, name) {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
