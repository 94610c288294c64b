// Package langdetect labels fenced code blocks with a language name.
// Info strings are normalized through go-enry's alias table; blocks without
// an info string can be classified from their content.
package langdetect

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is the label for content that could not be classified.
const Text = "text"

// classifierCandidates limits the enry classifier to languages commonly
// found in notes.
//
//nolint:gochecknoglobals // Read-only candidate list.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// pattern is a cheap textual signal that is more reliable than the
// classifier on short snippets.
type pattern struct {
	lang  string
	match func(trimmed string) bool
}

//nolint:gochecknoglobals // Read-only pattern table, checked in order.
var patterns = []pattern{
	{"go", func(s string) bool { return strings.HasPrefix(s, "package ") }},
	{"python", func(s string) bool {
		return (strings.Contains(s, "def ") && strings.Contains(s, "):")) ||
			strings.Contains(s, "__name__") ||
			(strings.HasPrefix(s, "import ") && !strings.Contains(s, "import ("))
	}},
	{"html", func(s string) bool {
		lower := strings.ToLower(s)
		return strings.Contains(lower, "<!doctype html") || strings.Contains(lower, "<html") ||
			strings.Contains(lower, "<body>")
	}},
	{"json", func(s string) bool {
		return (strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[")) && strings.Contains(s, `"`)
	}},
	{"dockerfile", func(s string) bool {
		return strings.HasPrefix(s, "FROM ") || (strings.Contains(s, "WORKDIR ") && strings.Contains(s, "COPY "))
	}},
	{"sql", func(s string) bool {
		upper := strings.ToUpper(s)
		for _, verb := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, verb) {
				return true
			}
		}
		return false
	}},
	{"rust", func(s string) bool {
		return strings.Contains(s, "fn main()") || strings.Contains(s, "println!") || strings.Contains(s, "let mut ")
	}},
	{"javascript", func(s string) bool {
		return strings.Contains(s, "=>") || strings.Contains(s, "const ") || strings.Contains(s, "console.log")
	}},
	{"yaml", isYAML},
}

// Detect returns the label for code content.
// Returns Text if detection fails or confidence is low.
func Detect(content string) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return Text
	}

	if lang, safe := enry.GetLanguageByShebang([]byte(content)); safe {
		return normalize(lang)
	}

	for _, p := range patterns {
		if p.match(trimmed) {
			return p.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier([]byte(content), classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return Text
}

// Normalize maps a fence info word such as "py" or "golang" to a canonical
// label. Unknown words are returned lowercased.
func Normalize(info string) string {
	info = strings.TrimSpace(info)
	if info == "" {
		return ""
	}
	if lang, ok := enry.GetLanguageByAlias(info); ok {
		return normalize(lang)
	}
	if lang, safe := enry.GetLanguageByExtension("snippet." + info); safe {
		return normalize(lang)
	}
	return strings.ToLower(info)
}

func isYAML(s string) bool {
	const minKeys = 2
	keys := 0
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.Contains(line, ": ") && !strings.ContainsAny(line, "({") && !strings.HasPrefix(line, `"`) {
			keys++
		}
		if strings.HasPrefix(line, "- ") {
			keys++
		}
	}
	return keys >= minKeys
}

func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
