// Package template extracts {{placeholder}} names from template text.
package template

import (
	"regexp"
	"strings"
)

// placeholderPattern matches a {{ name }} span. The name may not contain
// braces, so a triple-brace span like {{{x}}} still resolves to x (the match
// starts one brace in) and single-brace spans never match.
var placeholderPattern = regexp.MustCompile(`\{\{\s*([^{}]+?)\s*\}\}`)

// Extract returns the unique placeholder names in text, in first-appearance
// order. Surrounding whitespace inside the braces is trimmed from each name.
func Extract(text string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(text, -1)

	names := []string{}
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		name := strings.TrimSpace(m[1])
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}
