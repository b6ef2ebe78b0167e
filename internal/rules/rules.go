// Package rules holds the compiled routing rules a running ferry
// evaluates watch events against. Rules are compiled once at startup
// and read-only afterwards.
package rules

import (
	"github.com/adamancini/ferry/internal/pattern"
)

// Rule associates a set of glob patterns with a destination directory.
type Rule struct {
	patterns    []pattern.Pattern
	Destination string
}

// New compiles a rule from its raw pattern strings.
func New(patterns []string, destination string) Rule {
	compiled := make([]pattern.Pattern, len(patterns))
	for i, raw := range patterns {
		compiled[i] = pattern.Compile(raw)
	}
	return Rule{patterns: compiled, Destination: destination}
}

// Matches reports whether any of the rule's patterns match the file.
// Patterns containing a path separator are tested against the full
// path; all others against the filename only, so one rule set can mix
// "*.pdf" with "downloads/**/*.tmp".
func (r Rule) Matches(fullPath, filename string) bool {
	for _, p := range r.patterns {
		candidate := filename
		if p.IsPathPattern() {
			candidate = fullPath
		}
		if p.Matches(candidate) {
			return true
		}
	}
	return false
}

// Patterns returns the raw pattern strings, for logging.
func (r Rule) Patterns() []string {
	raw := make([]string, len(r.patterns))
	for i, p := range r.patterns {
		raw[i] = p.Raw
	}
	return raw
}
