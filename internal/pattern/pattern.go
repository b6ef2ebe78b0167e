// Package pattern implements the glob matcher used to route watched
// files to rules.
//
// Supported syntax:
//   - `*`  matches any run of characters except '/'
//   - `**` matches any run of characters, '/' included
//   - `?`  matches exactly one character that is not '/'
//   - everything else matches literally
//
// A match must consume the entire candidate; there is no implicit
// prefix or suffix matching.
package pattern

import "strings"

// Pattern is a compiled glob. Use Compile; the zero value only matches
// the empty string.
type Pattern struct {
	// Raw is the pattern text as the user wrote it.
	Raw string

	runes []rune
}

// Compile builds a Pattern from its raw text. Compilation cannot fail:
// every string is a valid pattern.
func Compile(raw string) Pattern {
	return Pattern{Raw: raw, runes: []rune(raw)}
}

// Matches reports whether candidate matches the whole pattern.
func (p Pattern) Matches(candidate string) bool {
	return match(p.runes, []rune(candidate), 0, 0)
}

// IsPathPattern reports whether the pattern contains a path separator.
// Callers use this to decide whether to match against a file's full
// path or just its filename.
func (p Pattern) IsPathPattern() bool {
	return strings.ContainsRune(p.Raw, '/')
}

// match is a recursive-descent walk over pattern and candidate. Each
// wildcard is a backtracking choice point, so the worst case is
// exponential; patterns are short and user-authored, which keeps this
// harmless in practice.
func match(p, s []rune, pi, si int) bool {
	// Both exhausted: full match.
	if pi == len(p) && si == len(s) {
		return true
	}

	// Pattern exhausted with candidate left over.
	if pi == len(p) {
		return false
	}

	// `**` tries every split point of the remaining candidate,
	// separators included.
	if p[pi] == '*' && pi+1 < len(p) && p[pi+1] == '*' {
		for i := si; i <= len(s); i++ {
			if match(p, s, pi+2, i) {
				return true
			}
		}
		return false
	}

	// `*` does the same forward scan but stops at the first separator.
	if p[pi] == '*' {
		for i := si; i <= len(s); i++ {
			if match(p, s, pi+1, i) {
				return true
			}
			if i < len(s) && s[i] == '/' {
				break
			}
		}
		return false
	}

	// Candidate exhausted with non-wildcard pattern left over.
	if si == len(s) {
		return false
	}

	if p[pi] == '?' && s[si] != '/' {
		return match(p, s, pi+1, si+1)
	}

	if p[pi] == s[si] {
		return match(p, s, pi+1, si+1)
	}

	return false
}
