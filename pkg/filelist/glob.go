// SPDX-License-Identifier: MPL-2.0

package filelist

import (
	"regexp"
	"strings"
)

// globToRegexpString converts a shell-style glob into a regexp fragment.
// '*' and '?' never cross a path separator; '[...]' character classes are
// preserved. Everything else is quoted literally.
func globToRegexpString(glob string) string {
	var out strings.Builder
	runes := []rune(glob)
	for i := 0; i < len(runes); i++ {
		switch c := runes[i]; c {
		case '*':
			out.WriteString("[^/]*")
		case '?':
			out.WriteString("[^/]")
		case '[':
			// copy the character class through the closing bracket
			j := i + 1
			if j < len(runes) && (runes[j] == '!' || runes[j] == '^') {
				j++
			}
			if j < len(runes) && runes[j] == ']' {
				j++
			}
			for j < len(runes) && runes[j] != ']' {
				j++
			}
			if j >= len(runes) {
				// unterminated class: treat '[' as a literal
				out.WriteString(regexp.QuoteMeta("["))
				continue
			}
			class := string(runes[i+1 : j])
			if strings.HasPrefix(class, "!") {
				class = "^" + class[1:]
			}
			out.WriteString("[" + class + "]")
			i = j
		default:
			out.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	return out.String()
}

// translate builds the match regexp for a glob pattern applied to
// slash-separated relative paths.
//
//   - anchor: the pattern must match the whole path from the root
//     ("include" semantics).
//   - no anchor, empty prefix: the pattern may match in any directory
//     ("global-include" semantics).
//   - prefix: the pattern matches below the given directory
//     ("recursive-include" semantics).
func translate(pattern string, anchor bool, prefix string) *regexp.Regexp {
	frag := globToRegexpString(normalizeSeparators(pattern))

	switch {
	case prefix != "":
		dir := strings.TrimSuffix(normalizeSeparators(prefix), "/")
		return regexp.MustCompile("^" + regexp.QuoteMeta(dir) + "/(?:.*/)?" + frag + "$")
	case anchor:
		return regexp.MustCompile("^" + frag + "$")
	default:
		return regexp.MustCompile("^(?:.*/)?" + frag + "$")
	}
}

// normalizeSeparators normalizes pattern separators to forward slashes so descriptors
// written on Windows behave the same everywhere.
func normalizeSeparators(pattern string) string {
	return strings.ReplaceAll(pattern, "\\", "/")
}
