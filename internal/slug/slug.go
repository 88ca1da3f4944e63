// Package slug derives URL-safe identifiers from titles.
package slug

import "strings"

// Make lowercases the title and collapses every run of non-alphanumeric
// characters into a single hyphen. "Baby Dragon Care" -> "baby-dragon-care".
// Distinct titles can collapse to the same slug; the store rejects the
// collision with its primary-key constraint.
func Make(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
