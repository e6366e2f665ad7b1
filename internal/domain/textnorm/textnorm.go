// Package textnorm reduces arbitrary text to the restricted alphabet used by
// the linkage pipeline: lowercase ASCII letters, optionally separated by
// single spaces.
package textnorm

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
)

// Normalize transliterates raw to its closest ASCII form, lowercases it and
// removes every character outside a-z. When keepSpaces is true, runs of
// whitespace survive as a single interior space; otherwise spaces are removed
// like everything else.
//
// Normalize is total and idempotent. Input with no ASCII-representable
// letters yields the empty string.
func Normalize(raw string, keepSpaces bool) string {
	ascii := unidecode.Unidecode(raw)

	var b strings.Builder
	b.Grow(len(ascii))
	pendingSpace := false
	for _, r := range ascii {
		switch {
		case r >= 'a' && r <= 'z':
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(unicode.ToLower(r))
		case keepSpaces && unicode.IsSpace(r):
			// Deferred so leading/trailing/duplicate spaces never appear.
			pendingSpace = true
		}
	}
	return b.String()
}
