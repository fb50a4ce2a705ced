package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// combiningDiacritics are the accents stripped from Latin, Greek and Cyrillic
// letters. Marks of other scripts (dakuten, harakat, matras) are kept.
var combiningDiacritics = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x0300, Hi: 0x036f, Stride: 1}},
}

// Slugify turns a title into a URL path segment. Accents are folded away and
// letters and digits of any script are kept, lowercased; every other run
// becomes one hyphen. Non-ASCII letters end up percent-encoded in links.
// It returns "" when nothing usable is left.
func Slugify(title string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(combiningDiacritics)), norm.NFC)
	folded, _, err := transform.String(fold, title)
	if err != nil {
		folded = title
	}

	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case unicode.In(r, unicode.L, unicode.N, unicode.M):
			b.WriteRune(r)
			hyphen = false
		case b.Len() > 0 && !hyphen:
			b.WriteByte('-')
			hyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
