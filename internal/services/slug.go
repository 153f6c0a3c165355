package services

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify derives a URL-safe slug from a store name: diacritics stripped,
// lowercased, runs of non-alphanumerics collapsed to single hyphens.
func Slugify(name string) string {
	flat, _, err := transform.String(deaccent, name)
	if err != nil {
		flat = name
	}
	var b strings.Builder
	b.Grow(len(flat))
	lastHyphen := true
	for _, r := range strings.ToLower(flat) {
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
	return strings.TrimRight(b.String(), "-")
}
