// Package slug turns free text into URL-safe anchors and identifier segments.
package slug

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fallback is used when text normalises to nothing (e.g. a heading of "!!!").
const Fallback = "section"

// Make normalises text into a slug: diacritics folded, lowercase,
// non-word characters stripped, whitespace runs collapsed to a single hyphen.
// Make may return an empty string.
func Make(text string) string {
	folded := Fold(text)

	var b strings.Builder
	b.Grow(len(folded))
	pendingHyphen := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case r == '-' || unicode.IsSpace(r):
			pendingHyphen = true
		}
	}
	return b.String()
}

// Fold strips combining marks so "Café" and "Cafe" compare equal.
func Fold(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return out
}

// Words converts a slug back into a human readable title,
// e.g. "solid-principles" becomes "Solid Principles".
func Words(s string) string {
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	s = strings.Join(strings.Fields(s), " ")
	return cases.Title(language.English).String(s)
}

// Set hands out slugs that are unique within one document.
// The zero value is ready to use.
type Set struct {
	seen map[string]bool
}

// Unique returns a slug for text that has not been returned before by this Set.
// Repeats get "-1", "-2", ... suffixes; a suffix that would clash with a slug
// already in use is skipped.
func (s *Set) Unique(text string) string {
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}

	base := Make(text)
	if base == "" {
		base = Fallback
	}

	candidate := base
	for n := 1; s.seen[candidate]; n++ {
		candidate = base + "-" + strconv.Itoa(n)
	}
	s.seen[candidate] = true
	return candidate
}
