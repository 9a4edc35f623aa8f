package fuzzy

import (
	"strings"
	"unicode"

	"github.com/custodia-labs/docnav/internal/slug"
)

// Tokenize lowercases text, folds diacritics and splits it on anything
// that is not a letter or digit.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(slug.Fold(text)), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
