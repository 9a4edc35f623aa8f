package fuzzy

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/custodia-labs/docnav/internal/core/ports/driven"
)

// Ensure EditDistanceScorer implements the interface.
var _ driven.Scorer = EditDistanceScorer{}

// Token match scores, best first.
const (
	ScoreExact     = 1.0
	ScorePrefix    = 0.9
	ScoreSubstring = 0.75
	ScoreTypo      = 0.7
	typoPenalty    = 0.1

	minPrefixLen    = 2
	minSubstringLen = 3
)

// EditDistanceScorer matches tokens exactly, by prefix, by substring, and
// within a bounded Levenshtein distance that grows with token length.
type EditDistanceScorer struct{}

// Score rates queryToken against fieldToken. Both are expected lowercase.
func (EditDistanceScorer) Score(queryToken, fieldToken string) float64 {
	if queryToken == "" || fieldToken == "" {
		return 0
	}
	if queryToken == fieldToken {
		return ScoreExact
	}

	qLen := utf8.RuneCountInString(queryToken)
	if qLen >= minPrefixLen && strings.HasPrefix(fieldToken, queryToken) {
		return ScorePrefix
	}
	if qLen >= minSubstringLen && strings.Contains(fieldToken, queryToken) {
		return ScoreSubstring
	}

	bound := MaxEdits(qLen)
	if bound == 0 {
		return 0
	}
	fLen := utf8.RuneCountInString(fieldToken)
	if diff := fLen - qLen; diff > bound || -diff > bound {
		return 0
	}

	d := levenshtein.ComputeDistance(queryToken, fieldToken)
	if d > bound {
		return 0
	}
	return ScoreTypo - typoPenalty*float64(d)
}

// MaxEdits is the typo allowance for a query token of n runes.
func MaxEdits(n int) int {
	switch {
	case n <= 3:
		return 0
	case n <= 6:
		return 1
	default:
		return 2
	}
}
