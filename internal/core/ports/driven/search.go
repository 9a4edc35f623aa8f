package driven

import (
	"context"

	"github.com/custodia-labs/docnav/internal/core/domain"
)

// SearchIndex answers fuzzy queries over one snapshot of the corpus.
// An index is built once and never mutated.
type SearchIndex interface {
	// Search returns up to limit hits ranked by descending score,
	// ties broken by ascending identifier. A blank query yields no hits.
	Search(ctx context.Context, query string, limit int) ([]SearchHit, error)

	// Len returns the number of indexed entries.
	Len() int
}

// SearchIndexBuilder builds a SearchIndex from the full entry set.
type SearchIndexBuilder interface {
	Build(entries []domain.SearchEntry) (SearchIndex, error)
}

// Scorer rates how well a query token matches a field token.
// Implementations return a value in [0, 1]; 0 means no match.
type Scorer interface {
	Score(queryToken, fieldToken string) float64
}

// SearchHit represents a ranked match from the index.
type SearchHit struct {
	// ID is the matched document identifier.
	ID string

	// Score is the relevance score.
	Score float64
}
