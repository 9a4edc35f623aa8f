package driving

import (
	"context"

	"github.com/custodia-labs/docnav/internal/core/domain"
)

// SearchService provides search capabilities to external actors.
type SearchService interface {
	// Search performs fuzzy search over titles, tags, categories and descriptions.
	// A blank query returns an empty slice; a negative limit is rejected
	// with domain.ErrInvalidQuery.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)
}
