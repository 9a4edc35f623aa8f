package driving

import (
	"context"

	"github.com/custodia-labs/docnav/internal/core/domain"
)

// CorpusService is the content store: read access to the processed corpus.
// All reads observe a single consistent snapshot; the first read builds it.
type CorpusService interface {
	// ListAll returns every document in navigation order.
	ListAll(ctx context.Context) ([]domain.Summary, error)

	// ListByCategory returns one category's documents in navigation order.
	// An unknown category yields an empty slice and no error.
	ListByCategory(ctx context.Context, category string) ([]domain.Summary, error)

	// Get returns the full document. Unknown identifiers return domain.ErrNotFound.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// Links returns the previous/next neighbours of a document.
	Links(ctx context.Context, id string) (domain.NavigationLinks, error)

	// Navigation returns all navigation groups in display order.
	Navigation(ctx context.Context) ([]domain.NavigationGroup, error)

	// Rebuild rescans the corpus and atomically swaps in the new snapshot.
	// On failure the previously served snapshot remains active.
	Rebuild(ctx context.Context) (*domain.BuildReport, error)

	// Report describes the snapshot currently served.
	Report(ctx context.Context) (*domain.BuildReport, error)
}
