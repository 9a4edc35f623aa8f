package driven

import (
	"context"

	"github.com/custodia-labs/docnav/internal/core/domain"
)

// DocumentStore holds the documents of one snapshot.
// Stores are populated once at construction and are read-only afterwards.
type DocumentStore interface {
	// GetDocument returns a copy of one document, or domain.ErrNotFound
	// for unknown identifiers.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)
}

// DocumentStoreBuilder creates the document table of a new snapshot.
// Documents sharing an identifier are rejected with *domain.CollisionError.
type DocumentStoreBuilder interface {
	Build(docs []domain.Document) (DocumentStore, error)
}
