package driven

import (
	"context"

	"github.com/custodia-labs/docnav/internal/core/domain"
)

// Normaliser transforms raw corpus files into processed documents.
type Normaliser interface {
	// Normalise extracts metadata, outline and derived attributes.
	// It only fails on a nil input: every other document yields a usable result.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*domain.Document, error)
}
