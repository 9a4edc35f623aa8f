package driving

import (
	"context"

	"github.com/custodia-labs/docnav/internal/core/domain"
)

// LinkService validates internal markdown links across the corpus.
type LinkService interface {
	// Check inspects every markdown page of the corpus, index and readme
	// pages included.
	Check(ctx context.Context) (*domain.LinkReport, error)
}
