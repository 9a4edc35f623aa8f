package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/docnav/internal/core/domain"
	"github.com/custodia-labs/docnav/internal/core/ports/driving"
	"github.com/custodia-labs/docnav/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService answers fuzzy queries against the content store's current snapshot.
type SearchService struct {
	corpus   *CorpusService
	settings domain.SearchSettings
}

// NewSearchService creates a new search service.
// Zero limits in settings fall back to the defaults.
func NewSearchService(corpus *CorpusService, settings domain.SearchSettings) *SearchService {
	defaults := domain.DefaultAppSettings().Search
	if settings.DefaultLimit <= 0 {
		settings.DefaultLimit = defaults.DefaultLimit
	}
	if settings.MaxLimit <= 0 {
		settings.MaxLimit = defaults.MaxLimit
	}
	return &SearchService{corpus: corpus, settings: settings}
}

// Search ranks documents against query.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q (limit %d, category %q)", query, opts.Limit, opts.Category)

	if opts.Limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative, got %d", domain.ErrInvalidQuery, opts.Limit)
	}

	// Return empty for empty query
	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.SearchResult{}, nil
	}

	limit := s.effectiveLimit(opts.Limit)

	snap, err := s.corpus.ensure(ctx)
	if err != nil {
		return nil, err
	}

	indexLimit := limit
	if opts.Category != "" {
		// Filtering happens after ranking, so fetch every match.
		indexLimit = 0
	}

	hits, err := snap.index.Search(ctx, query, indexLimit)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}

	results := make([]domain.SearchResult, 0, min(len(hits), limit))
	for _, hit := range hits {
		if len(results) == limit {
			break
		}
		doc, err := snap.store.GetDocument(ctx, hit.ID)
		if err != nil {
			logger.Warn("search hit %s missing from snapshot: %v", hit.ID, err)
			continue
		}
		if opts.Category != "" && doc.Category != opts.Category {
			continue
		}
		results = append(results, domain.SearchResult{Summary: doc.Summary(), Score: hit.Score})
	}

	logger.Debug("Returning %d results", len(results))
	return results, nil
}

// effectiveLimit applies the default and the cap.
func (s *SearchService) effectiveLimit(requested int) int {
	limit := requested
	if limit == 0 {
		limit = s.settings.DefaultLimit
	}
	if limit > s.settings.MaxLimit {
		limit = s.settings.MaxLimit
	}
	return limit
}
