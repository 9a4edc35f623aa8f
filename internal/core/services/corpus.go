package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/custodia-labs/docnav/internal/core/domain"
	"github.com/custodia-labs/docnav/internal/core/ports/driving"
	"github.com/custodia-labs/docnav/internal/logger"
)

// Ensure CorpusService implements the interface.
var _ driving.CorpusService = (*CorpusService)(nil)

// snapshotBuilder produces snapshots. *Indexer is the production implementation.
type snapshotBuilder interface {
	Build(ctx context.Context) (*snapshot, error)
}

// CorpusService is the content store. It serves reads from an immutable
// snapshot held in an atomic pointer; rebuilds construct a new snapshot off
// to the side and swap it in with a single store.
type CorpusService struct {
	builder snapshotBuilder

	current atomic.Pointer[snapshot]

	// buildMu serialises rebuilds. Readers never take it once a snapshot exists.
	buildMu sync.Mutex
}

// NewCorpusService creates a content store over an indexer.
// Nothing is built until the first read or an explicit Rebuild.
func NewCorpusService(indexer *Indexer) *CorpusService {
	return &CorpusService{builder: indexer}
}

// ListAll returns every document in navigation order.
func (s *CorpusService) ListAll(ctx context.Context) ([]domain.Summary, error) {
	snap, err := s.ensure(ctx)
	if err != nil {
		return nil, err
	}
	return cloneSummaries(snap.summaries), nil
}

// ListByCategory returns one category's documents in navigation order.
func (s *CorpusService) ListByCategory(ctx context.Context, category string) ([]domain.Summary, error) {
	snap, err := s.ensure(ctx)
	if err != nil {
		return nil, err
	}
	return cloneSummaries(snap.byCategory[category]), nil
}

// Get returns a full document or domain.ErrNotFound.
func (s *CorpusService) Get(ctx context.Context, id string) (*domain.Document, error) {
	snap, err := s.ensure(ctx)
	if err != nil {
		return nil, err
	}
	return snap.store.GetDocument(ctx, id)
}

// Links returns a document's neighbours within its category.
func (s *CorpusService) Links(ctx context.Context, id string) (domain.NavigationLinks, error) {
	snap, err := s.ensure(ctx)
	if err != nil {
		return domain.NavigationLinks{}, err
	}
	links, ok := snap.links[id]
	if !ok {
		return domain.NavigationLinks{}, fmt.Errorf("links for %q: %w", id, domain.ErrNotFound)
	}
	return links, nil
}

// Navigation returns all navigation groups in display order.
func (s *CorpusService) Navigation(ctx context.Context) ([]domain.NavigationGroup, error) {
	snap, err := s.ensure(ctx)
	if err != nil {
		return nil, err
	}
	groups := make([]domain.NavigationGroup, len(snap.navigation))
	for i, g := range snap.navigation {
		groups[i] = domain.NavigationGroup{
			Category: g.Category,
			Items:    append([]domain.NavItem(nil), g.Items...),
		}
	}
	return groups, nil
}

// Rebuild builds a fresh snapshot and swaps it in. On failure the served
// snapshot is left untouched and the error is returned to the caller.
func (s *CorpusService) Rebuild(ctx context.Context) (*domain.BuildReport, error) {
	s.buildMu.Lock()
	defer s.buildMu.Unlock()

	snap, err := s.builder.Build(ctx)
	if err != nil {
		if prev := s.current.Load(); prev != nil {
			logger.Warn("rebuild failed, still serving snapshot %s: %v", prev.report.Generation, err)
		}
		return nil, err
	}

	s.current.Store(snap)
	report := snap.report
	return &report, nil
}

// Report describes the snapshot currently served, building it if needed.
func (s *CorpusService) Report(ctx context.Context) (*domain.BuildReport, error) {
	snap, err := s.ensure(ctx)
	if err != nil {
		return nil, err
	}
	report := snap.report
	return &report, nil
}

// ensure returns the served snapshot, building the first one lazily.
// Concurrent first readers wait for a single build.
func (s *CorpusService) ensure(ctx context.Context) (*snapshot, error) {
	if snap := s.current.Load(); snap != nil {
		return snap, nil
	}

	s.buildMu.Lock()
	defer s.buildMu.Unlock()

	if snap := s.current.Load(); snap != nil {
		return snap, nil
	}

	snap, err := s.builder.Build(ctx)
	if err != nil {
		return nil, err
	}
	s.current.Store(snap)
	return snap, nil
}

func cloneSummaries(in []domain.Summary) []domain.Summary {
	out := make([]domain.Summary, len(in))
	copy(out, in)
	return out
}
