package mcp

import (
	"context"

	"github.com/custodia-labs/docnav/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results  []domain.SearchResult
	err      error
	lastOpts domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context,
	_ string,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	m.lastOpts = opts
	return m.results, m.err
}

// mockCorpusService is a mock implementation of driving.CorpusService.
type mockCorpusService struct {
	documents  map[string]*domain.Document
	links      map[string]domain.NavigationLinks
	navigation []domain.NavigationGroup
	err        error
}

func (m *mockCorpusService) ListAll(_ context.Context) ([]domain.Summary, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.Summary
	for _, g := range m.navigation {
		for _, item := range g.Items {
			out = append(out, m.documents[item.ID].Summary())
		}
	}
	return out, nil
}

func (m *mockCorpusService) ListByCategory(_ context.Context, category string) ([]domain.Summary, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []domain.Summary{}
	for _, g := range m.navigation {
		if g.Category != category {
			continue
		}
		for _, item := range g.Items {
			out = append(out, m.documents[item.ID].Summary())
		}
	}
	return out, nil
}

func (m *mockCorpusService) Get(_ context.Context, id string) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	doc, ok := m.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

func (m *mockCorpusService) Links(_ context.Context, id string) (domain.NavigationLinks, error) {
	links, ok := m.links[id]
	if !ok {
		return domain.NavigationLinks{}, domain.ErrNotFound
	}
	return links, nil
}

func (m *mockCorpusService) Navigation(_ context.Context) ([]domain.NavigationGroup, error) {
	return m.navigation, m.err
}

func (m *mockCorpusService) Rebuild(_ context.Context) (*domain.BuildReport, error) {
	return &domain.BuildReport{}, m.err
}

func (m *mockCorpusService) Report(_ context.Context) (*domain.BuildReport, error) {
	return &domain.BuildReport{}, m.err
}

// mockLinkService is a mock implementation of driving.LinkService.
type mockLinkService struct {
	report *domain.LinkReport
	err    error
}

func (m *mockLinkService) Check(_ context.Context) (*domain.LinkReport, error) {
	return m.report, m.err
}

// newMockCorpus returns a two-category corpus.
func newMockCorpus() *mockCorpusService {
	return &mockCorpusService{
		documents: map[string]*domain.Document{
			"patterns/strategy": {
				ID: "patterns/strategy", Path: "patterns/strategy.md", Category: "patterns",
				Title: "Strategy Pattern", Body: "# Strategy\n\nSwap algorithms.",
				Outline:            []domain.TOCItem{{Level: 2, Title: "Intent", Slug: "intent"}},
				ReadingTimeMinutes: 1,
			},
			"patterns/observer": {
				ID: "patterns/observer", Path: "patterns/observer.md", Category: "patterns",
				Title: "Observer Pattern", ReadingTimeMinutes: 2,
			},
			"guides/setup": {
				ID: "guides/setup", Path: "guides/setup.md", Category: "guides",
				Title: "Setup", ReadingTimeMinutes: 1,
			},
		},
		links: map[string]domain.NavigationLinks{
			"patterns/strategy": {Next: "patterns/observer"},
			"patterns/observer": {Previous: "patterns/strategy"},
			"guides/setup":      {},
		},
		navigation: []domain.NavigationGroup{
			{Category: "guides", Items: []domain.NavItem{{ID: "guides/setup", Title: "Setup"}}},
			{Category: "patterns", Items: []domain.NavItem{
				{ID: "patterns/strategy", Title: "Strategy Pattern"},
				{ID: "patterns/observer", Title: "Observer Pattern"},
			}},
		},
	}
}

func newTestServer(corpus *mockCorpusService, search *mockSearchService, links *mockLinkService) (*Server, error) {
	ports := &Ports{Corpus: corpus, Search: search}
	if links != nil {
		ports.Links = links
	}
	return NewServer(ports)
}
