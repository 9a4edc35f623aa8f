package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/docnav/internal/adapters/driven/search/fuzzy"
	"github.com/custodia-labs/docnav/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docnav/internal/core/domain"
	"github.com/custodia-labs/docnav/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockSource implements driven.CorpusSource over an in-memory file map.
type mockSource struct {
	mu       sync.Mutex
	files    map[string]string
	pages    map[string]string // markdown pages that are not documents (README, index)
	readErrs map[string]error
	warnings []domain.ScanWarning
	scanErr  error
	extra    map[string]bool // paths that exist but are not documents
	changes  chan domain.CorpusChange
	watchErr error
	scans    int
}

func newMockSource(files map[string]string) *mockSource {
	return &mockSource{
		files:    files,
		pages:    make(map[string]string),
		readErrs: make(map[string]error),
		extra:    make(map[string]bool),
	}
}

func (m *mockSource) Root() string { return "/corpus" }

func (m *mockSource) Validate(_ context.Context) error { return m.scanErr }

func (m *mockSource) Scan(ctx context.Context) (*driven.ScanResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scans++
	if m.scanErr != nil {
		return nil, m.scanErr
	}
	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return &driven.ScanResult{Paths: paths, Warnings: m.warnings}, nil
}

func (m *mockSource) ScanPages(ctx context.Context) (*driven.ScanResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.scanErr != nil {
		return nil, m.scanErr
	}
	paths := make([]string, 0, len(m.files)+len(m.pages))
	for p := range m.files {
		paths = append(paths, p)
	}
	for p := range m.pages {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return &driven.ScanResult{Paths: paths}, nil
}

func (m *mockSource) Read(_ context.Context, relPath string) (*domain.RawDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.readErrs[relPath]; err != nil {
		return nil, err
	}
	content, ok := m.files[relPath]
	if !ok {
		content, ok = m.pages[relPath]
	}
	if !ok {
		return nil, fmt.Errorf("read %s: file does not exist", relPath)
	}
	category := "general"
	if dir, _, found := strings.Cut(relPath, "/"); found {
		category = dir
	}
	return &domain.RawDocument{
		ID:       strings.TrimSuffix(strings.ToLower(relPath), path.Ext(relPath)),
		Path:     relPath,
		Category: category,
		Content:  []byte(content),
		ModTime:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}, nil
}

func (m *mockSource) Exists(relPath string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[relPath]; ok {
		return true
	}
	if _, ok := m.pages[relPath]; ok {
		return true
	}
	return m.extra[relPath]
}

func (m *mockSource) Watch(_ context.Context) (<-chan domain.CorpusChange, error) {
	if m.watchErr != nil {
		return nil, m.watchErr
	}
	return m.changes, nil
}

func (m *mockSource) Close() error { return nil }

func (m *mockSource) set(relPath, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[relPath] = content
}

func (m *mockSource) scanCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scans
}

// mockNormaliser reads "key: value" lines (title, description, order, tags)
// and keeps the whole content as the body.
type mockNormaliser struct{}

func (mockNormaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	doc := &domain.Document{
		ID:                 raw.ID,
		Path:               raw.Path,
		Category:           raw.Category,
		Title:              path.Base(raw.ID),
		Body:               string(raw.Content),
		ReadingTimeMinutes: 1,
		LastModified:       raw.ModTime,
	}
	for _, line := range strings.Split(string(raw.Content), "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)
		switch key {
		case "title":
			doc.Title = value
		case "description":
			doc.Description = value
		case "order":
			if n, err := strconv.Atoi(value); err == nil {
				doc.Order = &n
			}
		case "tags":
			doc.Tags = strings.Split(value, ",")
		}
	}
	return doc, nil
}

// failingNormaliser rejects every document.
type failingNormaliser struct{}

func (failingNormaliser) Normalise(_ context.Context, _ *domain.RawDocument) (*domain.Document, error) {
	return nil, errors.New("cannot normalise")
}

// newTestIndexer wires the mock source to the in-memory store and fuzzy index.
func newTestIndexer(source driven.CorpusSource, categoryOrder ...string) *Indexer {
	ix := NewIndexer(source, mockNormaliser{}, memory.StoreBuilder{}, fuzzy.NewBuilder(nil), categoryOrder)
	ix.SetWorkers(2)
	return ix
}

// patternCorpus is a small corpus shared by service tests.
func patternCorpus() map[string]string {
	return map[string]string{
		"patterns/solid.md":    "title: SOLID Principles\ndescription: Five design rules\norder: 1\ntags: design",
		"patterns/strategy.md": "title: Strategy Pattern\norder: 2\nSee [observer](observer.md).",
		"patterns/observer.md": "title: Observer Pattern\nSee [missing](gone.md) and [site](https://example.com).",
		"guides/setup.md":      "title: Setup\nSee [strategy](../patterns/strategy.md#intro).",
		"overview.md":          "title: Overview\n[Root](/corpus/overview.md)",
	}
}
