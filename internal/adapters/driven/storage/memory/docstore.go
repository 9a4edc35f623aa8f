package memory

import (
	"context"
	"sort"

	"github.com/custodia-labs/docnav/internal/core/domain"
	"github.com/custodia-labs/docnav/internal/core/ports/driven"
)

// Ensure interfaces are implemented.
var (
	_ driven.DocumentStore        = (*DocumentStore)(nil)
	_ driven.DocumentStoreBuilder = StoreBuilder{}
)

// StoreBuilder builds in-memory document stores.
type StoreBuilder struct{}

// Build implements driven.DocumentStoreBuilder.
func (StoreBuilder) Build(docs []domain.Document) (driven.DocumentStore, error) {
	store, err := NewDocumentStore(docs)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// DocumentStore is the in-memory document table of one snapshot.
// It is populated by NewDocumentStore and never mutated afterwards,
// so it needs no locking.
type DocumentStore struct {
	documents map[string]domain.Document
}

// NewDocumentStore builds a store from normalised documents.
// Two documents with the same identifier are rejected with a
// *domain.CollisionError naming every colliding path.
func NewDocumentStore(docs []domain.Document) (*DocumentStore, error) {
	s := &DocumentStore{
		documents: make(map[string]domain.Document, len(docs)),
	}

	paths := make(map[string][]string, len(docs))
	for i := range docs {
		paths[docs[i].ID] = append(paths[docs[i].ID], docs[i].Path)
	}
	if err := firstCollision(paths); err != nil {
		return nil, err
	}

	for i := range docs {
		s.documents[docs[i].ID] = *docs[i].Clone()
	}

	return s, nil
}

// firstCollision reports the lowest colliding identifier, if any.
func firstCollision(paths map[string][]string) error {
	var ids []string
	for id, p := range paths {
		if len(p) > 1 {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	sort.Strings(ids)
	colliding := append([]string(nil), paths[ids[0]]...)
	sort.Strings(colliding)
	return &domain.CollisionError{ID: ids[0], Paths: colliding}
}

// GetDocument returns a copy of one document; callers may modify it freely.
func (s *DocumentStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return doc.Clone(), nil
}
