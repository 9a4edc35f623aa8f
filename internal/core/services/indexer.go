package services

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docnav/internal/core/domain"
	"github.com/custodia-labs/docnav/internal/core/ports/driven"
	"github.com/custodia-labs/docnav/internal/logger"
)

// snapshot is one immutable, internally consistent view of the corpus.
// It is replaced wholesale on rebuild and never mutated after construction.
type snapshot struct {
	store      driven.DocumentStore
	index      driven.SearchIndex
	navigation []domain.NavigationGroup
	links      map[string]domain.NavigationLinks
	summaries  []domain.Summary
	byCategory map[string][]domain.Summary
	report     domain.BuildReport
}

// Indexer runs the build pipeline: scan, read and normalise, collision
// check, navigation, search index.
type Indexer struct {
	source        driven.CorpusSource
	normaliser    driven.Normaliser
	stores        driven.DocumentStoreBuilder
	indexes       driven.SearchIndexBuilder
	categoryOrder []string
	workers       int
}

// NewIndexer creates an indexer. categoryOrder may be nil.
func NewIndexer(
	source driven.CorpusSource,
	normaliser driven.Normaliser,
	stores driven.DocumentStoreBuilder,
	indexes driven.SearchIndexBuilder,
	categoryOrder []string,
) *Indexer {
	return &Indexer{
		source:        source,
		normaliser:    normaliser,
		stores:        stores,
		indexes:       indexes,
		categoryOrder: categoryOrder,
		workers:       runtime.GOMAXPROCS(0),
	}
}

// SetWorkers bounds how many files are read and normalised at once.
func (ix *Indexer) SetWorkers(n int) {
	if n > 0 {
		ix.workers = n
	}
}

// processed is the outcome of one file, kept at the file's scan position.
type processed struct {
	doc     *domain.Document
	warning *domain.ScanWarning
}

// Build produces a new snapshot. Unreadable files become warnings;
// configuration errors, collisions and cancellation fail the build.
func (ix *Indexer) Build(ctx context.Context) (*snapshot, error) {
	started := time.Now()
	generation := uuid.NewString()
	logger.Section("Rebuild " + generation)

	scan, err := ix.source.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan corpus: %w", err)
	}
	logger.Debug("scan found %d candidate files", len(scan.Paths))

	done := logger.Stage("read and normalise")
	results, err := ix.process(ctx, scan.Paths)
	done()
	if err != nil {
		return nil, err
	}

	warnings := append([]domain.ScanWarning(nil), scan.Warnings...)
	docs := make([]domain.Document, 0, len(results))
	for _, r := range results {
		switch {
		case r.warning != nil:
			warnings = append(warnings, *r.warning)
		case r.doc != nil:
			docs = append(docs, *r.doc)
		}
	}

	store, err := ix.stores.Build(docs)
	if err != nil {
		return nil, fmt.Errorf("build document table: %w", err)
	}

	navigation, links := BuildNavigation(docs, ix.categoryOrder)

	entries := make([]domain.SearchEntry, len(docs))
	for i := range docs {
		entries[i] = docs[i].SearchEntry()
	}
	done = logger.Stage("search index")
	index, err := ix.indexes.Build(entries)
	done()
	if err != nil {
		return nil, fmt.Errorf("build search index: %w", err)
	}

	snap := &snapshot{
		store:      store,
		index:      index,
		navigation: navigation,
		links:      links,
		byCategory: make(map[string][]domain.Summary, len(navigation)),
		report: domain.BuildReport{
			Generation: generation,
			BuiltAt:    time.Now(),
			Duration:   time.Since(started),
			Documents:  len(docs),
			Categories: len(navigation),
			Warnings:   warnings,
		},
	}

	for _, group := range navigation {
		summaries := make([]domain.Summary, 0, len(group.Items))
		for _, item := range group.Items {
			doc, err := store.GetDocument(ctx, item.ID)
			if err != nil {
				return nil, fmt.Errorf("summarise %s: %w", item.ID, err)
			}
			summaries = append(summaries, doc.Summary())
		}
		snap.byCategory[group.Category] = summaries
		snap.summaries = append(snap.summaries, summaries...)
	}
	if snap.summaries == nil {
		snap.summaries = []domain.Summary{}
	}

	logger.Info("snapshot %s: %d documents in %d categories, %d warnings (%s)",
		generation, len(docs), len(navigation), len(warnings), snap.report.Duration.Round(time.Millisecond))
	return snap, nil
}

// process reads and normalises files with a bounded number of workers.
// Results are placed by scan position so output order is deterministic.
func (ix *Indexer) process(ctx context.Context, paths []string) ([]processed, error) {
	results := make([]processed, len(paths))
	throttle := make(chan struct{}, ix.workers)
	var wg sync.WaitGroup

	for i, p := range paths {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}

		throttle <- struct{}{}
		wg.Add(1)
		go func(i int, p string) {
			defer wg.Done()
			defer func() { <-throttle }()
			results[i] = ix.processOne(ctx, p)
		}(i, p)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (ix *Indexer) processOne(ctx context.Context, relPath string) processed {
	raw, err := ix.source.Read(ctx, relPath)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return processed{}
		}
		w := domain.ScanWarning{Path: relPath, Message: err.Error()}
		logger.Warn("skipping %s", w)
		return processed{warning: &w}
	}

	doc, err := ix.normaliser.Normalise(ctx, raw)
	if err != nil {
		w := domain.ScanWarning{Path: relPath, Message: err.Error()}
		logger.Warn("skipping %s", w)
		return processed{warning: &w}
	}
	return processed{doc: doc}
}
