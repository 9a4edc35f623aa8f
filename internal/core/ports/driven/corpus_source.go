package driven

import (
	"context"

	"github.com/custodia-labs/docnav/internal/core/domain"
)

// CorpusSource discovers and reads the documents of a corpus.
// The filesystem connector is the only implementation.
type CorpusSource interface {
	// Root returns the corpus root this source reads from.
	Root() string

	// Validate checks the root exists, is a directory and is readable.
	// Failures are *domain.ConfigurationError.
	Validate(ctx context.Context) error

	// Scan walks the corpus and returns candidate document paths.
	// Unreadable subdirectories are reported as warnings, not errors.
	Scan(ctx context.Context) (*ScanResult, error)

	// ScanPages returns every markdown page, including the index and readme
	// pages Scan leaves out. The link checker reads these.
	ScanPages(ctx context.Context) (*ScanResult, error)

	// Read loads one document by its relative path.
	Read(ctx context.Context, relPath string) (*domain.RawDocument, error)

	// Exists reports whether a path relative to the root exists.
	// The path may climb above the root with "..".
	Exists(relPath string) bool

	// Watch emits change events until ctx is cancelled.
	Watch(ctx context.Context) (<-chan domain.CorpusChange, error)

	// Close releases resources.
	Close() error
}

// ScanResult is the output of a corpus scan.
type ScanResult struct {
	// Paths are slash-separated relative paths, sorted ascending.
	Paths []string

	// Warnings lists directories or files that were skipped.
	Warnings []domain.ScanWarning
}
