package mcp

import (
	"github.com/custodia-labs/docnav/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Corpus serves documents, categories and navigation.
	Corpus driving.CorpusService

	// Search provides search capabilities.
	Search driving.SearchService

	// Links checks internal links. Optional.
	Links driving.LinkService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Corpus == nil {
		return ErrMissingCorpusService
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
