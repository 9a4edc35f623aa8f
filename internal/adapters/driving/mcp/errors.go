// Package mcp provides an MCP (Model Context Protocol) server adapter for docnav.
// It is the request-serving layer: AI assistants search, list and read
// corpus documents through tools and resources backed by the content store.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrMissingCorpusService is returned when the corpus service is not provided.
var ErrMissingCorpusService = errors.New("mcp: corpus service is required")
