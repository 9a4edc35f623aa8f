package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docnav/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query    string `json:"query" jsonschema:"the search query; matches titles, tags, categories and descriptions"`
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
	Category string `json:"category,omitempty" jsonschema:"only return documents from this category"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	DocumentID         string  `json:"document_id"`
	Title              string  `json:"title"`
	Description        string  `json:"description,omitempty"`
	Category           string  `json:"category"`
	ReadingTimeMinutes int     `json:"reading_time_minutes"`
	Score              float64 `json:"score"`
	URI                string  `json:"uri"`
}

// GetDocumentInput is the input schema for the get_document tool.
type GetDocumentInput struct {
	ID string `json:"id" jsonschema:"the document identifier, for example patterns/strategy"`
}

// DocumentOutput is the output schema for the get_document tool.
type DocumentOutput struct {
	ID                 string           `json:"id"`
	Path               string           `json:"path"`
	Category           string           `json:"category"`
	Title              string           `json:"title"`
	Description        string           `json:"description,omitempty"`
	Tags               []string         `json:"tags,omitempty"`
	Difficulty         string           `json:"difficulty,omitempty"`
	WordCount          int              `json:"word_count"`
	ReadingTimeMinutes int              `json:"reading_time_minutes"`
	LastModified       string           `json:"last_modified"`
	Outline            []domain.TOCItem `json:"outline"`
	Previous           string           `json:"previous,omitempty"`
	Next               string           `json:"next,omitempty"`
	Body               string           `json:"body"`
}

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct {
	Category string `json:"category,omitempty" jsonschema:"only list documents from this category"`
}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []domain.Summary `json:"documents"`
	Count     int              `json:"count"`
}

// NavigationInput is the (empty) input schema for the get_navigation tool.
type NavigationInput struct{}

// NavigationOutput is the output schema for the get_navigation tool.
type NavigationOutput struct {
	Groups []domain.NavigationGroup `json:"groups"`
}

// CheckLinksInput is the (empty) input schema for the check_links tool.
type CheckLinksInput struct{}

// CheckLinksOutput is the output schema for the check_links tool.
type CheckLinksOutput struct {
	FilesScanned int                 `json:"files_scanned"`
	TotalLinks   int                 `json:"total_links"`
	Broken       []domain.BrokenLink `json:"broken"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Fuzzy search over document titles, tags, categories and descriptions",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_document",
		Description: "Get a document's metadata, outline, previous/next links and markdown body",
	}, s.handleGetDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List documents in navigation order, optionally for one category",
	}, s.handleListDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_navigation",
		Description: "Get the navigation tree: categories and their ordered documents",
	}, s.handleGetNavigation)

	if s.ports.Links != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "check_links",
			Description: "Find internal markdown links whose targets do not exist",
		}, s.handleCheckLinks)
	}
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	opts := domain.SearchOptions{Limit: input.Limit, Category: input.Category}
	results, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		output.Results[i] = SearchResultOutput{
			DocumentID:         results[i].ID,
			Title:              results[i].Title,
			Description:        results[i].Description,
			Category:           results[i].Category,
			ReadingTimeMinutes: results[i].ReadingTimeMinutes,
			Score:              results[i].Score,
			URI:                documentURI(results[i].ID),
		}
	}

	return nil, output, nil
}

// handleGetDocument handles the get_document tool invocation.
func (s *Server) handleGetDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetDocumentInput,
) (*mcp.CallToolResult, DocumentOutput, error) {
	doc, err := s.ports.Corpus.Get(ctx, input.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, DocumentOutput{}, fmt.Errorf("document %q not found", input.ID)
		}
		return nil, DocumentOutput{}, err
	}

	links, err := s.ports.Corpus.Links(ctx, doc.ID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, DocumentOutput{}, err
	}

	outline := doc.Outline
	if outline == nil {
		outline = []domain.TOCItem{}
	}

	return nil, DocumentOutput{
		ID:                 doc.ID,
		Path:               doc.Path,
		Category:           doc.Category,
		Title:              doc.Title,
		Description:        doc.Description,
		Tags:               doc.Tags,
		Difficulty:         doc.Difficulty,
		WordCount:          doc.WordCount,
		ReadingTimeMinutes: doc.ReadingTimeMinutes,
		LastModified:       doc.LastModified.Format(time.RFC3339),
		Outline:            outline,
		Previous:           links.Previous,
		Next:               links.Next,
		Body:               doc.Body,
	}, nil
}

// handleListDocuments handles the list_documents tool invocation.
func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	var (
		docs []domain.Summary
		err  error
	)
	if input.Category != "" {
		docs, err = s.ports.Corpus.ListByCategory(ctx, input.Category)
	} else {
		docs, err = s.ports.Corpus.ListAll(ctx)
	}
	if err != nil {
		return nil, ListDocumentsOutput{}, err
	}
	if docs == nil {
		docs = []domain.Summary{}
	}

	return nil, ListDocumentsOutput{Documents: docs, Count: len(docs)}, nil
}

// handleGetNavigation handles the get_navigation tool invocation.
func (s *Server) handleGetNavigation(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ NavigationInput,
) (*mcp.CallToolResult, NavigationOutput, error) {
	groups, err := s.ports.Corpus.Navigation(ctx)
	if err != nil {
		return nil, NavigationOutput{}, err
	}
	if groups == nil {
		groups = []domain.NavigationGroup{}
	}
	return nil, NavigationOutput{Groups: groups}, nil
}

// handleCheckLinks handles the check_links tool invocation.
func (s *Server) handleCheckLinks(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ CheckLinksInput,
) (*mcp.CallToolResult, CheckLinksOutput, error) {
	report, err := s.ports.Links.Check(ctx)
	if err != nil {
		return nil, CheckLinksOutput{}, err
	}

	broken := report.Broken
	if broken == nil {
		broken = []domain.BrokenLink{}
	}

	return nil, CheckLinksOutput{
		FilesScanned: report.FilesScanned,
		TotalLinks:   report.TotalLinks,
		Broken:       broken,
	}, nil
}
