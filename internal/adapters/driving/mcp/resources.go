package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docnav/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for docnav resources.
	uriScheme = "docnav://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the navigation tree.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "navigation",
		Name:        "navigation",
		Description: "Categories and their documents in navigation order",
		MIMEType:    "application/json",
	}, s.handleNavigationResource)

	// Template for the documents of one category.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "categories/{category}",
		Name:        "category-documents",
		Description: "Documents of a specific category in navigation order",
		MIMEType:    "application/json",
	}, s.handleCategoryResource)

	// Template for document content. Identifiers contain slashes.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{+documentId}",
		Name:        "document-content",
		Description: "Markdown body of a specific document",
		MIMEType:    "text/markdown",
	}, s.handleDocumentContentResource)
}

// handleNavigationResource returns the navigation tree.
func (s *Server) handleNavigationResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	groups, err := s.ports.Corpus.Navigation(ctx)
	if err != nil {
		return nil, fmt.Errorf("building navigation: %w", err)
	}
	if groups == nil {
		groups = []domain.NavigationGroup{}
	}
	return jsonResource(req.Params.URI, groups)
}

// handleCategoryResource returns the documents of one category.
func (s *Server) handleCategoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract category from URI: docnav://categories/{category}
	category := extractCategory(req.Params.URI)
	if category == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	docs, err := s.ports.Corpus.ListByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	if len(docs) == 0 {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return jsonResource(req.Params.URI, docs)
}

// handleDocumentContentResource returns the markdown body of a document.
func (s *Server) handleDocumentContentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract documentId from URI: docnav://documents/{+documentId}
	docID := extractDocumentID(req.Params.URI)
	if docID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	doc, err := s.ports.Corpus.Get(ctx, docID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("getting document: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     doc.Body,
		}},
	}, nil
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// documentURI is the resource URI of a document's content.
func documentURI(id string) string {
	return uriScheme + "documents/" + id
}

// extractCategory extracts the category from a URI like docnav://categories/{category}.
func extractCategory(uri string) string {
	const prefix = uriScheme + "categories/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	category := strings.TrimPrefix(uri, prefix)
	if strings.Contains(category, "/") {
		return ""
	}
	return category
}

// extractDocumentID extracts the document ID from a URI like docnav://documents/{documentId}.
func extractDocumentID(uri string) string {
	const prefix = uriScheme + "documents/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.Trim(strings.TrimPrefix(uri, prefix), "/")
}
