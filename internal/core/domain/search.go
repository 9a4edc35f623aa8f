package domain

// DefaultSearchLimit is the result cap when a query does not set one.
const DefaultSearchLimit = 10

// SearchOptions configures a search query.
type SearchOptions struct {
	// Limit is the maximum number of results. Zero means the default;
	// negative values are rejected.
	Limit int

	// Category restricts results to one category when non-empty.
	Category string
}

// SearchEntry is the searchable projection of a Document.
type SearchEntry struct {
	ID          string
	Title       string
	Description string
	Category    string
	Tags        []string
}

// SearchResult represents a single ranked hit.
type SearchResult struct {
	Summary

	// Score is the relevance score; higher is better.
	Score float64 `json:"score"`
}
