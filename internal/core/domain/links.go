package domain

// BrokenLink is an internal markdown link whose target does not exist.
type BrokenLink struct {
	// DocumentID identifies the document containing the link.
	DocumentID string `json:"document_id"`

	// Path is the containing document's relative path.
	Path string `json:"path"`

	// Line is the 1-based line number within the document body.
	Line int `json:"line"`

	// Text is the link text.
	Text string `json:"text"`

	// Target is the link target as written.
	Target string `json:"target"`
}

// LinkReport is the outcome of checking internal links across the corpus.
type LinkReport struct {
	// FilesScanned is the number of documents inspected.
	FilesScanned int `json:"files_scanned"`

	// TotalLinks counts internal links considered.
	TotalLinks int `json:"total_links"`

	// Broken lists links with missing targets, ordered by path then line.
	Broken []BrokenLink `json:"broken"`
}

// Valid returns the number of internal links that resolved.
func (r *LinkReport) Valid() int {
	return r.TotalLinks - len(r.Broken)
}

// SuccessRate returns the share of resolving links as a percentage.
// An empty corpus counts as fully valid.
func (r *LinkReport) SuccessRate() float64 {
	if r.TotalLinks == 0 {
		return 100
	}
	return float64(r.Valid()) / float64(r.TotalLinks) * 100
}

// BrokenByPath groups broken links by containing document path.
func (r *LinkReport) BrokenByPath() map[string][]BrokenLink {
	grouped := make(map[string][]BrokenLink)
	for _, b := range r.Broken {
		grouped[b.Path] = append(grouped[b.Path], b)
	}
	return grouped
}
