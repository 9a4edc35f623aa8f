package domain

import "time"

// WordsPerMinute is the reading speed used to derive ReadingTimeMinutes.
const WordsPerMinute = 200

// Document represents a processed corpus document.
// It is the canonical representation after normalisation.
type Document struct {
	// ID is the URL-safe identifier derived from the document's relative path.
	ID string `json:"id"`

	// Path is the slash-separated path relative to the corpus root.
	Path string `json:"path"`

	// Category is derived from the top-level directory of Path.
	Category string `json:"category"`

	// Title is the explicit title, the first level-1 heading, or words from ID.
	Title string `json:"title"`

	// Description is the explicit description or a labelled body line.
	Description string `json:"description,omitempty"`

	// Body is the raw text with any front matter block removed.
	Body string `json:"body"`

	// Outline lists level-2 and level-3 headings in document order.
	Outline []TOCItem `json:"outline"`

	// WordCount is the number of words in the body, excluding markup and code.
	WordCount int `json:"word_count"`

	// ReadingTimeMinutes is ceil(WordCount / WordsPerMinute), at least 1.
	ReadingTimeMinutes int `json:"reading_time_minutes"`

	// LastModified comes from front matter when given, else the file mtime.
	LastModified time.Time `json:"last_modified"`

	// Tags are explicit front matter tags, deduplicated and sorted.
	Tags []string `json:"tags,omitempty"`

	// Order controls position within the category; nil when not given.
	Order *int `json:"order,omitempty"`

	// Difficulty is an explicit front matter value, uninterpreted.
	Difficulty string `json:"difficulty,omitempty"`

	// Extra holds unrecognised front matter keys, preserved as parsed.
	Extra map[string]any `json:"extra,omitempty"`
}

// Clone returns a deep copy. Snapshot documents are shared by every reader,
// so stores hand out clones.
func (d *Document) Clone() *Document {
	c := *d
	if d.Outline != nil {
		c.Outline = append([]TOCItem(nil), d.Outline...)
	}
	if d.Tags != nil {
		c.Tags = append([]string(nil), d.Tags...)
	}
	if d.Order != nil {
		order := *d.Order
		c.Order = &order
	}
	if d.Extra != nil {
		c.Extra = cloneMap(d.Extra)
	}
	return &c
}

// cloneMap copies front matter values, descending into nested tables and lists.
func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}

// Summary returns the lightweight projection used in listings and results.
func (d *Document) Summary() Summary {
	return Summary{
		ID:                 d.ID,
		Title:              d.Title,
		Description:        d.Description,
		Category:           d.Category,
		ReadingTimeMinutes: d.ReadingTimeMinutes,
	}
}

// SearchEntry returns the searchable projection of the document.
func (d *Document) SearchEntry() SearchEntry {
	return SearchEntry{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Category:    d.Category,
		Tags:        d.Tags,
	}
}

// TOCItem is one heading in a document outline.
type TOCItem struct {
	// Level is 2 or 3.
	Level int `json:"level"`

	// Title is the heading text with any anchor override removed.
	Title string `json:"title"`

	// Slug is the anchor, unique within the document.
	Slug string `json:"slug"`
}

// Summary is a lightweight view of a document.
type Summary struct {
	ID                 string `json:"id"`
	Title              string `json:"title"`
	Description        string `json:"description,omitempty"`
	Category           string `json:"category"`
	ReadingTimeMinutes int    `json:"reading_time_minutes"`
}

// NavItem is a navigation entry within a category.
type NavItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// NavigationGroup is the ordered list of documents of one category.
type NavigationGroup struct {
	Category string    `json:"category"`
	Items    []NavItem `json:"items"`
}

// NavigationLinks holds the neighbours of a document within its category.
// An empty string means there is no neighbour on that side.
type NavigationLinks struct {
	Previous string `json:"previous,omitempty"`
	Next     string `json:"next,omitempty"`
}

// HasPrevious reports whether a previous document exists.
func (l NavigationLinks) HasPrevious() bool {
	return l.Previous != ""
}

// HasNext reports whether a next document exists.
func (l NavigationLinks) HasNext() bool {
	return l.Next != ""
}
