// Package markdown turns markdown corpus files into documents: front matter,
// title and description heuristics, outline and reading time.
package markdown

import (
	"context"
	"math"
	"path"
	"regexp"
	"strings"

	"github.com/custodia-labs/docnav/internal/core/domain"
	"github.com/custodia-labs/docnav/internal/core/ports/driven"
	"github.com/custodia-labs/docnav/internal/logger"
	"github.com/custodia-labs/docnav/internal/slug"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles Markdown documents.
type Normaliser struct{}

// New creates a new Markdown normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Normalise converts a raw markdown file into a document.
// Metadata comes from front matter first, then from heuristics; a malformed
// front matter block is logged and ignored. Only a nil input is an error.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	content := strings.ReplaceAll(string(raw.Content), "\r\n", "\n")

	fm := &frontMatter{}
	format, block, body := splitFrontMatter(content)
	if format != "" {
		parsed, err := parseFrontMatter(format, block)
		if err != nil {
			logger.Warn("%s: ignoring front matter: %v", raw.Path, err)
		} else {
			fm = parsed
		}
	}

	doc := &domain.Document{
		ID:           raw.ID,
		Path:         raw.Path,
		Category:     raw.Category,
		Title:        fm.Title,
		Description:  fm.Description,
		Body:         body,
		Outline:      extractOutline(body),
		LastModified: raw.ModTime,
		Tags:         fm.Tags,
		Order:        fm.Order,
		Difficulty:   fm.Difficulty,
		Extra:        fm.Extra,
	}

	if doc.Title == "" {
		doc.Title = firstHeading(body)
	}
	if doc.Title == "" {
		doc.Title = titleFromID(raw.ID)
	}
	if doc.Description == "" {
		doc.Description = labelledDescription(body)
	}
	if !fm.LastModified.IsZero() {
		doc.LastModified = fm.LastModified
	}

	doc.WordCount = len(strings.Fields(stripMarkdown(body)))
	doc.ReadingTimeMinutes = readingTime(doc.WordCount)

	return doc, nil
}

// titleFromID turns the last identifier segment into words.
func titleFromID(id string) string {
	if title := slug.Words(path.Base(id)); title != "" && title != "." && title != "/" {
		return title
	}
	return "Untitled"
}

// readingTime is ceil(words / WordsPerMinute) with a floor of one minute.
func readingTime(words int) int {
	minutes := int(math.Ceil(float64(words) / domain.WordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}

var (
	codeBlock     = regexp.MustCompile("(?ms)^ {0,3}(```|~~~).*?^ {0,3}(```|~~~)[^\\n]*$")
	inlineCodeAll = regexp.MustCompile("`[^`]+`")
	images        = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	links         = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	headings      = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	blockquote    = regexp.MustCompile(`(?m)^>\s*`)
	hr            = regexp.MustCompile(`(?m)^[-*_]{3,}\s*$`)
	listMarkers   = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	numberedList  = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	tableRule     = regexp.MustCompile(`(?m)^\|?[\s:|-]+\|[\s:|-]*$`)
)

// stripMarkdown removes markdown syntax and code so only prose words remain.
func stripMarkdown(content string) string {
	content = codeBlock.ReplaceAllString(content, "")
	content = inlineCodeAll.ReplaceAllString(content, "")
	content = images.ReplaceAllString(content, "")
	content = links.ReplaceAllString(content, "$1")
	content = headings.ReplaceAllString(content, "")
	content = blockquote.ReplaceAllString(content, "")
	content = hr.ReplaceAllString(content, "")
	content = tableRule.ReplaceAllString(content, "")
	content = listMarkers.ReplaceAllString(content, "")
	content = numberedList.ReplaceAllString(content, "")

	content = strings.ReplaceAll(content, "**", "")
	content = strings.ReplaceAll(content, "__", "")
	content = strings.ReplaceAll(content, "*", "")
	content = strings.ReplaceAll(content, "|", " ")

	return strings.TrimSpace(content)
}
