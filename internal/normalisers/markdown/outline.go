package markdown

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/docnav/internal/core/domain"
	"github.com/custodia-labs/docnav/internal/slug"
)

// outlineHeading matches level-2 and level-3 ATX headings.
var outlineHeading = regexp.MustCompile(`^ {0,3}(#{2,3})[ \t]+(.+?)(?:[ \t]+#+)?[ \t]*$`)

// extractOutline lists the level-2 and level-3 headings of body in document
// order. Slugs are unique within the document.
func extractOutline(body string) []domain.TOCItem {
	var (
		fences fenceTracker
		slugs  slug.Set
	)
	outline := make([]domain.TOCItem, 0)

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimRight(line, "\r")
		if fences.inside(line) {
			continue
		}
		m := outlineHeading.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		title := cleanInline(m[2])
		outline = append(outline, domain.TOCItem{
			Level: len(m[1]),
			Title: title,
			Slug:  slugs.Unique(title),
		})
	}
	return outline
}
