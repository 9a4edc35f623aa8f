package filesystem

import (
	"net/url"
	"path"
	"strings"

	"github.com/custodia-labs/docnav/internal/slug"
)

// Identifier maps a relative corpus path to a stable document identifier:
// the extension is dropped and each segment slugified.
//
//	"Design Patterns/Café Strategy.md" -> "design-patterns/cafe-strategy"
func Identifier(relPath string) string {
	relPath = strings.TrimSuffix(relPath, path.Ext(relPath))
	segments := strings.Split(relPath, "/")
	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		out = append(out, segment(seg))
	}
	return strings.Join(out, "/")
}

// Category returns the category of a relative path: its slugified first
// directory segment, or def for files at the corpus root.
func Category(relPath, def string) string {
	dir, _, found := strings.Cut(relPath, "/")
	if !found {
		return def
	}
	return segment(dir)
}

// segment slugifies one path segment. Segments with no word characters
// fall back to an escaped form so distinct names stay distinct.
func segment(seg string) string {
	if s := slug.Make(seg); s != "" {
		return s
	}
	return url.PathEscape(seg)
}
