package services

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/custodia-labs/docnav/internal/core/domain"
	"github.com/custodia-labs/docnav/internal/core/ports/driven"
	"github.com/custodia-labs/docnav/internal/core/ports/driving"
	"github.com/custodia-labs/docnav/internal/logger"
)

// Ensure LinkService implements the interface.
var _ driving.LinkService = (*LinkService)(nil)

// markdownLink matches [text](target).
var markdownLink = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

// skippedPrefixes mark links that are not checked against the corpus.
var skippedPrefixes = []string{"http://", "https://", "#", "data:", "mailto:"}

// LinkService finds internal markdown links whose targets do not exist.
// It reads pages straight from the corpus source rather than the snapshot,
// so index and readme pages are checked too and line numbers match the file.
type LinkService struct {
	source driven.CorpusSource
}

// NewLinkService creates a link checker over every page of the source.
func NewLinkService(source driven.CorpusSource) *LinkService {
	return &LinkService{source: source}
}

// Check inspects every markdown page under the corpus root.
// Pages that cannot be read are logged and left out of the report.
func (s *LinkService) Check(ctx context.Context) (*domain.LinkReport, error) {
	pages, err := s.source.ScanPages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}

	report := &domain.LinkReport{Broken: []domain.BrokenLink{}}
	for _, relPath := range pages.Paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw, err := s.source.Read(ctx, relPath)
		if err != nil {
			logger.Warn("link check: skipping %s: %v", relPath, err)
			continue
		}
		report.FilesScanned++
		s.checkPage(raw, report)
	}

	sort.SliceStable(report.Broken, func(i, j int) bool {
		a, b := report.Broken[i], report.Broken[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		return a.Line < b.Line
	})

	logger.Info("checked %d links in %d files, %d broken", report.TotalLinks, report.FilesScanned, len(report.Broken))
	return report, nil
}

// checkPage scans the whole file, front matter included, so Line is the
// line a text editor shows.
func (s *LinkService) checkPage(raw *domain.RawDocument, report *domain.LinkReport) {
	for n, line := range strings.Split(string(raw.Content), "\n") {
		for _, m := range markdownLink.FindAllStringSubmatch(line, -1) {
			text, target := m[1], strings.TrimSpace(m[2])
			if skipLink(target) {
				continue
			}
			report.TotalLinks++

			rel, ok := resolveLink(raw.Path, target)
			if !ok {
				continue
			}
			if !s.source.Exists(rel) {
				report.Broken = append(report.Broken, domain.BrokenLink{
					DocumentID: raw.ID,
					Path:       raw.Path,
					Line:       n + 1,
					Text:       text,
					Target:     m[2],
				})
			}
		}
	}
}

func skipLink(target string) bool {
	if target == "" || target == "path" {
		return true
	}
	for _, prefix := range skippedPrefixes {
		if strings.HasPrefix(target, prefix) {
			return true
		}
	}
	return false
}

// resolveLink turns a link target into a path relative to the corpus root.
// Root-anchored targets ("/x") resolve against the root's parent directory.
// It reports false when nothing is left to check after removing the fragment.
func resolveLink(docPath, target string) (string, bool) {
	// Drop an optional link title: [t](file.md "Title").
	if i := strings.IndexAny(target, " \t"); i >= 0 {
		target = target[:i]
	}
	target, _, _ = strings.Cut(target, "#")
	target, _, _ = strings.Cut(target, "?")
	if target == "" {
		return "", false
	}
	if unescaped, err := url.PathUnescape(target); err == nil {
		target = unescaped
	}

	if strings.HasPrefix(target, "/") {
		return path.Join("..", strings.TrimLeft(target, "/")), true
	}
	return path.Join(path.Dir(docPath), target), true
}
