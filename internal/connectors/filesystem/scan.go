package filesystem

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/custodia-labs/docnav/internal/core/domain"
	"github.com/custodia-labs/docnav/internal/core/ports/driven"
	"github.com/custodia-labs/docnav/internal/logger"
)

// dirEntry is a directory waiting to be listed.
type dirEntry struct {
	abs string
	rel string
}

// Scan walks the corpus tree and returns candidate document paths.
func (s *Source) Scan(ctx context.Context) (*driven.ScanResult, error) {
	return s.walk(ctx, s.isCandidate)
}

// ScanPages returns every markdown page under the root, including the
// index and readme pages Scan leaves out. Hidden entries, skipped
// directories and exclude patterns still apply.
func (s *Source) ScanPages(ctx context.Context) (*driven.ScanResult, error) {
	return s.walk(ctx, s.isPage)
}

// walk lists the tree with an explicit stack and keeps the files accept
// approves. Physical directories are all listed before any symlinked
// directory is followed, so a real path is always reached by its own name
// first and an alias cannot take over its files. Each real path is listed
// once, which also ends symlink cycles.
func (s *Source) walk(ctx context.Context, accept func(rel string) bool) (*driven.ScanResult, error) {
	if err := s.Validate(ctx); err != nil {
		return nil, err
	}

	result := &driven.ScanResult{}
	visited := make(map[string]bool)
	stack := []dirEntry{{abs: s.rootPath, rel: ""}}
	var linked []dirEntry

	for len(stack) > 0 || len(linked) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var dir dirEntry
		if len(stack) > 0 {
			dir = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		} else {
			dir = linked[0]
			linked = linked[1:]
		}

		realPath, err := filepath.EvalSymlinks(dir.abs)
		if err != nil {
			s.warn(result, dir.rel, err.Error())
			continue
		}
		if visited[realPath] {
			logger.Debug("already visited %s, skipping", displayPath(dir.rel))
			continue
		}
		visited[realPath] = true

		entries, err := os.ReadDir(dir.abs)
		if err != nil {
			if dir.rel == "" {
				return nil, &domain.ConfigurationError{Root: s.rootPath, Err: err}
			}
			s.warn(result, dir.rel, err.Error())
			continue
		}

		for _, entry := range entries {
			rel := path.Join(dir.rel, entry.Name())
			abs := filepath.Join(dir.abs, entry.Name())

			isDir := entry.IsDir()
			isLink := entry.Type()&fs.ModeSymlink != 0
			if isLink {
				info, err := os.Stat(abs)
				if err != nil {
					s.warn(result, rel, "broken symlink")
					continue
				}
				isDir = info.IsDir()
			}

			if isDir {
				if s.skipDir(rel) {
					continue
				}
				if isLink {
					linked = append(linked, dirEntry{abs: abs, rel: rel})
				} else {
					stack = append(stack, dirEntry{abs: abs, rel: rel})
				}
				continue
			}

			if accept(rel) {
				result.Paths = append(result.Paths, rel)
			}
		}
	}

	sort.Strings(result.Paths)
	sort.Slice(result.Warnings, func(i, j int) bool {
		return result.Warnings[i].Path < result.Warnings[j].Path
	})

	logger.Debug("scanned %s: %d files, %d warnings", s.rootPath, len(result.Paths), len(result.Warnings))
	return result, nil
}

func (s *Source) warn(result *driven.ScanResult, rel, msg string) {
	w := domain.ScanWarning{Path: displayPath(rel), Message: msg}
	logger.Warn("skipping %s", w)
	result.Warnings = append(result.Warnings, w)
}

func displayPath(rel string) string {
	if rel == "" {
		return "."
	}
	return rel
}
