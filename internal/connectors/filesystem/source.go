// Package filesystem implements driven.CorpusSource over a local directory tree.
package filesystem

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/docnav/internal/core/domain"
	"github.com/custodia-labs/docnav/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.CorpusSource = (*Source)(nil)

// utf8BOM is stripped from the start of documents.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Options controls which files count as corpus documents.
type Options struct {
	// Extensions lists accepted extensions, with leading dot. Matched case-insensitively.
	Extensions []string

	// Exclude holds glob patterns matched against relative paths and base names.
	Exclude []string

	// SkipDirs lists directory names never descended into.
	SkipDirs []string

	// DefaultCategory is given to documents at the corpus root.
	DefaultCategory string
}

// OptionsFromSettings maps corpus settings onto scanner options.
func OptionsFromSettings(s domain.CorpusSettings) Options {
	return Options{
		Extensions:      s.Extensions,
		Exclude:         s.Exclude,
		SkipDirs:        s.SkipDirs,
		DefaultCategory: s.DefaultCategory,
	}
}

// Source reads a corpus from a directory tree.
type Source struct {
	rootPath   string
	opts       Options
	extensions map[string]bool
	skipDirs   map[string]bool

	mu     sync.Mutex
	closed bool
}

// New creates a filesystem source rooted at rootPath.
func New(rootPath string, opts Options) *Source {
	if len(opts.Extensions) == 0 {
		opts.Extensions = domain.DefaultAppSettings().Corpus.Extensions
	}
	if opts.DefaultCategory == "" {
		opts.DefaultCategory = domain.DefaultAppSettings().Corpus.DefaultCategory
	}

	extensions := make(map[string]bool, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extensions[ext] = true
	}

	skipDirs := make(map[string]bool, len(opts.SkipDirs))
	for _, dir := range opts.SkipDirs {
		skipDirs[dir] = true
	}

	return &Source{
		rootPath:   rootPath,
		opts:       opts,
		extensions: extensions,
		skipDirs:   skipDirs,
	}
}

// Root returns the corpus root path.
func (s *Source) Root() string {
	return s.rootPath
}

// Validate checks that the root exists, is a directory, and can be listed.
func (s *Source) Validate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.rootPath == "" {
		return &domain.ConfigurationError{Root: s.rootPath, Err: errors.New("no corpus root configured")}
	}

	info, err := os.Stat(s.rootPath)
	if err != nil {
		return &domain.ConfigurationError{Root: s.rootPath, Err: err}
	}
	if !info.IsDir() {
		return &domain.ConfigurationError{Root: s.rootPath, Err: errors.New("not a directory")}
	}

	f, err := os.Open(s.rootPath)
	if err != nil {
		return &domain.ConfigurationError{Root: s.rootPath, Err: err}
	}
	defer f.Close()
	if _, err := f.Readdirnames(1); err != nil && !errors.Is(err, io.EOF) {
		return &domain.ConfigurationError{Root: s.rootPath, Err: err}
	}
	return nil
}

// Read loads one document by its slash-separated relative path.
func (s *Source) Read(ctx context.Context, relPath string) (*domain.RawDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	clean := path.Clean(filepath.ToSlash(relPath))
	if clean == "." || strings.HasPrefix(clean, "../") || path.IsAbs(clean) {
		return nil, fmt.Errorf("%w: path %q is outside the corpus", domain.ErrInvalidInput, relPath)
	}

	absPath := filepath.Join(s.rootPath, filepath.FromSlash(clean))
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", clean, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrInvalidInput, clean)
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", clean, err)
	}
	content = bytes.TrimPrefix(content, utf8BOM)
	content = bytes.ToValidUTF8(content, []byte("�"))

	return &domain.RawDocument{
		ID:       Identifier(clean),
		Path:     clean,
		Category: Category(clean, s.opts.DefaultCategory),
		Content:  content,
		ModTime:  info.ModTime(),
	}, nil
}

// Exists reports whether relPath, resolved against the root, exists.
func (s *Source) Exists(relPath string) bool {
	_, err := os.Stat(filepath.Join(s.rootPath, filepath.FromSlash(relPath)))
	return err == nil
}

// Close marks the source closed. Close is idempotent.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *Source) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// isCandidate reports whether a file qualifies as a corpus document.
func (s *Source) isCandidate(relPath string) bool {
	return s.isPage(relPath) && !isIndexFile(path.Base(relPath))
}

// isPage reports whether a file is a markdown page, whether or not it is
// an index or readme page.
func (s *Source) isPage(relPath string) bool {
	name := path.Base(relPath)
	if isHidden(name) {
		return false
	}
	ext := strings.ToLower(path.Ext(name))
	if !s.extensions[ext] {
		return false
	}
	return !s.isExcluded(relPath)
}

// isExcluded matches the user's exclude globs against the path and its base name.
func (s *Source) isExcluded(relPath string) bool {
	name := path.Base(relPath)
	for _, pattern := range s.opts.Exclude {
		if ok, _ := path.Match(pattern, relPath); ok {
			return true
		}
		if ok, _ := path.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// skipDir reports whether a directory must not be descended into.
func (s *Source) skipDir(relPath string) bool {
	name := path.Base(relPath)
	return isHidden(name) || s.skipDirs[name] || s.isExcluded(relPath)
}

// isHidden checks if a file or directory name is hidden (starts with dot).
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// isIndexFile matches index/readme conventions, which are not content pages.
func isIndexFile(name string) bool {
	stem := strings.ToLower(strings.TrimSuffix(name, path.Ext(name)))
	switch stem {
	case "index", "_index", "readme":
		return true
	default:
		return false
	}
}
