package filesystem

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/docnav/internal/core/domain"
	"github.com/custodia-labs/docnav/internal/logger"
)

// ErrSourceClosed is returned by Watch after Close.
var ErrSourceClosed = errors.New("filesystem source closed")

// Watch emits corpus changes until ctx is cancelled.
// Directories are watched recursively; new directories are added as they appear.
func (s *Source) Watch(ctx context.Context) (<-chan domain.CorpusChange, error) {
	if s.isClosed() {
		return nil, ErrSourceClosed
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := s.addTree(watcher, s.rootPath); err != nil {
		watcher.Close()
		return nil, err
	}

	changes := make(chan domain.CorpusChange)

	go func() {
		defer close(changes)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				change := s.handleFsEvent(event)
				if change == nil {
					continue
				}
				if change.Type == domain.ChangeCreated && isDirectory(event.Name) {
					if err := s.addTree(watcher, event.Name); err != nil {
						logger.Warn("watch %s: %v", change.Path, err)
					}
				}
				select {
				case changes <- *change:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("watcher error: %v", err)
			}
		}
	}()

	return changes, nil
}

// addTree registers dir and every non-skipped subdirectory with the watcher.
func (s *Source) addTree(watcher *fsnotify.Watcher, dir string) error {
	stack := []string{dir}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if err := watcher.Add(current); err != nil {
			if current == dir {
				return err
			}
			logger.Warn("watch %s: %v", current, err)
			continue
		}

		entries, err := os.ReadDir(current)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			abs := filepath.Join(current, entry.Name())
			if rel, ok := s.relative(abs); ok && s.skipDir(rel) {
				continue
			}
			stack = append(stack, abs)
		}
	}
	return nil
}

// handleFsEvent converts a filesystem event to a CorpusChange.
// Returns nil for events that cannot affect the corpus.
func (s *Source) handleFsEvent(event fsnotify.Event) *domain.CorpusChange {
	rel, ok := s.relative(event.Name)
	if !ok {
		return nil
	}

	var changeType domain.ChangeType
	switch {
	case event.Op&fsnotify.Create != 0:
		changeType = domain.ChangeCreated
	case event.Op&fsnotify.Write != 0:
		changeType = domain.ChangeUpdated
	case event.Op&fsnotify.Remove != 0, event.Op&fsnotify.Rename != 0:
		changeType = domain.ChangeDeleted
	default:
		return nil
	}

	if isDirectory(event.Name) {
		if s.skipDir(rel) || changeType != domain.ChangeCreated {
			return nil
		}
		return &domain.CorpusChange{Type: changeType, Path: rel}
	}

	// A removed path may have been a file or a directory; only hidden and
	// excluded names can be ruled out.
	if changeType == domain.ChangeDeleted {
		if isHidden(filepath.Base(rel)) || s.isExcluded(rel) {
			return nil
		}
		return &domain.CorpusChange{Type: changeType, Path: rel}
	}

	if !s.isCandidate(rel) {
		return nil
	}
	return &domain.CorpusChange{Type: changeType, Path: rel}
}

// relative converts an absolute path under the root to a slash-separated relative path.
func (s *Source) relative(absPath string) (string, bool) {
	rel, err := filepath.Rel(s.rootPath, absPath)
	if err != nil || rel == "." || rel == ".." || len(rel) > 2 && rel[:3] == ".."+string(filepath.Separator) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func isDirectory(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
