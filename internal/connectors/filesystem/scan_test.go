package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docnav/internal/core/domain"
)

func TestSource_Scan(t *testing.T) {
	ctx := context.Background()

	t.Run("finds candidate documents in sorted order", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "patterns/strategy.md", "# Strategy")
		writeFile(t, root, "patterns/observer.md", "# Observer")
		writeFile(t, root, "guides/advanced/errors.markdown", "# Errors")
		writeFile(t, root, "overview.md", "# Overview")

		result, err := New(root, Options{}).Scan(ctx)

		require.NoError(t, err)
		assert.Equal(t, []string{
			"guides/advanced/errors.markdown",
			"overview.md",
			"patterns/observer.md",
			"patterns/strategy.md",
		}, result.Paths)
		assert.Empty(t, result.Warnings)
	})

	t.Run("applies exclusion rules", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "patterns/strategy.md", "# Strategy")
		writeFile(t, root, "patterns/README.md", "# Readme")
		writeFile(t, root, "patterns/index.md", "# Index")
		writeFile(t, root, "patterns/_index.md", "# Index")
		writeFile(t, root, "patterns/diagram.svg", "<svg/>")
		writeFile(t, root, "patterns/diagram.png", "png")
		writeFile(t, root, "patterns/.draft.md", "# Draft")
		writeFile(t, root, ".hidden/secret.md", "# Secret")
		writeFile(t, root, "node_modules/pkg/readme.md", "# Pkg")
		writeFile(t, root, "node_modules/pkg/doc.md", "# Pkg")
		writeFile(t, root, "drafts/wip.md", "# WIP")
		writeFile(t, root, "patterns/todo.tmp.md", "# tmp")

		src := New(root, Options{
			SkipDirs: []string{"node_modules"},
			Exclude:  []string{"drafts", "*.tmp.md"},
		})
		result, err := src.Scan(ctx)

		require.NoError(t, err)
		assert.Equal(t, []string{"patterns/strategy.md"}, result.Paths)
	})

	t.Run("empty corpus is not an error", func(t *testing.T) {
		result, err := New(t.TempDir(), Options{}).Scan(ctx)

		require.NoError(t, err)
		assert.Empty(t, result.Paths)
	})

	t.Run("missing root is a configuration error", func(t *testing.T) {
		_, err := New(filepath.Join(t.TempDir(), "missing"), Options{}).Scan(ctx)
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})

	t.Run("follows symlinked directories once", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "patterns/strategy.md", "# Strategy")
		// patterns/loop -> root creates a cycle.
		if err := os.Symlink(root, filepath.Join(root, "patterns", "loop")); err != nil {
			t.Skipf("symlinks unsupported: %v", err)
		}

		result, err := New(root, Options{}).Scan(ctx)

		require.NoError(t, err)
		assert.Equal(t, []string{"patterns/strategy.md"}, result.Paths)
	})

	t.Run("follows symlink to outside directory", func(t *testing.T) {
		root := t.TempDir()
		outside := t.TempDir()
		writeFile(t, outside, "shared.md", "# Shared")
		if err := os.Symlink(outside, filepath.Join(root, "linked")); err != nil {
			t.Skipf("symlinks unsupported: %v", err)
		}

		result, err := New(root, Options{}).Scan(ctx)

		require.NoError(t, err)
		assert.Equal(t, []string{"linked/shared.md"}, result.Paths)
	})

	t.Run("symlinked alias does not take over real paths", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "patterns/strategy.md", "# Strategy")
		writeFile(t, root, "patterns/solid/intro.md", "# SOLID")
		// zz-alias is listed after patterns but would be popped first from a LIFO stack.
		if err := os.Symlink(filepath.Join(root, "patterns"), filepath.Join(root, "zz-alias")); err != nil {
			t.Skipf("symlinks unsupported: %v", err)
		}
		if err := os.Symlink(filepath.Join(root, "patterns", "solid"), filepath.Join(root, "aa-solid")); err != nil {
			t.Skipf("symlinks unsupported: %v", err)
		}

		result, err := New(root, Options{}).Scan(ctx)

		require.NoError(t, err)
		assert.Equal(t, []string{"patterns/solid/intro.md", "patterns/strategy.md"}, result.Paths)
		assert.Empty(t, result.Warnings)
	})

	t.Run("broken symlink becomes a warning", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "a.md", "# A")
		if err := os.Symlink(filepath.Join(root, "gone"), filepath.Join(root, "dangling.md")); err != nil {
			t.Skipf("symlinks unsupported: %v", err)
		}

		result, err := New(root, Options{}).Scan(ctx)

		require.NoError(t, err)
		assert.Equal(t, []string{"a.md"}, result.Paths)
		require.Len(t, result.Warnings, 1)
		assert.Equal(t, "dangling.md", result.Warnings[0].Path)
	})

	t.Run("unreadable subdirectory becomes a warning", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("permission checks do not apply to root")
		}
		root := t.TempDir()
		writeFile(t, root, "ok/a.md", "# A")
		writeFile(t, root, "locked/b.md", "# B")
		locked := filepath.Join(root, "locked")
		require.NoError(t, os.Chmod(locked, 0000))
		t.Cleanup(func() { _ = os.Chmod(locked, 0755) })

		result, err := New(root, Options{}).Scan(ctx)

		require.NoError(t, err)
		assert.Equal(t, []string{"ok/a.md"}, result.Paths)
		require.Len(t, result.Warnings, 1)
		assert.Equal(t, "locked", result.Warnings[0].Path)
	})

	t.Run("cancelled context aborts", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "a.md", "# A")
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := New(root, Options{}).Scan(cctx)

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestSource_ScanPages(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	writeFile(t, root, "README.md", "# Corpus")
	writeFile(t, root, "patterns/index.md", "# Patterns")
	writeFile(t, root, "patterns/_index.md", "# Patterns")
	writeFile(t, root, "patterns/strategy.md", "# Strategy")
	writeFile(t, root, "patterns/diagram.png", "png")
	writeFile(t, root, "patterns/.draft.md", "# Draft")
	writeFile(t, root, "node_modules/pkg/readme.md", "# Pkg")
	writeFile(t, root, "drafts/wip.md", "# WIP")

	src := New(root, Options{
		SkipDirs: []string{"node_modules"},
		Exclude:  []string{"drafts"},
	})

	pages, err := src.ScanPages(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"README.md",
		"patterns/_index.md",
		"patterns/index.md",
		"patterns/strategy.md",
	}, pages.Paths)

	docs, err := src.Scan(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"patterns/strategy.md"}, docs.Paths)

	t.Run("missing root is a configuration error", func(t *testing.T) {
		_, err := New(filepath.Join(root, "missing"), Options{}).ScanPages(ctx)
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})
}
