package domain

import "time"

// CorpusSettings configures where documents come from and which files qualify.
type CorpusSettings struct {
	// Root is the corpus root directory.
	Root string

	// Extensions lists file extensions treated as documents (with leading dot).
	Extensions []string

	// Exclude holds glob patterns matched against relative paths and base names.
	Exclude []string

	// SkipDirs lists directory names never descended into.
	SkipDirs []string

	// DefaultCategory is assigned to documents at the corpus root.
	DefaultCategory string

	// CategoryOrder lists categories shown first in navigation, in order.
	// Remaining categories follow alphabetically.
	CategoryOrder []string
}

// SearchSettings holds search behaviour configuration.
type SearchSettings struct {
	// DefaultLimit applies when a query does not set a limit.
	DefaultLimit int

	// MaxLimit caps any requested limit.
	MaxLimit int
}

// RefreshSettings configures background rebuilds.
type RefreshSettings struct {
	// Interval between timed rebuilds; zero disables the timer.
	Interval time.Duration

	// Watch enables rebuilds on file-change events.
	Watch bool

	// MinInterval is the minimum spacing between two rebuilds.
	MinInterval time.Duration
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Corpus holds corpus discovery settings.
	Corpus CorpusSettings

	// Search holds search behaviour settings.
	Search SearchSettings

	// Refresh holds background rebuild settings.
	Refresh RefreshSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// Root is left empty; it must come from config or the --root flag.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Corpus: CorpusSettings{
			Extensions:      []string{".md", ".markdown", ".mdx"},
			SkipDirs:        []string{"node_modules"},
			DefaultCategory: "general",
		},
		Search: SearchSettings{
			DefaultLimit: DefaultSearchLimit,
			MaxLimit:     100,
		},
		Refresh: RefreshSettings{
			Interval:    0,
			Watch:       false,
			MinInterval: 2 * time.Second,
		},
	}
}
