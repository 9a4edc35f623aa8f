package domain

import "time"

// RawDocument represents a corpus file read from disk.
// It is the source's output before normalisation.
type RawDocument struct {
	// ID is the identifier derived from Path.
	ID string

	// Path is the slash-separated path relative to the corpus root.
	Path string

	// Category is derived from the first directory segment of Path.
	Category string

	// Content is the file content as valid UTF-8.
	Content []byte

	// ModTime is the file's modification time.
	ModTime time.Time
}

// ChangeType represents the type of corpus change.
type ChangeType int

const (
	// ChangeCreated indicates a new document.
	ChangeCreated ChangeType = iota

	// ChangeUpdated indicates a modified document.
	ChangeUpdated

	// ChangeDeleted indicates a removed document.
	ChangeDeleted
)

// String returns a short name for the change type.
func (c ChangeType) String() string {
	switch c {
	case ChangeCreated:
		return "created"
	case ChangeUpdated:
		return "updated"
	case ChangeDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// CorpusChange is a change event observed on the corpus tree.
// Any change triggers a full rebuild; Path is informational.
type CorpusChange struct {
	// Type is the kind of change.
	Type ChangeType

	// Path is the affected path relative to the corpus root.
	Path string
}
