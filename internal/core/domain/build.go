package domain

import "time"

// BuildReport describes a completed corpus rebuild.
type BuildReport struct {
	// Generation uniquely identifies the snapshot produced by the rebuild.
	Generation string `json:"generation"`

	// BuiltAt is when the snapshot was swapped in.
	BuiltAt time.Time `json:"built_at"`

	// Duration is how long the rebuild took.
	Duration time.Duration `json:"duration"`

	// Documents is the number of documents in the snapshot.
	Documents int `json:"documents"`

	// Categories is the number of navigation groups.
	Categories int `json:"categories"`

	// Warnings lists paths that were skipped.
	Warnings []ScanWarning `json:"warnings,omitempty"`
}
