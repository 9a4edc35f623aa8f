package driven

import "time"

// ConfigStore holds flat, dot-notation configuration keys such as
// "corpus.root" or "refresh.interval". Typed getters return the zero value
// for missing keys and for values of the wrong type.
type ConfigStore interface {
	// Get returns the raw value and whether the key is set.
	Get(key string) (any, bool)

	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool
	GetStringSlice(key string) []string

	// GetDuration accepts a Go duration string ("5m") or integer seconds.
	GetDuration(key string) time.Duration

	// Set stores a value. Persistent stores write through immediately.
	Set(key string, value any) error

	// Save writes the current values to the backing storage, if any.
	Save() error

	// Load re-reads the backing storage, replacing the current values.
	Load() error

	// Path identifies the backing storage for display.
	Path() string
}
