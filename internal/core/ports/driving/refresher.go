package driving

import "context"

// Refresher rebuilds the corpus in the background on a timer or on file changes.
type Refresher interface {
	// Start begins the refresh loop.
	// Blocks until context is cancelled or Stop is called.
	Start(ctx context.Context) error

	// Stop gracefully stops the loop and waits for an in-flight rebuild.
	Stop() error
}
