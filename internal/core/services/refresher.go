package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/docnav/internal/core/domain"
	"github.com/custodia-labs/docnav/internal/core/ports/driven"
	"github.com/custodia-labs/docnav/internal/core/ports/driving"
	"github.com/custodia-labs/docnav/internal/logger"
)

// Ensure Refresher implements the interface.
var _ driving.Refresher = (*Refresher)(nil)

// DefaultDebounce is how long a burst of file changes must be quiet before
// a rebuild starts.
const DefaultDebounce = 300 * time.Millisecond

// rebuilder is the part of the content store the refresher drives.
type rebuilder interface {
	Rebuild(ctx context.Context) (*domain.BuildReport, error)
}

// Refresher rebuilds the corpus on a timer and, optionally, on file changes.
// Rebuild failures are logged; the served snapshot is left as it was.
type Refresher struct {
	corpus   rebuilder
	source   driven.CorpusSource
	settings domain.RefreshSettings
	limiter  *rate.Limiter
	debounce time.Duration

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewRefresher creates a refresher. source is only used when settings.Watch is set.
func NewRefresher(corpus driving.CorpusService, source driven.CorpusSource, settings domain.RefreshSettings) *Refresher {
	limit := rate.Inf
	if settings.MinInterval > 0 {
		limit = rate.Every(settings.MinInterval)
	}
	return &Refresher{
		corpus:   corpus,
		source:   source,
		settings: settings,
		limiter:  rate.NewLimiter(limit, 1),
		debounce: DefaultDebounce,
	}
}

// SetDebounce overrides the quiet period applied to file-change bursts.
func (r *Refresher) SetDebounce(d time.Duration) {
	r.debounce = d
}

// Start begins the refresh loop. This method blocks until Stop is called
// or ctx is cancelled. It returns immediately when neither a timer nor a
// watcher is configured.
func (r *Refresher) Start(ctx context.Context) error {
	if r.settings.Interval <= 0 && !r.settings.Watch {
		logger.Debug("refresher: no interval and no watch configured, not starting")
		return nil
	}

	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil // Already running
	}
	runCtx, cancel := context.WithCancel(ctx)
	r.running = true
	r.cancel = cancel
	r.done = make(chan struct{})
	done := r.done
	r.mu.Unlock()

	defer func() {
		cancel()
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
		close(done)
	}()

	err := r.run(runCtx)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// Stop gracefully shuts down the loop and waits for an in-flight rebuild.
func (r *Refresher) Stop() error {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return nil
	}
	r.cancel()
	done := r.done
	r.mu.Unlock()

	<-done
	return nil
}

// run is the main refresh loop.
func (r *Refresher) run(ctx context.Context) error {
	var tick <-chan time.Time
	if r.settings.Interval > 0 {
		ticker := time.NewTicker(r.settings.Interval)
		defer ticker.Stop()
		tick = ticker.C
		logger.Debug("refresher: rebuilding every %s", r.settings.Interval)
	}

	var changes <-chan domain.CorpusChange
	if r.settings.Watch && r.source != nil {
		ch, err := r.source.Watch(ctx)
		if err != nil {
			logger.Warn("refresher: file watching disabled: %v", err)
		} else {
			changes = ch
			logger.Debug("refresher: watching %s", r.source.Root())
		}
	}

	if tick == nil && changes == nil {
		return errors.New("refresher: nothing to wait for")
	}

	var (
		timer    *time.Timer
		debounce <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick:
			r.rebuild(ctx, "timer")
		case change, ok := <-changes:
			if !ok {
				changes = nil
				if tick == nil {
					return nil
				}
				continue
			}
			logger.Debug("refresher: %s %s", change.Type, change.Path)
			if timer == nil {
				timer = time.NewTimer(r.debounce)
			} else {
				timer.Reset(r.debounce)
			}
			debounce = timer.C
		case <-debounce:
			debounce = nil
			r.rebuild(ctx, "file change")
		}
	}
}

// rebuild runs one rate-limited rebuild.
func (r *Refresher) rebuild(ctx context.Context, reason string) {
	if err := r.limiter.Wait(ctx); err != nil {
		return
	}

	report, err := r.corpus.Rebuild(ctx)
	if err != nil {
		if ctx.Err() == nil {
			logger.Error("refresher: rebuild after %s failed: %v", reason, err)
		}
		return
	}
	logger.Info("refresher: rebuilt after %s: snapshot %s, %d documents", reason, report.Generation, report.Documents)
}
