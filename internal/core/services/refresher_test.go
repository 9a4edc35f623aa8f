package services

import (
	"bytes"
	"context"
	"errors"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docnav/internal/core/domain"
	"github.com/custodia-labs/docnav/internal/core/ports/driving"
	"github.com/custodia-labs/docnav/internal/logger"
)

// fakeCorpus counts rebuilds. Only Rebuild is implemented.
type fakeCorpus struct {
	driving.CorpusService
	rebuilds atomic.Int32
	err      error
}

func (f *fakeCorpus) Rebuild(_ context.Context) (*domain.BuildReport, error) {
	f.rebuilds.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return &domain.BuildReport{Generation: "g", Documents: 1}, nil
}

func (f *fakeCorpus) count() int {
	return int(f.rebuilds.Load())
}

func startRefresher(ctx context.Context, r *Refresher) <-chan error {
	errCh := make(chan error, 1)
	go func() { errCh <- r.Start(ctx) }()
	return errCh
}

func waitErr(t *testing.T, errCh <-chan error) error {
	t.Helper()
	select {
	case err := <-errCh:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("refresher did not return")
		return nil
	}
}

func TestRefresher_NothingConfigured(t *testing.T) {
	corpus := &fakeCorpus{}
	r := NewRefresher(corpus, nil, domain.RefreshSettings{})

	err := r.Start(context.Background())

	require.NoError(t, err)
	assert.Zero(t, corpus.count())
	assert.NoError(t, r.Stop())
}

func TestRefresher_Interval(t *testing.T) {
	corpus := &fakeCorpus{}
	r := NewRefresher(corpus, nil, domain.RefreshSettings{Interval: 10 * time.Millisecond})

	errCh := startRefresher(context.Background(), r)

	assert.Eventually(t, func() bool { return corpus.count() >= 2 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, r.Stop())
	assert.NoError(t, waitErr(t, errCh))
}

func TestRefresher_ParentCancel(t *testing.T) {
	corpus := &fakeCorpus{}
	r := NewRefresher(corpus, nil, domain.RefreshSettings{Interval: 10 * time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())

	errCh := startRefresher(ctx, r)
	assert.Eventually(t, func() bool { return corpus.count() >= 1 }, 2*time.Second, 5*time.Millisecond)
	cancel()

	assert.ErrorIs(t, waitErr(t, errCh), context.Canceled)
}

func TestRefresher_WatchDebounces(t *testing.T) {
	corpus := &fakeCorpus{}
	source := newMockSource(nil)
	source.changes = make(chan domain.CorpusChange, 8)
	r := NewRefresher(corpus, source, domain.RefreshSettings{Watch: true})
	r.SetDebounce(30 * time.Millisecond)

	errCh := startRefresher(context.Background(), r)
	for _, p := range []string{"a.md", "b.md", "a.md"} {
		source.changes <- domain.CorpusChange{Type: domain.ChangeUpdated, Path: p}
	}

	assert.Eventually(t, func() bool { return corpus.count() == 1 }, 2*time.Second, 5*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, corpus.count(), "a burst of changes triggers one rebuild")

	require.NoError(t, r.Stop())
	assert.NoError(t, waitErr(t, errCh))
}

func TestRefresher_WatchClosed(t *testing.T) {
	source := newMockSource(nil)
	source.changes = make(chan domain.CorpusChange)
	r := NewRefresher(&fakeCorpus{}, source, domain.RefreshSettings{Watch: true})

	errCh := startRefresher(context.Background(), r)
	close(source.changes)

	assert.NoError(t, waitErr(t, errCh))
}

func TestRefresher_WatchUnavailable(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(os.Stderr)

	source := newMockSource(nil)
	source.watchErr = errors.New("too many open files")
	r := NewRefresher(&fakeCorpus{}, source, domain.RefreshSettings{Watch: true})

	err := r.Start(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to wait for")
	assert.Contains(t, buf.String(), "too many open files")
}

func TestRefresher_RebuildFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(os.Stderr)

	corpus := &fakeCorpus{err: domain.ErrIdentifierCollision}
	r := NewRefresher(corpus, nil, domain.RefreshSettings{Interval: 10 * time.Millisecond})

	errCh := startRefresher(context.Background(), r)
	assert.Eventually(t, func() bool { return corpus.count() >= 1 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, r.Stop())
	require.NoError(t, waitErr(t, errCh))

	assert.Contains(t, buf.String(), "[ERROR] refresher: rebuild after timer failed")
}

func TestRefresher_MinInterval(t *testing.T) {
	corpus := &fakeCorpus{}
	r := NewRefresher(corpus, nil, domain.RefreshSettings{
		Interval:    time.Millisecond,
		MinInterval: time.Hour,
	})

	errCh := startRefresher(context.Background(), r)
	assert.Eventually(t, func() bool { return corpus.count() == 1 }, 2*time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, corpus.count(), "the limiter holds back further rebuilds")

	require.NoError(t, r.Stop())
	assert.NoError(t, waitErr(t, errCh))
}
