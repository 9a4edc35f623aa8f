package mcp

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil corpus service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingCorpusService)
	})

	t.Run("nil search service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{Corpus: newMockCorpus()})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingSearchService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := newTestServer(newMockCorpus(), &mockSearchService{}, nil)
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("empty ports", func(t *testing.T) {
		ports := &Ports{}
		assert.ErrorIs(t, ports.Validate(), ErrMissingCorpusService)
	})

	t.Run("links are optional", func(t *testing.T) {
		ports := &Ports{Corpus: newMockCorpus(), Search: &mockSearchService{}}
		assert.NoError(t, ports.Validate())
	})

	t.Run("all ports is valid", func(t *testing.T) {
		ports := &Ports{
			Corpus: newMockCorpus(),
			Search: &mockSearchService{},
			Links:  &mockLinkService{},
		}
		assert.NoError(t, ports.Validate())
	})
}

func TestServer_RunHTTP_StopsOnCancel(t *testing.T) {
	server, err := newTestServer(newMockCorpus(), &mockSearchService{}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- server.RunHTTP(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_Serve_UsesListener(t *testing.T) {
	server, err := newTestServer(newMockCorpus(), &mockSearchService{}, nil)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- server.Serve(ctx, ln) }()

	// A plain GET carries no session, so the handler rejects it; any HTTP
	// response proves the listener is being served.
	resp, err := http.Get("http://" + ln.Addr().String())
	require.NoError(t, err)
	resp.Body.Close()
	assert.NotEqual(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_RunHTTP_BadAddress(t *testing.T) {
	server, err := newTestServer(newMockCorpus(), &mockSearchService{}, nil)
	require.NoError(t, err)

	err = server.RunHTTP(context.Background(), "127.0.0.1:-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen on")
}

func TestServer_Handler(t *testing.T) {
	server, err := newTestServer(newMockCorpus(), &mockSearchService{}, nil)
	require.NoError(t, err)

	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL, "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.GreaterOrEqual(t, resp.StatusCode, 400, "empty body is not a valid JSON-RPC message")
}
