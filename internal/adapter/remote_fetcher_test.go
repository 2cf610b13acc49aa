package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/base.yml":
			_, _ = w.Write([]byte("disabled_rules: [todo]\n"))
		case "/slow.yml":
			time.Sleep(200 * time.Millisecond)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	fetcher := NewHTTPFetcher(time.Second)

	t.Run("ok", func(t *testing.T) {
		body, err := fetcher.Fetch(context.Background(), server.URL+"/base.yml")
		require.NoError(t, err)
		assert.Equal(t, "disabled_rules: [todo]\n", string(body))
	})

	t.Run("not found", func(t *testing.T) {
		_, err := fetcher.Fetch(context.Background(), server.URL+"/missing.yml")
		assert.ErrorContains(t, err, "unexpected status 404")
	})

	t.Run("timeout", func(t *testing.T) {
		_, err := NewHTTPFetcher(50*time.Millisecond).Fetch(context.Background(), server.URL+"/slow.yml")
		require.Error(t, err)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fetcher.Fetch(ctx, server.URL+"/base.yml")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestStaticFetcher(t *testing.T) {
	fetcher := StaticFetcher{"https://example.com/a.yml": "strict: true\n"}

	body, err := fetcher.Fetch(context.Background(), "https://example.com/a.yml")
	require.NoError(t, err)
	assert.Equal(t, "strict: true\n", string(body))

	_, err = fetcher.Fetch(context.Background(), "https://example.com/b.yml")
	require.Error(t, err)
}
