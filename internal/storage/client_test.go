package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("file bytes"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key", "documents")

	data, err := c.Fetch(context.Background(), srv.URL+"/file.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("file bytes"), data)
}

func TestFetchClientErrorNotRetried(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key", "documents")

	_, err := c.Fetch(context.Background(), srv.URL+"/missing.txt")
	require.Error(t, err)
	assert.Equal(t, 1, hits)
}

func TestFetchHonorsContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL, "key", "documents")

	_, err := c.Fetch(ctx, srv.URL+"/flaky.txt")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUploadReturnsPublicURL(t *testing.T) {
	var gotAuth, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "service-key", "documents")

	url, err := c.Upload(context.Background(), "abc.txt", []byte("content"), "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "Bearer service-key", gotAuth)
	assert.Equal(t, "/storage/v1/object/documents/abc.txt", gotPath)
	assert.Equal(t, srv.URL+"/storage/v1/object/public/documents/abc.txt", url)
}

func TestPathFromURL(t *testing.T) {
	c := NewClient("https://proj.supabase.co", "key", "documents")

	path, ok := c.PathFromURL("https://proj.supabase.co/storage/v1/object/public/documents/abc.pdf")
	assert.True(t, ok)
	assert.Equal(t, "abc.pdf", path)

	_, ok = c.PathFromURL("https://example.com/elsewhere.pdf")
	assert.False(t, ok)
}
