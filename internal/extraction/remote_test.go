package extraction

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRemoteNERExtractorRequiresEndpoint(t *testing.T) {
	_, err := NewRemoteNERExtractor("")
	assert.Error(t, err)
}

func TestRemoteExtract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "some article text", r.PostForm.Get("data"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"location": ["Paris"], "emotion": ["joy"], "person_name": ["X"]}`))
	}))
	defer srv.Close()

	extractor, err := NewRemoteNERExtractor(srv.URL)
	require.NoError(t, err)

	entities, err := extractor.Extract(context.Background(), "some article text")
	require.NoError(t, err)

	// The response is sanitized: unknown categories and one-rune words drop.
	assert.Equal(t, map[string][]string{"location": {"Paris"}}, entities)
}

func TestRemoteExtractNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	extractor, err := NewRemoteNERExtractor(srv.URL)
	require.NoError(t, err)

	_, err = extractor.Extract(context.Background(), "text")
	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, ProviderRemote, extractionErr.Provider)
	assert.Contains(t, extractionErr.Message, "503")
}

func TestRemoteExtractMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	extractor, err := NewRemoteNERExtractor(srv.URL)
	require.NoError(t, err)

	_, err = extractor.Extract(context.Background(), "text")
	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
}

func TestRemoteExtractUnreachable(t *testing.T) {
	extractor, err := NewRemoteNERExtractor("http://127.0.0.1:1/ner")
	require.NoError(t, err)

	_, err = extractor.Extract(context.Background(), "text")
	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
}
