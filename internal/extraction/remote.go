package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RemoteNERExtractor calls a dedicated NER HTTP endpoint that accepts a
// form-encoded text body and returns a JSON object mapping category to
// word list.
type RemoteNERExtractor struct {
	Endpoint string

	HTTPClient *http.Client
}

// NewRemoteNERExtractor creates an extractor for the given endpoint.
func NewRemoteNERExtractor(endpoint string) (*RemoteNERExtractor, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("NER endpoint is required")
	}
	return &RemoteNERExtractor{Endpoint: endpoint}, nil
}

// Extract posts text to the remote service. Any non-2xx response is an
// error; the caller decides whether to absorb it.
func (r *RemoteNERExtractor) Extract(ctx context.Context, text string) (map[string][]string, error) {
	form := url.Values{}
	form.Set("data", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &ExtractionError{Provider: ProviderRemote, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	req.Header.Set("Accept", "*/*")

	resp, err := r.httpClient().Do(req)
	if err != nil {
		return nil, &ExtractionError{Provider: ProviderRemote, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ExtractionError{Provider: ProviderRemote, Message: "failed to read response body", Cause: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ExtractionError{
			Provider: ProviderRemote,
			Message:  fmt.Sprintf("HTTP status %d", resp.StatusCode),
		}
	}

	var entities map[string][]string
	if err := json.Unmarshal(body, &entities); err != nil {
		return nil, &ExtractionError{Provider: ProviderRemote, Message: "malformed JSON in response", Cause: err}
	}
	return sanitize(entities), nil
}

func (r *RemoteNERExtractor) httpClient() *http.Client {
	if r.HTTPClient != nil {
		return r.HTTPClient
	}
	return &http.Client{Timeout: 60 * time.Second}
}
