package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrUnauthenticated is returned by [HTTPBackend] when no token is
// configured.
var ErrUnauthenticated = errors.New("not logged in")

// HTTPClient is the subset of [http.Client] used by [HTTPBackend].
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPBackend performs actions against a JSON API:
//
//	POST {base}/posts/{id}/actions  {"action":"upvote"}
//
// authenticated with a bearer token.
type HTTPBackend struct {
	baseURL string
	token   string
	client  HTTPClient
}

// NewHTTPBackend creates a backend for the API at baseURL. A nil client
// uses an [http.Client] with a short timeout.
func NewHTTPBackend(baseURL, token string, client HTTPClient) *HTTPBackend {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPBackend{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  client,
	}
}

// Authenticated implements [Backend].
func (b *HTTPBackend) Authenticated() bool {
	return b.token != ""
}

// Perform implements [Backend].
func (b *HTTPBackend) Perform(ctx context.Context, postID string, action Action) error {
	if !b.Authenticated() && action != MarkRead {
		return ErrUnauthenticated
	}

	body, err := sjson.Set("", "action", action.String())
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	endpoint := fmt.Sprintf("%s/posts/%s/actions", b.baseURL, url.PathEscape(postID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if b.token != "" {
		req.Header.Set("Authorization", "Bearer "+b.token)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if msg := gjson.GetBytes(data, "error").String(); msg != "" {
		return fmt.Errorf("api returned %d: %s", resp.StatusCode, msg)
	}
	return fmt.Errorf("api returned status %d", resp.StatusCode)
}
