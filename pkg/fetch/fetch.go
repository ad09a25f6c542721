// Package fetch retrieves dictionary pages over HTTP. It is the only
// asynchronous collaborator of the extraction core and runs before it.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html"

	"github.com/etamarw/hebforms/pkg/htmlq"
)

// StatusError reports a non-200 response so callers can distinguish fetch
// failures by status.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.Code)
}

// Client fetches pages with a browser-like header set. Some dictionary
// sites refuse requests that look scripted.
type Client struct {
	HTTPClient  *http.Client
	MaxBodySize int64
	UserAgent   string
}

const defaultMaxBody = 10 * 1024 * 1024

// NewClient returns a Client with a 30s timeout and a 10 MB body cap.
func NewClient() *Client {
	return &Client{
		HTTPClient:  &http.Client{Timeout: 30 * time.Second},
		MaxBodySize: defaultMaxBody,
		UserAgent:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	}
}

// Fetch downloads pageURL and returns the raw markup.
func (c *Client) Fetch(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9,he;q=0.8")
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: pageURL, Code: resp.StatusCode}
	}

	limit := c.MaxBodySize
	if limit <= 0 {
		limit = defaultMaxBody
	}
	if resp.ContentLength > limit {
		return nil, fmt.Errorf("fetch %s: content length %d exceeds limit %d", pageURL, resp.ContentLength, limit)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: read body: %w", pageURL, err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("fetch %s: body exceeds limit %d", pageURL, limit)
	}
	return body, nil
}

// FetchDocument downloads pageURL and parses it into a document tree.
func (c *Client) FetchDocument(ctx context.Context, pageURL string) (*html.Node, error) {
	body, err := c.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	doc, err := htmlq.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pageURL, err)
	}
	return doc, nil
}
