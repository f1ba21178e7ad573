// Package openalex provides a rate-limited client for the OpenAlex API,
// fetching works and author metrics for the roster.
package openalex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/ucvm/facnet/internal/normalize"
)

const (
	// BaseURL is the OpenAlex API base URL.
	BaseURL = "https://api.openalex.org"

	// RateLimit is 10 requests per second per OpenAlex documentation.
	RateLimit = 10.0

	// DefaultPerPage is the page size for cursor-paginated listings.
	DefaultPerPage = 200

	// DefaultMaxRetries is how many times a retriable request is reissued.
	DefaultMaxRetries = 3

	retryBackoffBase = 2 * time.Second
)

// Client is a rate-limited HTTP client for the OpenAlex API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	mailto     string
	perPage    int
	maxRetries int
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithMailto sets the contact address sent with every request. OpenAlex
// routes identified callers into its polite pool.
func WithMailto(addr string) ClientOption {
	return func(c *Client) {
		c.mailto = addr
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithPerPage sets the cursor page size.
func WithPerPage(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.perPage = n
		}
	}
}

// NewClient creates a new OpenAlex API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
		perPage:    DefaultPerPage,
		maxRetries: DefaultMaxRetries,
	}

	// Check for contact address in environment
	if addr := os.Getenv("OPENALEX_MAILTO"); addr != "" {
		c.mailto = addr
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// retriable reports whether a status code warrants a retry with backoff.
func retriable(status int) bool {
	switch status {
	case 429, 500, 502, 503, 504:
		return true
	}
	return false
}

// get issues a GET with rate limiting and retries, returning the body.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if c.mailto != "" {
		query.Set("mailto", c.mailto)
	}
	reqURL := c.baseURL + path + "?" + query.Encode()

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := retryBackoffBase * time.Duration(1<<(attempt-1))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if c.mailto != "" {
			req.Header.Set("User-Agent", "facnet (mailto:"+c.mailto+")")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: %v", ErrNetworkError, err)
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			if readErr != nil {
				lastErr = fmt.Errorf("%w: %v", ErrNetworkError, readErr)
				continue
			}
			return body, nil
		case resp.StatusCode == http.StatusNotFound:
			return nil, ErrNotFound
		case retriable(resp.StatusCode):
			if resp.StatusCode == http.StatusTooManyRequests {
				lastErr = fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
			} else {
				lastErr = &APIError{StatusCode: resp.StatusCode, Message: "retriable server error"}
			}
			continue
		default:
			return nil, &APIError{
				StatusCode: resp.StatusCode,
				Message:    strings.TrimSpace(string(body)),
			}
		}
	}

	return nil, fmt.Errorf("giving up after %d retries: %w", c.maxRetries, lastErr)
}

// FetchWorks fetches all works for one author within the year window,
// following cursor pagination to the end.
func (c *Client) FetchWorks(ctx context.Context, authorID string, w normalize.Window) ([]Work, error) {
	id := normalize.ID(authorID)
	if id == "" {
		return nil, fmt.Errorf("empty author ID")
	}

	filter := fmt.Sprintf("author.id:%s,publication_year:%d-%d", id, w.Start, w.End)

	var works []Work
	cursor := "*"
	for cursor != "" {
		query := url.Values{}
		query.Set("filter", filter)
		query.Set("per-page", fmt.Sprintf("%d", c.perPage))
		query.Set("cursor", cursor)

		body, err := c.get(ctx, "/works", query)
		if err != nil {
			return nil, fmt.Errorf("fetching works for %s: %w", id, err)
		}

		var page worksPage
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("%w: parsing works page: %v", ErrInvalidResponse, err)
		}

		works = append(works, page.Results...)
		cursor = page.Meta.NextCursor
	}

	return works, nil
}

// FetchAuthorMetrics fetches citation metrics for one author.
func (c *Client) FetchAuthorMetrics(ctx context.Context, authorID string) (*AuthorMetrics, error) {
	id := normalize.ID(authorID)
	if id == "" {
		return nil, fmt.Errorf("empty author ID")
	}

	body, err := c.get(ctx, "/authors/"+url.PathEscape(id), url.Values{})
	if err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("author %s: %w", id, err)
		}
		return nil, fmt.Errorf("fetching author %s: %w", id, err)
	}

	var rec authorRecord
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, fmt.Errorf("%w: parsing author record: %v", ErrInvalidResponse, err)
	}
	if rec.ID == "" {
		return nil, ErrNotFound
	}

	return &AuthorMetrics{
		ID:             normalize.ID(rec.ID),
		HIndex:         rec.SummaryStats.HIndex,
		I10Index:       rec.SummaryStats.I10Index,
		WorksCount:     rec.WorksCount,
		TotalCitations: rec.CitedByCount,
	}, nil
}
