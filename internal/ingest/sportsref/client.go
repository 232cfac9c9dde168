package sportsref

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// BaseURL for sports-reference college basketball pages
	BaseURL = "https://www.sports-reference.com/cbb"

	// UserAgent for requests
	UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// MinRequestInterval to stay under the site's crawl rate limit
	MinRequestInterval = 4 * time.Second

	// maxRetries on 429 responses before giving up on a page
	maxRetries = 3

	// retryBackoff grows linearly per attempt
	retryBackoff = 30 * time.Second
)

// ErrNotFound marks pages that do not exist (dropped programs, bad slugs).
// Callers skip these rather than aborting a whole season fetch.
var ErrNotFound = errors.New("sportsref: page not found")

// TransientError wraps failures worth retrying on a later run: rate limiting
// that outlasted the backoff, 5xx responses, network errors.
type TransientError struct {
	URL string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient fetch error for %s: %v", e.URL, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// Client fetches sports-reference pages with rate limiting and 429 backoff.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	lastRequest time.Time
	interval    time.Duration
}

// NewClient creates a scraper client with a custom base URL. An empty baseURL
// selects the live site.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		interval: MinRequestInterval,
	}
}

// FetchSchoolIndex fetches the season's school index page listing every
// program with its slug.
func (c *Client) FetchSchoolIndex(ctx context.Context, season int) (*goquery.Document, error) {
	url := fmt.Sprintf("%s/seasons/men/%d-school-stats.html", c.baseURL, season)
	return c.fetchDocument(ctx, url)
}

// FetchGamelog fetches one team's per-game log page for a season.
func (c *Client) FetchGamelog(ctx context.Context, slug string, season int) (*goquery.Document, error) {
	url := fmt.Sprintf("%s/schools/%s/men/%d-gamelogs.html", c.baseURL, slug, season)
	return c.fetchDocument(ctx, url)
}

func (c *Client) fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	body, err := c.fetchWithRetry(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML from %s: %w", url, err)
	}
	return doc, nil
}

func (c *Client) fetchWithRetry(ctx context.Context, url string) (io.ReadCloser, error) {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			wait := time.Duration(attempt) * retryBackoff
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		body, err := c.fetch(ctx, url)
		if err == nil {
			return body, nil
		}
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}

		var transient *TransientError
		if !errors.As(err, &transient) {
			return nil, err
		}
		lastErr = err
	}

	return nil, lastErr
}

func (c *Client) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	if !c.lastRequest.IsZero() {
		elapsed := time.Since(c.lastRequest)
		if elapsed < c.interval {
			select {
			case <-time.After(c.interval - elapsed):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	c.lastRequest = time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransientError{URL: url, Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return resp.Body, nil
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		resp.Body.Close()
		return nil, &TransientError{URL: url, Err: fmt.Errorf("status %d", resp.StatusCode)}
	default:
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}
}
