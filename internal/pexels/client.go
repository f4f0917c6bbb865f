package pexels

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/gauthierbraillon/mediamix/internal/media"
)

const (
	defaultBaseURL       = "https://api.pexels.com"
	defaultPhotosPerPage = 12
	defaultVideosPerPage = 6
)

// HTTPClient interface for making HTTP requests (allows injection for testing).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBaseURL sets a custom base URL (useful for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithPerPage sets the page size requested for one media kind.
func WithPerPage(kind media.Kind, n int) ClientOption {
	return func(c *Client) {
		if n <= 0 {
			return
		}
		switch kind {
		case media.KindPhoto:
			c.photosPerPage = n
		case media.KindVideo:
			c.videosPerPage = n
		}
	}
}

// WithCacheTTL keeps successful responses in memory for ttl. Zero disables caching.
func WithCacheTTL(ttl time.Duration) ClientOption {
	return func(c *Client) {
		c.cache = newResponseCache(ttl)
	}
}

// WithMinInterval enforces a minimum delay between outgoing API requests.
func WithMinInterval(d time.Duration) ClientOption {
	return func(c *Client) {
		c.minInterval = d
	}
}

// Client is a Pexels search API client.
type Client struct {
	apiKey        string
	baseURL       string
	httpClient    HTTPClient
	photosPerPage int
	videosPerPage int
	cache         *responseCache

	minInterval time.Duration
	nextSlot    time.Time
	throttleMu  sync.Mutex
}

// NewClient creates a new Pexels API client authenticated with apiKey.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:        apiKey,
		baseURL:       defaultBaseURL,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		photosPerPage: defaultPhotosPerPage,
		videosPerPage: defaultVideosPerPage,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SearchPhotos retrieves one page of photos matching query.
// A response without a "photos" array yields an empty slice.
func (c *Client) SearchPhotos(ctx context.Context, query string, page int) ([]media.Photo, error) {
	searchURL := c.searchURL("/v1/search", query, page, c.photosPerPage)

	var response photoSearchResponse
	if err := c.getJSON(ctx, searchURL, "photo search", &response); err != nil {
		return nil, err
	}
	if response.Photos == nil {
		return []media.Photo{}, nil
	}

	return response.Photos, nil
}

// SearchVideos retrieves one page of videos matching query.
// A response without a "videos" array yields an empty slice.
func (c *Client) SearchVideos(ctx context.Context, query string, page int) ([]media.Video, error) {
	searchURL := c.searchURL("/videos/search", query, page, c.videosPerPage)

	var response videoSearchResponse
	if err := c.getJSON(ctx, searchURL, "video search", &response); err != nil {
		return nil, err
	}
	if response.Videos == nil {
		return []media.Video{}, nil
	}

	return response.Videos, nil
}

// ClearCache drops every cached response.
func (c *Client) ClearCache() {
	if c.cache != nil {
		c.cache.clear()
	}
}

func (c *Client) searchURL(path, query string, page, perPage int) string {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))
	return fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())
}

// getJSON decodes the response for url into v. Only bodies that decode are cached.
func (c *Client) getJSON(ctx context.Context, url, what string, v any) error {
	if body, ok := c.cache.get(url); ok {
		if err := json.Unmarshal(body, v); err == nil {
			return nil
		}
	}

	body, err := c.doRequest(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse %s response: %w: %w", what, ErrInvalidResponse, err)
	}

	c.cache.put(url, body)
	return nil
}

func (c *Client) doRequest(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	if err := c.throttle(ctx); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, handleAPIError(resp.StatusCode)
	}

	return body, nil
}

// throttle reserves the next request slot, minInterval after the previous
// reservation, and waits for it outside the lock.
func (c *Client) throttle(ctx context.Context) error {
	if c.minInterval <= 0 {
		return nil
	}

	c.throttleMu.Lock()
	slot := c.nextSlot
	if now := time.Now(); slot.Before(now) {
		slot = now
	}
	c.nextSlot = slot.Add(c.minInterval)
	c.throttleMu.Unlock()

	wait := time.Until(slot)
	if wait <= 0 {
		return nil
	}
	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// API response types (private - implementation detail)

type photoSearchResponse struct {
	Page         int           `json:"page"`
	PerPage      int           `json:"per_page"`
	TotalResults int           `json:"total_results"`
	NextPage     string        `json:"next_page"`
	Photos       []media.Photo `json:"photos"`
}

type videoSearchResponse struct {
	Page         int           `json:"page"`
	PerPage      int           `json:"per_page"`
	TotalResults int           `json:"total_results"`
	Videos       []media.Video `json:"videos"`
}

func handleAPIError(statusCode int) error {
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w - run 'mediamix auth <key>' or set PEXELS_API_KEY (status %d)", ErrUnauthorized, statusCode)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w - please try again later", ErrRateLimited)
	case http.StatusServiceUnavailable, http.StatusInternalServerError, http.StatusBadGateway, http.StatusGatewayTimeout:
		return fmt.Errorf("%w (status %d) - please try again later", ErrUnavailable, statusCode)
	default:
		return fmt.Errorf("%w: status %d", ErrInvalidResponse, statusCode)
	}
}
