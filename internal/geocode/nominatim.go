package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vrusha-mor/yojanasaathi/internal/domain"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

var (
	// ErrNoMatch indicates the query resolved to no locality.
	ErrNoMatch = errors.New("geocode: no match for query")
	// ErrUnavailable indicates the geocoding service could not be reached or
	// answered with an error status.
	ErrUnavailable = errors.New("geocode: service unavailable")
)

// Geocoder resolves a free-text place query to a coordinate.
type Geocoder interface {
	Search(ctx context.Context, query string) (domain.Point, error)
}

// Client resolves places through a Nominatim-compatible endpoint.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// Option customises client instantiation.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithBaseURL points the client at a different Nominatim host.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimRight(strings.TrimSpace(base), "/"); trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// New constructs a Client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		userAgent:  "yojanasaathi/1.0",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ Geocoder = (*Client)(nil)

// Search returns the first match for the query. Nominatim requires an
// identifying User-Agent, so one is always sent.
func (c *Client) Search(ctx context.Context, query string) (domain.Point, error) {
	endpoint := fmt.Sprintf("%s/search?format=json&limit=1&q=%s", c.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Point{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Point{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Point{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var matches []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&matches); err != nil {
		return domain.Point{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(matches) == 0 {
		return domain.Point{}, ErrNoMatch
	}

	lat, err := strconv.ParseFloat(matches[0].Lat, 64)
	if err != nil {
		return domain.Point{}, fmt.Errorf("%w: bad latitude %q", ErrUnavailable, matches[0].Lat)
	}
	lng, err := strconv.ParseFloat(matches[0].Lon, 64)
	if err != nil {
		return domain.Point{}, fmt.Errorf("%w: bad longitude %q", ErrUnavailable, matches[0].Lon)
	}
	return domain.Point{Lat: lat, Lng: lng}, nil
}
