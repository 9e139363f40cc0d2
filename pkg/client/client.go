package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client provides typed access to the YojanaSaathi API for interactive tools.
type Client struct {
	baseURL    string
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

// New constructs a Client pointing at the provided API base URL.
func New(base string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		trimmed = "http://localhost:5000"
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		trimmed = "http://" + trimmed
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	cli := &Client{
		baseURL:    strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli, nil
}

// APIError represents an error response from the API.
type APIError struct {
	Status  int
	Message string
}

func (e APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api request failed with status %d", e.Status)
	}
	return fmt.Sprintf("api request failed (%d): %s", e.Status, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, body any, v any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	endpoint := c.baseURL + path
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		msg := extractError(resp.Body)
		return APIError{Status: resp.StatusCode, Message: msg}
	}

	if v == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func extractError(body io.Reader) string {
	if body == nil {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
	}
	data, err := io.ReadAll(body)
	if err != nil || len(data) == 0 {
		return ""
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return strings.TrimSpace(string(data))
	}
	return strings.TrimSpace(payload.Message)
}

// User reflects API user payloads.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AuthResponse captures the payload emitted by signup and login.
type AuthResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// Signup registers a new account.
func (c *Client) Signup(ctx context.Context, name, password, confirmPassword string) (AuthResponse, error) {
	body := map[string]string{
		"name":            name,
		"password":        password,
		"confirmPassword": confirmPassword,
	}
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/signup", body, &resp); err != nil {
		return AuthResponse{}, err
	}
	return resp, nil
}

// Login verifies credentials.
func (c *Client) Login(ctx context.Context, name, password string) (AuthResponse, error) {
	body := map[string]string{
		"name":     name,
		"password": password,
	}
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/login", body, &resp); err != nil {
		return AuthResponse{}, err
	}
	return resp, nil
}

// Scheme reflects a single recommended scheme.
type Scheme struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Eligibility string   `json:"eligibility"`
	Documents   []string `json:"documents"`
	ApplyLink   string   `json:"apply_link"`
}

// SchemeSearchResult is the scheme recommendation payload.
type SchemeSearchResult struct {
	Message string   `json:"message"`
	Schemes []Scheme `json:"schemes"`
}

// SearchSchemes asks for scheme recommendations matching the situation
// described in query.
func (c *Client) SearchSchemes(ctx context.Context, query, language string) (SchemeSearchResult, error) {
	body := map[string]string{
		"query":    query,
		"language": language,
	}
	var resp SchemeSearchResult
	if err := c.do(ctx, http.MethodPost, "/api/schemes/search", body, &resp); err != nil {
		return SchemeSearchResult{}, err
	}
	return resp, nil
}

// ScamVerdict is the scam classification payload. Fields the provider left
// out stay at their zero values.
type ScamVerdict struct {
	IsScam    *bool  `json:"isScam,omitempty"`
	RiskLevel string `json:"riskLevel,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// CheckScam submits text or a URL for a scam verdict.
func (c *Client) CheckScam(ctx context.Context, text string) (ScamVerdict, error) {
	body := map[string]string{"text": text}
	var resp ScamVerdict
	if err := c.do(ctx, http.MethodPost, "/api/check-scam", body, &resp); err != nil {
		return ScamVerdict{}, err
	}
	return resp, nil
}

// Point is a latitude/longitude pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Office is a marker near the resolved place.
type Office struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Position Point  `json:"position"`
}

// OfficeResult is the office lookup payload.
type OfficeResult struct {
	Center  Point    `json:"center"`
	Offices []Office `json:"offices"`
}

// LocateOffices resolves government offices near a free-text place.
func (c *Client) LocateOffices(ctx context.Context, place string) (OfficeResult, error) {
	path := fmt.Sprintf("/api/offices?place=%s", url.QueryEscape(place))
	var resp OfficeResult
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return OfficeResult{}, err
	}
	return resp, nil
}
