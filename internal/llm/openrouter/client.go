package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/vrusha-mor/yojanasaathi/internal/llm"
)

const (
	defaultBaseURL = "https://openrouter.ai/api/v1"
	defaultModel   = "google/gemini-2.0-flash-001"
)

// Client invokes OpenRouter's chat-completion endpoint. It attaches fixed
// authorization and model-selection parameters and constrains output to a
// JSON object; it holds no state between calls.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	referer    string
	title      string
	policy     llm.Policy
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

// WithBaseURL points the client at a different chat-completion host.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimRight(strings.TrimSpace(base), "/"); trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithModel selects the model slug sent with every request.
func WithModel(model string) Option {
	return func(c *Client) {
		if strings.TrimSpace(model) != "" {
			c.model = model
		}
	}
}

// WithPolicy sets the retry/timeout policy for invocations.
func WithPolicy(p llm.Policy) Option {
	return func(c *Client) {
		c.policy = p
	}
}

// WithAttribution sets the optional HTTP-Referer and X-Title headers
// OpenRouter uses for rankings.
func WithAttribution(referer, title string) Option {
	return func(c *Client) {
		c.referer = strings.TrimSpace(referer)
		c.title = strings.TrimSpace(title)
	}
}

// New constructs a Client with the provided API key.
func New(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("openrouter api key required")
	}
	c := &Client{
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		model:      defaultModel,
		policy:     llm.DefaultPolicy(),
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

var _ llm.Gateway = (*Client)(nil)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Invoke sends a single-turn prompt and returns the parsed JSON completion.
// Upstream failures are retried according to the policy; parse failures are
// terminal.
func (c *Client) Invoke(ctx context.Context, prompt string) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.policy.Do(ctx, func(ctx context.Context) error {
		raw, err := c.complete(ctx, prompt)
		if err != nil {
			var upstream *llm.UpstreamError
			if errors.As(err, &upstream) {
				return retry.RetryableError(err)
			}
			return err
		}
		out = raw
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) complete(ctx context.Context, prompt string) (json.RawMessage, error) {
	payload := chatRequest{
		Model:          c.model,
		Messages:       []chatMessage{{Role: "user", Content: prompt}},
		ResponseFormat: responseFormat{Type: "json_object"},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if c.referer != "" {
		req.Header.Set("HTTP-Referer", c.referer)
	}
	if c.title != "" {
		req.Header.Set("X-Title", c.title)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &llm.UpstreamError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &llm.UpstreamError{Status: resp.StatusCode, Message: "provider returned error status"}
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &llm.UpstreamError{Status: resp.StatusCode, Message: "undecodable provider response"}
	}
	if len(parsed.Choices) == 0 {
		return nil, &llm.UpstreamError{Status: resp.StatusCode, Message: "response missing completion"}
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	var value any
	if err := json.Unmarshal([]byte(content), &value); err != nil {
		return nil, &llm.ParseError{Err: err}
	}
	return json.RawMessage(content), nil
}
