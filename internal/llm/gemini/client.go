package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sethvargo/go-retry"
	"google.golang.org/genai"

	"github.com/vrusha-mor/yojanasaathi/internal/llm"
)

const defaultModel = "gemini-2.0-flash"

// Client invokes the Gemini API directly instead of going through
// OpenRouter. Selected with MODEL_PROVIDER=gemini.
type Client struct {
	client *genai.Client
	model  string
	policy llm.Policy
}

// New constructs a Gemini-backed gateway.
func New(ctx context.Context, apiKey, model string, policy llm.Policy) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini api key required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	return &Client{client: client, model: model, policy: policy}, nil
}

var _ llm.Gateway = (*Client)(nil)

// Invoke sends a single-turn prompt constrained to a JSON response.
func (c *Client) Invoke(ctx context.Context, prompt string) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.policy.Do(ctx, func(ctx context.Context) error {
		result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
		})
		if err != nil {
			return retry.RetryableError(&llm.UpstreamError{Message: err.Error()})
		}
		text := strings.TrimSpace(result.Text())
		if text == "" {
			return retry.RetryableError(&llm.UpstreamError{Message: "response missing completion"})
		}
		var value any
		if err := json.Unmarshal([]byte(text), &value); err != nil {
			return &llm.ParseError{Err: err}
		}
		out = json.RawMessage(text)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
