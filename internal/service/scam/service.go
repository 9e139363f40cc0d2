package scam

import (
	"context"
	"encoding/json"
	"fmt"

	"log/slog"

	"github.com/vrusha-mor/yojanasaathi/internal/llm"
)

// Service classifies text or URLs as scams via the model gateway. The
// provider's JSON object is relayed verbatim: unlike scheme search, no
// defaults are filled in for missing fields.
type Service struct {
	gateway llm.Gateway
	logger  *slog.Logger
}

// New constructs a Service.
func New(gateway llm.Gateway, logger *slog.Logger) Service {
	return Service{gateway: gateway, logger: logger}
}

// Check asks the model for a risk verdict on the submitted text.
func (s Service) Check(ctx context.Context, text string) (json.RawMessage, error) {
	raw, err := s.gateway.Invoke(ctx, buildPrompt(text))
	if err != nil {
		s.logger.Error("scam check failed", "error", err)
		return nil, err
	}
	return raw, nil
}

func buildPrompt(text string) string {
	return fmt.Sprintf(`You are a cybersecurity expert.

Analyze the following text or URL and determine if it is a scam.

"%s"

Return ONLY valid JSON:
{
  "isScam": true or false,
  "riskLevel": "Low | Medium | High",
  "reason": "Short explanation"
}`, text)
}
