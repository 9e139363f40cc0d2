package scheme

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"log/slog"

	"github.com/vrusha-mor/yojanasaathi/internal/domain"
	"github.com/vrusha-mor/yojanasaathi/internal/llm"
)

// DefaultDocuments is substituted whenever the provider omits or empties a
// scheme's document checklist.
var DefaultDocuments = []string{
	"Aadhaar Card",
	"Income Certificate",
	"Residence Proof",
	"Bank Passbook",
}

// Service turns a free-text situation description into scheme
// recommendations via the model gateway.
type Service struct {
	gateway llm.Gateway
	logger  *slog.Logger
}

// New constructs a Service.
func New(gateway llm.Gateway, logger *slog.Logger) Service {
	return Service{gateway: gateway, logger: logger}
}

// Search invokes the gateway and repairs the response so every scheme
// carries a non-empty document list. When the gateway fails, the returned
// result is still a renderable empty payload and the error is reported
// alongside it so the transport can set the status code.
func (s Service) Search(ctx context.Context, query, language string) (domain.SchemeSearchResult, error) {
	raw, err := s.gateway.Invoke(ctx, buildPrompt(query, language))
	if err != nil {
		s.logger.Error("scheme search failed", "error", err)
		return fallbackResult(), err
	}

	var parsed struct {
		Message string          `json:"message"`
		Schemes []domain.Scheme `json:"schemes"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		s.logger.Error("scheme response has unexpected shape", "error", err)
		return fallbackResult(), &llm.ParseError{Err: err}
	}

	result := domain.SchemeSearchResult{
		Message: parsed.Message,
		Schemes: parsed.Schemes,
	}
	if result.Schemes == nil {
		result.Schemes = []domain.Scheme{}
	}
	for i := range result.Schemes {
		if len(result.Schemes[i].Documents) == 0 {
			result.Schemes[i].Documents = append([]string(nil), DefaultDocuments...)
		}
	}
	return result, nil
}

func fallbackResult() domain.SchemeSearchResult {
	return domain.SchemeSearchResult{Message: "Server error", Schemes: []domain.Scheme{}}
}

func buildPrompt(query, language string) string {
	if strings.TrimSpace(language) == "" {
		language = "Auto-detect"
	}
	return fmt.Sprintf(`You are an Indian government scheme reasoning engine.

User message:
"%s"
Language requested: %s

Your tasks:
- Detect the user's language automatically
- Identify suitable Indian government schemes
- Respond in the SAME language as the user
- Keep response simple and helpful

IMPORTANT:
- You MUST include documents array for EVERY scheme
- documents MUST be an array of strings

Return JSON ONLY in this exact format:

{
  "message": "",
  "schemes": [
    {
      "name": "",
      "description": "",
      "eligibility": "",
      "documents": [
        "Aadhaar Card",
        "Income Certificate"
      ],
      "apply_link": ""
    }
  ]
}`, query, language)
}
