package scam

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/vrusha-mor/yojanasaathi/internal/llm"
)

type stubGateway struct {
	raw     json.RawMessage
	err     error
	prompts []string
}

func (s *stubGateway) Invoke(ctx context.Context, prompt string) (json.RawMessage, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return nil, s.err
	}
	return s.raw, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCheckRelaysVerdictVerbatim(t *testing.T) {
	raw := json.RawMessage(`{"isScam":true,"riskLevel":"High","reason":"Asks for OTP"}`)
	svc := New(&stubGateway{raw: raw}, testLogger())

	got, err := svc.Check(context.Background(), "share your OTP to claim prize")
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if !bytes.Equal(got, raw) {
		t.Fatalf("verdict modified: got %s, want %s", got, raw)
	}
}

func TestCheckDoesNotFillMissingFields(t *testing.T) {
	// A sparse verdict passes through untouched. Repair is a scheme-search
	// behavior only.
	raw := json.RawMessage(`{"riskLevel":"Low"}`)
	svc := New(&stubGateway{raw: raw}, testLogger())

	got, err := svc.Check(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if !bytes.Equal(got, raw) {
		t.Fatalf("sparse verdict modified: got %s", got)
	}
}

func TestCheckPropagatesGatewayError(t *testing.T) {
	upstream := &llm.UpstreamError{Message: "connection refused"}
	svc := New(&stubGateway{err: upstream}, testLogger())

	if _, err := svc.Check(context.Background(), "anything"); !errors.Is(err, upstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestCheckPromptCarriesText(t *testing.T) {
	gateway := &stubGateway{raw: json.RawMessage(`{}`)}
	svc := New(gateway, testLogger())

	if _, err := svc.Check(context.Background(), "http://phish.example"); err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if len(gateway.prompts) != 1 || !strings.Contains(gateway.prompts[0], `"http://phish.example"`) {
		t.Fatalf("prompt missing submitted text: %v", gateway.prompts)
	}
}
