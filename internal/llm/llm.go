package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
)

// Gateway forwards a single-turn prompt to an external chat-completion
// service and returns the JSON object the model produced. The gateway does
// not interpret the prompt's semantics; callers own the shape of the result.
type Gateway interface {
	Invoke(ctx context.Context, prompt string) (json.RawMessage, error)
}

// UpstreamError indicates the provider was unreachable, returned a non-2xx
// status, or sent a response without the expected completion field. Status is
// zero when the call never completed.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("model provider: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("model provider: %s", e.Message)
}

// ParseError indicates the completion content was not parseable as JSON.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("model response is not valid JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Policy controls how a gateway executes an invocation. The zero value and
// DefaultPolicy both perform exactly one attempt with no extra deadline,
// matching the historical behavior; operators widen it through configuration.
type Policy struct {
	MaxAttempts int
	Backoff     time.Duration
	Timeout     time.Duration
}

// DefaultPolicy returns the single-attempt policy.
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: 1}
}

// Do runs fn under the policy. fn signals a retryable failure by returning
// retry.RetryableError; anything else fails immediately.
func (p Policy) Do(ctx context.Context, fn func(context.Context) error) error {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	backoff := p.Backoff
	if backoff <= 0 {
		backoff = 500 * time.Millisecond
	}
	return retry.Do(ctx, retry.WithMaxRetries(uint64(attempts-1), retry.NewConstant(backoff)), fn)
}
