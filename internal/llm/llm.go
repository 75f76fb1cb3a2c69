package llm

import (
	"context"
	"encoding/json"
)

// LLMClient sends one prompt/input pair to a model and returns its JSON reply.
// Implementations make exactly one provider call per GenerateJSON and never retry.
type LLMClient interface {
	Name() string
	Close() error
	// GenerateJSON uses prompt as the system instruction and input as the user
	// turn. When schema is non-nil the provider is asked to constrain its reply
	// to it; callers must still validate the result.
	GenerateJSON(ctx context.Context, prompt, input string, schema *Schema) (json.RawMessage, error)
}
