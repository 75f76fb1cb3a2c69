package llm

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyResponse = errors.New("llm: empty response from model")
	ErrInvalidJSON   = errors.New("llm: invalid JSON from model")
)

// LLMCallError wraps every failure of a provider call: transport errors,
// provider API errors, empty replies and replies that are not JSON.
type LLMCallError struct {
	Provider string
	Err      error
}

func (e *LLMCallError) Error() string {
	return fmt.Sprintf("llm call to %s failed: %v", e.Provider, e.Err)
}

func (e *LLMCallError) Unwrap() error { return e.Err }

func callError(provider string, err error) error {
	var ce *LLMCallError
	if errors.As(err, &ce) {
		return err
	}
	return &LLMCallError{Provider: provider, Err: err}
}
