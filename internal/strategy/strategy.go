// Package strategy turns raw discussion text into an argument graph under a
// particular argumentation model.
package strategy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"argminer/internal/graph"
	"argminer/internal/llm"
)

type Kind string

const (
	IBIS    Kind = "ibis"
	Toulmin Kind = "toulmin"
)

var (
	ErrNotImplemented  = errors.New("strategy: not implemented")
	ErrUnknownStrategy = errors.New("strategy: unknown strategy")
)

// Strategy analyzes one discussion per call. Implementations hold no state
// between calls.
type Strategy interface {
	Kind() Kind
	Analyze(ctx context.Context, text string) (*graph.Graph, error)
}

// Info describes a declared strategy.
type Info struct {
	Kind        Kind
	Title       string
	Description string
	Implemented bool
}

type constructor func(llm.LLMClient) Strategy

type variant struct {
	info Info
	// nil for declared but unimplemented variants
	build constructor
}

var variants = []variant{
	{
		info: Info{
			Kind:        IBIS,
			Title:       "IBIS",
			Description: "Issues, positions and arguments for decision-oriented discussions.",
		},
		build: func(c llm.LLMClient) Strategy { return NewIBIS(c) },
	},
	{
		info: Info{
			Kind:        Toulmin,
			Title:       "Toulmin",
			Description: "Claims, grounds and warrants for judging logical soundness.",
		},
	},
}

// New returns the strategy for kind. Declared variants without an
// implementation fail with ErrNotImplemented; there is no fallback.
func New(kind Kind, client llm.LLMClient) (Strategy, error) {
	for _, v := range variants {
		if v.info.Kind != kind {
			continue
		}
		if v.build == nil {
			return nil, fmt.Errorf("%w: %s", ErrNotImplemented, kind)
		}
		if client == nil {
			return nil, fmt.Errorf("strategy %s: llm client is required", kind)
		}
		return v.build(client), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, kind)
}

// ParseKind resolves a strategy name case-insensitively.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, v := range variants {
		if string(v.info.Kind) == name {
			return v.info.Kind, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// List returns every declared strategy in declaration order.
func List() []Info {
	out := make([]Info, 0, len(variants))
	for _, v := range variants {
		info := v.info
		info.Implemented = v.build != nil
		out = append(out, info)
	}
	return out
}
