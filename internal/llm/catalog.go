package llm

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderFake   = "fake"

	DefaultOpenAIModel = "gpt-4o-mini"
	DefaultGeminiModel = "gemini-2.5-flash"
)

var (
	ErrUnknownProvider = errors.New("llm: unknown provider")
	ErrMissingAPIKey   = errors.New("llm: missing API key")
)

type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type ClientFactory func(ctx context.Context, cfg ProviderConfig) (LLMClient, error)

type ProviderRegistration struct {
	Name        string
	NeedsAPIKey bool
	Factory     ClientFactory
}

// Catalog maps provider names to client factories.
type Catalog struct {
	mu        sync.RWMutex
	providers map[string]ProviderRegistration
}

func NewCatalog() *Catalog {
	return &Catalog{providers: make(map[string]ProviderRegistration)}
}

// DefaultCatalog returns a catalog with openai, gemini and fake registered.
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	for _, reg := range []ProviderRegistration{
		{
			Name:        ProviderOpenAI,
			NeedsAPIKey: true,
			Factory: func(ctx context.Context, cfg ProviderConfig) (LLMClient, error) {
				return NewOpenAIClient(OpenAIOptions(cfg)), nil
			},
		},
		{
			Name:        ProviderGemini,
			NeedsAPIKey: true,
			Factory: func(ctx context.Context, cfg ProviderConfig) (LLMClient, error) {
				return NewGeminiClient(ctx, GeminiOptions(cfg))
			},
		},
		{
			Name: ProviderFake,
			Factory: func(ctx context.Context, cfg ProviderConfig) (LLMClient, error) {
				return NewFakeClient(), nil
			},
		},
	} {
		// names are distinct, registration cannot fail
		_ = c.RegisterProvider(reg)
	}
	return c
}

func (c *Catalog) RegisterProvider(reg ProviderRegistration) error {
	name := normalizeProvider(reg.Name)
	if name == "" {
		return fmt.Errorf("llm: provider name is required")
	}
	if reg.Factory == nil {
		return fmt.Errorf("llm: provider %q has no factory", name)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.providers[name]; exists {
		return fmt.Errorf("llm: provider %q already registered", name)
	}
	reg.Name = name
	c.providers[name] = reg
	return nil
}

func (c *Catalog) Lookup(name string) (ProviderRegistration, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	reg, ok := c.providers[normalizeProvider(name)]
	return reg, ok
}

// Open builds a client for the named provider.
func (c *Catalog) Open(ctx context.Context, name string, cfg ProviderConfig) (LLMClient, error) {
	reg, ok := c.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	if reg.NeedsAPIKey && strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w for provider %q", ErrMissingAPIKey, reg.Name)
	}
	return reg.Factory(ctx, cfg)
}

func (c *Catalog) Providers() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.providers))
	for name := range c.providers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func normalizeProvider(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
