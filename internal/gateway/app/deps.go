package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"argminer/internal/gateway/config"
	"argminer/internal/gateway/repository/session"
	"argminer/internal/gateway/service/analysis"
	"argminer/internal/llm"
)

// Deps is the analysis stack shared by the server and the CLI.
type Deps struct {
	LLM      llm.LLMClient
	Sessions *session.Store
	Analysis *analysis.Service
}

// NewDeps opens the configured provider and wraps it with logging and,
// when reg is non-nil, request metrics.
func NewDeps(ctx context.Context, cfg *config.Config, logger *zap.Logger, reg prometheus.Registerer) (*Deps, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	client, err := llm.DefaultCatalog().Open(ctx, cfg.LLM.Provider, llm.ProviderConfig{
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
		BaseURL: cfg.LLM.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("open llm provider: %w", err)
	}
	var metrics *llm.Metrics
	if reg != nil {
		metrics = llm.NewMetrics(reg)
	}
	client = llm.Wrap(client, llm.WithLogging(logger), llm.WithMetrics(metrics))

	sessions := session.NewStore(cfg.Session.MaxEntries, cfg.Session.TTL)
	svc := analysis.New(client, sessions, analysis.Options{
		DefaultStrategy: cfg.DefaultStrategy,
		DefaultFormat:   cfg.DiagramFormat,
		Logger:          logger.Named("analysis"),
	})
	return &Deps{LLM: client, Sessions: sessions, Analysis: svc}, nil
}

func (d *Deps) Close() error {
	if d == nil || d.LLM == nil {
		return nil
	}
	return d.LLM.Close()
}
