package app

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"argminer/internal/gateway/config"
	"argminer/internal/gateway/handler"
	"argminer/internal/gateway/handler/rpc"
	"argminer/internal/gateway/server"
)

type App struct {
	server *server.Server
	deps   *Deps
}

func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("app: config is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	// Dependencies
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	deps, err := NewDeps(ctx, cfg, logger, reg)
	if err != nil {
		return nil, fmt.Errorf("failed to build dependencies: %w", err)
	}

	analysisHandler := rpc.NewAnalysisHandler(deps.Analysis)
	diagramHandler := handler.NewDiagramHandler(deps.Analysis)
	metricsHandler := promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})

	// Routing & Server
	mux := server.NewMux(analysisHandler, diagramHandler, metricsHandler, logger)
	srv := server.New(cfg.Port, mux, logger)

	logger.Info("app ready",
		zap.String("provider", deps.LLM.Name()),
		zap.String("strategy", string(cfg.DefaultStrategy)),
		zap.String("format", string(cfg.DiagramFormat)),
	)
	return &App{server: srv, deps: deps}, nil
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Serve(ln net.Listener) error {
	return a.server.Serve(ln)
}

func (a *App) Shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)
	return errors.Join(err, a.deps.Close())
}
