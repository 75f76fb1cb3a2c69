package server

import (
	"net/http"

	"go.uber.org/zap"

	"argminer/internal/gateway/handler"
	"argminer/internal/gateway/handler/rpc"
	"argminer/internal/gateway/middleware"
)

func NewMux(
	analysisHandler *rpc.AnalysisHandler,
	diagramHandler *handler.DiagramHandler,
	metricsHandler http.Handler,
	logger *zap.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// RPC Handlers
	mux.Handle(rpc.NewAnalysisServiceHandler(analysisHandler))

	// HTTP Handlers
	mux.HandleFunc("/diagram", diagramHandler.HandleDiagram)
	mux.HandleFunc("/healthz", handler.HandleHealth)
	if metricsHandler != nil {
		mux.Handle("/metrics", metricsHandler)
	}

	// Middleware
	return middleware.CORS(middleware.AccessLog(logger)(mux))
}
