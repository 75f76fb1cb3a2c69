package rpc

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/structpb"

	"argminer/internal/gateway/service/analysis"
)

const AnalysisServiceName = "argminer.v1.AnalysisService"

const (
	AnalysisServiceAnalyzeProcedure        = "/" + AnalysisServiceName + "/Analyze"
	AnalysisServiceGetDiagramProcedure     = "/" + AnalysisServiceName + "/GetDiagram"
	AnalysisServiceListStrategiesProcedure = "/" + AnalysisServiceName + "/ListStrategies"
)

type AnalysisHandler struct {
	svc *analysis.Service
}

func NewAnalysisHandler(svc *analysis.Service) *AnalysisHandler {
	return &AnalysisHandler{svc: svc}
}

// NewAnalysisServiceHandler mounts the three procedures under the service
// path prefix, in the shape of a generated Connect service handler.
func NewAnalysisServiceHandler(h *AnalysisHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	analyze := connect.NewUnaryHandler(AnalysisServiceAnalyzeProcedure, h.Analyze, opts...)
	getDiagram := connect.NewUnaryHandler(AnalysisServiceGetDiagramProcedure, h.GetDiagram, opts...)
	listStrategies := connect.NewUnaryHandler(AnalysisServiceListStrategiesProcedure, h.ListStrategies, opts...)
	return "/" + AnalysisServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case AnalysisServiceAnalyzeProcedure:
			analyze.ServeHTTP(w, r)
		case AnalysisServiceGetDiagramProcedure:
			getDiagram.ServeHTTP(w, r)
		case AnalysisServiceListStrategiesProcedure:
			listStrategies.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

func (h *AnalysisHandler) Analyze(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	in := analysis.AnalyzeRequest{
		SessionID: stringField(req.Msg, "session_id"),
		Strategy:  stringField(req.Msg, "strategy"),
		Text:      stringField(req.Msg, "text"),
		Format:    stringField(req.Msg, "format"),
	}
	res, err := h.svc.Analyze(ctx, in)
	if err != nil {
		return nil, toConnectError(err)
	}
	out, err := toProtoResult(res)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(out), nil
}

func (h *AnalysisHandler) GetDiagram(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	sessionID := stringField(req.Msg, "session_id")
	if sessionID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("session_id is required"))
	}
	res, err := h.svc.Diagram(sessionID, stringField(req.Msg, "format"))
	if err != nil {
		return nil, toConnectError(err)
	}
	out, err := toProtoResult(res)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(out), nil
}

func (h *AnalysisHandler) ListStrategies(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	out, err := toProtoStrategies(h.svc.Strategies())
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(out), nil
}
