package rpc

import (
	"encoding/json"
	"errors"
	"strings"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/structpb"

	"argminer/internal/diagram"
	"argminer/internal/gateway/repository/session"
	"argminer/internal/gateway/service/analysis"
	"argminer/internal/graph"
	"argminer/internal/llm"
	"argminer/internal/strategy"
)

func stringField(msg *structpb.Struct, key string) string {
	if msg == nil {
		return ""
	}
	return strings.TrimSpace(msg.GetFields()[key].GetStringValue())
}

func toProtoResult(res analysis.Result) (*structpb.Struct, error) {
	g, err := graphValue(res.Graph)
	if err != nil {
		return nil, err
	}
	return structpb.NewStruct(map[string]any{
		"session_id": res.SessionID,
		"strategy":   string(res.Strategy),
		"version":    res.Version,
		"format":     string(res.Format),
		"graph":      g,
		"diagram":    res.Diagram,
	})
}

// graphValue goes through the graph's JSON form so the RPC payload and the
// CLI's json output share one shape.
func graphValue(g *graph.Graph) (map[string]any, error) {
	if g == nil {
		g = graph.Empty()
	}
	raw, err := json.Marshal(g)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func toProtoStrategies(infos []strategy.Info) (*structpb.Struct, error) {
	list := make([]any, 0, len(infos))
	for _, info := range infos {
		list = append(list, map[string]any{
			"name":        string(info.Kind),
			"title":       info.Title,
			"description": info.Description,
			"implemented": info.Implemented,
		})
	}
	return structpb.NewStruct(map[string]any{"strategies": list})
}

func toConnectError(err error) error {
	var (
		callErr     *llm.LLMCallError
		analysisErr *strategy.AnalysisError
	)
	switch {
	case errors.Is(err, analysis.ErrEmptyText),
		errors.Is(err, strategy.ErrUnknownStrategy),
		errors.Is(err, diagram.ErrUnknownFormat),
		errors.Is(err, session.ErrMissingID):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, strategy.ErrNotImplemented):
		return connect.NewError(connect.CodeUnimplemented, err)
	case errors.Is(err, session.ErrBusy):
		return connect.NewError(connect.CodeAborted, err)
	case errors.Is(err, analysis.ErrSessionNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.As(err, &callErr):
		return connect.NewError(connect.CodeUnavailable, err)
	case errors.As(err, &analysisErr):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
