package app

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"argminer/internal/gateway/config"
	"argminer/internal/gateway/service/analysis"
	"argminer/internal/llm"
	"argminer/internal/tester"
)

func fakeConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.FromEnv(func(key string) string {
		if key == "LLM_PROVIDER" {
			return llm.ProviderFake
		}
		return ""
	})
	tester.NoErr(t, err)
	return cfg
}

func TestAppServesHealthAndMetrics(t *testing.T) {
	a, err := New(context.Background(), fakeConfig(t), nil)
	tester.NoErr(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	tester.NoErr(t, err)
	done := make(chan error, 1)
	go func() { done <- a.Serve(ln) }()
	base := "http://" + ln.Addr().String()

	res, err := http.Get(base + "/healthz")
	tester.NoErr(t, err)
	res.Body.Close()
	tester.Eq(t, res.StatusCode, http.StatusOK)

	_, err = a.deps.Analysis.Analyze(context.Background(), analysisRequest("s1", "Is the cache worth it?"))
	tester.NoErr(t, err)

	res, err = http.Get(base + "/metrics")
	tester.NoErr(t, err)
	body, err := io.ReadAll(res.Body)
	res.Body.Close()
	tester.NoErr(t, err)
	tester.Contains(t, string(body), `argminer_llm_requests_total{outcome="ok",provider="fake"} 1`)

	res, err = http.Get(base + "/diagram?session_id=s1")
	tester.NoErr(t, err)
	body, _ = io.ReadAll(res.Body)
	res.Body.Close()
	tester.Contains(t, string(body), "Is the cache worth it?")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	tester.NoErr(t, a.Shutdown(ctx))
	tester.NoErr(t, <-done)
}

func TestNewDepsRejectsUnknownProvider(t *testing.T) {
	cfg := fakeConfig(t)
	cfg.LLM.Provider = "anthropic"
	_, err := NewDeps(context.Background(), cfg, nil, nil)
	tester.ErrIs(t, err, llm.ErrUnknownProvider)
}

func analysisRequest(sessionID, text string) analysis.AnalyzeRequest {
	return analysis.AnalyzeRequest{SessionID: sessionID, Text: text}
}
