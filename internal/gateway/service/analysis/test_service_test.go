package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"argminer/internal/diagram"
	"argminer/internal/gateway/repository/session"
	"argminer/internal/llm"
	"argminer/internal/strategy"
)

const latencyReply = `{"nodes":[{"id":"n1","type":"Issue","label":"How to reduce latency?"},{"id":"n2","type":"Position","label":"Add caching"}],"edges":[{"source":"n2","target":"n1","type":"responds-to"}]}`

func newService(client llm.LLMClient) (*Service, *session.Store) {
	store := session.NewStore(16, time.Minute)
	return New(client, store, Options{}), store
}

func TestAnalyzeStoresAndRenders(t *testing.T) {
	svc, store := newService(llm.NewFakeClient(latencyReply))
	svc.newID = func() string { return "sess-1" }

	res, err := svc.Analyze(context.Background(), AnalyzeRequest{Text: "A: slow\nB: cache it"})
	require.NoError(t, err)
	assert.Equal(t, "sess-1", res.SessionID)
	assert.Equal(t, strategy.IBIS, res.Strategy)
	assert.Equal(t, int64(1), res.Version)
	assert.Equal(t, diagram.FormatMermaid, res.Format)
	assert.Equal(t, 2, res.Graph.NodeCount())
	assert.Contains(t, res.Diagram, "n2 -->|responds to| n1")

	entry, ok := store.Get("sess-1")
	require.True(t, ok)
	assert.Same(t, res.Graph, entry.Graph)
}

func TestDiagramRerenderIsIdempotent(t *testing.T) {
	fake := llm.NewFakeClient(latencyReply)
	svc, _ := newService(fake)

	res, err := svc.Analyze(context.Background(), AnalyzeRequest{SessionID: "s", Text: "t"})
	require.NoError(t, err)

	again, err := svc.Diagram("s", "")
	require.NoError(t, err)
	assert.Equal(t, res.Diagram, again.Diagram)
	dot, err := svc.Diagram("s", "dot")
	require.NoError(t, err)
	assert.Contains(t, dot.Diagram, "digraph argument")
	assert.Len(t, fake.Calls(), 1, "re-rendering must not call the model")

	_, err = svc.Diagram("missing", "")
	assert.True(t, errors.Is(err, ErrSessionNotFound))
}

func TestAnalyzeRejectsEmptyText(t *testing.T) {
	fake := llm.NewFakeClient(latencyReply)
	svc, _ := newService(fake)
	_, err := svc.Analyze(context.Background(), AnalyzeRequest{Text: "  \n\t"})
	assert.True(t, errors.Is(err, ErrEmptyText))
	assert.Empty(t, fake.Calls())
}

func TestAnalyzeToulminFailsFast(t *testing.T) {
	fake := llm.NewFakeClient(latencyReply)
	svc, store := newService(fake)
	_, err := svc.Analyze(context.Background(), AnalyzeRequest{SessionID: "s", Strategy: "toulmin", Text: "t"})
	assert.True(t, errors.Is(err, strategy.ErrNotImplemented))
	assert.Empty(t, fake.Calls())
	assert.Equal(t, 0, store.Len())
}

func TestAnalyzeFailureKeepsPreviousGraph(t *testing.T) {
	fake := llm.NewFakeClient(latencyReply, `{"nodes":[{"id":"n1","type":"Issue","label":"Q"}],"edges":[{"source":"n1","target":"zz","type":"supports"}]}`)
	svc, store := newService(fake)

	first, err := svc.Analyze(context.Background(), AnalyzeRequest{SessionID: "s", Text: "t"})
	require.NoError(t, err)

	_, err = svc.Analyze(context.Background(), AnalyzeRequest{SessionID: "s", Text: "t2"})
	var ae *strategy.AnalysisError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "edges[0].target", ae.Field)

	entry, ok := store.Get("s")
	require.True(t, ok)
	assert.Same(t, first.Graph, entry.Graph)
	assert.Equal(t, int64(1), entry.Version)
}

func TestAnalyzeSurfacesLLMCallError(t *testing.T) {
	svc, _ := newService(llm.NewFakeClient().FailWith(errors.New("503 from provider")))
	_, err := svc.Analyze(context.Background(), AnalyzeRequest{Text: "t"})
	var ce *llm.LLMCallError
	assert.ErrorAs(t, err, &ce)
}

func TestAnalyzeRejectsOverlappingSessionUse(t *testing.T) {
	blocking := &blockingClient{entered: make(chan struct{}), unblock: make(chan struct{})}
	svc, _ := newService(blocking)

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		_, firstErr = svc.Analyze(context.Background(), AnalyzeRequest{SessionID: "s", Text: "t"})
	}()
	<-blocking.entered

	_, err := svc.Analyze(context.Background(), AnalyzeRequest{SessionID: "s", Text: "t"})
	assert.True(t, errors.Is(err, session.ErrBusy))

	close(blocking.unblock)
	wg.Wait()
	require.NoError(t, firstErr)
}

func TestAnalyzeUnknownInputs(t *testing.T) {
	svc, _ := newService(llm.NewFakeClient(latencyReply))
	_, err := svc.Analyze(context.Background(), AnalyzeRequest{Strategy: "socratic", Text: "t"})
	assert.True(t, errors.Is(err, strategy.ErrUnknownStrategy))
	_, err = svc.Analyze(context.Background(), AnalyzeRequest{Format: "svg", Text: "t"})
	assert.Error(t, err)
}

type blockingClient struct {
	entered chan struct{}
	unblock chan struct{}
	once    sync.Once
}

func (b *blockingClient) Name() string { return "blocking" }
func (b *blockingClient) Close() error { return nil }
func (b *blockingClient) GenerateJSON(ctx context.Context, prompt, input string, schema *llm.Schema) (json.RawMessage, error) {
	b.once.Do(func() { close(b.entered) })
	<-b.unblock
	return json.RawMessage(latencyReply), nil
}
