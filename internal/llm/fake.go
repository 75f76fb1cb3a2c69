package llm

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
)

// FakeCall records one GenerateJSON invocation.
type FakeCall struct {
	Prompt string
	Input  string
	Schema *Schema
}

// FakeClient replays scripted replies for offline runs and tests. Replies are
// consumed in order and the last one repeats. With no replies it returns a
// one-node graph whose Issue label is the first line of the input.
type FakeClient struct {
	mu      sync.Mutex
	replies []string
	err     error
	calls   []FakeCall
}

func NewFakeClient(replies ...string) *FakeClient {
	return &FakeClient{replies: replies}
}

// FailWith makes every subsequent call fail with err wrapped in LLMCallError.
func (f *FakeClient) FailWith(err error) *FakeClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
	return f
}

func (f *FakeClient) Name() string { return "fake" }
func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) Calls() []FakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]FakeCall(nil), f.calls...)
}

func (f *FakeClient) GenerateJSON(ctx context.Context, prompt, input string, schema *Schema) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, callError(f.Name(), err)
	}
	f.mu.Lock()
	f.calls = append(f.calls, FakeCall{Prompt: prompt, Input: input, Schema: schema})
	if f.err != nil {
		err := f.err
		f.mu.Unlock()
		return nil, callError(f.Name(), err)
	}
	var reply string
	switch len(f.replies) {
	case 0:
		reply = defaultFakeReply(input)
	case 1:
		reply = f.replies[0]
	default:
		reply = f.replies[0]
		f.replies = f.replies[1:]
	}
	f.mu.Unlock()
	return decodeReply(f.Name(), reply)
}

func defaultFakeReply(input string) string {
	label := strings.TrimSpace(input)
	if i := strings.IndexByte(label, '\n'); i >= 0 {
		label = strings.TrimSpace(label[:i])
	}
	if r := []rune(label); len(r) > 60 {
		label = string(r[:60]) + "..."
	}
	if label == "" {
		label = "(empty discussion)"
	}
	b, _ := json.Marshal(map[string]any{
		"nodes": []map[string]any{
			{"id": "n1", "type": "Issue", "label": label, "speaker": "", "sequence": 1},
		},
		"edges": []any{},
	})
	return string(b)
}
