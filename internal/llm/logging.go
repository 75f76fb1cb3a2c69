package llm

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// WithLogging logs request size, latency and errors. A nil logger disables it.
func WithLogging(logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next LLMClient) LLMClient {
		return &logging{next: next, log: logger.Named("llm")}
	}
}

type logging struct {
	next LLMClient
	log  *zap.Logger
}

func (l *logging) Name() string { return l.next.Name() }
func (l *logging) Close() error { return l.next.Close() }

func (l *logging) GenerateJSON(ctx context.Context, prompt, input string, schema *Schema) (json.RawMessage, error) {
	start := time.Now()
	l.log.Info("LLM request",
		zap.String("provider", l.next.Name()),
		zap.Int("bytes", len(prompt)+len(input)),
		zap.Bool("schema", schema != nil),
	)
	raw, err := l.next.GenerateJSON(ctx, prompt, input, schema)
	if err != nil {
		l.log.Warn("LLM error",
			zap.String("provider", l.next.Name()),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return raw, err
	}
	l.log.Debug("LLM response",
		zap.String("provider", l.next.Name()),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("bytes", len(raw)),
	)
	return raw, nil
}
