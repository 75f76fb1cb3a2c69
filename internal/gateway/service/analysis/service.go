package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"argminer/internal/diagram"
	"argminer/internal/gateway/repository/session"
	"argminer/internal/graph"
	"argminer/internal/llm"
	"argminer/internal/strategy"
)

var (
	ErrEmptyText       = errors.New("analysis: text is required")
	ErrSessionNotFound = errors.New("analysis: session not found")
)

type AnalyzeRequest struct {
	// SessionID selects the slot to replace; empty allocates a new session.
	SessionID string
	// Strategy is a strategy name; empty selects the configured default.
	Strategy string
	Text     string
	// Format is a diagram format name; empty selects the configured default.
	Format string
}

type Result struct {
	SessionID string
	Strategy  strategy.Kind
	Version   int64
	Graph     *graph.Graph
	Format    diagram.Format
	Diagram   string
}

type Options struct {
	DefaultStrategy strategy.Kind
	DefaultFormat   diagram.Format
	Logger          *zap.Logger
}

// Service runs one analysis per call and keeps the resulting graph in the
// caller's session slot so it can be re-rendered without another LLM call.
type Service struct {
	llm      llm.LLMClient
	sessions *session.Store
	kind     strategy.Kind
	format   diagram.Format
	log      *zap.Logger
	newID    func() string
}

func New(client llm.LLMClient, sessions *session.Store, opts Options) *Service {
	s := &Service{
		llm:      client,
		sessions: sessions,
		kind:     opts.DefaultStrategy,
		format:   opts.DefaultFormat,
		log:      opts.Logger,
		newID:    uuid.NewString,
	}
	if s.kind == "" {
		s.kind = strategy.IBIS
	}
	if s.format == "" {
		s.format = diagram.FormatMermaid
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s
}

// Analyze extracts a graph from req.Text, stores it in the session slot and
// renders it. On failure the slot keeps its previous graph.
func (s *Service) Analyze(ctx context.Context, req AnalyzeRequest) (Result, error) {
	if strings.TrimSpace(req.Text) == "" {
		return Result{}, ErrEmptyText
	}
	kind := s.kind
	if strings.TrimSpace(req.Strategy) != "" {
		k, err := strategy.ParseKind(req.Strategy)
		if err != nil {
			return Result{}, err
		}
		kind = k
	}
	format, err := s.resolveFormat(req.Format)
	if err != nil {
		return Result{}, err
	}
	strat, err := strategy.New(kind, s.llm)
	if err != nil {
		return Result{}, err
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = s.newID()
	}
	release, err := s.sessions.Acquire(sessionID)
	if err != nil {
		return Result{}, err
	}
	defer release()

	log := s.log.With(zap.String("session_id", sessionID), zap.String("strategy", string(kind)))
	g, err := strat.Analyze(ctx, req.Text)
	if err != nil {
		log.Warn("analysis failed", zap.Error(err))
		return Result{}, err
	}
	entry, err := s.sessions.Put(sessionID, kind, g)
	if err != nil {
		return Result{}, err
	}
	log.Info("analysis stored",
		zap.Int("nodes", g.NodeCount()),
		zap.Int("edges", g.EdgeCount()),
		zap.Int64("version", entry.Version),
	)
	return s.render(entry, format)
}

// Diagram re-renders the graph stored for sessionID.
func (s *Service) Diagram(sessionID, format string) (Result, error) {
	f, err := s.resolveFormat(format)
	if err != nil {
		return Result{}, err
	}
	entry, ok := s.sessions.Get(sessionID)
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrSessionNotFound, strings.TrimSpace(sessionID))
	}
	return s.render(entry, f)
}

func (s *Service) Strategies() []strategy.Info {
	return strategy.List()
}

func (s *Service) resolveFormat(name string) (diagram.Format, error) {
	if strings.TrimSpace(name) == "" {
		return s.format, nil
	}
	return diagram.ParseFormat(name)
}

func (s *Service) render(entry session.Entry, format diagram.Format) (Result, error) {
	text, err := diagram.Render(entry.Graph, format)
	if err != nil {
		return Result{}, err
	}
	return Result{
		SessionID: entry.SessionID,
		Strategy:  entry.Strategy,
		Version:   entry.Version,
		Graph:     entry.Graph,
		Format:    format,
		Diagram:   text,
	}, nil
}
