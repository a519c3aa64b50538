package http

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aretw0/bevtree"
	"github.com/aretw0/bevtree/internal/presentation/graph"
	"github.com/aretw0/bevtree/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Engine is the read-only view of a running tree the server exposes.
type Engine interface {
	Inspect() bevtree.Snapshot
}

// Server serves introspection endpoints for one engine.
type Server struct {
	Engine  Engine
	metrics http.Handler
	logger  *slog.Logger

	mu          sync.Mutex
	subscribers map[chan bevtree.StepResult]struct{}
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics mounts h on GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger sets the logger for encoding and streaming errors.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a server for engine.
func NewServer(engine Engine, opts ...Option) *Server {
	s := &Server{
		Engine:      engine,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		subscribers: make(map[chan bevtree.StepResult]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/tree", s.GetTree)
	r.Get("/active", s.GetActive)
	r.Get("/graph", s.GetGraph)
	r.Get("/events", s.SubscribeEvents)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	return r
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"app":     "bevtree-http",
		"version": bevtree.Version,
	})
}

// GetTree handles the GET /tree request: the live tree with runtime metadata.
func (s *Server) GetTree(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.Engine.Inspect())
}

// ActiveResponse is the body of GET /active.
type ActiveResponse struct {
	Name       string `json:"name"`
	RunID      string `json:"run_id"`
	Steps      int    `json:"steps"`
	Active     string `json:"active"`
	LastActive string `json:"last_active"`
}

// GetActive handles the GET /active request.
func (s *Server) GetActive(w http.ResponseWriter, r *http.Request) {
	snap := s.Engine.Inspect()
	s.writeJSON(w, ActiveResponse{
		Name:       snap.Name,
		RunID:      snap.RunID,
		Steps:      snap.Steps,
		Active:     snap.Active,
		LastActive: snap.LastActive,
	})
}

// GetGraph handles the GET /graph request: Mermaid text with the active leaf highlighted.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	snap := s.Engine.Inspect()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, graph.GenerateMermaid(snap.Tree, Overlay(snap)))
}

// Overlay maps the active and last active leaf paths of snap to graph node IDs.
func Overlay(snap bevtree.Snapshot) *graph.GraphOverlay {
	overlay := &graph.GraphOverlay{}
	snap.Tree.Walk(func(path string, n *domain.Node) bool {
		id := graph.NodeID(path, n)
		if path == snap.Active {
			overlay.CurrentNode = id
		}
		if path == snap.LastActive && path != snap.Active {
			overlay.VisitedNodes = append(overlay.VisitedNodes, id)
		}
		return true
	})
	return overlay
}

// Publish sends a step to every /events subscriber. Slow subscribers miss steps.
func (s *Server) Publish(step bevtree.StepResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subscribers {
		select {
		case ch <- step:
		default:
		}
	}
}

func (s *Server) subscribe() chan bevtree.StepResult {
	ch := make(chan bevtree.StepResult, 16)
	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	s.mu.Unlock()
	return ch
}

func (s *Server) unsubscribe(ch chan bevtree.StepResult) {
	s.mu.Lock()
	delete(s.subscribers, ch)
	s.mu.Unlock()
}

// SubscribeEvents handles the GET /events request (SSE), one event per published step.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	events := s.subscribe()
	defer s.unsubscribe(events)

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case step := <-events:
			data, err := json.Marshal(stepEvent{
				Step:       step.Step,
				Status:     step.Status.String(),
				Ran:        step.Ran,
				Active:     step.Active,
				LastActive: step.LastActive,
			})
			if err != nil {
				s.logger.Error("failed to encode step event", "err", err)
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		}
	}
}

type stepEvent struct {
	Step       int    `json:"step"`
	Status     string `json:"status"`
	Ran        bool   `json:"ran"`
	Active     string `json:"active,omitempty"`
	LastActive string `json:"last_active,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode error", "err", err)
	}
}
