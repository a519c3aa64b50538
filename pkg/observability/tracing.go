package observability

import (
	"context"
	"sync"

	"github.com/aretw0/bevtree/pkg/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracing translates leaf lifecycle events into OpenTelemetry spans.
// A span starts at a leaf's Enter and ends at its matching Exit.
type Tracing struct {
	tracer trace.Tracer
	runID  string

	mu    sync.Mutex
	spans map[int]trace.Span // node id -> open span
}

// NewTracing creates a tracing handler. runID is attached to every span.
func NewTracing(tracer trace.Tracer, runID string) *Tracing {
	return &Tracing{
		tracer: tracer,
		runID:  runID,
		spans:  make(map[int]trace.Span),
	}
}

// Hooks returns the lifecycle hooks opening and closing spans.
func (t *Tracing) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeEnter: t.start,
		OnNodeExit:  t.end,
	}
}

// Open returns the number of leaf spans not ended yet.
func (t *Tracing) Open() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.spans)
}

func (t *Tracing) start(e *domain.NodeEvent) {
	_, span := t.tracer.Start(context.Background(), "leaf:"+e.Name,
		trace.WithAttributes(
			attribute.String("bevtree.run_id", t.runID),
			attribute.Int("bevtree.node_id", e.NodeID),
			attribute.String("bevtree.node_type", e.NodeType),
		),
		trace.WithTimestamp(e.Timestamp),
	)

	t.mu.Lock()
	if stale, ok := t.spans[e.NodeID]; ok {
		stale.End()
	}
	t.spans[e.NodeID] = span
	t.mu.Unlock()
}

func (t *Tracing) end(e *domain.NodeEvent) {
	t.mu.Lock()
	span, ok := t.spans[e.NodeID]
	if ok {
		delete(t.spans, e.NodeID)
	}
	t.mu.Unlock()

	if !ok {
		return
	}
	span.SetAttributes(attribute.String("bevtree.exit_status", e.Status.String()))
	if e.Status == domain.ErrorTransition {
		span.SetStatus(codes.Error, "leaf ended with error_transition")
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End(trace.WithTimestamp(e.Timestamp))
}
