package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/bevtree"
	"github.com/aretw0/bevtree/pkg/domain"
	"github.com/aretw0/bevtree/pkg/observability"
	"github.com/aretw0/bevtree/pkg/registry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Options holds the flags shared by run and serve.
type Options struct {
	Dir        string
	Tree       string
	LogLevel   string
	LogFile    string
	Blackboard string // Raw JSON object
	Trace      bool
	// TraceOutput receives the span JSON when Trace is set; nil means stderr.
	TraceOutput io.Writer
}

// Session bundles an engine with the blackboard it runs against and its observability.
type Session struct {
	Engine  *bevtree.Engine
	Board   *registry.Blackboard
	Metrics *observability.Metrics
	Tracing *observability.Tracing
	Logger  *slog.Logger

	closers []func(context.Context) error
}

// NewSession builds the logger, hooks and engine described by opts.
func NewSession(opts Options) (*Session, error) {
	logger, logCloser, err := createLogger(opts.LogLevel, opts.LogFile)
	if err != nil {
		return nil, err
	}
	s := &Session{
		Logger:  logger,
		Metrics: observability.NewMetrics("bevtree"),
		closers: []func(context.Context) error{func(context.Context) error { return logCloser.Close() }},
	}

	board, err := parseBlackboard(opts.Blackboard)
	if err != nil {
		s.Close(context.Background())
		return nil, err
	}
	s.Board = board

	hooks := []domain.LifecycleHooks{
		observability.Logging(logger),
		s.Metrics.Hooks(),
	}
	if opts.Trace {
		tracing, err := s.setupTracing(opts.TraceOutput)
		if err != nil {
			s.Close(context.Background())
			return nil, err
		}
		hooks = append(hooks, tracing.Hooks())
	}

	engine, err := createEngine(opts, logger, observability.Combine(hooks...))
	if err != nil {
		s.Close(context.Background())
		return nil, err
	}
	s.Engine = engine
	logger.Info("engine ready", "tree", engine.Name, "run_id", engine.RunID())
	return s, nil
}

func (s *Session) setupTracing(w io.Writer) (*observability.Tracing, error) {
	if w == nil {
		w = os.Stderr
	}
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	s.closers = append(s.closers, provider.Shutdown)

	// Spans carry a session id; the engine run id changes on every reload.
	s.Tracing = observability.NewTracing(provider.Tracer("bevtree"), uuid.NewString())
	return s.Tracing, nil
}

// Close transitions the running branch, then flushes traces and releases the log file.
func (s *Session) Close(ctx context.Context) error {
	if s.Engine != nil {
		s.Engine.Transition(s.Board)
	}
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// createEngine initializes a bevtree engine with standard CLI conventions.
func createEngine(opts Options, logger *slog.Logger, hooks domain.LifecycleHooks) (*bevtree.Engine, error) {
	engineOpts := []bevtree.Option{
		bevtree.WithLogger(logger),
		bevtree.WithLifecycleHooks(hooks),
		bevtree.WithRegistry(registry.NewDefault(logger)),
	}
	if opts.Tree != "" {
		engineOpts = append(engineOpts, bevtree.WithTreeName(opts.Tree))
	}

	engine, err := bevtree.New(opts.Dir, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}
