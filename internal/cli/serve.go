package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/bevtree"
	httpAdapter "github.com/aretw0/bevtree/internal/adapters/http"
	"github.com/aretw0/bevtree/pkg/adapters/gobt"
	"github.com/aretw0/bevtree/pkg/domain"
	bt "github.com/joeycumines/go-behaviortree"
)

// DefaultInterval is the step period used when ServeOptions.Interval is not positive.
const DefaultInterval = 500 * time.Millisecond

// ServeOptions configures the serve command.
type ServeOptions struct {
	Options
	Addr     string
	Interval time.Duration
	Watch    bool
}

// publishingStepper steps the engine and reports every step to the server's event stream.
type publishingStepper struct {
	engine *bevtree.Engine
	server *httpAdapter.Server
}

func (p *publishingStepper) Step(input, output any) (domain.RunningStatus, bool) {
	res := p.engine.Advance(input, output)
	p.server.Publish(res)
	return res.Status, res.Ran
}

// Serve drives the tree on a go-behaviortree ticker and exposes the introspection server
// until ctx is cancelled.
func Serve(ctx context.Context, opts ServeOptions) error {
	session, err := NewSession(opts.Options)
	if err != nil {
		return err
	}
	defer session.Close(context.Background())
	logger := session.Logger

	server := httpAdapter.NewServer(session.Engine,
		httpAdapter.WithMetrics(session.Metrics.Handler()),
		httpAdapter.WithLogger(logger),
	)
	srv := &http.Server{
		Addr:    opts.Addr,
		Handler: server.Handler(),
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	stepper := &publishingStepper{engine: session.Engine, server: server}
	ticker := bt.NewTicker(ctx, interval, gobt.Node(stepper, session.Board, session.Board))

	if opts.Watch {
		if err := watchReload(ctx, session); err != nil {
			return err
		}
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr, "tree", session.Engine.Name)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ticker.Done():
		if err := ticker.Err(); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("ticker stopped", "err", err)
		}
	}

	// Give outstanding requests a deadline for completion.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown did not complete", "err", err)
		return srv.Close()
	}
	logger.Info("server stopped")
	return nil
}

// watchReload reloads the engine whenever the file of the tree it runs changes.
// Changes to other trees in the directory are ignored.
func watchReload(ctx context.Context, session *Session) error {
	changes, err := session.Engine.Watch(ctx)
	if err != nil {
		return err
	}
	go func() {
		for name := range changes {
			if name != session.Engine.Name {
				session.Logger.Debug("ignoring change to another tree", "tree", name)
				continue
			}
			if err := session.Engine.Reload(session.Board); err != nil {
				session.Logger.Error("reload failed, keeping current tree", "err", err)
				continue
			}
			session.Logger.Info("tree reloaded", "run_id", session.Engine.RunID())
		}
	}()
	return nil
}
