package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/bevtree/pkg/domain"
)

// Combine returns hooks calling every non-nil callback of sets, in argument order.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	pick := func(get func(domain.LifecycleHooks) func(*domain.NodeEvent)) func(*domain.NodeEvent) {
		var fns []func(*domain.NodeEvent)
		for _, s := range sets {
			if fn := get(s); fn != nil {
				fns = append(fns, fn)
			}
		}
		switch len(fns) {
		case 0:
			return nil
		case 1:
			return fns[0]
		}
		return func(e *domain.NodeEvent) {
			for _, fn := range fns {
				fn(e)
			}
		}
	}

	return domain.LifecycleHooks{
		OnNodeEnter:      pick(func(h domain.LifecycleHooks) func(*domain.NodeEvent) { return h.OnNodeEnter }),
		OnNodeExit:       pick(func(h domain.LifecycleHooks) func(*domain.NodeEvent) { return h.OnNodeExit }),
		OnNodeTick:       pick(func(h domain.LifecycleHooks) func(*domain.NodeEvent) { return h.OnNodeTick }),
		OnNodeTransition: pick(func(h domain.LifecycleHooks) func(*domain.NodeEvent) { return h.OnNodeTransition }),
	}
}

// Logging writes leaf enters and exits at Info, and ticks and transitions at Debug.
func Logging(logger *slog.Logger) domain.LifecycleHooks {
	log := func(level slog.Level) func(*domain.NodeEvent) {
		return func(e *domain.NodeEvent) {
			logger.Log(context.Background(), level, string(e.Type),
				"node", e.Name,
				"node_type", e.NodeType,
				"status", e.Status.String(),
			)
		}
	}
	return domain.LifecycleHooks{
		OnNodeEnter:      log(slog.LevelInfo),
		OnNodeExit:       log(slog.LevelInfo),
		OnNodeTick:       log(slog.LevelDebug),
		OnNodeTransition: log(slog.LevelDebug),
	}
}
