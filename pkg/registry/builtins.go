package registry

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/bevtree/pkg/domain"
	"github.com/aretw0/bevtree/pkg/ports"
	"github.com/mitchellh/mapstructure"
)

// Built-in action names.
const (
	ActionSucceed = "succeed"
	ActionFail    = "fail"
	ActionWait    = "wait"
	ActionSet     = "set"
	ActionLog     = "log"
)

// NewDefault returns a registry preloaded with the built-in actions.
func NewDefault(logger *slog.Logger) *Registry {
	r := NewRegistry()
	RegisterBuiltins(r, logger)
	return r
}

// RegisterBuiltins adds succeed, fail, wait, set and log to r.
func RegisterBuiltins(r *Registry, logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	r.Register(ActionSucceed, func(map[string]any) (ports.Action, error) {
		return ports.ActionFunc(func(any, any) domain.RunningStatus { return domain.Finish }), nil
	})
	r.Register(ActionFail, func(map[string]any) (ports.Action, error) {
		return ports.ActionFunc(func(any, any) domain.RunningStatus { return domain.ErrorTransition }), nil
	})
	r.Register(ActionWait, func(params map[string]any) (ports.Action, error) {
		var cfg struct {
			Ticks int `mapstructure:"ticks"`
		}
		if err := decodeParams(params, &cfg); err != nil {
			return nil, err
		}
		if cfg.Ticks < 0 {
			return nil, fmt.Errorf("ticks must not be negative, got %d", cfg.Ticks)
		}
		return &waitAction{ticks: cfg.Ticks}, nil
	})
	r.Register(ActionSet, func(params map[string]any) (ports.Action, error) {
		var cfg struct {
			Key   string `mapstructure:"key"`
			Value any    `mapstructure:"value"`
		}
		if err := decodeParams(params, &cfg); err != nil {
			return nil, err
		}
		if cfg.Key == "" {
			return nil, fmt.Errorf("missing key")
		}
		return &setAction{key: cfg.Key, value: cfg.Value, logger: logger}, nil
	})
	r.Register(ActionLog, func(params map[string]any) (ports.Action, error) {
		var cfg struct {
			Message string `mapstructure:"message"`
			Level   string `mapstructure:"level"`
		}
		if err := decodeParams(params, &cfg); err != nil {
			return nil, err
		}
		var level slog.Level
		if cfg.Level != "" {
			if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
				return nil, fmt.Errorf("invalid level %q: %w", cfg.Level, err)
			}
		}
		return &logAction{message: cfg.Message, level: level, logger: logger}, nil
	})
}

func decodeParams(params map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(params); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}
	return nil
}

// waitAction keeps running for a fixed number of steps, then finishes.
type waitAction struct {
	ticks     int
	remaining int
}

func (a *waitAction) Enter(any) {
	a.remaining = a.ticks
}

func (a *waitAction) Execute(any, any) domain.RunningStatus {
	if a.remaining > 0 {
		a.remaining--
		return domain.Executing
	}
	return domain.Finish
}

func (a *waitAction) Exit(any, domain.RunningStatus) {}

// setAction writes one value to the blackboard passed as input.
type setAction struct {
	key    string
	value  any
	logger *slog.Logger
}

func (a *setAction) Enter(any) {}

func (a *setAction) Execute(input, _ any) domain.RunningStatus {
	switch board := input.(type) {
	case *Blackboard:
		if board != nil {
			board.Set(a.key, a.value)
			return domain.Finish
		}
	case map[string]any:
		if board != nil {
			board[a.key] = a.value
			return domain.Finish
		}
	}
	a.logger.Warn("set action needs a blackboard input", "key", a.key, "input", fmt.Sprintf("%T", input))
	return domain.ErrorTransition
}

func (a *setAction) Exit(any, domain.RunningStatus) {}

type logAction struct {
	message string
	level   slog.Level
	logger  *slog.Logger
}

func (a *logAction) Enter(any) {}

func (a *logAction) Execute(input, _ any) domain.RunningStatus {
	a.logger.Log(context.Background(), a.level, a.message)
	return domain.Finish
}

func (a *logAction) Exit(any, domain.RunningStatus) {}
