package service

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"time"
)

// UseCaseEvent describes one finished use case. Fields carries use-case
// specific diagnostics such as the chat turn's oracle status.
type UseCaseEvent struct {
	Name      string
	StartedAt time.Time
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
}

type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

// fanOut delivers each event to every observer in order.
type fanOut []UseCaseObserver

func (f fanOut) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	for _, obs := range f {
		obs.ObserveUseCase(ctx, event)
	}
}

// combineObservers drops nils and collapses the rest into one observer.
func combineObservers(list []UseCaseObserver) UseCaseObserver {
	kept := make(fanOut, 0, len(list))
	for _, obs := range list {
		if obs != nil {
			kept = append(kept, obs)
		}
	}
	switch len(kept) {
	case 0:
		return NoopUseCaseObserver{}
	case 1:
		return kept[0]
	default:
		return kept
	}
}

type slogUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver writes one "use_case" record per event. Failed use
// cases log at error level.
func NewLogUseCaseObserver(logger *slog.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &slogUseCaseObserver{logger: logger}
}

func (o *slogUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := make([]slog.Attr, 0, 4+len(event.Fields))
	attrs = append(attrs,
		slog.String("name", event.Name),
		slog.Int64("duration_ms", event.Duration.Milliseconds()),
		slog.Bool("success", event.Success),
	)
	// Sorted so records are stable across runs.
	for _, k := range slices.Sorted(maps.Keys(event.Fields)) {
		attrs = append(attrs, slog.Any(k, event.Fields[k]))
	}

	level := slog.LevelInfo
	if event.Err != nil {
		level = slog.LevelError
		attrs = append(attrs, slog.String("error", event.Err.Error()))
	}
	o.logger.LogAttrs(ctx, level, "use_case", attrs...)
}
