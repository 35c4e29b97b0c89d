package observability

import (
	"context"

	"go.uber.org/zap"

	"github.com/goliatone/go-restaurant-admin/components/admin"
)

// Logger writes telemetry events as debug lines; failures log at warn.
type Logger struct {
	log *zap.Logger
}

// NewLogger wraps log; nil uses a no-op logger.
func NewLogger(log *zap.Logger) *Logger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Logger{log: log.Named("telemetry")}
}

// Record implements admin.Telemetry.
func (l *Logger) Record(_ context.Context, event string, payload map[string]any) {
	fields := make([]zap.Field, 0, len(payload))
	for key, value := range payload {
		fields = append(fields, zap.Any(key, value))
	}
	switch event {
	case admin.EventProcedureError, admin.EventPageFailed:
		l.log.Warn(event, fields...)
	default:
		l.log.Debug(event, fields...)
	}
}

// Multi fans an event out to every sink.
type Multi []admin.Telemetry

// Record implements admin.Telemetry.
func (m Multi) Record(ctx context.Context, event string, payload map[string]any) {
	for _, sink := range m {
		if sink != nil {
			sink.Record(ctx, event, payload)
		}
	}
}
