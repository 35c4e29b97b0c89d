package admin

import "context"

// Telemetry event names emitted by the admin component.
const (
	EventProcedureCall  = "admin.procedure.call"
	EventProcedureError = "admin.procedure.error"
	EventPageLoaded     = "admin.page.loaded"
	EventPageFailed     = "admin.page.failed"
	EventChatSession    = "admin.chat.session"
	EventChatRelay      = "admin.chat.relay"
)

// Telemetry records admin events for observability.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

// TelemetryFunc adapts a function into Telemetry.
type TelemetryFunc func(ctx context.Context, event string, payload map[string]any)

// Record implements Telemetry.
func (f TelemetryFunc) Record(ctx context.Context, event string, payload map[string]any) {
	f(ctx, event, payload)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}
