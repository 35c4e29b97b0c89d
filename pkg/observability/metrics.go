// Package observability turns admin telemetry events into Prometheus metrics and
// log lines.
package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goliatone/go-restaurant-admin/components/admin"
)

// Metrics implements admin.Telemetry on a Prometheus registry.
type Metrics struct {
	registry *prometheus.Registry

	procedureCalls    *prometheus.CounterVec
	procedureDuration *prometheus.HistogramVec
	pageLoads         *prometheus.CounterVec
	pageDuration      *prometheus.HistogramVec
	chatEvents        *prometheus.CounterVec
}

// NewMetrics registers the admin collectors on a fresh registry together with
// the Go and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		procedureCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "restaurant_admin_procedure_calls_total",
			Help: "Remote procedure calls by outcome",
		}, []string{"procedure", "outcome"}),
		procedureDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "restaurant_admin_procedure_duration_seconds",
			Help:    "Remote procedure call latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"procedure"}),
		pageLoads: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "restaurant_admin_page_loads_total",
			Help: "Page loads by final state",
		}, []string{"page", "status"}),
		pageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "restaurant_admin_page_load_duration_seconds",
			Help:    "Time from loading to ready or error",
			Buckets: prometheus.DefBuckets,
		}, []string{"page"}),
		chatEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "restaurant_admin_chat_events_total",
			Help: "Chat session and relay events",
		}, []string{"event", "outcome"}),
	}
}

// Registry is what /metrics serves.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Record implements admin.Telemetry.
func (m *Metrics) Record(_ context.Context, event string, payload map[string]any) {
	switch event {
	case admin.EventProcedureCall:
		procedure := label(payload, "procedure")
		m.procedureCalls.WithLabelValues(procedure, "ok").Inc()
		m.procedureDuration.WithLabelValues(procedure).Observe(seconds(payload))
	case admin.EventProcedureError:
		procedure := label(payload, "procedure")
		outcome := "error"
		if malformed, _ := payload["malformed"].(bool); malformed {
			outcome = "malformed"
		}
		m.procedureCalls.WithLabelValues(procedure, outcome).Inc()
		m.procedureDuration.WithLabelValues(procedure).Observe(seconds(payload))
	case admin.EventPageLoaded:
		page := label(payload, "page")
		m.pageLoads.WithLabelValues(page, "ready").Inc()
		m.pageDuration.WithLabelValues(page).Observe(seconds(payload))
	case admin.EventPageFailed:
		page := label(payload, "page")
		m.pageLoads.WithLabelValues(page, "error").Inc()
		m.pageDuration.WithLabelValues(page).Observe(seconds(payload))
	case admin.EventChatSession:
		m.chatEvents.WithLabelValues("session", label(payload, "action")).Inc()
	case admin.EventChatRelay:
		outcome := "ok"
		if status, ok := payload["status"].(int); ok && status >= 300 {
			outcome = "error"
		}
		m.chatEvents.WithLabelValues("relay", outcome).Inc()
	}
}

func label(payload map[string]any, key string) string {
	if v, ok := payload[key].(string); ok && v != "" {
		return v
	}
	return "unknown"
}

func seconds(payload map[string]any) float64 {
	switch v := payload["duration_ms"].(type) {
	case int64:
		return (time.Duration(v) * time.Millisecond).Seconds()
	case int:
		return (time.Duration(v) * time.Millisecond).Seconds()
	case float64:
		return v / 1000
	default:
		return 0
	}
}
