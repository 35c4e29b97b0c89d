package admin

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/goliatone/go-restaurant-admin/components/admin"

// Client is the typed facade over a ProcedureCaller. Every method issues exactly one
// call, validates the rows, and returns them in backend order. There is no retry and
// no caching; transport errors are returned as produced by the caller.
type Client struct {
	caller    ProcedureCaller
	validator RowValidator
	telemetry Telemetry
	tracer    trace.Tracer
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithRowValidator overrides the schema validator.
func WithRowValidator(v RowValidator) ClientOption {
	return func(c *Client) {
		if v != nil {
			c.validator = v
		}
	}
}

// WithClientTelemetry sets the telemetry sink for procedure calls.
func WithClientTelemetry(t Telemetry) ClientOption {
	return func(c *Client) {
		c.telemetry = normalizeTelemetry(t)
	}
}

// WithTracer overrides the otel tracer (defaults to the global provider).
func WithTracer(t trace.Tracer) ClientOption {
	return func(c *Client) {
		if t != nil {
			c.tracer = t
		}
	}
}

// NewClient wraps a caller. A nil validator option keeps schema validation on.
func NewClient(caller ProcedureCaller, opts ...ClientOption) *Client {
	c := &Client{
		caller:    caller,
		validator: NewSchemaValidator(),
		telemetry: noopTelemetry{},
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Raw calls a catalogue procedure and returns the validated payload. A null body is
// normalized to an empty array.
func (c *Client) Raw(ctx context.Context, procedure string) (json.RawMessage, error) {
	if _, ok := LookupProcedure(procedure); !ok {
		return nil, &UnknownProcedureError{Name: procedure}
	}
	ctx, span := c.tracer.Start(ctx, "admin.procedure",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("admin.procedure", procedure)),
	)
	defer span.End()

	started := time.Now()
	payload, err := c.caller.Call(ctx, procedure)
	if err == nil {
		err = c.validator.Validate(procedure, payload)
	}
	elapsed := time.Since(started)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.telemetry.Record(ctx, EventProcedureError, map[string]any{
			"procedure":   procedure,
			"duration_ms": elapsed.Milliseconds(),
			"malformed":   isMalformed(err),
			"error":       err.Error(),
		})
		return nil, err
	}
	if isEmptyPayload(payload) {
		payload = json.RawMessage("[]")
	}
	c.telemetry.Record(ctx, EventProcedureCall, map[string]any{
		"procedure":   procedure,
		"duration_ms": elapsed.Milliseconds(),
	})
	return payload, nil
}

// Rows returns the procedure rows as generic maps, preserving backend order.
func (c *Client) Rows(ctx context.Context, procedure string) ([]map[string]any, error) {
	return fetch[map[string]any](ctx, c, procedure)
}

func fetch[T any](ctx context.Context, c *Client, procedure string) ([]T, error) {
	payload, err := c.Raw(ctx, procedure)
	if err != nil {
		return nil, err
	}
	rows := []T{}
	if err := json.Unmarshal(payload, &rows); err != nil {
		return nil, &MalformedResponseError{Procedure: procedure, Err: err}
	}
	if rows == nil {
		rows = []T{}
	}
	return rows, nil
}

func (c *Client) GeneralSummary(ctx context.Context) ([]SummaryMetric, error) {
	return fetch[SummaryMetric](ctx, c, ProcGeneralSummary)
}

func (c *Client) ExecutiveDashboard(ctx context.Context) ([]SummaryMetric, error) {
	return fetch[SummaryMetric](ctx, c, ProcExecutiveDashboard)
}

func (c *Client) TableDetail(ctx context.Context) ([]Table, error) {
	return fetch[Table](ctx, c, ProcTableDetail)
}

func (c *Client) TablesByZone(ctx context.Context) ([]ZoneSummary, error) {
	return fetch[ZoneSummary](ctx, c, ProcTablesByZone)
}

func (c *Client) CapacityDistribution(ctx context.Context) ([]CapacityBucket, error) {
	return fetch[CapacityBucket](ctx, c, ProcCapacityDistribution)
}

func (c *Client) Reservations(ctx context.Context) ([]Reservation, error) {
	return fetch[Reservation](ctx, c, ProcReservations)
}

func (c *Client) TodayReservations(ctx context.Context) ([]TodayReservation, error) {
	return fetch[TodayReservation](ctx, c, ProcTodayReservations)
}

func (c *Client) WeekReservations(ctx context.Context) ([]WeekDay, error) {
	return fetch[WeekDay](ctx, c, ProcWeekReservations)
}

func (c *Client) StatusStatistics(ctx context.Context) ([]StatusBreakdown, error) {
	return fetch[StatusBreakdown](ctx, c, ProcStatusStatistics)
}

func (c *Client) SlotOccupancy(ctx context.Context) ([]SlotOccupancy, error) {
	return fetch[SlotOccupancy](ctx, c, ProcSlotOccupancy)
}

func (c *Client) AvailableTablesNow(ctx context.Context) ([]AvailableTable, error) {
	return fetch[AvailableTable](ctx, c, ProcAvailableTablesNow)
}

func (c *Client) ChildSeats(ctx context.Context) ([]ChildSeatAvailability, error) {
	return fetch[ChildSeatAvailability](ctx, c, ProcChildSeats)
}

func (c *Client) FrequentCustomers(ctx context.Context) ([]FrequentCustomer, error) {
	return fetch[FrequentCustomer](ctx, c, ProcFrequentCustomers)
}

func (c *Client) MonthlyAnalysis(ctx context.Context) ([]MonthlyAnalysis, error) {
	return fetch[MonthlyAnalysis](ctx, c, ProcMonthlyAnalysis)
}

func (c *Client) DayOfWeekOccupancy(ctx context.Context) ([]DayOfWeekOccupancy, error) {
	return fetch[DayOfWeekOccupancy](ctx, c, ProcDayOfWeekOccupancy)
}

func (c *Client) PopularZones(ctx context.Context) ([]PopularZone, error) {
	return fetch[PopularZone](ctx, c, ProcPopularZones)
}

func isMalformed(err error) bool {
	return errors.Is(err, ErrMalformedRows)
}
