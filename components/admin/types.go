package admin

import (
	"context"
	"encoding/json"
)

// ProcedureCaller is the transport primitive behind the typed client: call a named,
// parameterless backend procedure and get its row set back as raw JSON.
// Implementations must be safe for concurrent use.
type ProcedureCaller interface {
	Call(ctx context.Context, procedure string) (json.RawMessage, error)
}

// ProcedureCallerFunc adapts a function into a ProcedureCaller.
type ProcedureCallerFunc func(ctx context.Context, procedure string) (json.RawMessage, error)

// Call implements ProcedureCaller.
func (f ProcedureCallerFunc) Call(ctx context.Context, procedure string) (json.RawMessage, error) {
	return f(ctx, procedure)
}

// SummaryMetric is a label/value pair from the summary procedures.
type SummaryMetric struct {
	Metric string `json:"metrica"`
	Value  Text   `json:"valor"`
}

// Table is a physical seating unit.
type Table struct {
	ID        Text   `json:"id"`
	Zone      string `json:"zona"`
	Area      string `json:"area"`
	Number    Int    `json:"numero"`
	Capacity  Int    `json:"capacidad"`
	Features  string `json:"caracteristicas"`
	Active    bool   `json:"activa"`
	CreatedAt string `json:"created_at"`
}

// ZoneSummary aggregates table stats per zone.
type ZoneSummary struct {
	Zone          string `json:"zona"`
	TotalTables   Int    `json:"total_mesas"`
	TotalCapacity Int    `json:"capacidad_total"`
	MinCapacity   Int    `json:"cap_minima"`
	MaxCapacity   Int    `json:"cap_maxima"`
	MeanCapacity  Number `json:"cap_media"`
	ActiveTables  Int    `json:"activas"`
}

// CapacityBucket is one bar of the capacity histogram.
type CapacityBucket struct {
	Capacity Int `json:"capacidad"`
	Count    Int `json:"cantidad"`
}

// AvailableTable is a table free right now.
type AvailableTable struct {
	ID       Text   `json:"id"`
	Zone     string `json:"zona"`
	Area     string `json:"area"`
	Capacity Int    `json:"capacidad"`
	Features string `json:"caracteristicas"`
}

// Reservation is a booking as returned by the general reservations procedure.
type Reservation struct {
	Code         Text   `json:"codigo"`
	Date         string `json:"fecha"`
	Time         string `json:"hora"`
	CustomerName string `json:"nombre_cliente"`
	Phone        string `json:"telefono"`
	Email        string `json:"email"`
	PartySize    Int    `json:"num_personas"`
	TableID      Text   `json:"mesa_id"`
	Location     string `json:"ubicacion"`
	HighChairs   Int    `json:"tronas"`
	BoosterSeats Int    `json:"alzadores"`
	Status       string `json:"estado"`
	Notes        string `json:"notas"`
	CreatedAt    string `json:"created_at"`
}

// TodayReservation is the projection used by the "today" view.
type TodayReservation struct {
	Time         string `json:"hora"`
	Code         Text   `json:"codigo"`
	CustomerName string `json:"nombre_cliente"`
	Phone        string `json:"telefono"`
	PartySize    Int    `json:"num_personas"`
	TableID      Text   `json:"mesa_id"`
	Area         string `json:"area"`
	ChildSeats   Text   `json:"sillas_ninos"`
	Status       string `json:"estado"`
	Notes        string `json:"notas"`
}

// WeekDay aggregates reservations for one of the next seven days.
type WeekDay struct {
	Date         string `json:"fecha"`
	DayName      string `json:"dia"`
	Reservations Int    `json:"total_reservas"`
	Diners       Int    `json:"total_comensales"`
	HighChairs   Int    `json:"tronas"`
	BoosterSeats Int    `json:"alzadores"`
}

// StatusBreakdown counts reservations per status.
type StatusBreakdown struct {
	Status     string `json:"estado"`
	Count      Int    `json:"cantidad"`
	Percentage Number `json:"porcentaje"`
}

// SlotOccupancy groups today's reservations by time band.
type SlotOccupancy struct {
	Band         string `json:"franja"`
	Reservations Int    `json:"reservas"`
	Diners       Int    `json:"comensales"`
}

// ChildSeatAvailability reports high chair and booster stock per day.
type ChildSeatAvailability struct {
	Date                string `json:"fecha"`
	HighChairsTotal     Int    `json:"tronas_totales"`
	HighChairsReserved  Int    `json:"tronas_reservadas"`
	HighChairsAvailable Int    `json:"tronas_disponibles"`
	BoostersTotal       Int    `json:"alzadores_totales"`
	BoostersReserved    Int    `json:"alzadores_reservados"`
	BoostersAvailable   Int    `json:"alzadores_disponibles"`
}

// FrequentCustomer aggregates history per phone number.
type FrequentCustomer struct {
	Phone             string `json:"telefono"`
	Name              string `json:"nombre"`
	TotalReservations Int    `json:"total_reservas"`
	Completed         Int    `json:"completadas"`
	Cancelled         Int    `json:"canceladas"`
	NoShows           Int    `json:"no_shows"`
	FirstReservation  string `json:"primera_reserva"`
	LastReservation   string `json:"ultima_reserva"`
}

// MonthlyAnalysis is one month of reservation outcomes.
type MonthlyAnalysis struct {
	Month             string `json:"mes"`
	TotalReservations Int    `json:"total_reservas"`
	TotalDiners       Int    `json:"total_comensales"`
	MeanDiners        Number `json:"media_comensales"`
	Completed         Int    `json:"completadas"`
	Cancelled         Int    `json:"canceladas"`
	NoShows           Int    `json:"no_shows"`
	NoShowPercentage  Number `json:"porcentaje_no_show"`
}

// DayOfWeekOccupancy aggregates reservations per weekday.
type DayOfWeekOccupancy struct {
	Day               string `json:"dia"`
	DayNumber         Int    `json:"num_dia"`
	TotalReservations Int    `json:"total_reservas"`
	TotalDiners       Int    `json:"total_comensales"`
	Mean              Number `json:"media"`
}

// PopularZone ranks zones by reservation share.
type PopularZone struct {
	Zone         string `json:"zona"`
	Area         string `json:"area"`
	Reservations Int    `json:"reservas"`
	Diners       Int    `json:"comensales"`
	Percentage   Number `json:"porcentaje"`
}
