package admin

import (
	"sort"
	"strings"

	"github.com/ettle/strcase"
)

// Procedure names exposed by the backend. All are parameterless and return row sets.
const (
	ProcGeneralSummary       = "admin_resumen_general"
	ProcExecutiveDashboard   = "admin_dashboard_ejecutivo"
	ProcTableDetail          = "admin_detalle_mesas"
	ProcTablesByZone         = "admin_mesas_por_zona"
	ProcCapacityDistribution = "admin_distribucion_capacidades"
	ProcReservations         = "admin_reservas_general"
	ProcTodayReservations    = "admin_reservas_hoy"
	ProcWeekReservations     = "admin_reservas_semana"
	ProcStatusStatistics     = "admin_estadisticas_estado"
	ProcSlotOccupancy        = "admin_ocupacion_franjas"
	ProcAvailableTablesNow   = "admin_mesas_disponibles_ahora"
	ProcChildSeats           = "admin_sillas_ninos"
	ProcFrequentCustomers    = "admin_clientes_frecuentes"
	ProcMonthlyAnalysis      = "admin_analisis_mensual"
	ProcDayOfWeekOccupancy   = "admin_ocupacion_dia_semana"
	ProcPopularZones         = "admin_zonas_populares"
)

type fieldKind int

const (
	kindString fieldKind = iota
	kindInteger
	kindNumber
	kindBool
	kindScalar
)

type fieldSpec struct {
	Name     string
	Kind     fieldKind
	Required bool
}

// Procedure describes one catalogue entry and the row shape it returns.
type Procedure struct {
	Name        string
	Description string
	fields      []fieldSpec
}

// Fields lists the column names a row may carry.
func (p Procedure) Fields() []string {
	out := make([]string, 0, len(p.fields))
	for _, f := range p.fields {
		out = append(out, f.Name)
	}
	return out
}

func req(name string, kind fieldKind) fieldSpec {
	return fieldSpec{Name: name, Kind: kind, Required: true}
}
func opt(name string, kind fieldKind) fieldSpec { return fieldSpec{Name: name, Kind: kind} }

var summaryFields = []fieldSpec{req("metrica", kindString), opt("valor", kindScalar)}

var catalogue = []Procedure{
	{Name: ProcGeneralSummary, Description: "General system summary metrics", fields: summaryFields},
	{Name: ProcExecutiveDashboard, Description: "Executive dashboard KPIs", fields: summaryFields},
	{Name: ProcTableDetail, Description: "Every table with its zone, capacity and state", fields: []fieldSpec{
		req("id", kindScalar), opt("zona", kindString), opt("area", kindString), opt("numero", kindInteger),
		req("capacidad", kindInteger), opt("caracteristicas", kindString), opt("activa", kindBool), opt("created_at", kindString),
	}},
	{Name: ProcTablesByZone, Description: "Table counts and capacity per zone", fields: []fieldSpec{
		req("zona", kindString), opt("total_mesas", kindInteger), opt("capacidad_total", kindInteger),
		opt("cap_minima", kindInteger), opt("cap_maxima", kindInteger), opt("cap_media", kindNumber), opt("activas", kindInteger),
	}},
	{Name: ProcCapacityDistribution, Description: "Number of tables per seating capacity", fields: []fieldSpec{
		req("capacidad", kindInteger), req("cantidad", kindInteger),
	}},
	{Name: ProcReservations, Description: "All reservations", fields: []fieldSpec{
		req("codigo", kindScalar), opt("fecha", kindString), opt("hora", kindString), opt("nombre_cliente", kindString),
		opt("telefono", kindString), opt("email", kindString), opt("num_personas", kindInteger), opt("mesa_id", kindScalar),
		opt("ubicacion", kindString), opt("tronas", kindInteger), opt("alzadores", kindInteger), req("estado", kindString),
		opt("notas", kindString), opt("created_at", kindString),
	}},
	{Name: ProcTodayReservations, Description: "Reservations for today", fields: []fieldSpec{
		opt("hora", kindString), req("codigo", kindScalar), opt("nombre_cliente", kindString), opt("telefono", kindString),
		opt("num_personas", kindInteger), opt("mesa_id", kindScalar), opt("area", kindString), opt("sillas_ninos", kindScalar),
		req("estado", kindString), opt("notas", kindString),
	}},
	{Name: ProcWeekReservations, Description: "Reservations per day for the next seven days", fields: []fieldSpec{
		req("fecha", kindString), opt("dia", kindString), req("total_reservas", kindInteger), opt("total_comensales", kindInteger),
		opt("tronas", kindInteger), opt("alzadores", kindInteger),
	}},
	{Name: ProcStatusStatistics, Description: "Reservation counts per status", fields: []fieldSpec{
		req("estado", kindString), req("cantidad", kindInteger), opt("porcentaje", kindNumber),
	}},
	{Name: ProcSlotOccupancy, Description: "Today's occupancy per time band", fields: []fieldSpec{
		req("franja", kindString), opt("reservas", kindInteger), opt("comensales", kindInteger),
	}},
	{Name: ProcAvailableTablesNow, Description: "Tables free right now", fields: []fieldSpec{
		req("id", kindScalar), opt("zona", kindString), opt("area", kindString), opt("capacidad", kindInteger), opt("caracteristicas", kindString),
	}},
	{Name: ProcChildSeats, Description: "High chair and booster availability per day", fields: []fieldSpec{
		req("fecha", kindString), opt("tronas_totales", kindInteger), opt("tronas_reservadas", kindInteger), opt("tronas_disponibles", kindInteger),
		opt("alzadores_totales", kindInteger), opt("alzadores_reservados", kindInteger), opt("alzadores_disponibles", kindInteger),
	}},
	{Name: ProcFrequentCustomers, Description: "Customers with more than one reservation", fields: []fieldSpec{
		req("telefono", kindString), opt("nombre", kindString), req("total_reservas", kindInteger), opt("completadas", kindInteger),
		opt("canceladas", kindInteger), opt("no_shows", kindInteger), opt("primera_reserva", kindString), opt("ultima_reserva", kindString),
	}},
	{Name: ProcMonthlyAnalysis, Description: "Reservation outcomes per month", fields: []fieldSpec{
		req("mes", kindString), opt("total_reservas", kindInteger), opt("total_comensales", kindInteger), opt("media_comensales", kindNumber),
		opt("completadas", kindInteger), opt("canceladas", kindInteger), opt("no_shows", kindInteger), opt("porcentaje_no_show", kindNumber),
	}},
	{Name: ProcDayOfWeekOccupancy, Description: "Reservations per weekday", fields: []fieldSpec{
		req("dia", kindString), opt("num_dia", kindInteger), req("total_reservas", kindInteger), opt("total_comensales", kindInteger), opt("media", kindNumber),
	}},
	{Name: ProcPopularZones, Description: "Zones ranked by reservation share", fields: []fieldSpec{
		req("zona", kindString), opt("area", kindString), opt("reservas", kindInteger), opt("comensales", kindInteger), opt("porcentaje", kindNumber),
	}},
}

var catalogueIndex = func() map[string]Procedure {
	idx := make(map[string]Procedure, len(catalogue))
	for _, p := range catalogue {
		idx[p.Name] = p
	}
	return idx
}()

// Procedures returns the catalogue sorted by name.
func Procedures() []Procedure {
	out := make([]Procedure, len(catalogue))
	copy(out, catalogue)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// LookupProcedure finds a catalogue entry by name.
func LookupProcedure(name string) (Procedure, bool) {
	p, ok := catalogueIndex[name]
	return p, ok
}

// ResolveProcedure accepts the exact procedure name, the name without the
// admin_ prefix, or a kebab/camel alias ("reservas-hoy", "reservasHoy").
func ResolveProcedure(alias string) (Procedure, error) {
	alias = strings.TrimSpace(alias)
	if p, ok := catalogueIndex[alias]; ok {
		return p, nil
	}
	snake := strcase.ToSnake(alias)
	if !strings.HasPrefix(snake, "admin_") {
		snake = "admin_" + snake
	}
	if p, ok := catalogueIndex[snake]; ok {
		return p, nil
	}
	return Procedure{}, &UnknownProcedureError{Name: alias}
}
