package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// fixtureCaller answers procedure calls from canned payloads.
type fixtureCaller struct {
	mu       sync.Mutex
	payloads map[string]string
	errs     map[string]error
	calls    map[string]int
}

func newFixtureCaller() *fixtureCaller {
	return &fixtureCaller{
		payloads: map[string]string{},
		errs:     map[string]error{},
		calls:    map[string]int{},
	}
}

func (f *fixtureCaller) with(name, payload string) *fixtureCaller {
	f.payloads[name] = payload
	return f
}

func (f *fixtureCaller) failing(name string, err error) *fixtureCaller {
	f.errs[name] = err
	return f
}

func (f *fixtureCaller) Call(ctx context.Context, name string) (json.RawMessage, error) {
	f.mu.Lock()
	f.calls[name]++
	err := f.errs[name]
	payload, ok := f.payloads[name]
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no fixture for %s", name)
	}
	return json.RawMessage(payload), nil
}

func (f *fixtureCaller) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

// noopRowValidator accepts every payload.
type noopRowValidator struct{}

func (noopRowValidator) Validate(string, json.RawMessage) error { return nil }

// fullFixtures returns a caller that answers every catalogue procedure.
func fullFixtures() *fixtureCaller {
	return newFixtureCaller().
		with(ProcGeneralSummary, `[{"metrica":"Total mesas","valor":"12"},{"metrica":"Reservas hoy","valor":5}]`).
		with(ProcExecutiveDashboard, `[{"metrica":"Ocupación","valor":"75%"}]`).
		with(ProcTableDetail, `[{"id":"T1","zona":"Terraza","area":"Exterior","numero":1,"capacidad":4,"caracteristicas":"Vista al mar","activa":true},{"id":2,"zona":"Salón","area":"Interior","numero":"2","capacidad":"6","caracteristicas":null,"activa":false}]`).
		with(ProcTablesByZone, `[{"zona":"Terraza","total_mesas":"6","capacidad_total":"24","cap_minima":2,"cap_maxima":6,"cap_media":"4.00","activas":5}]`).
		with(ProcCapacityDistribution, `[{"capacidad":2,"cantidad":"3"},{"capacidad":4,"cantidad":5}]`).
		with(ProcReservations, `[
			{"codigo":"R-1","fecha":"2025-01-10","hora":"13:30","nombre_cliente":"Ana","telefono":"600111222","num_personas":2,"mesa_id":"T1","ubicacion":"terraza","tronas":0,"alzadores":0,"estado":"pendiente","notas":""},
			{"codigo":"R-2","fecha":"2025-01-10","hora":"14:00","nombre_cliente":"Luis","telefono":"600333444","num_personas":4,"mesa_id":null,"ubicacion":"salon","tronas":1,"alzadores":0,"estado":"confirmada","notas":"Cumpleaños"},
			{"codigo":"R-3","fecha":"2025-01-11","hora":"21:00","nombre_cliente":"Eva","telefono":"600555666","num_personas":3,"mesa_id":"T2","ubicacion":"salon","tronas":0,"alzadores":1,"estado":"pendiente","notas":null}
		]`).
		with(ProcTodayReservations, `[{"hora":"13:30","codigo":"R-1","nombre_cliente":"Ana","telefono":"600111222","num_personas":2,"mesa_id":"T1","area":"Exterior","sillas_ninos":"0T / 0A","estado":"confirmada","notas":""}]`).
		with(ProcWeekReservations, `[{"fecha":"2025-01-10","dia":"Viernes  ","total_reservas":3,"total_comensales":8,"tronas":1,"alzadores":0},{"fecha":"2025-01-11","dia":"Sábado   ","total_reservas":"5","total_comensales":"11","tronas":null,"alzadores":2}]`).
		with(ProcStatusStatistics, `[{"estado":"confirmada","cantidad":10,"porcentaje":"62.50"},{"estado":"pendiente","cantidad":6,"porcentaje":37.5}]`).
		with(ProcSlotOccupancy, `[{"franja":"Comida","reservas":4,"comensales":12}]`).
		with(ProcAvailableTablesNow, `[{"id":"T3","zona":"Terraza","area":"Exterior","capacidad":2,"caracteristicas":""}]`).
		with(ProcChildSeats, `[{"fecha":"2025-01-10","tronas_totales":4,"tronas_reservadas":3,"tronas_disponibles":1,"alzadores_totales":4,"alzadores_reservados":0,"alzadores_disponibles":4}]`).
		with(ProcFrequentCustomers, `[{"telefono":"600111222","nombre":"Ana","total_reservas":"4","completadas":3,"canceladas":0,"no_shows":1,"primera_reserva":"2024-06-01","ultima_reserva":"2025-01-10"}]`).
		with(ProcMonthlyAnalysis, `[{"mes":"2025-01","total_reservas":40,"total_comensales":120,"media_comensales":"3.00","completadas":30,"canceladas":5,"no_shows":5,"porcentaje_no_show":"12.50"}]`).
		with(ProcDayOfWeekOccupancy, `[{"dia":"Lunes    ","num_dia":1,"total_reservas":5,"total_comensales":12,"media":2.4},{"dia":"Sábado   ","num_dia":6,"total_reservas":20,"total_comensales":70,"media":"3.5"}]`).
		with(ProcPopularZones, `[{"zona":"Terraza","area":"Exterior","reservas":30,"comensales":90,"porcentaje":"60.0"}]`)
}
