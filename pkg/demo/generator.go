// Package demo generates a coherent, seeded restaurant dataset that answers every
// admin procedure without a backend.
package demo

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/jaswdr/faker"

	"github.com/goliatone/go-restaurant-admin/components/admin"
	"github.com/goliatone/go-restaurant-admin/pkg/supabase"
)

const (
	dateLayout = "2006-01-02"

	highChairStock = 4
	boosterStock   = 6
)

var weekdayNames = [...]string{"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"}

type zoneLayout struct {
	zone     string
	area     string
	tables   int
	features []string
}

var layout = []zoneLayout{
	{zone: "Terraza", area: "Exterior", tables: 6, features: []string{"Vista al mar", "Sombrilla", ""}},
	{zone: "Salón", area: "Interior", tables: 8, features: []string{"Junto a ventana", "Chimenea", ""}},
	{zone: "Reservado", area: "Interior", tables: 2, features: []string{"Privado"}},
}

var lunchTimes = []string{"13:00", "13:30", "14:00", "14:30", "15:00"}
var dinnerTimes = []string{"20:00", "20:30", "21:00", "21:30", "22:00"}

var notes = []string{"", "", "", "Cumpleaños", "Alergia al marisco", "Mesa tranquila", "Aniversario"}

// Options tunes the generated dataset.
type Options struct {
	Seed         int64
	Now          time.Time
	Customers    int
	Reservations int
	// HistoryDays is how far back reservations go.
	HistoryDays int
}

func (o Options) normalized() Options {
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	if o.Customers <= 0 {
		o.Customers = 30
	}
	if o.Reservations <= 0 {
		o.Reservations = 240
	}
	if o.HistoryDays <= 0 {
		o.HistoryDays = 90
	}
	return o
}

// Dataset is the generated restaurant state.
type Dataset struct {
	now          time.Time
	tables       []admin.Table
	reservations []admin.Reservation
}

type customer struct {
	name  string
	phone string
	email string
}

// Generate builds a dataset. The same options always produce the same rows.
func Generate(opts Options) *Dataset {
	opts = opts.normalized()
	fake := faker.NewWithSeed(rand.NewSource(opts.Seed))
	ds := &Dataset{now: opts.Now}

	number := 1
	for _, z := range layout {
		for i := 0; i < z.tables; i++ {
			ds.tables = append(ds.tables, admin.Table{
				ID:        admin.Text(fmt.Sprintf("%s-%d", strings.ToUpper(z.zone[:1]), number)),
				Zone:      z.zone,
				Area:      z.area,
				Number:    admin.Int(number),
				Capacity:  admin.Int(2 * fake.IntBetween(1, 4)),
				Features:  fake.RandomStringElement(z.features),
				Active:    fake.IntBetween(1, 10) > 1,
				CreatedAt: opts.Now.AddDate(-1, 0, 0).Format(time.RFC3339),
			})
			number++
		}
	}

	customers := make([]customer, opts.Customers)
	for i := range customers {
		first, last := fake.Person().FirstName(), fake.Person().LastName()
		customers[i] = customer{
			name:  first + " " + last,
			phone: fmt.Sprintf("6%08d", fake.IntBetween(10000000, 99999999)),
			email: strings.ToLower(first+"."+last) + "@example.com",
		}
	}

	today := startOfDay(opts.Now)
	for i := 0; i < opts.Reservations; i++ {
		// A third of customers book most of the time so frequent customers exist.
		c := customers[fake.IntBetween(0, len(customers)-1)]
		if fake.IntBetween(1, 3) > 1 {
			c = customers[fake.IntBetween(0, len(customers)/3)]
		}
		day := today.AddDate(0, 0, fake.IntBetween(0, opts.HistoryDays+6)-opts.HistoryDays)
		slot := lunchTimes
		if fake.Bool() {
			slot = dinnerTimes
		}
		table := ds.tables[fake.IntBetween(0, len(ds.tables)-1)]
		party := fake.IntBetween(1, int(table.Capacity))
		res := admin.Reservation{
			Code:         admin.Text(fmt.Sprintf("RES-%s-%03d", day.Format("0102"), i+1)),
			Date:         day.Format(dateLayout),
			Time:         fake.RandomStringElement(slot),
			CustomerName: c.name,
			Phone:        c.phone,
			Email:        c.email,
			PartySize:    admin.Int(party),
			TableID:      table.ID,
			Location:     strings.ToLower(table.Zone),
			Status:       string(pickStatus(fake, day, today)),
			Notes:        fake.RandomStringElement(notes),
			CreatedAt:    day.AddDate(0, 0, -fake.IntBetween(1, 14)).Format(time.RFC3339),
		}
		if party >= 3 && fake.IntBetween(1, 4) == 1 {
			res.HighChairs = admin.Int(fake.IntBetween(0, 1))
			res.BoosterSeats = admin.Int(fake.IntBetween(0, 2))
		}
		ds.reservations = append(ds.reservations, res)
	}
	sort.SliceStable(ds.reservations, func(i, j int) bool {
		a, b := ds.reservations[i], ds.reservations[j]
		if a.Date != b.Date {
			return a.Date > b.Date
		}
		return a.Time < b.Time
	})
	return ds
}

func pickStatus(fake faker.Faker, day, today time.Time) admin.ReservationStatus {
	roll := fake.IntBetween(1, 100)
	if day.Before(today) {
		switch {
		case roll <= 80:
			return admin.StatusCompleted
		case roll <= 92:
			return admin.StatusCancelled
		default:
			return admin.StatusNoShow
		}
	}
	switch {
	case roll <= 55:
		return admin.StatusConfirmed
	case roll <= 90:
		return admin.StatusPending
	default:
		return admin.StatusCancelled
	}
}

// Tables returns the generated tables.
func (d *Dataset) Tables() []admin.Table { return d.tables }

// Reservations returns every reservation, newest date first.
func (d *Dataset) Reservations() []admin.Reservation { return d.reservations }

// Fixtures renders the payload of every catalogue procedure.
func (d *Dataset) Fixtures() (map[string]json.RawMessage, error) {
	rows := map[string]any{
		admin.ProcGeneralSummary:       d.generalSummary(),
		admin.ProcExecutiveDashboard:   d.executiveDashboard(),
		admin.ProcTableDetail:          d.tables,
		admin.ProcTablesByZone:         d.tablesByZone(),
		admin.ProcCapacityDistribution: d.capacityDistribution(),
		admin.ProcReservations:         d.reservations,
		admin.ProcTodayReservations:    d.todayReservations(),
		admin.ProcWeekReservations:     d.week(),
		admin.ProcStatusStatistics:     d.statusStatistics(),
		admin.ProcSlotOccupancy:        d.slotOccupancy(),
		admin.ProcAvailableTablesNow:   d.availableNow(),
		admin.ProcChildSeats:           d.childSeats(),
		admin.ProcFrequentCustomers:    d.frequentCustomers(),
		admin.ProcMonthlyAnalysis:      d.monthlyAnalysis(),
		admin.ProcDayOfWeekOccupancy:   d.dayOfWeek(),
		admin.ProcPopularZones:         d.popularZones(),
	}
	out := make(map[string]json.RawMessage, len(rows))
	for name, value := range rows {
		payload, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("demo: encode %s: %w", name, err)
		}
		out[name] = payload
	}
	return out, nil
}

// NewCaller returns an in-memory procedure caller serving a generated dataset.
func NewCaller(opts Options) (*supabase.MockClient, error) {
	fixtures, err := Generate(opts).Fixtures()
	if err != nil {
		return nil, err
	}
	return supabase.NewMockClient(fixtures), nil
}

func (d *Dataset) today() string { return d.now.Format(dateLayout) }

func (d *Dataset) onDate(date string) []admin.Reservation {
	var out []admin.Reservation
	for _, r := range d.reservations {
		if r.Date == date {
			out = append(out, r)
		}
	}
	return out
}

func live(r admin.Reservation) bool {
	return r.Status == string(admin.StatusPending) || r.Status == string(admin.StatusConfirmed)
}

func (d *Dataset) generalSummary() []admin.SummaryMetric {
	active, capacity := 0, 0
	for _, t := range d.tables {
		if t.Active {
			active++
			capacity += int(t.Capacity)
		}
	}
	todayRows := d.onDate(d.today())
	diners := 0
	for _, r := range todayRows {
		if live(r) {
			diners += int(r.PartySize)
		}
	}
	return []admin.SummaryMetric{
		{Metric: "Mesas activas", Value: admin.Text(fmt.Sprint(active))},
		{Metric: "Capacidad total", Value: admin.Text(fmt.Sprint(capacity))},
		{Metric: "Reservas hoy", Value: admin.Text(fmt.Sprint(len(todayRows)))},
		{Metric: "Comensales hoy", Value: admin.Text(fmt.Sprint(diners))},
		{Metric: "Reservas totales", Value: admin.Text(fmt.Sprint(len(d.reservations)))},
	}
}

func (d *Dataset) executiveDashboard() []admin.SummaryMetric {
	pending, upcoming := 0, 0
	today := d.today()
	for _, r := range d.reservations {
		if r.Status == string(admin.StatusPending) {
			pending++
		}
		if r.Date >= today && live(r) {
			upcoming++
		}
	}
	noShow := 0.0
	if months := d.monthlyAnalysis(); len(months) > 0 {
		noShow = months[0].NoShowPercentage.Float()
	}
	return []admin.SummaryMetric{
		{Metric: "Pendientes de confirmar", Value: admin.Text(fmt.Sprint(pending))},
		{Metric: "Próximas reservas", Value: admin.Text(fmt.Sprint(upcoming))},
		{Metric: "No-show mes actual", Value: admin.Text(fmt.Sprintf("%.1f%%", noShow))},
	}
}

func (d *Dataset) tablesByZone() []admin.ZoneSummary {
	var out []admin.ZoneSummary
	for _, z := range layout {
		s := admin.ZoneSummary{Zone: z.zone, MinCapacity: math.MaxInt32}
		for _, t := range d.tables {
			if t.Zone != z.zone {
				continue
			}
			s.TotalTables++
			s.TotalCapacity += t.Capacity
			if t.Capacity < s.MinCapacity {
				s.MinCapacity = t.Capacity
			}
			if t.Capacity > s.MaxCapacity {
				s.MaxCapacity = t.Capacity
			}
			if t.Active {
				s.ActiveTables++
			}
		}
		if s.TotalTables == 0 {
			continue
		}
		s.MeanCapacity = admin.Number(round2(float64(s.TotalCapacity) / float64(s.TotalTables)))
		out = append(out, s)
	}
	return out
}

func (d *Dataset) capacityDistribution() []admin.CapacityBucket {
	counts := map[admin.Int]admin.Int{}
	for _, t := range d.tables {
		counts[t.Capacity]++
	}
	out := make([]admin.CapacityBucket, 0, len(counts))
	for capacity, count := range counts {
		out = append(out, admin.CapacityBucket{Capacity: capacity, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Capacity < out[j].Capacity })
	return out
}

func (d *Dataset) todayReservations() []admin.TodayReservation {
	rows := d.onDate(d.today())
	out := make([]admin.TodayReservation, 0, len(rows))
	for _, r := range rows {
		out = append(out, admin.TodayReservation{
			Time:         r.Time,
			Code:         r.Code,
			CustomerName: r.CustomerName,
			Phone:        r.Phone,
			PartySize:    r.PartySize,
			TableID:      r.TableID,
			Area:         d.areaOf(r.TableID),
			ChildSeats:   admin.Text(fmt.Sprintf("%dT / %dA", r.HighChairs, r.BoosterSeats)),
			Status:       r.Status,
			Notes:        r.Notes,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}

func (d *Dataset) areaOf(id admin.Text) string {
	for _, t := range d.tables {
		if t.ID == id {
			return t.Area
		}
	}
	return ""
}

func (d *Dataset) week() []admin.WeekDay {
	start := startOfDay(d.now)
	out := make([]admin.WeekDay, 0, 7)
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		row := admin.WeekDay{Date: day.Format(dateLayout), DayName: weekdayNames[day.Weekday()]}
		for _, r := range d.onDate(row.Date) {
			if !live(r) {
				continue
			}
			row.Reservations++
			row.Diners += r.PartySize
			row.HighChairs += r.HighChairs
			row.BoosterSeats += r.BoosterSeats
		}
		out = append(out, row)
	}
	return out
}

func (d *Dataset) statusStatistics() []admin.StatusBreakdown {
	counts := map[string]int{}
	for _, r := range d.reservations {
		counts[r.Status]++
	}
	out := make([]admin.StatusBreakdown, 0, len(counts))
	for _, status := range admin.KnownStatuses {
		n := counts[string(status)]
		if n == 0 {
			continue
		}
		out = append(out, admin.StatusBreakdown{
			Status:     string(status),
			Count:      admin.Int(n),
			Percentage: admin.Number(round2(100 * float64(n) / float64(len(d.reservations)))),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

func (d *Dataset) slotOccupancy() []admin.SlotOccupancy {
	lunch := admin.SlotOccupancy{Band: "Comida (13:00-16:00)"}
	dinner := admin.SlotOccupancy{Band: "Cena (20:00-23:00)"}
	for _, r := range d.onDate(d.today()) {
		if !live(r) {
			continue
		}
		band := &dinner
		if r.Time < "17:00" {
			band = &lunch
		}
		band.Reservations++
		band.Diners += r.PartySize
	}
	return []admin.SlotOccupancy{lunch, dinner}
}

func (d *Dataset) availableNow() []admin.AvailableTable {
	busy := map[admin.Text]bool{}
	hour := d.now.Format("15:04")
	for _, r := range d.onDate(d.today()) {
		if !live(r) {
			continue
		}
		start, err := time.Parse("15:04", r.Time)
		if err != nil {
			continue
		}
		end := start.Add(2 * time.Hour).Format("15:04")
		if r.Time <= hour && hour < end {
			busy[r.TableID] = true
		}
	}
	var out []admin.AvailableTable
	for _, t := range d.tables {
		if !t.Active || busy[t.ID] {
			continue
		}
		out = append(out, admin.AvailableTable{ID: t.ID, Zone: t.Zone, Area: t.Area, Capacity: t.Capacity, Features: t.Features})
	}
	return out
}

func (d *Dataset) childSeats() []admin.ChildSeatAvailability {
	out := make([]admin.ChildSeatAvailability, 0, 7)
	for _, day := range d.week() {
		high := minInt(int(day.HighChairs), highChairStock)
		boost := minInt(int(day.BoosterSeats), boosterStock)
		out = append(out, admin.ChildSeatAvailability{
			Date:                day.Date,
			HighChairsTotal:     highChairStock,
			HighChairsReserved:  admin.Int(high),
			HighChairsAvailable: admin.Int(highChairStock - high),
			BoostersTotal:       boosterStock,
			BoostersReserved:    admin.Int(boost),
			BoostersAvailable:   admin.Int(boosterStock - boost),
		})
	}
	return out
}

func (d *Dataset) frequentCustomers() []admin.FrequentCustomer {
	byPhone := map[string]*admin.FrequentCustomer{}
	var order []string
	for _, r := range d.reservations {
		fc, ok := byPhone[r.Phone]
		if !ok {
			fc = &admin.FrequentCustomer{Phone: r.Phone, Name: r.CustomerName, FirstReservation: r.Date, LastReservation: r.Date}
			byPhone[r.Phone] = fc
			order = append(order, r.Phone)
		}
		fc.TotalReservations++
		switch admin.ReservationStatus(r.Status) {
		case admin.StatusCompleted:
			fc.Completed++
		case admin.StatusCancelled:
			fc.Cancelled++
		case admin.StatusNoShow:
			fc.NoShows++
		}
		if r.Date < fc.FirstReservation {
			fc.FirstReservation = r.Date
		}
		if r.Date > fc.LastReservation {
			fc.LastReservation = r.Date
		}
	}
	var out []admin.FrequentCustomer
	for _, phone := range order {
		if fc := byPhone[phone]; fc.TotalReservations >= 2 {
			out = append(out, *fc)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalReservations > out[j].TotalReservations })
	if len(out) > 20 {
		out = out[:20]
	}
	return out
}

func (d *Dataset) monthlyAnalysis() []admin.MonthlyAnalysis {
	byMonth := map[string]*admin.MonthlyAnalysis{}
	for _, r := range d.reservations {
		month := r.Date[:7]
		m, ok := byMonth[month]
		if !ok {
			m = &admin.MonthlyAnalysis{Month: month}
			byMonth[month] = m
		}
		m.TotalReservations++
		m.TotalDiners += r.PartySize
		switch admin.ReservationStatus(r.Status) {
		case admin.StatusCompleted:
			m.Completed++
		case admin.StatusCancelled:
			m.Cancelled++
		case admin.StatusNoShow:
			m.NoShows++
		}
	}
	out := make([]admin.MonthlyAnalysis, 0, len(byMonth))
	for _, m := range byMonth {
		m.MeanDiners = admin.Number(round2(float64(m.TotalDiners) / float64(m.TotalReservations)))
		m.NoShowPercentage = admin.Number(round2(100 * float64(m.NoShows) / float64(m.TotalReservations)))
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month > out[j].Month })
	return out
}

func (d *Dataset) dayOfWeek() []admin.DayOfWeekOccupancy {
	rows := make([]admin.DayOfWeekOccupancy, 7)
	for i := range rows {
		rows[i] = admin.DayOfWeekOccupancy{Day: weekdayNames[i], DayNumber: admin.Int(i)}
	}
	for _, r := range d.reservations {
		day, err := time.Parse(dateLayout, r.Date)
		if err != nil || r.Status == string(admin.StatusCancelled) {
			continue
		}
		row := &rows[day.Weekday()]
		row.TotalReservations++
		row.TotalDiners += r.PartySize
	}
	out := make([]admin.DayOfWeekOccupancy, 0, 7)
	// Monday first, Sunday last.
	for _, i := range []int{1, 2, 3, 4, 5, 6, 0} {
		row := rows[i]
		if row.TotalReservations > 0 {
			row.Mean = admin.Number(round2(float64(row.TotalDiners) / float64(row.TotalReservations)))
		}
		out = append(out, row)
	}
	return out
}

func (d *Dataset) popularZones() []admin.PopularZone {
	byZone := map[string]*admin.PopularZone{}
	total := 0
	for _, r := range d.reservations {
		if r.Status == string(admin.StatusCancelled) {
			continue
		}
		var zone, area string
		for _, t := range d.tables {
			if t.ID == r.TableID {
				zone, area = t.Zone, t.Area
				break
			}
		}
		if zone == "" {
			continue
		}
		z, ok := byZone[zone]
		if !ok {
			z = &admin.PopularZone{Zone: zone, Area: area}
			byZone[zone] = z
		}
		z.Reservations++
		z.Diners += r.PartySize
		total++
	}
	out := make([]admin.PopularZone, 0, len(byZone))
	for _, z := range byZone {
		if total > 0 {
			z.Percentage = admin.Number(round2(100 * float64(z.Reservations) / float64(total)))
		}
		out = append(out, *z)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Reservations != out[j].Reservations {
			return out[i].Reservations > out[j].Reservations
		}
		return out[i].Zone < out[j].Zone
	})
	return out
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
