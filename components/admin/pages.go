package admin

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Page slugs. They double as URL path segments.
const (
	PageDashboard    = "dashboard"
	PageTables       = "mesas"
	PageReservations = "reservas"
	PageToday        = "hoy"
	PageWeek         = "semana"
	PageStatistics   = "estadisticas"
	PageCustomers    = "clientes"
	PageChat         = "chat"
)

// Loader fetches every procedure a page needs and joins them.
type Loader func(ctx context.Context, env LoadEnv) (PageData, error)

// Page registers one data view.
type Page struct {
	Slug       string
	Order      int
	Icon       string
	Template   string
	Procedures []string
	Loader     Loader
}

// TitleKey is the translation key of the page heading.
func (p Page) TitleKey() string { return "page." + p.Slug + ".title" }

// LoadingKey is the translation key of the loading indicator text.
func (p Page) LoadingKey() string { return "page." + p.Slug + ".loading" }

// NavKey is the translation key of the nav label.
func (p Page) NavKey() string { return "nav." + p.Slug }

// PageRegistry stores pages keyed by slug.
type PageRegistry struct {
	mu    sync.RWMutex
	pages map[string]Page
}

// NewPageRegistry returns an empty registry.
func NewPageRegistry() *PageRegistry {
	return &PageRegistry{pages: make(map[string]Page)}
}

// DefaultPages registers the seven data views.
func DefaultPages() *PageRegistry {
	reg := NewPageRegistry()
	for _, page := range []Page{
		{Slug: PageDashboard, Order: 10, Icon: "📊", Template: "fragments/dashboard", Loader: loadDashboard,
			Procedures: []string{ProcExecutiveDashboard, ProcGeneralSummary, ProcWeekReservations, ProcStatusStatistics}},
		{Slug: PageTables, Order: 20, Icon: "🪑", Template: "fragments/tables", Loader: loadTables,
			Procedures: []string{ProcTableDetail, ProcTablesByZone, ProcCapacityDistribution, ProcAvailableTablesNow}},
		{Slug: PageReservations, Order: 30, Icon: "📅", Template: "fragments/reservations", Loader: loadReservations,
			Procedures: []string{ProcReservations}},
		{Slug: PageToday, Order: 40, Icon: "📌", Template: "fragments/today", Loader: loadToday,
			Procedures: []string{ProcTodayReservations, ProcSlotOccupancy}},
		{Slug: PageWeek, Order: 50, Icon: "📆", Template: "fragments/week", Loader: loadWeek,
			Procedures: []string{ProcWeekReservations, ProcChildSeats}},
		{Slug: PageStatistics, Order: 60, Icon: "📈", Template: "fragments/statistics", Loader: loadStatistics,
			Procedures: []string{ProcDayOfWeekOccupancy, ProcPopularZones, ProcMonthlyAnalysis}},
		{Slug: PageCustomers, Order: 70, Icon: "👥", Template: "fragments/customers", Loader: loadCustomers,
			Procedures: []string{ProcFrequentCustomers}},
	} {
		_ = reg.Register(page)
	}
	return reg
}

// Register adds a page; duplicate slugs are rejected.
func (r *PageRegistry) Register(page Page) error {
	page.Slug = strings.TrimSpace(strings.ToLower(page.Slug))
	if page.Slug == "" {
		return fmt.Errorf("admin: page slug is required")
	}
	if page.Loader == nil {
		return fmt.Errorf("admin: page %s has no loader", page.Slug)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.pages[page.Slug]; exists {
		return fmt.Errorf("admin: page %s already registered", page.Slug)
	}
	r.pages[page.Slug] = page
	return nil
}

// Lookup returns a page by slug.
func (r *PageRegistry) Lookup(slug string) (Page, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	page, ok := r.pages[strings.ToLower(slug)]
	return page, ok
}

// List returns pages in nav order.
func (r *PageRegistry) List() []Page {
	r.mu.RLock()
	out := make([]Page, 0, len(r.pages))
	for _, page := range r.pages {
		out = append(out, page)
	}
	r.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order == out[j].Order {
			return out[i].Slug < out[j].Slug
		}
		return out[i].Order < out[j].Order
	})
	return out
}

// ViewOptions are browser-side selections applied to loaded data without refetching.
type ViewOptions struct {
	Tab    string
	Status string
}

// DashboardData backs the executive dashboard.
type DashboardData struct {
	KPIs        []SummaryMetric   `json:"kpis"`
	Summary     []SummaryMetric   `json:"summary"`
	Week        []WeekDay         `json:"week"`
	Statuses    []StatusBreakdown `json:"statuses"`
	StatusChart string            `json:"status_chart,omitempty"`
}

func (d *DashboardData) RowCount() int {
	return len(d.KPIs) + len(d.Summary) + len(d.Week) + len(d.Statuses)
}

// Table view tabs.
const (
	TabDetail     = "detail"
	TabZones      = "zones"
	TabCapacities = "capacities"
	TabAvailable  = "available"
)

// TableTabs lists the tabs in display order.
var TableTabs = []string{TabDetail, TabZones, TabCapacities, TabAvailable}

// TablesData backs the tables view.
type TablesData struct {
	Tables     []Table          `json:"tables"`
	Zones      []ZoneSummary    `json:"zones"`
	Capacities []CapacityBucket `json:"capacities"`
	Available  []AvailableTable `json:"available"`
	Tab        string           `json:"tab"`
}

func (d *TablesData) RowCount() int {
	return len(d.Tables) + len(d.Zones) + len(d.Capacities) + len(d.Available)
}

// NormalizeTab falls back to the detail tab for unknown selections.
func NormalizeTab(tab string) string {
	for _, known := range TableTabs {
		if tab == known {
			return tab
		}
	}
	return TabDetail
}

// ReservationsData backs the reservations view.
type ReservationsData struct {
	All      []Reservation  `json:"all"`
	Filter   string         `json:"filter"`
	Filtered []Reservation  `json:"filtered"`
	Counts   map[string]int `json:"counts"`
}

func (d *ReservationsData) RowCount() int { return len(d.Filtered) }

// ApplyFilter recomputes the filtered rows from the loaded set.
func (d *ReservationsData) ApplyFilter(filter string) {
	d.Filter = NormalizeStatusFilter(filter)
	d.Filtered = FilterReservations(d.All, d.Filter)
}

// TodayData backs the today view.
type TodayData struct {
	Reservations []TodayReservation `json:"reservations"`
	Slots        []SlotOccupancy    `json:"slots"`
	DateLabel    string             `json:"date_label"`
}

func (d *TodayData) RowCount() int { return len(d.Reservations) + len(d.Slots) }

// WeekData backs the week view.
type WeekData struct {
	Days       []WeekDay               `json:"days"`
	ChildSeats []ChildSeatAvailability `json:"child_seats"`
	Totals     WeekTotals              `json:"totals"`
	WeekChart  string                  `json:"week_chart,omitempty"`
}

func (d *WeekData) RowCount() int { return len(d.Days) + len(d.ChildSeats) }

// StatisticsData backs the statistics view.
type StatisticsData struct {
	Weekdays     []WeekdayBar      `json:"weekdays"`
	Zones        []PopularZone     `json:"zones"`
	Monthly      []MonthlyAnalysis `json:"monthly"`
	WeekdayChart string            `json:"weekday_chart,omitempty"`
}

func (d *StatisticsData) RowCount() int { return len(d.Weekdays) + len(d.Zones) + len(d.Monthly) }

// CustomersData backs the frequent customers view.
type CustomersData struct {
	Customers []FrequentCustomer `json:"customers"`
}

func (d *CustomersData) RowCount() int { return len(d.Customers) }

func applyViewOptions(data PageData, opts ViewOptions) {
	switch d := data.(type) {
	case *ReservationsData:
		d.ApplyFilter(opts.Status)
	case *TablesData:
		d.Tab = NormalizeTab(opts.Tab)
	}
}
