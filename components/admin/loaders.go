package admin

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// LoadEnv is what a loader may use besides the request context.
type LoadEnv struct {
	Client     *Client
	Charts     *ChartRenderer
	Translator *Catalog
	Locale     string
	Now        time.Time
}

func (e LoadEnv) t(key string) string {
	if e.Translator == nil {
		return key
	}
	return e.Translator.T(e.Locale, key)
}

// Every loader starts all of its calls at once and waits for all of them. The first
// failure cancels the shared context and fails the page; partial results are dropped.
// Charts are optional: a chart that fails to render is left out.

func loadDashboard(ctx context.Context, env LoadEnv) (PageData, error) {
	data := &DashboardData{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		data.KPIs, err = env.Client.ExecutiveDashboard(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.Summary, err = env.Client.GeneralSummary(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.Week, err = env.Client.WeekReservations(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.Statuses, err = env.Client.StatusStatistics(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if chart, err := env.Charts.StatusPie(env.t("dashboard.section.statuses"), data.Statuses); err == nil {
		data.StatusChart = chart
	}
	return data, nil
}

func loadTables(ctx context.Context, env LoadEnv) (PageData, error) {
	data := &TablesData{Tab: TabDetail}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		data.Tables, err = env.Client.TableDetail(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.Zones, err = env.Client.TablesByZone(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.Capacities, err = env.Client.CapacityDistribution(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.Available, err = env.Client.AvailableTablesNow(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}

func loadReservations(ctx context.Context, env LoadEnv) (PageData, error) {
	rows, err := env.Client.Reservations(ctx)
	if err != nil {
		return nil, err
	}
	data := &ReservationsData{All: rows, Counts: CountByStatus(rows)}
	data.ApplyFilter(StatusFilterAll)
	return data, nil
}

func loadToday(ctx context.Context, env LoadEnv) (PageData, error) {
	data := &TodayData{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		data.Reservations, err = env.Client.TodayReservations(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.Slots, err = env.Client.SlotOccupancy(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	data.DateLabel = LongDate(env.Now, env.Locale)
	return data, nil
}

func loadWeek(ctx context.Context, env LoadEnv) (PageData, error) {
	data := &WeekData{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		data.Days, err = env.Client.WeekReservations(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.ChildSeats, err = env.Client.ChildSeats(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	data.Totals = SumWeek(data.Days)
	if chart, err := env.Charts.WeekBars(env.t("week.section.days"), data.Days); err == nil {
		data.WeekChart = chart
	}
	return data, nil
}

func loadStatistics(ctx context.Context, env LoadEnv) (PageData, error) {
	var weekdays []DayOfWeekOccupancy
	data := &StatisticsData{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		weekdays, err = env.Client.DayOfWeekOccupancy(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.Zones, err = env.Client.PopularZones(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.Monthly, err = env.Client.MonthlyAnalysis(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	data.Weekdays = WeekdayBars(weekdays)
	if chart, err := env.Charts.WeekdayBars(env.t("statistics.section.weekdays"), weekdays); err == nil {
		data.WeekdayChart = chart
	}
	return data, nil
}

func loadCustomers(ctx context.Context, env LoadEnv) (PageData, error) {
	rows, err := env.Client.FrequentCustomers(ctx)
	if err != nil {
		return nil, err
	}
	return &CustomersData{Customers: rows}, nil
}
