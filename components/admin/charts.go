package admin

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultChartHeight = "320px"

// ChartRenderer draws the optional server-side charts (status pie, weekday bars,
// week bars) as standalone echarts documents.
type ChartRenderer struct {
	cache      RenderCache
	theme      string
	assetsHost string
	height     string
}

// ChartOption customizes the renderer.
type ChartOption func(*ChartRenderer)

// WithChartCache injects a render cache; nil disables caching.
func WithChartCache(cache RenderCache) ChartOption {
	return func(r *ChartRenderer) {
		r.cache = cache
	}
}

// WithChartTheme sets the echarts theme (defaults to Westeros).
func WithChartTheme(theme string) ChartOption {
	return func(r *ChartRenderer) {
		if strings.TrimSpace(theme) != "" {
			r.theme = theme
		}
	}
}

// WithChartAssetsHost rewrites where the echarts JS is loaded from.
func WithChartAssetsHost(host string) ChartOption {
	return func(r *ChartRenderer) {
		r.assetsHost = host
	}
}

// WithChartHeight sets the rendered chart height.
func WithChartHeight(height string) ChartOption {
	return func(r *ChartRenderer) {
		if height != "" {
			r.height = height
		}
	}
}

// NewChartRenderer builds a renderer.
func NewChartRenderer(opts ...ChartOption) *ChartRenderer {
	r := &ChartRenderer{
		theme:  types.ThemeWesteros,
		height: defaultChartHeight,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// StatusPie renders the reservation status breakdown with the status palette.
// Returns "" when there are no rows.
func (r *ChartRenderer) StatusPie(title string, rows []StatusBreakdown) (string, error) {
	if r == nil || len(rows) == 0 {
		return "", nil
	}
	return r.cached("status-pie", title, rows, func() (string, error) {
		pie := charts.NewPie()
		pie.SetGlobalOptions(r.globalOptions(title)...)
		data := make([]opts.PieData, len(rows))
		for i, row := range rows {
			data[i] = opts.PieData{
				Name:      row.Status,
				Value:     int64(row.Count),
				ItemStyle: &opts.ItemStyle{Color: StatusColor(row.Status)},
			}
		}
		pie.AddSeries(title, data)
		return renderChart(pie)
	})
}

// WeekdayBars renders reservations per weekday.
func (r *ChartRenderer) WeekdayBars(title string, rows []DayOfWeekOccupancy) (string, error) {
	if r == nil || len(rows) == 0 {
		return "", nil
	}
	return r.cached("weekday-bars", title, rows, func() (string, error) {
		labels := make([]string, len(rows))
		reservations := make([]opts.BarData, len(rows))
		diners := make([]opts.BarData, len(rows))
		for i, row := range rows {
			labels[i] = DayLabel(row.Day)
			reservations[i] = opts.BarData{Name: labels[i], Value: int64(row.TotalReservations)}
			diners[i] = opts.BarData{Name: labels[i], Value: int64(row.TotalDiners)}
		}
		bar := charts.NewBar()
		bar.SetGlobalOptions(r.globalOptions(title)...)
		bar.SetXAxis(labels)
		bar.AddSeries("reservas", reservations)
		bar.AddSeries("comensales", diners)
		return renderChart(bar)
	})
}

// WeekBars renders reservations and diners for the next seven days.
func (r *ChartRenderer) WeekBars(title string, rows []WeekDay) (string, error) {
	if r == nil || len(rows) == 0 {
		return "", nil
	}
	return r.cached("week-bars", title, rows, func() (string, error) {
		labels := make([]string, len(rows))
		reservations := make([]opts.BarData, len(rows))
		diners := make([]opts.BarData, len(rows))
		for i, row := range rows {
			labels[i] = DayLabel(row.DayName)
			reservations[i] = opts.BarData{Name: labels[i], Value: int64(row.Reservations)}
			diners[i] = opts.BarData{Name: labels[i], Value: int64(row.Diners)}
		}
		bar := charts.NewBar()
		bar.SetGlobalOptions(r.globalOptions(title)...)
		bar.SetXAxis(labels)
		bar.AddSeries("reservas", reservations)
		bar.AddSeries("comensales", diners)
		return renderChart(bar)
	})
}

func (r *ChartRenderer) cached(kind, title string, rows any, render func() (string, error)) (string, error) {
	if r.cache == nil {
		return render()
	}
	key := fmt.Sprintf("%s:%s:%s:%s", kind, r.theme, title, rowsHash(rows))
	return r.cache.GetOrRender(key, render)
}

func (r *ChartRenderer) globalOptions(title string) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  r.theme,
		Width:  "100%",
		Height: r.height,
	}
	if r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", fmt.Errorf("admin: render chart: %w", err)
	}
	return buf.String(), nil
}
