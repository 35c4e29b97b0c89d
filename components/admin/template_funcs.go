package admin

import (
	"fmt"
	"math"
	"strconv"

	"github.com/flosch/pongo2/v6"
)

// TemplateFuncs returns the helpers registered on the template engine. Render data
// goes through a JSON round trip, so helpers take untyped values: numbers arrive as
// float64 and labels as strings. Locale-aware helpers read the payload's locale.
func TemplateFuncs(catalog *Catalog) map[string]any {
	if catalog == nil {
		catalog, _ = DefaultCatalog()
	}
	return map[string]any{
		"t": func(ctx *pongo2.ExecutionContext, key any) string {
			if catalog == nil {
				return toText(key)
			}
			return catalog.T(contextLocale(ctx), toText(key))
		},
		"fmt_date": func(ctx *pongo2.ExecutionContext, v any) string {
			return FormatDate(toText(v), contextLocale(ctx))
		},
		"day_month": func(ctx *pongo2.ExecutionContext, v any) string {
			return FormatDayMonth(toText(v), contextLocale(ctx))
		},
		"weekday_day_month": func(ctx *pongo2.ExecutionContext, v any) string {
			return FormatWeekdayDayMonth(toText(v), contextLocale(ctx))
		},
		"status_badge": func(v any) string { return StatusBadge(toText(v)) },
		"status_color": func(v any) string { return StatusColor(toText(v)) },
		"today_badge":  func(v any) string { return TodayBadge(toText(v)) },
		"day_label":    func(v any) string { return DayLabel(toText(v)) },
		"placeholder":  func(v any) string { return Placeholder(toText(v)) },
		"num":          func(v any) string { return formatNumber(v) },
		"pct":          func(v any) string { return formatPercent(ClampPercent(toFloat(v))) },
		"low_stock":    func(v any) bool { return LowStock(Int(math.Round(toFloat(v)))) },
		"high_no_show": func(v any) bool {
			return HighNoShow(MonthlyAnalysis{NoShowPercentage: Number(toFloat(v))})
		},
		"positive": func(v any) bool { return toFloat(v) > 0 },
	}
}

func contextLocale(ctx *pongo2.ExecutionContext) string {
	if ctx != nil {
		if locale, ok := ctx.Public["locale"].(string); ok && locale != "" {
			return locale
		}
	}
	return DefaultLocale
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// formatNumber prints counts without a decimal part and decimals without
// trailing zeros.
func formatNumber(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case Text:
		return string(val)
	}
	return strconv.FormatFloat(toFloat(v), 'f', -1, 64)
}

func toText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case Text:
		return string(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

func toFloat(v any) float64 {
	switch val := v.(type) {
	case Int:
		return float64(val)
	case Number:
		return float64(val)
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case Text:
		f, _ := strconv.ParseFloat(string(val), 64)
		return f
	case string:
		f, _ := strconv.ParseFloat(val, 64)
		return f
	default:
		return 0
	}
}
