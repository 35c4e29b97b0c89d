package admin

import "strings"

// WeekTotals are the summary cards of the week view.
type WeekTotals struct {
	Reservations int64 `json:"reservations"`
	Diners       int64 `json:"diners"`
	Days         int   `json:"days"`
}

// SumWeek totals reservations and diners across the week rows.
func SumWeek(days []WeekDay) WeekTotals {
	totals := WeekTotals{Days: len(days)}
	for _, d := range days {
		totals.Reservations += int64(d.Reservations)
		totals.Diners += int64(d.Diners)
	}
	return totals
}

// FilterReservations returns the rows whose status equals filter; "all" returns
// every row. Order is preserved.
func FilterReservations(rows []Reservation, filter string) []Reservation {
	filter = NormalizeStatusFilter(filter)
	if filter == StatusFilterAll {
		return rows
	}
	out := make([]Reservation, 0, len(rows))
	for _, r := range rows {
		if r.Status == filter {
			out = append(out, r)
		}
	}
	return out
}

// CountByStatus counts rows per raw status value.
func CountByStatus(rows []Reservation) map[string]int {
	counts := make(map[string]int, len(KnownStatuses))
	for _, r := range rows {
		counts[r.Status]++
	}
	return counts
}

// NormalizeToMax scales values to a 0..100 width relative to the maximum. The
// maximum row is always 100; all-zero input yields zero widths.
func NormalizeToMax(values []float64) []float64 {
	out := make([]float64, len(values))
	var max float64
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	if max <= 0 {
		return out
	}
	for i, v := range values {
		if v <= 0 {
			continue
		}
		out[i] = v / max * 100
	}
	return out
}

// ClampPercent bounds a percentage to 0..100 for bar widths.
func ClampPercent(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}

// WeekdayBar is one bar of the statistics weekday chart.
type WeekdayBar struct {
	Row   DayOfWeekOccupancy `json:"row"`
	Width float64            `json:"width"`
}

// WeekdayBars attaches max-normalized widths to the weekday rows.
func WeekdayBars(rows []DayOfWeekOccupancy) []WeekdayBar {
	values := make([]float64, len(rows))
	for i, r := range rows {
		values[i] = float64(r.TotalReservations)
	}
	widths := NormalizeToMax(values)
	bars := make([]WeekdayBar, len(rows))
	for i, r := range rows {
		bars[i] = WeekdayBar{Row: r, Width: widths[i]}
	}
	return bars
}

// NoShowThreshold is the monthly no-show percentage above which a month is highlighted.
const NoShowThreshold = 10.0

// HighNoShow reports whether a month exceeds the no-show threshold.
func HighNoShow(m MonthlyAnalysis) bool {
	return m.NoShowPercentage.Float() > NoShowThreshold
}

// LowStockThreshold is the remaining child-seat count at or below which a warning shows.
const LowStockThreshold = 1

// LowStock reports whether remaining seats are at or below the warning threshold.
func LowStock(available Int) bool {
	return int64(available) <= LowStockThreshold
}

// HasChildSeats reports whether a reservation asked for high chairs or boosters.
func HasChildSeats(highChairs, boosters Int) bool {
	return highChairs > 0 || boosters > 0
}

// DayLabel trims the padded weekday names Postgres returns for to_char(..., 'Day').
func DayLabel(day string) string {
	return strings.TrimSpace(day)
}

// Placeholder returns "-" for empty display values.
func Placeholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
