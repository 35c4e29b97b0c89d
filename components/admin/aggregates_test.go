package admin

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSumWeekExample(t *testing.T) {
	var days []WeekDay
	payload := `[{"fecha":"2025-01-10","total_reservas":5,"total_comensales":12},{"fecha":"2025-01-11","total_reservas":3,"total_comensales":7}]`
	require.NoError(t, json.Unmarshal([]byte(payload), &days))

	totals := SumWeek(days)
	assert.Equal(t, int64(8), totals.Reservations)
	assert.Equal(t, int64(19), totals.Diners)
	assert.Equal(t, 2, totals.Days)
}

func TestSumWeekEqualsPerDaySum(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		days := make([]WeekDay, rng.Intn(8))
		var want int64
		for j := range days {
			days[j].Reservations = Int(rng.Intn(40))
			want += int64(days[j].Reservations)
		}
		if got := SumWeek(days).Reservations; got != want {
			t.Fatalf("expected %d, got %d", want, got)
		}
	}
}

func TestFilterReservationsCountsMatch(t *testing.T) {
	rows := []Reservation{
		{Code: "1", Status: "pendiente"},
		{Code: "2", Status: "confirmada"},
		{Code: "3", Status: "pendiente"},
		{Code: "4", Status: "no_show"},
		{Code: "5", Status: "en_revision"},
	}
	counts := CountByStatus(rows)
	for _, status := range []string{"pendiente", "confirmada", "completada", "cancelada", "no_show", "en_revision"} {
		filtered := FilterReservations(rows, status)
		assert.Len(t, filtered, counts[status], "status %s", status)
		for _, r := range filtered {
			assert.Equal(t, status, r.Status)
		}
	}
	assert.Len(t, FilterReservations(rows, StatusFilterAll), len(rows))
	assert.Len(t, FilterReservations(rows, ""), len(rows))
	assert.Len(t, FilterReservations(rows, "todas"), len(rows))
}

func TestFilterReservationsKeepsOrder(t *testing.T) {
	rows := []Reservation{
		{Code: "a", Status: "pendiente"},
		{Code: "b", Status: "confirmada"},
		{Code: "c", Status: "pendiente"},
	}
	filtered := FilterReservations(rows, "pendiente")
	require.Len(t, filtered, 2)
	assert.Equal(t, Text("a"), filtered[0].Code)
	assert.Equal(t, Text("c"), filtered[1].Code)
}

func TestNormalizeToMaxGivesMaximumFullWidth(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 50; i++ {
		values := make([]float64, 1+rng.Intn(7))
		maxIdx := 0
		for j := range values {
			values[j] = float64(rng.Intn(100))
			if values[j] > values[maxIdx] {
				maxIdx = j
			}
		}
		widths := NormalizeToMax(values)
		if values[maxIdx] == 0 {
			for _, w := range widths {
				if w != 0 {
					t.Fatalf("expected zero widths for all-zero input, got %v", widths)
				}
			}
			continue
		}
		if widths[maxIdx] != 100 {
			t.Fatalf("expected max row at 100, got %v for %v", widths[maxIdx], values)
		}
		for _, w := range widths {
			if w < 0 || w > 100 {
				t.Fatalf("width out of range: %v", w)
			}
		}
	}
}

func TestWeekdayBars(t *testing.T) {
	bars := WeekdayBars([]DayOfWeekOccupancy{
		{Day: "Lunes", TotalReservations: 5},
		{Day: "Sábado", TotalReservations: 20},
	})
	require.Len(t, bars, 2)
	assert.Equal(t, 25.0, bars[0].Width)
	assert.Equal(t, 100.0, bars[1].Width)
	assert.Equal(t, "Lunes", bars[0].Row.Day)
}

func TestClampPercent(t *testing.T) {
	assert.Equal(t, 0.0, ClampPercent(-5))
	assert.Equal(t, 100.0, ClampPercent(140))
	assert.Equal(t, 37.5, ClampPercent(37.5))
}

func TestThresholds(t *testing.T) {
	assert.True(t, HighNoShow(MonthlyAnalysis{NoShowPercentage: 12.5}))
	assert.False(t, HighNoShow(MonthlyAnalysis{NoShowPercentage: 10}))
	assert.True(t, LowStock(1))
	assert.True(t, LowStock(0))
	assert.False(t, LowStock(2))
	assert.True(t, HasChildSeats(0, 1))
	assert.False(t, HasChildSeats(0, 0))
}

func TestDisplayHelpers(t *testing.T) {
	assert.Equal(t, "Viernes", DayLabel("Viernes  "))
	assert.Equal(t, "-", Placeholder("  "))
	assert.Equal(t, "T1", Placeholder("T1"))
}

func TestStatusStyles(t *testing.T) {
	assert.Equal(t, "badge-warning", StatusBadge("pendiente"))
	assert.Equal(t, "badge-success", StatusBadge("confirmada"))
	assert.Equal(t, "badge-info", StatusBadge("completada"))
	assert.Equal(t, "badge-error", StatusBadge("cancelada"))
	assert.Equal(t, NeutralStyle.Badge, StatusBadge("no_show"))
	assert.Equal(t, NeutralStyle, StyleFor("desconocido"))
	assert.Equal(t, NeutralStyle.Color, StatusColor(""))
	assert.True(t, StatusConfirmed.Known())
	assert.False(t, ReservationStatus("archivada").Known())
}

func TestTodayBadge(t *testing.T) {
	assert.Equal(t, "badge-success", TodayBadge("confirmada"))
	assert.Equal(t, "badge-warning", TodayBadge("pendiente"))
	assert.Equal(t, "badge-warning", TodayBadge("cancelada"))
}

func TestNormalizeStatusFilter(t *testing.T) {
	assert.Equal(t, StatusFilterAll, NormalizeStatusFilter(""))
	assert.Equal(t, StatusFilterAll, NormalizeStatusFilter("todas"))
	assert.Equal(t, "cancelada", NormalizeStatusFilter("cancelada"))
	assert.Equal(t, "otra", NormalizeStatusFilter("otra"))
}
