package demo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-restaurant-admin/components/admin"
)

var fixedNow = time.Date(2025, time.January, 10, 13, 0, 0, 0, time.UTC)

func TestGenerateIsDeterministic(t *testing.T) {
	a, err := Generate(Options{Seed: 7, Now: fixedNow}).Fixtures()
	require.NoError(t, err)
	b, err := Generate(Options{Seed: 7, Now: fixedNow}).Fixtures()
	require.NoError(t, err)
	for name := range a {
		assert.JSONEq(t, string(a[name]), string(b[name]), name)
	}
}

func TestFixturesCoverCatalogue(t *testing.T) {
	fixtures, err := Generate(Options{Seed: 1, Now: fixedNow}).Fixtures()
	require.NoError(t, err)
	for _, proc := range admin.Procedures() {
		_, ok := fixtures[proc.Name]
		assert.True(t, ok, "missing fixture for %s", proc.Name)
	}
}

func TestDemoCallerPassesClientValidation(t *testing.T) {
	caller, err := NewCaller(Options{Seed: 3, Now: fixedNow})
	require.NoError(t, err)
	client := admin.NewClient(caller)
	ctx := context.Background()

	for _, proc := range admin.Procedures() {
		_, err := client.Raw(ctx, proc.Name)
		require.NoError(t, err, proc.Name)
	}

	week, err := client.WeekReservations(ctx)
	require.NoError(t, err)
	require.Len(t, week, 7)
	assert.Equal(t, "2025-01-10", week[0].Date)
	assert.Equal(t, "Viernes", week[0].DayName)
}

func TestDatasetIsCoherent(t *testing.T) {
	ds := Generate(Options{Seed: 11, Now: fixedNow})

	total := 0
	for _, row := range ds.statusStatistics() {
		total += int(row.Count)
	}
	assert.Equal(t, len(ds.Reservations()), total)

	for _, row := range ds.childSeats() {
		assert.Equal(t, row.HighChairsTotal, row.HighChairsReserved+row.HighChairsAvailable)
		assert.GreaterOrEqual(t, int(row.BoostersAvailable), 0)
	}

	for _, r := range ds.todayReservations() {
		assert.NotEmpty(t, r.Area)
	}

	for _, c := range ds.frequentCustomers() {
		assert.GreaterOrEqual(t, int(c.TotalReservations), 2)
		assert.LessOrEqual(t, c.FirstReservation, c.LastReservation)
	}

	days := ds.dayOfWeek()
	require.Len(t, days, 7)
	assert.Equal(t, "Lunes", days[0].Day)
	assert.Equal(t, "Domingo", days[6].Day)
}

func TestPastReservationsAreSettled(t *testing.T) {
	ds := Generate(Options{Seed: 5, Now: fixedNow})
	today := fixedNow.Format(dateLayout)
	for _, r := range ds.Reservations() {
		if r.Date < today {
			assert.NotEqual(t, string(admin.StatusPending), r.Status)
			assert.NotEqual(t, string(admin.StatusConfirmed), r.Status)
		}
	}
}
