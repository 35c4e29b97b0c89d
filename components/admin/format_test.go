package admin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	for _, value := range []string{"2025-01-10", "2025-01-10T13:30:00Z", "2025-01-10 13:30:00", "2025-01-10T13:30:00.123456+01:00"} {
		got, ok := ParseDate(value)
		assert.True(t, ok, value)
		assert.Equal(t, 2025, got.Year(), value)
		assert.Equal(t, time.January, got.Month(), value)
		assert.Equal(t, 10, got.Day(), value)
	}
	_, ok := ParseDate("mañana")
	assert.False(t, ok)
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "10/1/2025", FormatDate("2025-01-10", "es"))
	assert.Equal(t, "1/10/2025", FormatDate("2025-01-10", "en"))
	assert.Equal(t, "10/1/2025", FormatDate("2025-01-10", "en-GB"))
	assert.Equal(t, "sin fecha", FormatDate("sin fecha", "es"))
}

func TestFormatDayMonthEnglish(t *testing.T) {
	assert.Equal(t, "Jan 10", FormatDayMonth("2025-01-10", "en"))
	assert.Equal(t, "Fri, Jan 10", FormatWeekdayDayMonth("2025-01-10", "en"))
	assert.Equal(t, "-", FormatDayMonth("-", "en"))
}

func TestFormatDayMonthSpanish(t *testing.T) {
	got := FormatDayMonth("2025-01-10", "es")
	assert.Contains(t, got, "10")
	assert.NotContains(t, got, "Jan")
}
