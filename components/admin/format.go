package admin

import (
	"strings"
	"time"

	"github.com/goodsign/monday"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999-07",
	"2006-01-02 15:04:05.999999",
}

// ParseDate reads the date formats the backend emits for date and timestamp columns.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func mondayLocale(locale string) monday.Locale {
	switch normalizeLocale(locale) {
	case "en-gb":
		return monday.LocaleEnGB
	case "en", "en-us":
		return monday.LocaleEnUS
	}
	if baseLanguage(locale) == "en" {
		return monday.LocaleEnUS
	}
	return monday.LocaleEsES
}

// FormatDate renders a short numeric date ("10/1/2025" in es, "1/10/2025" in en).
// Unparseable values are returned unchanged.
func FormatDate(value, locale string) string {
	t, ok := ParseDate(value)
	if !ok {
		return value
	}
	if baseLanguage(locale) == "en" && normalizeLocale(locale) != "en-gb" {
		return t.Format("1/2/2006")
	}
	return t.Format("2/1/2006")
}

// FormatDayMonth renders "10 ene" style labels.
func FormatDayMonth(value, locale string) string {
	t, ok := ParseDate(value)
	if !ok {
		return value
	}
	if baseLanguage(locale) == "en" {
		return monday.Format(t, "Jan 2", mondayLocale(locale))
	}
	return monday.Format(t, "2 Jan", mondayLocale(locale))
}

// FormatWeekdayDayMonth renders "vie, 10 ene" style labels.
func FormatWeekdayDayMonth(value, locale string) string {
	t, ok := ParseDate(value)
	if !ok {
		return value
	}
	if baseLanguage(locale) == "en" {
		return monday.Format(t, "Mon, Jan 2", mondayLocale(locale))
	}
	return monday.Format(t, "Mon, 2 Jan", mondayLocale(locale))
}

// LongDate renders the full date used as the today view subtitle.
func LongDate(t time.Time, locale string) string {
	if baseLanguage(locale) == "en" {
		return monday.Format(t, "Monday, January 2, 2006", mondayLocale(locale))
	}
	return monday.Format(t, "Monday, 2 de January de 2006", mondayLocale(locale))
}
