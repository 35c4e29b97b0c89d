package admin

import (
	"testing"

	"github.com/flosch/pongo2/v6"
	"github.com/stretchr/testify/assert"
)

func TestTemplateFuncs(t *testing.T) {
	funcs := TemplateFuncs(nil)
	es := &pongo2.ExecutionContext{Public: pongo2.Context{"locale": "es"}}
	en := &pongo2.ExecutionContext{Public: pongo2.Context{"locale": "en"}}
	translate := funcs["t"].(func(*pongo2.ExecutionContext, any) string)

	assert.Equal(t, "Error al cargar los datos", translate(es, "app.error_generic"))
	assert.Equal(t, "No frequent customers yet", translate(en, "empty.customers"))
	assert.Equal(t, "Error al cargar los datos", translate(nil, "app.error_generic"))
	assert.Equal(t, "missing.key", translate(en, "missing.key"))

	assert.Equal(t, "badge-error", funcs["status_badge"].(func(any) string)("cancelada"))
	assert.Equal(t, "100.0", funcs["pct"].(func(any) string)(140.0))
	assert.Equal(t, "-", funcs["placeholder"].(func(any) string)(nil))
	assert.True(t, funcs["positive"].(func(any) bool)(2.0))
	assert.False(t, funcs["positive"].(func(any) bool)(nil))
}

func TestTemplateFuncsDelegateThresholds(t *testing.T) {
	funcs := TemplateFuncs(nil)
	lowStock := funcs["low_stock"].(func(any) bool)
	highNoShow := funcs["high_no_show"].(func(any) bool)

	for _, v := range []float64{0, 1, 2, 4} {
		assert.Equal(t, LowStock(Int(v)), lowStock(v), "low stock %v", v)
	}
	for _, v := range []float64{0, 10, 10.1, 12.5} {
		assert.Equal(t, HighNoShow(MonthlyAnalysis{NoShowPercentage: Number(v)}), highNoShow(v), "no-show %v", v)
	}
}

func TestFormatNumber(t *testing.T) {
	cases := map[any]string{
		8.0:          "8",
		19.0:         "19",
		12.5:         "12.5",
		1000000.0:    "1000000",
		Int(3):       "3",
		"75%":        "75%",
		Text("12"):   "12",
		Number(3.25): "3.25",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatNumber(in), "%v", in)
	}
	assert.Equal(t, "", formatNumber(nil))
}
