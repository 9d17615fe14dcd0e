package xlsheet

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_ZeroIsEmptyText(t *testing.T) {
	var v CellValue
	assert.Equal(t, KindText, v.Kind())
	assert.True(t, v.IsEmpty())
	assert.True(t, v.IsString())
	assert.Equal(t, "", v.AsString())
}

func TestValue_Predicates(t *testing.T) {
	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	assert.True(t, Text("x").IsString())
	assert.True(t, Float(1.5).IsDecimal())
	assert.True(t, Integer(3).IsLong())
	assert.True(t, NaiveDateTime(now).IsDateTime())
	assert.True(t, ZonedDateTime(now).IsZonedDateTime())
	assert.True(t, Formula("=A1").IsFormula())
	assert.True(t, NaiveDateTime(now).IsDate())
	assert.True(t, ZonedDateTime(now).IsDate())
	assert.False(t, Integer(3).IsDate())
	assert.False(t, Text("x").IsEmpty())
}

// --- Formula asymmetry ---

func TestValue_FormulaConvertsOnlyToString(t *testing.T) {
	f := Formula("=SUM(A1:A3)")
	assert.Equal(t, "=SUM(A1:A3)", f.AsString())

	_, err := f.AsDecimal()
	assert.ErrorIs(t, err, ErrUnsupportedConversion)
	_, err = f.AsFloat()
	assert.ErrorIs(t, err, ErrUnsupportedConversion)
	_, err = f.AsLong()
	assert.ErrorIs(t, err, ErrUnsupportedConversion)
	_, err = f.AsDateTime()
	assert.ErrorIs(t, err, ErrUnsupportedConversion)
	_, err = f.AsZonedDateTime()
	assert.ErrorIs(t, err, ErrUnsupportedConversion)

	var convErr *ConversionError
	require.True(t, errors.As(err, &convErr))
	assert.Equal(t, KindFormula, convErr.From)
}

func TestValue_FormulaTextIsNotEvaluated(t *testing.T) {
	f := Formula("=1+1")
	assert.Equal(t, "=1+1", f.String())
	assert.False(t, f.Equal(Integer(2)))
}

// --- Text fallbacks ---

func TestValue_TextParsesNumbers(t *testing.T) {
	d, err := Text(" 12.5 ").AsDecimal()
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("12.5")))

	n, err := Text("42").AsLong()
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)
}

func TestValue_TextFallsBackToZero(t *testing.T) {
	d, err := Text("abc").AsDecimal()
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	n, err := Text("12.5").AsLong()
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	dt, err := Text("not a date").AsDateTime()
	require.NoError(t, err)
	assert.True(t, dt.IsZero())
}

func TestValue_TextParsesDates(t *testing.T) {
	dt, err := Text("2024-01-02").AsDateTime()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), dt)

	dt, err = Text("2024-01-02 03:04:05").AsDateTime()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), dt)
}

// --- Ticks ---

func TestValue_TicksKnownValues(t *testing.T) {
	assert.Equal(t, int64(0), timeToTicks(time.Time{}))
	assert.Equal(t, int64(10_000_000), timeToTicks(time.Date(1, 1, 1, 0, 0, 1, 0, time.UTC)))
	assert.Equal(t, int64(621355968000000000), timeToTicks(time.Unix(0, 0).UTC()))
	assert.True(t, ticksToTime(-5).IsZero())
}

func TestValue_DateToNumberRoundTrip(t *testing.T) {
	when := time.Date(2024, 5, 6, 7, 8, 9, 123456700, time.UTC)
	n, err := NaiveDateTime(when).AsLong()
	require.NoError(t, err)

	back, err := Integer(n).AsDateTime()
	require.NoError(t, err)
	assert.Equal(t, when, back)

	d, err := NaiveDateTime(when).AsDecimal()
	require.NoError(t, err)
	back, err = Decimal(d).AsDateTime()
	require.NoError(t, err)
	assert.Equal(t, when, back)
}

func TestValue_TicksIgnoreOffset(t *testing.T) {
	zone := time.FixedZone("UTC+2", 2*3600)
	local := time.Date(2024, 1, 2, 10, 0, 0, 0, zone)
	utc := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)

	a, err := ZonedDateTime(local).AsLong()
	require.NoError(t, err)
	b, err := NaiveDateTime(utc).AsLong()
	require.NoError(t, err)
	assert.Equal(t, b, a)
}

// --- Date variants ---

func TestValue_NaiveDropsLocation(t *testing.T) {
	zone := time.FixedZone("UTC-5", -5*3600)
	v := NaiveDateTime(time.Date(2024, 1, 2, 22, 30, 0, 0, zone))
	dt, err := v.AsDateTime()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 2, 22, 30, 0, 0, time.UTC), dt)
	assert.Equal(t, "2024-01-02 22:30:00", v.AsString())
}

func TestValue_ZonedKeepsOffset(t *testing.T) {
	zone := time.FixedZone("UTC+2", 2*3600)
	when := time.Date(2024, 1, 2, 10, 0, 0, 0, zone)
	v := ZonedDateTime(when)

	z, err := v.AsZonedDateTime()
	require.NoError(t, err)
	_, off := z.Zone()
	assert.Equal(t, 2*3600, off)
	assert.Equal(t, "2024-01-02 10:00:00 +02:00", v.AsString())

	naive, err := v.AsDateTime()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC), naive)
}

func TestValue_Equal(t *testing.T) {
	assert.True(t, Float(1.5).Equal(Decimal(decimal.RequireFromString("1.50"))))
	assert.False(t, Integer(1).Equal(Float(1)))
	assert.True(t, Text("a").Equal(Text("a")))
	assert.False(t, Text("=A1").Equal(Formula("=A1")))

	when := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
	assert.False(t, ZonedDateTime(when).Equal(ZonedDateTime(when.In(time.FixedZone("X", 3600)))))
}

func TestValue_ValueOf(t *testing.T) {
	when := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		in   any
		kind ValueKind
	}{
		{nil, KindText},
		{"x", KindText},
		{7, KindInteger},
		{int64(7), KindInteger},
		{2.5, KindDecimal},
		{decimal.NewFromInt(3), KindDecimal},
		{when, KindNaiveDateTime},
		{when.In(time.FixedZone("X", 3600)), KindZonedDateTime},
		{struct{ A int }{1}, KindText},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.kind, ValueOf(tt.in).Kind(), "%#v", tt.in)
	}
}

type kindNamer struct{}

func (kindNamer) Text(string) string             { return "text" }
func (kindNamer) Decimal(decimal.Decimal) string { return "decimal" }
func (kindNamer) Integer(int64) string           { return "integer" }
func (kindNamer) NaiveDateTime(time.Time) string { return "naive" }
func (kindNamer) ZonedDateTime(time.Time) string { return "zoned" }
func (kindNamer) Formula(string) string          { return "formula" }

func TestValue_VisitIsExhaustive(t *testing.T) {
	now := time.Now()
	assert.Equal(t, "text", Visit[string](Text("a"), kindNamer{}))
	assert.Equal(t, "decimal", Visit[string](Float(1), kindNamer{}))
	assert.Equal(t, "integer", Visit[string](Integer(1), kindNamer{}))
	assert.Equal(t, "naive", Visit[string](NaiveDateTime(now), kindNamer{}))
	assert.Equal(t, "zoned", Visit[string](ZonedDateTime(now), kindNamer{}))
	assert.Equal(t, "formula", Visit[string](Formula("=1"), kindNamer{}))
	assert.Equal(t, "text", Visit[string](CellValue{}, kindNamer{}))
}
