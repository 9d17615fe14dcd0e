package xlsheet

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ValueKind identifies which variant a CellValue holds.
type ValueKind int

const (
	KindText ValueKind = iota
	KindDecimal
	KindInteger
	KindNaiveDateTime
	KindZonedDateTime
	KindFormula
)

// String returns a human-readable name for the ValueKind.
func (k ValueKind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindDecimal:
		return "Decimal"
	case KindInteger:
		return "Integer"
	case KindNaiveDateTime:
		return "NaiveDateTime"
	case KindZonedDateTime:
		return "ZonedDateTime"
	case KindFormula:
		return "Formula"
	default:
		return "Unknown"
	}
}

// CellValue is a closed union over the six cell value kinds. The zero value
// is empty text.
type CellValue struct {
	kind ValueKind
	dec  decimal.Decimal
	num  int64
	str  string // text or formula
	t    time.Time
}

// Text creates a text value.
func Text(s string) CellValue { return CellValue{kind: KindText, str: s} }

// Decimal creates a decimal value.
func Decimal(d decimal.Decimal) CellValue { return CellValue{kind: KindDecimal, dec: d} }

// Float creates a decimal value from a float64.
func Float(f float64) CellValue { return Decimal(decimal.NewFromFloat(f)) }

// Integer creates an integer value.
func Integer(n int64) CellValue { return CellValue{kind: KindInteger, num: n} }

// NaiveDateTime creates a date-time value without a zone. The location of t
// is dropped; only its calendar fields are kept.
func NaiveDateTime(t time.Time) CellValue {
	return CellValue{kind: KindNaiveDateTime, t: wallClock(t)}
}

// ZonedDateTime creates a date-time value that keeps t's offset.
func ZonedDateTime(t time.Time) CellValue { return CellValue{kind: KindZonedDateTime, t: t} }

// Formula creates a formula value. The text is stored as given, never evaluated.
func Formula(f string) CellValue { return CellValue{kind: KindFormula, str: f} }

// ValueOf wraps a Go value in the matching variant. Unknown types become
// their fmt representation as text.
func ValueOf(v any) CellValue {
	switch x := v.(type) {
	case nil:
		return Text("")
	case CellValue:
		return x
	case string:
		return Text(x)
	case int:
		return Integer(int64(x))
	case int8:
		return Integer(int64(x))
	case int16:
		return Integer(int64(x))
	case int32:
		return Integer(int64(x))
	case int64:
		return Integer(x)
	case uint8:
		return Integer(int64(x))
	case uint16:
		return Integer(int64(x))
	case uint32:
		return Integer(int64(x))
	case float32:
		return Float(float64(x))
	case float64:
		return Float(x)
	case decimal.Decimal:
		return Decimal(x)
	case time.Time:
		if x.Location() == time.UTC {
			return NaiveDateTime(x)
		}
		return ZonedDateTime(x)
	case fmt.Stringer:
		return Text(x.String())
	default:
		return Text(fmt.Sprintf("%v", x))
	}
}

// Kind returns the populated variant.
func (v CellValue) Kind() ValueKind { return v.kind }

func (v CellValue) IsString() bool        { return v.kind == KindText }
func (v CellValue) IsDecimal() bool       { return v.kind == KindDecimal }
func (v CellValue) IsLong() bool          { return v.kind == KindInteger }
func (v CellValue) IsDateTime() bool      { return v.kind == KindNaiveDateTime }
func (v CellValue) IsZonedDateTime() bool { return v.kind == KindZonedDateTime }
func (v CellValue) IsFormula() bool       { return v.kind == KindFormula }

// IsDate reports whether the value is either date-time variant.
func (v CellValue) IsDate() bool {
	return v.kind == KindNaiveDateTime || v.kind == KindZonedDateTime
}

// IsEmpty reports whether the value is empty text.
func (v CellValue) IsEmpty() bool { return v.kind == KindText && v.str == "" }

// Equal reports structural equality. Decimals compare by numeric value and
// zoned times by instant and offset.
func (v CellValue) Equal(o CellValue) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindDecimal:
		return v.dec.Equal(o.dec)
	case KindInteger:
		return v.num == o.num
	case KindNaiveDateTime:
		return v.t.Equal(o.t)
	case KindZonedDateTime:
		_, off1 := v.t.Zone()
		_, off2 := o.t.Zone()
		return v.t.Equal(o.t) && off1 == off2
	default:
		return v.str == o.str
	}
}

// String implements fmt.Stringer using AsString.
func (v CellValue) String() string { return v.AsString() }

// AsString converts to text. Never fails; formulas return their text verbatim.
func (v CellValue) AsString() string {
	switch v.kind {
	case KindDecimal:
		return v.dec.String()
	case KindInteger:
		return strconv.FormatInt(v.num, 10)
	case KindNaiveDateTime:
		return v.t.Format(naiveLayout)
	case KindZonedDateTime:
		return v.t.Format(zonedLayout)
	default:
		return v.str
	}
}

// AsDecimal converts to a decimal. Dates yield their tick count; text that
// does not parse yields zero.
func (v CellValue) AsDecimal() (decimal.Decimal, error) {
	switch v.kind {
	case KindDecimal:
		return v.dec, nil
	case KindInteger:
		return decimal.NewFromInt(v.num), nil
	case KindNaiveDateTime, KindZonedDateTime:
		return decimal.NewFromInt(timeToTicks(v.t)), nil
	case KindFormula:
		return decimal.Zero, &ConversionError{From: v.kind, To: "decimal"}
	default:
		d, err := decimal.NewFromString(strings.TrimSpace(v.str))
		if err != nil {
			return decimal.Zero, nil
		}
		return d, nil
	}
}

// AsFloat converts to a float64 following the AsDecimal rules.
func (v CellValue) AsFloat() (float64, error) {
	d, err := v.AsDecimal()
	if err != nil {
		return 0, err
	}
	f, _ := d.Float64()
	return f, nil
}

// AsLong converts to an int64. Decimals truncate toward zero, dates yield
// their tick count and unparsable text yields zero.
func (v CellValue) AsLong() (int64, error) {
	switch v.kind {
	case KindDecimal:
		return v.dec.IntPart(), nil
	case KindInteger:
		return v.num, nil
	case KindNaiveDateTime, KindZonedDateTime:
		return timeToTicks(v.t), nil
	case KindFormula:
		return 0, &ConversionError{From: v.kind, To: "integer"}
	default:
		n, err := strconv.ParseInt(strings.TrimSpace(v.str), 10, 64)
		if err != nil {
			return 0, nil
		}
		return n, nil
	}
}

// AsDateTime converts to a zone-less wall-clock time. Numbers are read as
// tick counts; unparsable text yields the zero time.
func (v CellValue) AsDateTime() (time.Time, error) {
	switch v.kind {
	case KindDecimal:
		return ticksToTime(v.dec.IntPart()), nil
	case KindInteger:
		return ticksToTime(v.num), nil
	case KindNaiveDateTime:
		return v.t, nil
	case KindZonedDateTime:
		return wallClock(v.t), nil
	case KindFormula:
		return time.Time{}, &ConversionError{From: v.kind, To: "date-time"}
	default:
		t, ok := parseTime(v.str)
		if !ok {
			return time.Time{}, nil
		}
		return wallClock(t), nil
	}
}

// AsZonedDateTime converts to a time with an offset. Zone-less sources are
// placed in UTC.
func (v CellValue) AsZonedDateTime() (time.Time, error) {
	switch v.kind {
	case KindZonedDateTime:
		return v.t, nil
	case KindFormula:
		return time.Time{}, &ConversionError{From: v.kind, To: "zoned date-time"}
	case KindText:
		t, ok := parseTime(v.str)
		if !ok {
			return time.Time{}, nil
		}
		return t, nil
	default:
		return v.AsDateTime()
	}
}

// ValueVisitor has one method per variant. Implementations must handle all
// six, which keeps every Visit call exhaustive at compile time.
type ValueVisitor[T any] interface {
	Text(s string) T
	Decimal(d decimal.Decimal) T
	Integer(n int64) T
	NaiveDateTime(t time.Time) T
	ZonedDateTime(t time.Time) T
	Formula(f string) T
}

// Visit dispatches v to the visitor method matching its variant.
func Visit[T any](v CellValue, visitor ValueVisitor[T]) T {
	switch v.kind {
	case KindDecimal:
		return visitor.Decimal(v.dec)
	case KindInteger:
		return visitor.Integer(v.num)
	case KindNaiveDateTime:
		return visitor.NaiveDateTime(v.t)
	case KindZonedDateTime:
		return visitor.ZonedDateTime(v.t)
	case KindFormula:
		return visitor.Formula(v.str)
	default:
		return visitor.Text(v.str)
	}
}

const (
	naiveLayout = "2006-01-02 15:04:05.999999999"
	zonedLayout = "2006-01-02 15:04:05.999999999 -07:00"
)

var timeLayouts = []string{
	time.RFC3339Nano,
	zonedLayout,
	naiveLayout,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006",
	"15:04:05",
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
