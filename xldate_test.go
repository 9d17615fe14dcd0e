package xlsheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTimeToSerial_Known(t *testing.T) {
	tests := []struct {
		when   time.Time
		serial float64
	}{
		{date(1899, 12, 31), 0},
		{date(1900, 1, 1), 1},
		{date(1900, 2, 28), 59},
		{date(1900, 3, 1), 61},
		{date(2024, 1, 1), 45292},
		{time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), 45292.5},
		{time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC), 45292.25},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.serial, timeToSerial(tt.when), 1e-9, tt.when.String())
	}
}

func TestTimeToSerial_ClampsBeforeEpoch(t *testing.T) {
	assert.Equal(t, 0.0, timeToSerial(date(1800, 1, 1)))
}

func TestTimeToSerial_UsesWallClock(t *testing.T) {
	zoned := time.Date(2024, 1, 1, 12, 0, 0, 0, time.FixedZone("UTC+9", 9*3600))
	assert.InDelta(t, 45292.5, timeToSerial(zoned), 1e-9)
}

func TestSerialToTime_Known(t *testing.T) {
	assert.Equal(t, date(1900, 1, 1), serialToTime(1))
	assert.Equal(t, date(1900, 2, 28), serialToTime(59))
	assert.Equal(t, date(1900, 3, 1), serialToTime(61))
	assert.Equal(t, date(2024, 1, 1), serialToTime(45292))
	assert.Equal(t, time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC), serialToTime(45292.75))
	assert.Equal(t, date(1899, 12, 31), serialToTime(-4))
}

func TestSerial_RoundTripMilliseconds(t *testing.T) {
	for _, when := range []time.Time{
		time.Date(2024, 5, 6, 7, 8, 9, 123_000_000, time.UTC),
		time.Date(1999, 12, 31, 23, 59, 59, 999_000_000, time.UTC),
		time.Date(1900, 3, 1, 0, 0, 1, 0, time.UTC),
		date(2100, 2, 28),
	} {
		assert.WithinDuration(t, when, serialToTime(timeToSerial(when)), time.Millisecond, when.String())
	}
}
