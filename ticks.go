package xlsheet

import "time"

// A tick is 100 ns. Tick counts are measured from 0001-01-01T00:00:00 on the
// wall clock, ignoring any zone offset.
const (
	ticksPerSecond = int64(10_000_000)
	nanosPerTick   = int64(100)

	// Unix seconds of 0001-01-01T00:00:00Z.
	minUnixSeconds = int64(-62135596800)
)

// wallClock drops the location of t while keeping its calendar fields.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// timeToTicks returns the tick count of t's wall clock.
func timeToTicks(t time.Time) int64 {
	w := wallClock(t)
	secs := w.Unix() - minUnixSeconds
	return secs*ticksPerSecond + int64(w.Nanosecond())/nanosPerTick
}

// ticksToTime converts a tick count back into a UTC wall-clock time.
// Negative counts clamp to the minimum time.
func ticksToTime(ticks int64) time.Time {
	if ticks <= 0 {
		return time.Time{}
	}
	secs := ticks / ticksPerSecond
	rem := ticks % ticksPerSecond
	return time.Unix(secs+minUnixSeconds, rem*nanosPerTick).UTC()
}
