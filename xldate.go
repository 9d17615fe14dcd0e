package xlsheet

import (
	"math"
	"time"
)

// The 1900 date system counts 1900-02-29 as a real day. Serials from 61 on
// are measured from 1899-12-30; earlier ones from 1899-12-31.
var (
	epoch1900       = time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC)
	epoch1900Minus1 = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)
	leapBugCutoff   = time.Date(1900, 3, 1, 0, 0, 0, 0, time.UTC)
)

const secondsPerDay = 86400

// timeToSerial converts t's wall clock into a 1900-system serial number.
// Times before the epoch clamp to 0.
func timeToSerial(t time.Time) float64 {
	w := wallClock(t)
	epoch := epoch1900Minus1
	if w.Before(leapBugCutoff) {
		epoch = epoch1900
	}
	secs := w.Unix() - epoch.Unix()
	if secs < 0 {
		return 0
	}
	return float64(secs)/secondsPerDay + float64(w.Nanosecond())/(secondsPerDay*1e9)
}

// serialToTime converts a 1900-system serial number back into a UTC
// wall-clock time, rounded to the millisecond.
func serialToTime(serial float64) time.Time {
	if serial < 0 {
		serial = 0
	}
	epoch := epoch1900Minus1
	if serial < 60 {
		epoch = epoch1900
	}
	days := math.Floor(serial)
	ms := int64(math.Round((serial - days) * secondsPerDay * 1000))
	return epoch.AddDate(0, 0, int(days)).Add(time.Duration(ms) * time.Millisecond)
}
