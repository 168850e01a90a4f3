package xapi

import "strconv"

// Unit sizes in seconds. Months and weeks are never emitted and a year is a flat 365 days.
const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
	secondsPerYear   = 365 * secondsPerDay
)

var durationUnits = []struct {
	designator byte
	seconds    int64
	timePart   bool
}{
	{'Y', secondsPerYear, false},
	{'D', secondsPerDay, false},
	{'H', secondsPerHour, true},
	{'M', secondsPerMinute, true},
	{'S', 1, true},
}

// EncodeDuration renders a number of seconds as an ISO 8601 duration
// (P[nY][nD][T[nH][nM][nS]]). Zero-valued units are omitted, so 0 encodes as "P".
// Negative input is treated as zero.
func EncodeDuration(seconds int64) string {
	buf := []byte{'P'}
	inTime := false
	for _, unit := range durationUnits {
		n := seconds / unit.seconds
		seconds -= n * unit.seconds
		if n <= 0 {
			continue
		}
		if unit.timePart && !inTime {
			buf = append(buf, 'T')
			inTime = true
		}
		buf = strconv.AppendInt(buf, n, 10)
		buf = append(buf, unit.designator)
	}
	return string(buf)
}
