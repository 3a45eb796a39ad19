// Package unixtime converts Unix timestamps to UTC calendar fields.
package unixtime

import (
	"fmt"
	"math"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
	daysPer400Years  = 365*400 + 97
	daysPer100Years  = 365*100 + 24
	daysPer4Years    = 365*4 + 1

	// unixToMarch1 is the number of days from 0000-03-01 to 1970-01-01.
	unixToMarch1 = 719468
)

// MinDateTime and MaxDateTime bound the domain of ToDateTime: the range of a
// signed 32-bit second count, 1901-12-13 20:45:52 to 2038-01-19 03:14:07.
const (
	MinDateTime int64 = math.MinInt32
	MaxDateTime int64 = math.MaxInt32
)

// DateTime holds UTC calendar fields. Month is 1-12, Day is 1-31.
type DateTime struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
}

func (d DateTime) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d", d.Year, d.Month, d.Day, d.Hour, d.Minute, d.Second)
}

// ToDateTime converts a Unix timestamp to UTC calendar fields with gmtime
// semantics: proleptic Gregorian calendar, no leap seconds. ok is false if
// unix is outside [MinDateTime, MaxDateTime]; the returned DateTime is then
// the zero value.
func ToDateTime(unix int64) (d DateTime, ok bool) {
	if unix < MinDateTime || unix > MaxDateTime {
		return DateTime{}, false
	}

	days := floorDiv(unix, secondsPerDay)
	secs := unix - days*secondsPerDay
	d.Hour = int(secs / secondsPerHour)
	d.Minute = int(secs % secondsPerHour / secondsPerMinute)
	d.Second = int(secs % secondsPerMinute)

	// Shift the epoch to 0000-03-01 so that the leap day is the last day
	// of a year, then split into 400-year eras.
	z := days + unixToMarch1
	era := floorDiv(z, daysPer400Years)
	doe := z - era*daysPer400Years
	// Leap days seen so far in the era are subtracted before dividing.
	yoe := (doe - doe/(daysPer4Years-1) + doe/daysPer100Years - doe/(daysPer400Years-1)) / 365
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	// Month index counted from March.
	mp := (5*doy + 2) / 153
	d.Day = int(doy - (153*mp+2)/5 + 1)
	if mp < 10 {
		d.Month = int(mp + 3)
	} else {
		d.Month = int(mp - 9)
	}
	d.Year = int(yoe + era*400)
	if d.Month <= 2 {
		d.Year++
	}
	return d, true
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
