// Package julian converts civil calendar timestamps to Julian Ephemeris Dates
// and back. ΔT and leap seconds are ignored; JDE is treated as JD.
package julian

import (
	"fmt"
	"math"

	"github.com/starford/bodygraph/internal/apperr"
)

// J2000 is the Julian date of 2000-01-01 12:00 TT.
const J2000 = 2451545.0

// Supported calendar range (proleptic use before 1583 is rejected).
const (
	MinYear = 1583
	MaxYear = 3000
)

// JDE span of the supported calendar range, [MinJDE, MaxJDE).
var (
	MinJDE = FromGregorian(MinYear, 1, 1)
	MaxJDE = FromGregorian(MaxYear+1, 1, 1)
)

// CivilTime is a local wall-clock timestamp with its offset from UTC in hours.
type CivilTime struct {
	Year      int
	Month     int
	Day       int
	Hour      int
	Minute    int
	UTCOffset float64
}

// Validate reports whether every field lies in its calendar range.
func (c CivilTime) Validate() error {
	switch {
	case c.Year < MinYear || c.Year > MaxYear:
		return fmt.Errorf("%w: year %d outside %d..%d", apperr.ErrInvalidInput, c.Year, MinYear, MaxYear)
	case c.Month < 1 || c.Month > 12:
		return fmt.Errorf("%w: month %d", apperr.ErrInvalidInput, c.Month)
	case c.Day < 1 || c.Day > DaysInMonth(c.Year, c.Month):
		return fmt.Errorf("%w: day %d for %04d-%02d", apperr.ErrInvalidInput, c.Day, c.Year, c.Month)
	case c.Hour < 0 || c.Hour > 23:
		return fmt.Errorf("%w: hour %d", apperr.ErrInvalidInput, c.Hour)
	case c.Minute < 0 || c.Minute > 59:
		return fmt.Errorf("%w: minute %d", apperr.ErrInvalidInput, c.Minute)
	case math.IsNaN(c.UTCOffset) || c.UTCOffset < -14 || c.UTCOffset > 14:
		return fmt.Errorf("%w: utc offset %v", apperr.ErrInvalidInput, c.UTCOffset)
	}
	return nil
}

// FromCivil returns the JDE of a local timestamp.
func FromCivil(c CivilTime) (float64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	ut := float64(c.Hour) + float64(c.Minute)/60 - c.UTCOffset
	return FromGregorian(c.Year, c.Month, float64(c.Day)+ut/24), nil
}

// FromGregorian is the Gregorian calendar → JD formula. day may carry a
// fraction, including one outside [0,1) after the UTC shift.
func FromGregorian(year, month int, day float64) float64 {
	y, m := year, month
	if m <= 2 {
		y--
		m += 12
	}
	a := math.Floor(float64(y) / 100)
	b := 2 - a + math.Floor(a/4)
	return math.Floor(365.25*float64(y+4716)) + math.Floor(30.6001*float64(m+1)) + day + b - 1524.5
}

// ToCalendar returns the UTC calendar date containing jde.
func ToCalendar(jde float64) (year, month, day int) {
	z := math.Floor(jde + 0.5)
	f := jde + 0.5 - z
	a := z
	if z >= 2299161 {
		alpha := math.Floor((z - 1867216.25) / 36524.25)
		a = z + 1 + alpha - math.Floor(alpha/4)
	}
	b := a + 1524
	c := math.Floor((b - 122.1) / 365.25)
	d := math.Floor(365.25 * c)
	e := math.Floor((b - d) / 30.6001)

	day = int(math.Floor(b - d - math.Floor(30.6001*e) + f))
	if e < 14 {
		month = int(e) - 1
	} else {
		month = int(e) - 13
	}
	if month > 2 {
		year = int(c) - 4716
	} else {
		year = int(c) - 4715
	}
	return year, month, day
}

// DateString formats the UTC calendar date of jde as YYYY-MM-DD.
func DateString(jde float64) string {
	y, m, d := ToCalendar(jde)
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
}

// Centuries returns Julian centuries since J2000.
func Centuries(jde float64) float64 {
	return (jde - J2000) / 36525
}

// Millennia returns Julian millennia since J2000, the VSOP87 time argument.
func Millennia(jde float64) float64 {
	return (jde - J2000) / 365250
}

// DaysInMonth returns the Gregorian month length.
func DaysInMonth(year, month int) int {
	switch month {
	case 2:
		if IsLeap(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

// IsLeap reports whether year is a Gregorian leap year.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
