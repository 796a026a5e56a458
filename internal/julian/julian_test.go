package julian

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/bodygraph/internal/apperr"
)

func TestFromCivil_KnownEpochs(t *testing.T) {
	tests := []struct {
		name string
		in   CivilTime
		want float64
	}{
		{"J2000", CivilTime{Year: 2000, Month: 1, Day: 1, Hour: 12}, 2451545.0},
		{"1990 noon", CivilTime{Year: 1990, Month: 1, Day: 1, Hour: 12}, 2447893.0},
		{"half hour offset", CivilTime{Year: 2000, Month: 1, Day: 1, Hour: 17, Minute: 30, UTCOffset: 5.5}, 2451545.0},
		{"negative offset crosses midnight", CivilTime{Year: 1999, Month: 12, Day: 31, Hour: 22, UTCOffset: -14}, 2451545.0},
		{"february adjustment", CivilTime{Year: 2000, Month: 2, Day: 29}, 2451603.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromCivil(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestFromCivil_InvalidFields(t *testing.T) {
	bad := []CivilTime{
		{Year: 1990, Month: 2, Day: 30},
		{Year: 1900, Month: 2, Day: 29},
		{Year: 1990, Month: 13, Day: 1},
		{Year: 1990, Month: 0, Day: 1},
		{Year: 1990, Month: 1, Day: 1, Hour: 24},
		{Year: 1990, Month: 1, Day: 1, Minute: 60},
		{Year: 1990, Month: 1, Day: 1, UTCOffset: 15},
		{Year: 1200, Month: 1, Day: 1},
	}
	for _, c := range bad {
		_, err := FromCivil(c)
		if !errors.Is(err, apperr.ErrInvalidInput) {
			t.Errorf("FromCivil(%+v) err = %v, want ErrInvalidInput", c, err)
		}
	}
}

func TestToCalendar(t *testing.T) {
	y, m, d := ToCalendar(2436116.31)
	assert.Equal(t, [3]int{1957, 10, 4}, [3]int{y, m, d})

	y, m, d = ToCalendar(2451544.5)
	assert.Equal(t, [3]int{2000, 1, 1}, [3]int{y, m, d})

	assert.Equal(t, "1989-12-31", DateString(2447892.4))
}

func TestToCalendar_RoundTrip(t *testing.T) {
	for year := 1900; year <= 2100; year += 7 {
		for month := 1; month <= 12; month++ {
			day := DaysInMonth(year, month)
			jde := FromGregorian(year, month, float64(day)+0.25)
			gy, gm, gd := ToCalendar(jde)
			if gy != year || gm != month || gd != day {
				t.Fatalf("round trip %04d-%02d-%02d = %04d-%02d-%02d", year, month, day, gy, gm, gd)
			}
		}
	}
}

func TestCenturies(t *testing.T) {
	assert.InDelta(t, 1.0, Centuries(J2000+36525), 1e-12)
	assert.InDelta(t, -0.1, Millennia(J2000-36525), 1e-12)
}
