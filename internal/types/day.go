// Package types implements special types for CoinKeeper.
package types

import (
	"fmt"
	"strings"
	"time"
)

// Day is a calendar day without a time of day. It is always UTC.
type Day time.Time

// NewDay returns a new Day.
func NewDay(year int, month time.Month, day int) Day {
	return Day(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DayOf returns the Day a time instant falls on in that time's location.
func DayOf(t time.Time) Day {
	year, month, day := t.Date()
	return Day(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// ParseDay parses a string in RFC 3339 full-date format.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Day{}, err
	}

	return DayOf(t), nil
}

// String returns the day formatted as YYYY-MM-DD.
func (d Day) String() string {
	return time.Time(d).Format("2006-01-02")
}

// MarshalJSON implements the json.Marshaler interface.
// The output is the result of d.String().
func (d Day) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", d.String())), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// The day is expected as a YYYY-MM-DD string, but RFC 3339 timestamps
// are accepted too since some clients always serialize full timestamps.
// Everything but the date is then ignored.
func (d *Day) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		return nil
	}

	day, err := ParseDay(value)
	if err != nil {
		t, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return err
		}
		day = DayOf(t)
	}

	*d = day
	return nil
}

// IsZero reports if the day is the zero value.
func (d Day) IsZero() bool {
	return time.Time(d).IsZero()
}

// AddDays adds a number of days. The number may be negative.
func (d Day) AddDays(days int) Day {
	return Day(time.Time(d).AddDate(0, 0, days))
}

// Before reports whether the day d is before e.
func (d Day) Before(e Day) bool {
	return time.Time(d).Before(time.Time(e))
}

// After reports whether the day d is after e.
func (d Day) After(e Day) bool {
	return time.Time(d).After(time.Time(e))
}

// Equal reports whether d and e represent the same calendar day.
func (d Day) Equal(e Day) bool {
	return time.Time(d).Equal(time.Time(e))
}

// DaysUntil returns the number of whole days from d to e.
// It is negative when e is before d.
func (d Day) DaysUntil(e Day) int {
	return int(time.Time(e).Sub(time.Time(d)) / (24 * time.Hour))
}
