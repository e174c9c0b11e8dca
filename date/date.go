// Package date provides a day-granularity Date type for statement and
// exchange-rate handling. Brokerage cash operations and NBP archive rows are
// daily facts, so carrying a time of day around only invites timezone bugs.
package date

import (
	"encoding/json"
	"fmt"
	"time"
)

const readDateFormat = "2006-1-2" // permissive read format (allows single-digit month/day)

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02"

// StatementFormat is the timestamp format used by XTB statement exports.
const StatementFormat = "02.01.2006 15:04:05"

// ArchiveFormat is the compact day key used by NBP Table A archive rows.
const ArchiveFormat = "20060102"

// Date represents a date with day-level granularity.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Today returns the current date.
func Today() Date { return New(time.Now().Date()) }

// time returns a canonical time.Time for that day (midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.time().Month() }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// Weekday returns the day of the week for the date.
func (d Date) Weekday() time.Weekday { return d.time().Weekday() }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool { return d == Date{} }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return New(d.y, d.m, d.d+i) }

// String formats the date in its standard ISO-8601 format.
func (d Date) String() string { return d.time().Format(DateFormat) }

// ArchiveKey returns the date as the YYYYMMDD key used by NBP archive CSV rows.
func (d Date) ArchiveKey() string { return d.time().Format(ArchiveFormat) }

// IsBusinessDay reports whether the date falls on a weekday. Public holidays
// are not modeled here; rate lookups handle them by walking further back.
func (d Date) IsBusinessDay() bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// PreviousBusinessDay returns the last weekday strictly before d. This is the
// "D-1" date used for exchange-rate lookups on dividend payments.
func (d Date) PreviousBusinessDay() Date {
	prev := d.Add(-1)
	for !prev.IsBusinessDay() {
		prev = prev.Add(-1)
	}
	return prev
}

// Parse parses a Date from a string. It is lenient and accepts formats like "2025-7-1".
func Parse(str string) (Date, error) {
	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, readDateFormat, err)
	}
	return New(on.Date()), nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// ParseStatement parses an XTB statement timestamp like "14.03.2025 09:30:00"
// and keeps only the day.
func ParseStatement(str string) (Date, error) {
	on, err := time.Parse(StatementFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid statement timestamp %q want format %q: %w", str, StatementFormat, err)
	}
	return New(on.Date()), nil
}

// UnmarshalJSON implements json.Unmarshaler for dates stored as ISO strings.
func (j *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	d, err := Parse(str)
	if err != nil {
		return err
	}
	*j = d
	return nil
}

// MarshalJSON implements json.Marshaler.
func (j Date) MarshalJSON() ([]byte, error) {
	str := j.String()
	return json.Marshal(&str)
}

var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)
