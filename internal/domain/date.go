package domain

import (
	"fmt"
	"time"
)

// DateLayout is the only accepted textual form for calendar dates (dd/MM/yyyy).
const DateLayout = "02/01/2006"

// Date is a calendar date without time of day or zone. Two Dates with the
// same year, month and day are equal under ==.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateError reports a date field that could not be parsed.
type DateError struct {
	Field string
	Value string
	Err   error
}

func (e *DateError) Error() string {
	return fmt.Sprintf("%s: invalid date %q (expected dd/MM/yyyy)", e.Field, e.Value)
}

func (e *DateError) Unwrap() error { return e.Err }

// NewDate normalizes out-of-range components the way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses s as dd/MM/yyyy. field names the input in the returned
// *DateError so callers can tell which value was wrong.
func ParseDate(field, s string) (Date, error) {
	if len(s) != len(DateLayout) {
		return Date{}, &DateError{Field: field, Value: s}
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, &DateError{Field: field, Value: s, Err: err}
	}
	return DateOf(t), nil
}

// MustParseDate is ParseDate for literals in tests and seed data.
func MustParseDate(s string) Date {
	d, err := ParseDate("date", s)
	if err != nil {
		panic(err)
	}
	return d
}

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) IsZero() bool { return d == Date{} }

func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// Compare returns -1, 0 or +1.
func (d Date) Compare(o Date) int {
	return d.Time().Compare(o.Time())
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }

// DaysUntil returns the number of whole days from d to o.
func (d Date) DaysUntil(o Date) int {
	return int(o.Time().Sub(d.Time()).Hours() / 24)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(DateLayout)
}

// ISO formats d as YYYY-MM-DD, the storage form.
func (d Date) ISO() string {
	return d.Time().Format("2006-01-02")
}

// ParseISODate parses the YYYY-MM-DD storage form.
func ParseISODate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("parsing stored date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Today returns the current calendar date in loc.
func Today(now time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}
	return DateOf(now.In(loc))
}
