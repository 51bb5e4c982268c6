package model

import (
	"fmt"
	"time"
)

const (
	// ISOLayout is the canonical registry form, e.g. "2025-01-26".
	ISOLayout = "2006-01-02"
	// CompactLayout is the iCalendar DATE value form, e.g. "20250126".
	CompactLayout = "20060102"
)

// Date is a calendar day with no time-of-day and no timezone.
// The zero value is not a valid date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the normalized date, so NewDate(2025, 12, 32) is 2026-01-01.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a strict YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(ISOLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// ParseDates parses every entry, stopping at the first malformed one.
func ParseDates(values []string) ([]Date, error) {
	out := make([]Date, 0, len(values))
	for _, v := range values {
		d, err := ParseDate(v)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Next returns the following calendar day.
func (d Date) Next() Date {
	return d.AddDays(1)
}

func (d Date) AddDays(n int) Date {
	return NewDate(d.Year, d.Month, d.Day+n)
}

func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) Before(o Date) bool {
	return d.Time().Before(o.Time())
}

func (d Date) String() string {
	return d.Time().Format(ISOLayout)
}

func (d Date) Compact() string {
	return d.Time().Format(CompactLayout)
}

// Strings formats dates as ISO strings, preserving order.
func Strings(dates []Date) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.String()
	}
	return out
}
