// Package datetime parses date/time strings against strptime-style patterns
// and validates the result against the calendar.
package datetime

import (
	"fmt"
	"time"
)

type Field int

const (
	FieldYear Field = iota
	FieldMonth
	FieldDay
	FieldHour
	FieldMinute
	FieldSecond
)

func (f Field) String() string {
	switch f {
	case FieldYear:
		return "year"
	case FieldMonth:
		return "month"
	case FieldDay:
		return "day"
	case FieldHour:
		return "hour"
	case FieldMinute:
		return "minute"
	case FieldSecond:
		return "second"
	}
	return "unknown"
}

// Datetime holds only the most important parts of a date and time.
// Values built through Builder are always calendar-valid; a Datetime written
// by hand carries no such guarantee.
type Datetime struct {
	Year   int `json:"year"`
	Month  int `json:"month"`
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
	Second int `json:"second"`
}

// Default is 1900-01-01 00:00:00, the value every parse starts from.
func Default() Datetime {
	return Datetime{Year: 1900, Month: 1, Day: 1}
}

// String renders DD/MM/YYYY HH:MM:SS.
func (d Datetime) String() string {
	return fmt.Sprintf("%02d/%02d/%d %02d:%02d:%02d", d.Day, d.Month, d.Year, d.Hour, d.Minute, d.Second)
}

// Time converts d to a UTC time.Time.
func (d Datetime) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, d.Hour, d.Minute, d.Second, 0, time.UTC)
}

func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysInMonth returns 0 when month is outside 1-12.
func DaysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	}
	return 0
}
