package datetime

import "fmt"

// Builder accumulates fields before validation. Setters return a new Builder
// and never touch the receiver:
//
//	dt, err := datetime.NewBuilder().Year(2024).Month(2).Day(29).Build()
//
// Each setter rejects values that can never be valid for its field. The first
// rejection is kept and returned by Build, which then checks the whole value
// against the calendar on its own.
type Builder struct {
	year   int
	month  int
	day    int
	hour   int
	minute int
	second int
	err    error
}

func NewBuilder() Builder {
	return Builder{year: 1900, month: 1, day: 1}
}

func (b Builder) Year(year int) Builder {
	if year < 0 {
		b.reject(FieldYear, "a non-negative year", year)
	}
	b.year = year
	return b
}

func (b Builder) Month(month int) Builder {
	if month < 1 || month > 12 {
		b.reject(FieldMonth, "1-12", month)
	}
	b.month = month
	return b
}

func (b Builder) Day(day int) Builder {
	if day < 1 || day > 31 {
		b.reject(FieldDay, "1-31", day)
	}
	b.day = day
	return b
}

func (b Builder) Hour(hour int) Builder {
	if hour < 0 || hour > 23 {
		b.reject(FieldHour, "0-23", hour)
	}
	b.hour = hour
	return b
}

func (b Builder) Minute(minute int) Builder {
	if minute < 0 || minute > 59 {
		b.reject(FieldMinute, "0-59", minute)
	}
	b.minute = minute
	return b
}

func (b Builder) Second(second int) Builder {
	if second < 0 || second > 59 {
		b.reject(FieldSecond, "0-59", second)
	}
	b.second = second
	return b
}

func (b *Builder) reject(field Field, expected string, got int) {
	if b.err != nil {
		return
	}
	b.err = &ValueError{Field: field, Expected: expected, Got: got}
}

// Build returns an error if any field is invalid, e.g. Month(14) or
// Day(29) in a non-leap February.
func (b Builder) Build() (Datetime, error) {
	if b.err != nil {
		return Datetime{}, b.err
	}
	if err := validate(b.year, b.month, b.day, b.hour, b.minute, b.second); err != nil {
		return Datetime{}, err
	}
	return Datetime{
		Year:   b.year,
		Month:  b.month,
		Day:    b.day,
		Hour:   b.hour,
		Minute: b.minute,
		Second: b.second,
	}, nil
}

// validate stops at the first bad field, in month, day, hour, minute, second order.
func validate(year, month, day, hour, minute, second int) error {
	maxDays := DaysInMonth(year, month)
	if maxDays == 0 {
		return &ValueError{Field: FieldMonth, Expected: "a month between 1-12", Got: month}
	}
	if day < 1 || day > maxDays {
		return &ValueError{Field: FieldDay, Expected: fmt.Sprintf("a day between 1-%d", maxDays), Got: day}
	}
	if hour < 0 || hour > 23 {
		return &ValueError{Field: FieldHour, Expected: "0-23", Got: hour}
	}
	if minute < 0 || minute > 59 {
		return &ValueError{Field: FieldMinute, Expected: "0-59", Got: minute}
	}
	if second < 0 || second > 59 {
		return &ValueError{Field: FieldSecond, Expected: "0-59", Got: second}
	}
	return nil
}
