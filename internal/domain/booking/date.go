package booking

import (
	"encoding/json"
	"errors"
	"time"
)

var (
	ErrInvalidDate  = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidMonth = errors.New("invalid month, expected YYYY-MM")
)

const (
	dateLayout    = "2006-01-02"
	monthLayout   = "2006-01"
	headingLayout = "Mon Jan 02 2006"
)

// Date is a civil calendar date without time of day or timezone.
// Comparisons never look at clock time, so a booking date cannot drift
// across midnight when converted between zones.
type Date struct {
	year  int
	month time.Month
	day   int
}

func NewDate(year int, month time.Month, day int) Date {
	// normalise overflow such as Feb 30 the same way time.Date does
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}
}

// DateOf takes the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return DateOf(t), nil
}

func (d Date) Year() int         { return d.year }
func (d Date) Month() time.Month { return d.month }
func (d Date) Day() int          { return d.day }

func (d Date) IsZero() bool {
	return d.year == 0 && d.month == 0 && d.day == 0
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.utc().Format(dateLayout)
}

// Heading renders the date the way the booking form titles it, e.g. "Sat Oct 17 2026".
func (d Date) Heading() string {
	if d.IsZero() {
		return ""
	}
	return d.utc().Format(headingLayout)
}

func (d Date) Weekday() time.Weekday {
	return d.utc().Weekday()
}

func (d Date) Before(other Date) bool {
	return d.compare(other) < 0
}

func (d Date) After(other Date) bool {
	return d.compare(other) > 0
}

func (d Date) Equal(other Date) bool {
	return d.compare(other) == 0
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.utc().AddDate(0, 0, n))
}

// In returns midnight of the date in loc.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ErrInvalidDate
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) compare(other Date) int {
	switch {
	case d.year != other.year:
		return cmpInt(d.year, other.year)
	case d.month != other.month:
		return cmpInt(int(d.month), int(other.month))
	default:
		return cmpInt(d.day, other.day)
	}
}

func (d Date) utc() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Month is a calendar month used to lay out the availability calendar.
type Month struct {
	year  int
	month time.Month
}

func NewMonth(year int, month time.Month) Month {
	first := NewDate(year, month, 1)
	return Month{year: first.year, month: first.month}
}

func MonthOf(d Date) Month {
	return Month{year: d.year, month: d.month}
}

func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return Month{}, ErrInvalidMonth
	}
	return Month{year: t.Year(), month: t.Month()}, nil
}

func (m Month) String() string {
	return time.Date(m.year, m.month, 1, 0, 0, 0, 0, time.UTC).Format(monthLayout)
}

func (m Month) First() Date {
	return NewDate(m.year, m.month, 1)
}

func (m Month) Days() []Date {
	first := m.First()
	last := NewDate(m.year, m.month+1, 0)
	days := make([]Date, 0, last.day)
	for d := first; !d.After(last); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}
