package billing

import (
	"regexp"
	"time"
)

// PeriodLayout is the time layout of a billing period label.
const PeriodLayout = "2006-01"

var periodPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// ParsePeriod validates a YYYY-MM label and returns the first instant of that month in UTC.
func ParsePeriod(period string) (time.Time, error) {
	if !periodPattern.MatchString(period) {
		return time.Time{}, invalid("period", period, ErrInvalidPeriod)
	}
	t, err := time.Parse(PeriodLayout, period)
	if err != nil {
		return time.Time{}, invalid("period", period, ErrInvalidPeriod)
	}
	return t, nil
}

// ValidPeriod reports whether period is a well formed YYYY-MM label.
func ValidPeriod(period string) bool {
	_, err := ParsePeriod(period)
	return err == nil
}

// PeriodOf returns the period label containing t.
func PeriodOf(t time.Time) string {
	return t.Format(PeriodLayout)
}

// DefaultDueDate is the first day of the period, used when the caller gives no due date.
func DefaultDueDate(period string) (time.Time, error) {
	return ParsePeriod(period)
}
