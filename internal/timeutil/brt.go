package timeutil

import (
	"errors"
	"strings"
	"time"
)

// BRT is the America/Sao_Paulo location used for dates shown to people.
var BRT *time.Location

func init() {
	var err error
	BRT, err = time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		// Brazil dropped daylight saving in 2019, a fixed zone is exact.
		BRT = time.FixedZone("BRT", -3*60*60)
	}
}

// Now returns the current time in BRT
func Now() time.Time {
	return time.Now().In(BRT)
}

// FormatBRT formats a time in BRT using the given layout
func FormatBRT(t time.Time, layout string) string {
	return t.In(BRT).Format(layout)
}

// FormatDate renders a date the Brazilian way (dd/mm/yyyy). The zero time renders as "-".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(BRT).Format(DisplayDateLayout)
}

// FormatDay renders a calendar date (a DATE column) as dd/mm/yyyy without
// changing zone: pgx scans DATE values as midnight UTC.
func FormatDay(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(DisplayDateLayout)
}

var ErrInvalidDate = errors.New("invalid date")

// ParseDate accepts "2006-01-02" or an RFC 3339 timestamp. Plain dates are
// interpreted at midnight BRT.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrInvalidDate
	}
	if t, err := time.ParseInLocation(DateLayout, value, BRT); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalidDate
}

// ParseEndDate parses the upper bound of a date range. A plain date covers
// the whole day, so it returns midnight BRT of the following day with
// exclusive set; timestamps are returned as given.
func ParseEndDate(value string) (end time.Time, exclusive bool, err error) {
	t, err := ParseDate(value)
	if err != nil {
		return time.Time{}, false, err
	}
	if _, err := time.Parse(DateLayout, strings.TrimSpace(value)); err == nil {
		return t.AddDate(0, 0, 1), true, nil
	}
	return t, false, nil
}

const (
	DateLayout            = "2006-01-02"
	DisplayDateLayout     = "02/01/2006"
	DisplayDateTimeLayout = "02/01/2006 15:04"
)
