// Package timestamp provides the calendar date support for block
// timestamps. Dates carry no time of day and follow the ISO 8601
// YYYY-MM-DD convention only; non padded forms like 2024-3-9 are rejected.
package timestamp

import (
	"errors"
	"fmt"
	"time"
)

// Layout is the only accepted date format.
const Layout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// ErrInvalidDate is returned when a date can't be parsed using Layout.
var ErrInvalidDate = errors.New("invalid iso date, dates must be: yyyy-mm-dd")

// DateError carries the offending value of a date that failed to parse.
type DateError struct {
	Value string
}

// Error implements the error interface.
func (de *DateError) Error() string {
	return fmt.Sprintf("%s, got %q", ErrInvalidDate, de.Value)
}

// Unwrap allows errors.Is to match ErrInvalidDate.
func (de *DateError) Unwrap() error {
	return ErrInvalidDate
}

// =============================================================================

// Clock provides date validation and day arithmetic relative to "now".
type Clock struct {
	now func() time.Time
}

// New constructs a clock that reads the system time.
func New() *Clock {
	return &Clock{now: time.Now}
}

// NewFixed constructs a clock that always reports the specified time.
func NewFixed(now time.Time) *Clock {
	return &Clock{now: func() time.Time { return now }}
}

// Today returns the current calendar date as a date string.
func (c *Clock) Today() string {
	return c.today().Format(Layout)
}

// DaysAgo returns the date string for the specified number of days before
// today. Negative values produce dates in the future.
func (c *Clock) DaysAgo(days int) string {
	return c.today().AddDate(0, 0, -days).Format(Layout)
}

// Parse converts the date string into a time value at midnight UTC.
func (c *Clock) Parse(date string) (time.Time, error) {
	t, err := time.Parse(Layout, date)
	if err != nil {
		return time.Time{}, &DateError{Value: date}
	}

	return t, nil
}

// IsValidDate reports whether the date string is a calendar date. A date
// that doesn't parse is reported through a DateError.
func (c *Clock) IsValidDate(date string) (bool, error) {
	if _, err := c.Parse(date); err != nil {
		return false, err
	}

	return true, nil
}

// DaysSince returns the number of whole days between the date and today.
// Positive values are in the past and negative values in the future.
func (c *Clock) DaysSince(date string) (float64, error) {
	t, err := c.Parse(date)
	if err != nil {
		return 0, err
	}

	// Unix seconds keep dates centuries apart from overflowing a Duration.
	days := (c.today().Unix() - t.Unix()) / secondsPerDay
	return float64(days), nil
}

// today returns the current local calendar date at midnight UTC so day
// arithmetic is not affected by daylight saving changes.
func (c *Clock) today() time.Time {
	y, m, d := c.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
