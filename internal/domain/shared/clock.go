package shared

import "time"

// Clock is an injectable time source. Shift durations, receipt numbering and
// end-of-day boundaries all read the current time through it so tests can
// control "now".
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

// Now returns the current local time
func (SystemClock) Now() time.Time {
	return time.Now()
}

// DateOf truncates t to midnight in its location, the calendar-day identity
// used for daily revenue, payroll windows and end-of-day boundaries.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day
func SameDay(a, b time.Time) bool {
	return DateOf(a).Equal(DateOf(b))
}
