package calendar

import (
	"fmt"
	"time"

	"github.com/alvimrfg/sistema-socio-40graus/internal/apperror"
)

const DateLayout = "2006-01-02"

// Interval is a half-open range of calendar dates [Start, End).
// Both bounds are UTC midnights.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Day drops the time-of-day component and the location of t.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, apperror.Validation("invalid date %q, use YYYY-MM-DD", s)
	}
	return d, nil
}

// New builds an interval and fails with ErrInvalidInterval unless start < end.
func New(start, end time.Time) (Interval, error) {
	iv := Interval{Start: Day(start), End: Day(end)}
	if !iv.Valid() {
		return Interval{}, fmt.Errorf("%w: [%s, %s)", apperror.ErrInvalidInterval, iv.Start.Format(DateLayout), iv.End.Format(DateLayout))
	}
	return iv, nil
}

func Parse(start, end string) (Interval, error) {
	s, err := ParseDate(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return Interval{}, err
	}
	return New(s, e)
}

// Window returns [from, from+days).
func Window(from time.Time, days int) Interval {
	start := Day(from)
	return Interval{Start: start, End: start.AddDate(0, 0, days)}
}

// Dates drops the time of day from both bounds.
func (iv Interval) Dates() Interval {
	return Interval{Start: Day(iv.Start), End: Day(iv.End)}
}

// Valid reports whether the interval holds at least one night. Times of day
// are ignored, so two instants on the same date are not a valid stay.
func (iv Interval) Valid() bool {
	return Day(iv.Start).Before(Day(iv.End))
}

// Days is the number of nights in the interval.
func (iv Interval) Days() int {
	if !iv.Valid() {
		return 0
	}
	return int(Day(iv.End).Sub(Day(iv.Start)).Hours() / 24)
}

func (iv Interval) Overlaps(other Interval) bool {
	a, b := iv.Dates(), other.Dates()
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%s, %s)", iv.Start.Format(DateLayout), iv.End.Format(DateLayout))
}
