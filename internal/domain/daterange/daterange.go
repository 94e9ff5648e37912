package daterange

import (
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
)

var (
	ErrInvalidDate   = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvertedRange = errors.New("end date must not be before start date")
)

// DateRange is a closed range of calendar days. Both endpoints are billable.
type DateRange struct {
	start civil.Date
	end   civil.Date
}

func New(start, end civil.Date) (DateRange, error) {
	if !start.IsValid() || !end.IsValid() {
		return DateRange{}, ErrInvalidDate
	}
	if end.Before(start) {
		return DateRange{}, ErrInvertedRange
	}
	return DateRange{start: start, end: end}, nil
}

// Parse builds a range from two YYYY-MM-DD strings.
func Parse(start, end string) (DateRange, error) {
	s, err := civil.ParseDate(strings.TrimSpace(start))
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: start %q", ErrInvalidDate, start)
	}
	e, err := civil.ParseDate(strings.TrimSpace(end))
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: end %q", ErrInvalidDate, end)
	}
	return New(s, e)
}

// MustParse is for tests and fixtures.
func MustParse(start, end string) DateRange {
	r, err := Parse(start, end)
	if err != nil {
		panic(err)
	}
	return r
}

func (r DateRange) Start() civil.Date { return r.start }
func (r DateRange) End() civil.Date   { return r.end }

// Days counts both endpoints, so a same-day range is one day.
func (r DateRange) Days() int {
	return r.end.DaysSince(r.start) + 1
}

func (r DateRange) Contains(d civil.Date) bool {
	return !d.Before(r.start) && !d.After(r.end)
}

// Covers reports whether other lies entirely inside r.
func (r DateRange) Covers(other DateRange) bool {
	return r.Contains(other.start) && r.Contains(other.end)
}

func (r DateRange) IsZero() bool {
	return r.start.IsZero() && r.end.IsZero()
}

func (r DateRange) String() string {
	return fmt.Sprintf("[%s, %s]", r.start, r.end)
}
