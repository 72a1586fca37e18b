package availability

import (
	"fmt"
	"slices"
	"time"
)

const (
	DefaultTimezone      = "America/Detroit"
	DefaultBufferMinutes = 45
	DefaultOpenHour      = 9
	DefaultCloseHour     = 18
	DefaultSlotMinutes   = 30
	MinDurationMinutes   = 30
)

// Policy holds the business rules the engine evaluates against.
// All wall-clock checks happen in Location.
type Policy struct {
	Location       *time.Location
	BufferMinutes  int
	OpenHour       int
	CloseHour      int
	SlotMinutes    int
	ClosedWeekdays []time.Weekday
}

func DefaultPolicy(loc *time.Location) Policy {
	return Policy{
		Location:       loc,
		BufferMinutes:  DefaultBufferMinutes,
		OpenHour:       DefaultOpenHour,
		CloseHour:      DefaultCloseHour,
		SlotMinutes:    DefaultSlotMinutes,
		ClosedWeekdays: []time.Weekday{time.Sunday},
	}
}

// LoadPolicy resolves the IANA zone name and returns the default rules for it.
func LoadPolicy(timezone string) (Policy, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return Policy{}, fmt.Errorf("load timezone %q: %w", timezone, err)
	}
	return DefaultPolicy(loc), nil
}

func (p Policy) IsClosedOn(day time.Weekday) bool {
	return slices.Contains(p.ClosedWeekdays, day)
}

// DayBounds returns the opening and closing instants for the calendar day of date.
// Only the year, month and day of date are used.
func (p Policy) DayBounds(date time.Time) (openAt, closeAt time.Time) {
	y, m, d := date.Date()
	openAt = time.Date(y, m, d, p.OpenHour, 0, 0, 0, p.Location)
	closeAt = time.Date(y, m, d, p.CloseHour, 0, 0, 0, p.Location)
	return openAt, closeAt
}

// EndsByClose reports whether [start, start+duration) finishes at or before closing time that day.
func (p Policy) EndsByClose(start time.Time, durationMin int) bool {
	_, closeAt := p.DayBounds(start.In(p.Location))
	return !start.Add(minutes(durationMin)).After(closeAt)
}

func (p Policy) buffer() time.Duration {
	return minutes(p.BufferMinutes)
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}
