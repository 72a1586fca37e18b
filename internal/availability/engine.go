package availability

import (
	"errors"
	"regexp"
	"strconv"
	"time"
)

var ErrInvalidStartTime = errors.New("start time must be HH:MM")

var startTimePattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// CheckAvailability decides whether startTime ("HH:MM", local) on the calendar day of date can host
// an event of durationMin minutes. Only the year, month and day of date are used.
// The error is reserved for a malformed startTime; an unavailable slot is a normal Result.
func (p Policy) CheckAvailability(date time.Time, startTime string, durationMin int, events []Event, blocks []MaintenanceBlock) (Result, error) {
	start, err := p.At(date, startTime)
	if err != nil {
		return Result{}, err
	}
	return p.classifySlot(start, durationMin, events, blocks).Result(), nil
}

// GetAvailableSlots returns the day's grid: one slot every SlotMinutes from opening while the
// event still ends by closing time. Slots that would run past close are left out entirely.
// Closed weekdays yield an empty, non-nil slice.
func (p Policy) GetAvailableSlots(date time.Time, durationMin int, events []Event, blocks []MaintenanceBlock) []TimeSlot {
	slots := []TimeSlot{}

	openAt, closeAt := p.DayBounds(date)
	if p.IsClosedOn(openAt.Weekday()) || p.SlotMinutes <= 0 {
		return slots
	}

	y, m, d := openAt.Date()
	for i := 0; ; i++ {
		// Built from wall-clock components so DST transition days keep the local grid.
		start := time.Date(y, m, d, p.OpenHour, i*p.SlotMinutes, 0, 0, p.Location)
		if start.Add(minutes(effectiveDuration(durationMin, p))).After(closeAt) {
			break
		}

		status := p.classifySlot(start, durationMin, events, blocks)
		slots = append(slots, TimeSlot{
			Time:      start.In(p.Location).Format("15:04"),
			Date:      start.UTC(),
			Available: status.Available(),
			Reason:    status.Reason(),
		})
	}
	return slots
}

// IsTimeSlotAvailable is the yes/no form of CheckAvailability for an absolute start instant.
func (p Policy) IsTimeSlotAvailable(slotStart time.Time, durationMin int, events []Event, blocks []MaintenanceBlock) bool {
	return p.classifySlot(slotStart, durationMin, events, blocks).Available()
}

// Classify exposes the tagged status for callers that branch on the kind of conflict.
func (p Policy) Classify(slotStart time.Time, durationMin int, events []Event, blocks []MaintenanceBlock) SlotStatus {
	return p.classifySlot(slotStart, durationMin, events, blocks)
}

// At combines a calendar date with a local "HH:MM" into an instant in the policy timezone.
func (p Policy) At(date time.Time, hhmm string) (time.Time, error) {
	match := startTimePattern.FindStringSubmatch(hhmm)
	if match == nil {
		return time.Time{}, ErrInvalidStartTime
	}
	hour, _ := strconv.Atoi(match[1])
	minute, _ := strconv.Atoi(match[2])

	y, m, d := date.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, p.Location), nil
}

// classifySlot applies the rules in a fixed order: business hours, closed weekday,
// maintenance blocks, then existing events. The first matching rule wins.
func (p Policy) classifySlot(start time.Time, durationMin int, events []Event, blocks []MaintenanceBlock) SlotStatus {
	local := start.In(p.Location)

	if hour := local.Hour(); hour < p.OpenHour || hour >= p.CloseHour {
		return SlotStatus{Kind: StatusOutsideHours}
	}

	if p.IsClosedOn(local.Weekday()) {
		return SlotStatus{Kind: StatusClosedDay, Detail: local.Weekday().String()}
	}

	end := start.Add(minutes(effectiveDuration(durationMin, p)))

	for _, b := range blocks {
		if overlaps(start, end, b.StartAt, b.EndAt) {
			return SlotStatus{Kind: StatusMaintenance, Detail: b.Reason}
		}
	}

	buffered := false
	for _, e := range events {
		if overlaps(start, end, e.StartAt, e.EndAt) {
			return SlotStatus{Kind: StatusConflictOverlap}
		}
		if overlaps(start, end, e.StartAt.Add(-p.buffer()), e.EndAt.Add(p.buffer())) {
			buffered = true
		}
	}
	if buffered {
		return SlotStatus{Kind: StatusConflictBuffer, Detail: strconv.Itoa(p.BufferMinutes)}
	}

	return SlotStatus{Kind: StatusAvailable}
}

// overlaps reports whether the half-open intervals [aStart, aEnd) and [bStart, bEnd) intersect.
// Intervals that only touch do not overlap.
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// effectiveDuration treats a non-positive duration as a single slot so the candidate is never empty.
func effectiveDuration(durationMin int, p Policy) int {
	if durationMin <= 0 {
		return p.SlotMinutes
	}
	return durationMin
}
