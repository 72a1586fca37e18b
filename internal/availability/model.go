package availability

import (
	"fmt"
	"time"
)

// Event is an existing reservation occupying [StartAt, EndAt).
type Event struct {
	StartAt time.Time
	EndAt   time.Time
}

// MaintenanceBlock is an admin-entered closure occupying [StartAt, EndAt).
type MaintenanceBlock struct {
	StartAt time.Time
	EndAt   time.Time
	Reason  string
}

// TimeSlot is one cell of a day's grid. Date is the UTC start instant; Time is the local "HH:MM".
type TimeSlot struct {
	Time      string    `json:"time"`
	Date      time.Time `json:"date"`
	Available bool      `json:"available"`
	Reason    string    `json:"reason,omitempty"`
}

type Result struct {
	IsAvailable bool   `json:"isAvailable"`
	Reason      string `json:"reason,omitempty"`
}

type StatusKind int

const (
	StatusAvailable StatusKind = iota
	StatusOutsideHours
	StatusClosedDay
	StatusMaintenance
	StatusConflictOverlap
	StatusConflictBuffer
	StatusPast
)

// SlotStatus is the single classification every availability entry point is derived from.
type SlotStatus struct {
	Kind StatusKind
	// Detail carries the block reason for StatusMaintenance, the weekday for StatusClosedDay
	// and the buffer length for StatusConflictBuffer.
	Detail string
}

func (s SlotStatus) Available() bool {
	return s.Kind == StatusAvailable
}

// Reason is the user facing explanation. Empty only when the slot is available.
func (s SlotStatus) Reason() string {
	switch s.Kind {
	case StatusAvailable:
		return ""
	case StatusOutsideHours:
		return "outside business hours"
	case StatusClosedDay:
		return fmt.Sprintf("closed on %ss", s.Detail)
	case StatusMaintenance:
		if s.Detail == "" {
			return "maintenance block"
		}
		return "maintenance block: " + s.Detail
	case StatusConflictOverlap:
		return "overlaps existing booking"
	case StatusConflictBuffer:
		return fmt.Sprintf("requires %s-minute buffer", s.Detail)
	case StatusPast:
		return "start time has already passed"
	default:
		return "unavailable"
	}
}

func (s SlotStatus) Result() Result {
	return Result{IsAvailable: s.Available(), Reason: s.Reason()}
}
