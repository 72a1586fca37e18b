package availability

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/nekogravitycat/party-booking-backend/internal/catalog"
	"github.com/nekogravitycat/party-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/party-booking-backend/internal/pkg/clock"
	"golang.org/x/sync/errgroup"
)

var (
	ErrDateRequired    = apperror.New(http.StatusBadRequest, "date is required")
	ErrInvalidDate     = apperror.New(http.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
	ErrInvalidDuration = apperror.New(http.StatusBadRequest, fmt.Sprintf("durationMin must be at least %d", MinDurationMinutes))
	ErrDateInPast      = apperror.New(http.StatusBadRequest, "date must not be in the past")
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// EventSource lists reservations that intersect [from, to).
type EventSource interface {
	ListOverlapping(ctx context.Context, from, to time.Time) ([]Event, error)
}

// BlockSource lists maintenance blocks that intersect [from, to).
type BlockSource interface {
	ListOverlapping(ctx context.Context, from, to time.Time) ([]MaintenanceBlock, error)
}

// AddonResolver turns add-on ids into active catalog add-ons.
type AddonResolver interface {
	ResolveAddons(ctx context.Context, ids []string) ([]catalog.Addon, error)
}

type SlotsRequest struct {
	Date        string
	DurationMin int
	AddonIDs    []string
}

type SlotsResponse struct {
	Slots       []TimeSlot `json:"slots"`
	Timezone    string     `json:"timezone"`
	Date        time.Time  `json:"date"`
	DurationMin int        `json:"durationMin"`
	Message     string     `json:"message,omitempty"`
}

type Service interface {
	GetSlots(ctx context.Context, req SlotsRequest) (*SlotsResponse, error)
	// Snapshot returns the events and blocks that can affect a candidate starting on the given day.
	Snapshot(ctx context.Context, day time.Time) ([]Event, []MaintenanceBlock, error)
	Policy() Policy
}

type service struct {
	policy Policy
	events EventSource
	blocks BlockSource
	addons AddonResolver
	clock  clock.Clock
}

func NewService(policy Policy, events EventSource, blocks BlockSource, addons AddonResolver, clk clock.Clock) Service {
	return &service{
		policy: policy,
		events: events,
		blocks: blocks,
		addons: addons,
		clock:  clk,
	}
}

func (s *service) Policy() Policy {
	return s.policy
}

// ParseDate validates a "YYYY-MM-DD" string and returns local midnight of that day.
func (p Policy) ParseDate(date string) (time.Time, error) {
	if date == "" {
		return time.Time{}, ErrDateRequired
	}
	if !datePattern.MatchString(date) {
		return time.Time{}, ErrInvalidDate
	}
	d, err := time.ParseInLocation(time.DateOnly, date, p.Location)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

func (s *service) GetSlots(ctx context.Context, req SlotsRequest) (*SlotsResponse, error) {
	date, err := s.policy.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if req.DurationMin < MinDurationMinutes {
		return nil, ErrInvalidDuration
	}

	now := s.clock.Now().In(s.policy.Location)
	if isDateInPast(date, now) {
		return nil, ErrDateInPast
	}

	duration := req.DurationMin
	if len(req.AddonIDs) > 0 {
		addons, err := s.addons.ResolveAddons(ctx, req.AddonIDs)
		if err != nil {
			return nil, err
		}
		for _, a := range addons {
			duration += a.ExtraMinutes
		}
	}

	resp := &SlotsResponse{
		Slots:       []TimeSlot{},
		Timezone:    s.policy.Location.String(),
		Date:        date.UTC(),
		DurationMin: duration,
	}

	if s.policy.IsClosedOn(date.Weekday()) {
		resp.Message = fmt.Sprintf("We are closed on %ss. Please choose another date.", date.Weekday())
		return resp, nil
	}

	events, blocks, err := s.Snapshot(ctx, date)
	if err != nil {
		return nil, err
	}

	resp.Slots = s.policy.GetAvailableSlots(date, duration, events, blocks)
	if isSameDay(date, now) {
		markPast(resp.Slots, now)
	}
	return resp, nil
}

func (s *service) Snapshot(ctx context.Context, day time.Time) ([]Event, []MaintenanceBlock, error) {
	y, m, d := day.In(s.policy.Location).Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, s.policy.Location).Add(-s.policy.buffer())
	to := time.Date(y, m, d+1, 0, 0, 0, 0, s.policy.Location).Add(s.policy.buffer())

	var (
		events []Event
		blocks []MaintenanceBlock
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		events, err = s.events.ListOverlapping(gctx, from, to)
		if err != nil {
			return fmt.Errorf("list events: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		blocks, err = s.blocks.ListOverlapping(gctx, from, to)
		if err != nil {
			return fmt.Errorf("list maintenance blocks: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return events, blocks, nil
}

// markPast closes slots on the current day whose start has already gone by.
func markPast(slots []TimeSlot, now time.Time) {
	past := SlotStatus{Kind: StatusPast}
	for i := range slots {
		if slots[i].Date.Before(now) {
			slots[i].Available = false
			slots[i].Reason = past.Reason()
		}
	}
}

func isSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
