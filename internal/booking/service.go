package booking

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/nekogravitycat/party-booking-backend/internal/availability"
	"github.com/nekogravitycat/party-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/party-booking-backend/internal/pkg/clock"
	"github.com/nekogravitycat/party-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/party-booking-backend/internal/quote"
)

type CreateRequest struct {
	Customer  Customer
	Quote     quote.Request
	StartTime string // local "HH:MM" on Quote.EventDate
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// Confirm marks a pending booking as paid. Confirming an already confirmed booking is a no-op.
	Confirm(ctx context.Context, id string) (*Booking, error)
	// Cancel releases the slot of a booking that has not been cancelled yet.
	Cancel(ctx context.Context, id string) (*Booking, error)
	// Expire cancels a booking whose checkout lapsed. Paid or already cancelled bookings are left alone.
	Expire(ctx context.Context, id string) (*Booking, error)
}

type service struct {
	repo   Repository
	quotes quote.Service
	policy availability.Policy
	clock  clock.Clock
}

func NewService(repo Repository, quotes quote.Service, policy availability.Policy, clk clock.Clock) Service {
	return &service{
		repo:   repo,
		quotes: quotes,
		policy: policy,
		clock:  clk,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	customer, err := validateCustomer(req.Customer)
	if err != nil {
		return nil, err
	}
	if req.Quote.EventDate == "" {
		return nil, ErrEventDateRequired
	}

	day, err := s.policy.ParseDate(req.Quote.EventDate)
	if err != nil {
		return nil, err
	}
	start, err := s.policy.At(day, req.StartTime)
	if err != nil {
		return nil, ErrInvalidStartTime
	}
	if start.Before(s.clock.Now()) {
		return nil, ErrStartTimePast
	}

	q, err := s.quotes.Quote(ctx, req.Quote)
	if err != nil {
		return nil, err
	}

	duration := q.Package.DurationMin
	addonIDs := make([]string, 0, len(q.Addons))
	for _, a := range q.Addons {
		duration += a.ExtraMinutes
		addonIDs = append(addonIDs, a.ID)
	}
	if !s.policy.EndsByClose(start, duration) {
		return nil, unavailable(availability.SlotStatus{Kind: availability.StatusOutsideHours})
	}

	b := &Booking{
		PackageID:    q.Package.ID,
		AddonIDs:     addonIDs,
		Customer:     customer,
		Street:       q.Address.Street,
		City:         q.Address.City,
		State:        q.Address.State,
		Zip:          q.Address.Zip,
		Lat:          q.Location.Lat,
		Lng:          q.Location.Lng,
		Distance:     q.Distance,
		StartAt:      start.UTC(),
		EndAt:        start.Add(time.Duration(duration) * time.Minute).UTC(),
		IsGlowNight:  req.Quote.IsGlowNight,
		Status:       StatusPendingPayment,
		TotalCents:   q.Total,
		DepositCents: q.DepositAmount,
		BalanceCents: q.BalanceAmount,
		LineItems:    q.LineItems,
	}

	buffer := time.Duration(s.policy.BufferMinutes) * time.Minute
	window := Window{
		From:    b.StartAt.Add(-buffer),
		To:      b.EndAt.Add(buffer),
		LockKey: dayLockKey(start.In(s.policy.Location)),
	}

	guard := func(events []availability.Event, blocks []availability.MaintenanceBlock) error {
		status := s.policy.Classify(start, duration, events, blocks)
		if !status.Available() {
			return unavailable(status)
		}
		return nil
	}

	if err := s.repo.CreateIfFree(ctx, b, window, guard); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "booking created",
		slog.String("booking_id", b.ID),
		slog.Time("start_at", b.StartAt),
		slog.Int64("total_cents", b.TotalCents),
	)
	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, ErrInvalidStatusQuery
	}
	filter.Page, filter.PageSize = response.NormalizePage(filter.Page, filter.PageSize)
	return s.repo.List(ctx, filter)
}

func (s *service) Confirm(ctx context.Context, id string) (*Booking, error) {
	b, err := s.repo.UpdateStatus(ctx, id, []Status{StatusPendingPayment}, StatusConfirmed)
	if errors.Is(err, ErrInvalidTransition) {
		current, getErr := s.repo.GetByID(ctx, id)
		if getErr == nil && current.Status == StatusConfirmed {
			return current, nil
		}
	}
	return b, err
}

func (s *service) Cancel(ctx context.Context, id string) (*Booking, error) {
	return s.repo.UpdateStatus(ctx, id, []Status{StatusPendingPayment, StatusConfirmed}, StatusCancelled)
}

func (s *service) Expire(ctx context.Context, id string) (*Booking, error) {
	b, err := s.repo.UpdateStatus(ctx, id, []Status{StatusPendingPayment}, StatusCancelled)
	if errors.Is(err, ErrInvalidTransition) {
		return s.repo.GetByID(ctx, id)
	}
	return b, err
}

func unavailable(status availability.SlotStatus) error {
	reason := status.Reason()
	return apperror.WithDetails(ErrSlotUnavailable, ErrSlotUnavailable.Message+": "+reason, map[string]any{"reason": reason})
}

func validateCustomer(c Customer) (Customer, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	if c.Name == "" || c.Email == "" {
		return c, ErrInvalidCustomer
	}
	addr, err := mail.ParseAddress(c.Email)
	if err != nil || addr.Address != c.Email {
		return c, ErrInvalidCustomer
	}
	return c, nil
}

// dayLockKey maps a local calendar day to a stable advisory lock id, e.g. 20250610.
func dayLockKey(local time.Time) int64 {
	y, m, d := local.Date()
	return int64(y*10000 + int(m)*100 + d)
}
