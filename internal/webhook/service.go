package webhook

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/nekogravitycat/party-booking-backend/internal/booking"
)

// BookingUpdater is the part of the booking service payments drive.
type BookingUpdater interface {
	Confirm(ctx context.Context, id string) (*booking.Booking, error)
	Expire(ctx context.Context, id string) (*booking.Booking, error)
}

type Service interface {
	Handle(ctx context.Context, e Event) (*Result, error)
}

type service struct {
	ledger   Ledger
	bookings BookingUpdater
}

func NewService(ledger Ledger, bookings BookingUpdater) Service {
	return &service{ledger: ledger, bookings: bookings}
}

// Handle applies e at most once. Repeated deliveries report Duplicate and change nothing.
func (s *service) Handle(ctx context.Context, e Event) (*Result, error) {
	e.ID = strings.TrimSpace(e.ID)
	if e.ID == "" {
		return nil, ErrEventIDRequired
	}
	if e.Type == TypeCheckoutCompleted || e.Type == TypeCheckoutExpired {
		if e.BookingID == "" {
			return nil, ErrBookingIDRequired
		}
		if _, err := uuid.Parse(e.BookingID); err != nil {
			return nil, ErrInvalidBookingID
		}
	}

	fresh, err := s.ledger.Claim(ctx, e)
	if err != nil {
		return nil, err
	}
	if !fresh {
		slog.InfoContext(ctx, "duplicate webhook event", slog.String("event_id", e.ID))
		return &Result{Duplicate: true}, nil
	}

	outcome, err := s.apply(ctx, e)
	if err != nil {
		if relErr := s.ledger.Release(ctx, e.ID); relErr != nil {
			slog.ErrorContext(ctx, "failed to release webhook event",
				slog.String("event_id", e.ID),
				slog.String("error", relErr.Error()),
			)
		}
		return nil, err
	}

	slog.InfoContext(ctx, "webhook event processed",
		slog.String("event_id", e.ID),
		slog.String("type", e.Type),
		slog.String("outcome", string(outcome)),
	)
	return &Result{Outcome: outcome}, nil
}

func (s *service) apply(ctx context.Context, e Event) (Outcome, error) {
	switch e.Type {
	case TypeCheckoutCompleted:
		_, err := s.bookings.Confirm(ctx, e.BookingID)
		if errors.Is(err, booking.ErrInvalidTransition) {
			// Paid after the checkout expired; the slot is gone and the money must go back.
			slog.WarnContext(ctx, "payment completed for a cancelled booking",
				slog.String("event_id", e.ID),
				slog.String("booking_id", e.BookingID),
			)
			return OutcomeNeedsRefund, nil
		}
		if err != nil {
			return "", err
		}
		return OutcomeConfirmed, nil
	case TypeCheckoutExpired:
		b, err := s.bookings.Expire(ctx, e.BookingID)
		if err != nil {
			return "", err
		}
		if b.Status != booking.StatusCancelled {
			return OutcomeIgnored, nil
		}
		return OutcomeCancelled, nil
	default:
		return OutcomeIgnored, nil
	}
}
