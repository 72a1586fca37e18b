package webhook

import (
	"net/http"

	"github.com/nekogravitycat/party-booking-backend/internal/pkg/apperror"
)

var (
	ErrEventIDRequired   = apperror.New(http.StatusBadRequest, "event id is required")
	ErrBookingIDRequired = apperror.New(http.StatusBadRequest, "bookingId is required for checkout events")
	ErrInvalidBookingID  = apperror.New(http.StatusBadRequest, "bookingId must be a UUID")
)

const (
	TypeCheckoutCompleted = "checkout.completed"
	TypeCheckoutExpired   = "checkout.expired"
)

// Event is a payment provider notification. Signature checks happen before it gets here.
type Event struct {
	ID        string
	Type      string
	BookingID string
}

type Outcome string

const (
	OutcomeConfirmed Outcome = "confirmed"
	OutcomeCancelled Outcome = "cancelled"
	OutcomeIgnored   Outcome = "ignored"

	// OutcomeNeedsRefund marks a payment for a booking that can no longer be confirmed.
	OutcomeNeedsRefund Outcome = "needs_refund"
)

type Result struct {
	Duplicate bool
	Outcome   Outcome
}
