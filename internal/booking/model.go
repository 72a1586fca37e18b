package booking

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/party-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/party-booking-backend/internal/pricing"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "booking not found")
	ErrSlotUnavailable    = apperror.New(http.StatusConflict, "requested time is not available")
	ErrStartTimePast      = apperror.New(http.StatusBadRequest, "cannot book a time in the past")
	ErrEventDateRequired  = apperror.New(http.StatusBadRequest, "eventDate is required to book")
	ErrInvalidStartTime   = apperror.New(http.StatusBadRequest, "startTime must be formatted as HH:MM")
	ErrInvalidCustomer    = apperror.New(http.StatusBadRequest, "customer name and a valid email are required")
	ErrInvalidTransition  = apperror.New(http.StatusConflict, "booking status cannot change that way")
	ErrInvalidStatusQuery = apperror.New(http.StatusBadRequest, "invalid booking status")
)

type Status string

const (
	StatusPendingPayment Status = "pending_payment"
	StatusConfirmed      Status = "confirmed"
	StatusCancelled      Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPendingPayment, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

type Customer struct {
	Name  string
	Email string
	Phone string
}

// Booking is a reserved party with the price it was quoted at.
type Booking struct {
	ID          string
	PackageID   string
	AddonIDs    []string
	Customer    Customer
	Street      string
	City        string
	State       string
	Zip         string
	Lat         float64
	Lng         float64
	Distance    float64
	StartAt     time.Time
	EndAt       time.Time
	IsGlowNight bool
	Status      Status

	TotalCents   int64
	DepositCents int64
	BalanceCents int64
	LineItems    []pricing.LineItem

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Filter struct {
	Status   Status
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}

// Window is the range of existing reservations that can conflict with a candidate.
// Writers for the same LockKey are serialized.
type Window struct {
	From    time.Time
	To      time.Time
	LockKey int64
}
