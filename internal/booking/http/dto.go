package http

import (
	"time"

	"github.com/nekogravitycat/party-booking-backend/internal/booking"
	"github.com/nekogravitycat/party-booking-backend/internal/geo"
	"github.com/nekogravitycat/party-booking-backend/internal/pricing"
	"github.com/nekogravitycat/party-booking-backend/internal/quote"
)

type CustomerBody struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type CreateBookingBody struct {
	Customer    CustomerBody `json:"customer"`
	PackageID   string       `json:"packageId"`
	AddonIDs    []string     `json:"addonIds"`
	Address     geo.Address  `json:"address"`
	EventDate   string       `json:"eventDate"`
	StartTime   string       `json:"startTime"`
	IsGlowNight bool         `json:"isGlowNight"`
}

func (b CreateBookingBody) ToDomain() booking.CreateRequest {
	return booking.CreateRequest{
		Customer: booking.Customer{
			Name:  b.Customer.Name,
			Email: b.Customer.Email,
			Phone: b.Customer.Phone,
		},
		StartTime: b.StartTime,
		Quote: quote.Request{
			PackageID:   b.PackageID,
			AddonIDs:    b.AddonIDs,
			Address:     b.Address,
			EventDate:   b.EventDate,
			IsGlowNight: b.IsGlowNight,
		},
	}
}

// ListBookingsRequest defines query parameters for the admin listing.
type ListBookingsRequest struct {
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"pageSize" binding:"omitempty,min=1,max=100"`
	Status   string     `form:"status" binding:"omitempty,oneof=pending_payment confirmed cancelled"`
	From     *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To       *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
}

// BookingResponse is what the customer sees after booking.
type BookingResponse struct {
	ID            string             `json:"id"`
	Status        booking.Status     `json:"status"`
	PackageID     string             `json:"packageId"`
	AddonIDs      []string           `json:"addonIds"`
	StartAt       time.Time          `json:"startAt"`
	EndAt         time.Time          `json:"endAt"`
	IsGlowNight   bool               `json:"isGlowNight"`
	Address       geo.Address        `json:"address"`
	Distance      float64            `json:"distance"`
	TotalCents    int64              `json:"totalCents"`
	DepositAmount int64              `json:"depositAmount"`
	BalanceAmount int64              `json:"balanceAmount"`
	LineItems     []pricing.LineItem `json:"lineItems"`
	CreatedAt     time.Time          `json:"createdAt"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		Status:        b.Status,
		PackageID:     b.PackageID,
		AddonIDs:      b.AddonIDs,
		StartAt:       b.StartAt,
		EndAt:         b.EndAt,
		IsGlowNight:   b.IsGlowNight,
		Address:       geo.Address{Street: b.Street, City: b.City, State: b.State, Zip: b.Zip},
		Distance:      b.Distance,
		TotalCents:    b.TotalCents,
		DepositAmount: b.DepositCents,
		BalanceAmount: b.BalanceCents,
		LineItems:     b.LineItems,
		CreatedAt:     b.CreatedAt,
	}
}

// AdminBookingResponse adds customer contact details.
type AdminBookingResponse struct {
	BookingResponse
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	CustomerPhone string    `json:"customerPhone"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func NewAdminBookingResponse(b *booking.Booking) AdminBookingResponse {
	return AdminBookingResponse{
		BookingResponse: NewBookingResponse(b),
		CustomerName:    b.Customer.Name,
		CustomerEmail:   b.Customer.Email,
		CustomerPhone:   b.Customer.Phone,
		UpdatedAt:       b.UpdatedAt,
	}
}
