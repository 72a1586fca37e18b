package http

import "github.com/nekogravitycat/party-booking-backend/internal/webhook"

type PaymentEventBody struct {
	ID        string `json:"id" binding:"required"`
	Type      string `json:"type" binding:"required"`
	BookingID string `json:"bookingId"`
}

func (b PaymentEventBody) ToDomain() webhook.Event {
	return webhook.Event{ID: b.ID, Type: b.Type, BookingID: b.BookingID}
}

type PaymentEventResponse struct {
	Duplicate bool   `json:"duplicate"`
	Outcome   string `json:"outcome,omitempty"`
}

func NewPaymentEventResponse(r *webhook.Result) PaymentEventResponse {
	return PaymentEventResponse{Duplicate: r.Duplicate, Outcome: string(r.Outcome)}
}
