package http

import (
	"github.com/nekogravitycat/party-booking-backend/internal/geo"
	"github.com/nekogravitycat/party-booking-backend/internal/pricing"
	"github.com/nekogravitycat/party-booking-backend/internal/quote"
)

type QuoteRequest struct {
	PackageID   string      `json:"packageId"`
	AddonIDs    []string    `json:"addonIds"`
	Address     geo.Address `json:"address"`
	EventDate   string      `json:"eventDate"`
	IsGlowNight bool        `json:"isGlowNight"`
}

func (r QuoteRequest) ToDomain() quote.Request {
	return quote.Request{
		PackageID:   r.PackageID,
		AddonIDs:    r.AddonIDs,
		Address:     r.Address,
		EventDate:   r.EventDate,
		IsGlowNight: r.IsGlowNight,
	}
}

type ResolvedAddress struct {
	geo.Address
	Location geo.Location `json:"location"`
}

// QuoteResponse is the price breakdown plus the distance and where the address resolved to.
type QuoteResponse struct {
	pricing.Result
	Distance    float64         `json:"distance"`
	Location    geo.Location    `json:"location"`
	Address     ResolvedAddress `json:"address"`
	PackageID   string          `json:"packageId"`
	DurationMin int             `json:"durationMin"`
}

func NewQuoteResponse(q *quote.Quote) QuoteResponse {
	duration := q.Package.DurationMin
	for _, a := range q.Addons {
		duration += a.ExtraMinutes
	}
	return QuoteResponse{
		Result:      q.Result,
		Distance:    q.Distance,
		Location:    q.Location,
		Address:     ResolvedAddress{Address: q.Address, Location: q.Location},
		PackageID:   q.Package.ID,
		DurationMin: duration,
	}
}
