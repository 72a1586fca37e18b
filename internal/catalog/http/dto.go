package http

import (
	"github.com/nekogravitycat/party-booking-backend/internal/catalog"
)

type PackageResponse struct {
	ID                       string  `json:"id"`
	Name                     string  `json:"name"`
	Description              string  `json:"description"`
	BasePriceCents           int64   `json:"basePriceCents"`
	DurationMin              int     `json:"durationMin"`
	MaxGuests                int     `json:"maxGuests"`
	SupportsEveningSurcharge bool    `json:"supportsEveningSurcharge"`
	IsActive                 bool    `json:"isActive"`
	ImageURL                 *string `json:"imageUrl"`
	ThumbnailURL             *string `json:"thumbnailUrl"`
}

func NewPackageResponse(p *catalog.Package) PackageResponse {
	resp := PackageResponse{
		ID:                       p.ID,
		Name:                     p.Name,
		Description:              p.Description,
		BasePriceCents:           p.BasePriceCents,
		DurationMin:              p.DurationMin,
		MaxGuests:                p.MaxGuests,
		SupportsEveningSurcharge: p.SupportsEveningSurcharge,
		IsActive:                 p.IsActive,
	}
	if p.ImagePath != nil {
		u := "/v1/packages/" + p.ID + "/image"
		resp.ImageURL = &u
	}
	if p.ThumbnailPath != nil {
		u := "/v1/packages/" + p.ID + "/thumbnail"
		resp.ThumbnailURL = &u
	}
	return resp
}

type AddonResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	PriceCents   int64  `json:"priceCents"`
	ExtraMinutes int    `json:"extraMinutes"`
	IsActive     bool   `json:"isActive"`
}

func NewAddonResponse(a *catalog.Addon) AddonResponse {
	return AddonResponse{
		ID:           a.ID,
		Name:         a.Name,
		PriceCents:   a.PriceCents,
		ExtraMinutes: a.ExtraMinutes,
		IsActive:     a.IsActive,
	}
}

type ListResponse[T any] struct {
	Items []T `json:"items"`
}
