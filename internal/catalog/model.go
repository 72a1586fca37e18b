package catalog

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/party-booking-backend/internal/pkg/apperror"
)

var (
	ErrPackageNotFound = apperror.New(http.StatusNotFound, "package not found")
	ErrAddonNotFound   = apperror.New(http.StatusNotFound, "add-ons not found")
	ErrInvalidImage    = apperror.New(http.StatusBadRequest, "file must be a JPEG or PNG image")
	ErrImageNotFound   = apperror.New(http.StatusNotFound, "package image not found")
)

// Package is a bookable party offering.
type Package struct {
	ID             string
	Name           string
	Description    string
	BasePriceCents int64
	DurationMin    int
	MaxGuests      int
	// SupportsEveningSurcharge marks glow/night themed packages that take the evening uplift.
	SupportsEveningSurcharge bool
	IsActive                 bool
	ImagePath                *string
	ThumbnailPath            *string
	CreatedAt                time.Time
}

// Addon is an optional extra that can be attached to any package.
type Addon struct {
	ID         string
	Name       string
	PriceCents int64
	// ExtraMinutes extends the event duration (e.g. "Extra 30 minutes").
	ExtraMinutes int
	IsActive     bool
	CreatedAt    time.Time
}

// Filter defines parameters for listing catalog entries.
type Filter struct {
	IncludeInactive bool
}
