package pricing

import (
	"net/http"

	"github.com/nekogravitycat/party-booking-backend/internal/pkg/apperror"
)

var (
	ErrOutOfServiceArea = apperror.New(http.StatusBadRequest, "address is outside the service area")
	ErrInvalidDistance  = apperror.New(http.StatusBadRequest, "distance must be a non-negative number")
	ErrInvalidRate      = apperror.New(http.StatusInternalServerError, "pricing rate out of range")
)

const (
	DefaultTaxRate       = 0.08
	DefaultDepositRate   = 0.30
	DefaultSurchargeRate = 0.15
)

// Kind tags a line item.
type Kind string

const (
	KindPackage   Kind = "package"
	KindAddon     Kind = "addon"
	KindSurcharge Kind = "surcharge"
	KindTravel    Kind = "travel"
	KindTax       Kind = "tax"
)

// Package is the priced part of a catalog package.
type Package struct {
	Name                     string
	BasePriceCents           int64
	SupportsEveningSurcharge bool
}

// Addon is the priced part of a catalog add-on.
type Addon struct {
	Name       string
	PriceCents int64
}

type Input struct {
	Package       Package
	Addons        []Addon
	DistanceMiles float64
	IsGlowNight   bool
}

type LineItem struct {
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
	Kind       Kind   `json:"kind"`
}

// Result is a full price breakdown. All amounts are in cents.
type Result struct {
	PackagePrice     int64      `json:"packagePrice"`
	AddonsPrice      int64      `json:"addonsPrice"`
	Subtotal         int64      `json:"subtotal"`
	EveningSurcharge int64      `json:"eveningSurcharge"`
	TravelFee        int64      `json:"travelFee"`
	Tax              int64      `json:"tax"`
	Total            int64      `json:"total"`
	DepositAmount    int64      `json:"depositAmount"`
	BalanceAmount    int64      `json:"balanceAmount"`
	LineItems        []LineItem `json:"lineItems"`
}
