package quote

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/party-booking-backend/internal/catalog"
	"github.com/nekogravitycat/party-booking-backend/internal/geo"
	"github.com/nekogravitycat/party-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/party-booking-backend/internal/pricing"
)

var (
	ErrPackageRequired    = apperror.New(http.StatusBadRequest, "packageId is required")
	ErrInvalidEventDate   = apperror.New(http.StatusBadRequest, "eventDate must be formatted as YYYY-MM-DD")
	ErrOutsideServiceArea = apperror.New(http.StatusBadRequest, "address is outside the service area")
	ErrGeocodingFailed    = apperror.New(http.StatusInternalServerError, "unable to verify the address right now, please try again later")
)

type Request struct {
	PackageID   string
	AddonIDs    []string
	Address     geo.Address
	EventDate   string
	IsGlowNight bool
}

// Quote is a priced request together with what it was priced from.
type Quote struct {
	pricing.Result
	Distance  float64
	Location  geo.Location
	Address   geo.Address
	EventDate *time.Time
	Package   *catalog.Package
	Addons    []catalog.Addon
}
