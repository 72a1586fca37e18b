package geo

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/nekogravitycat/party-booking-backend/internal/pkg/apperror"
)

var (
	ErrAddressIncomplete = apperror.New(http.StatusBadRequest, "street, city, state and zip are required")
	ErrUnsupportedState  = apperror.New(http.StatusBadRequest, "only US addresses supported")
	ErrInvalidZip        = apperror.New(http.StatusBadRequest, "zip must be 5 digits or ZIP+4")
)

var zipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// usStates holds the postal abbreviations of the 50 states.
var usStates = map[string]struct{}{
	"AL": {}, "AK": {}, "AZ": {}, "AR": {}, "CA": {}, "CO": {}, "CT": {}, "DE": {}, "FL": {}, "GA": {},
	"HI": {}, "ID": {}, "IL": {}, "IN": {}, "IA": {}, "KS": {}, "KY": {}, "LA": {}, "ME": {}, "MD": {},
	"MA": {}, "MI": {}, "MN": {}, "MS": {}, "MO": {}, "MT": {}, "NE": {}, "NV": {}, "NH": {}, "NJ": {},
	"NM": {}, "NY": {}, "NC": {}, "ND": {}, "OH": {}, "OK": {}, "OR": {}, "PA": {}, "RI": {}, "SC": {},
	"SD": {}, "TN": {}, "TX": {}, "UT": {}, "VT": {}, "VA": {}, "WA": {}, "WV": {}, "WI": {}, "WY": {},
}

// Address is a US postal address supplied by a customer.
type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

// Normalize trims every field and upper-cases the state.
func (a Address) Normalize() Address {
	return Address{
		Street: strings.TrimSpace(a.Street),
		City:   strings.TrimSpace(a.City),
		State:  strings.ToUpper(strings.TrimSpace(a.State)),
		Zip:    strings.TrimSpace(a.Zip),
	}
}

// String renders the address on one line, the form geocoders expect.
func (a Address) String() string {
	return a.Street + ", " + a.City + ", " + a.State + " " + a.Zip
}

// ValidateAddress checks that the address is complete and inside the US.
func ValidateAddress(a Address) error {
	a = a.Normalize()

	var missing []string
	if a.Street == "" {
		missing = append(missing, "street")
	}
	if a.City == "" {
		missing = append(missing, "city")
	}
	if a.State == "" {
		missing = append(missing, "state")
	}
	if a.Zip == "" {
		missing = append(missing, "zip")
	}
	if len(missing) > 0 {
		return apperror.WithDetails(ErrAddressIncomplete, "", map[string]any{"missing_fields": missing})
	}

	if len(a.State) != 2 {
		return ErrUnsupportedState
	}
	if _, ok := usStates[a.State]; !ok {
		return ErrUnsupportedState
	}

	if !zipPattern.MatchString(a.Zip) {
		return ErrInvalidZip
	}

	return nil
}
