package quote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nekogravitycat/party-booking-backend/internal/catalog"
	"github.com/nekogravitycat/party-booking-backend/internal/geo"
	"github.com/nekogravitycat/party-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/party-booking-backend/internal/pricing"
)

// Catalog is the subset of the catalog service a quote needs.
type Catalog interface {
	GetActivePackage(ctx context.Context, id string) (*catalog.Package, error)
	ResolveAddons(ctx context.Context, ids []string) ([]catalog.Addon, error)
}

type Service interface {
	Quote(ctx context.Context, req Request) (*Quote, error)
}

type Config struct {
	Business    geo.Location
	TaxRate     float64
	DepositRate float64
}

type service struct {
	catalog  Catalog
	geocoder geo.Geocoder
	cfg      Config
}

func NewService(cat Catalog, geocoder geo.Geocoder, cfg Config) Service {
	return &service{
		catalog:  cat,
		geocoder: geocoder,
		cfg:      cfg,
	}
}

// Quote checks, in order: package, add-ons, address shape, geocoding, service area.
// Only a request that passes all of them reaches the pricing engine.
func (s *service) Quote(ctx context.Context, req Request) (*Quote, error) {
	if strings.TrimSpace(req.PackageID) == "" {
		return nil, ErrPackageRequired
	}

	var eventDate *time.Time
	if req.EventDate != "" {
		d, err := time.Parse(time.DateOnly, req.EventDate)
		if err != nil {
			return nil, ErrInvalidEventDate
		}
		eventDate = &d
	}

	pkg, err := s.catalog.GetActivePackage(ctx, req.PackageID)
	if err != nil {
		return nil, err
	}

	addons, err := s.catalog.ResolveAddons(ctx, req.AddonIDs)
	if err != nil {
		return nil, err
	}

	addr := req.Address.Normalize()
	if err := geo.ValidateAddress(addr); err != nil {
		return nil, err
	}

	loc, err := s.geocoder.Geocode(ctx, addr)
	if err != nil {
		if errors.Is(err, geo.ErrAddressNotLocated) {
			return nil, err
		}
		slog.ErrorContext(ctx, "geocoding failed",
			slog.String("zip", addr.Zip),
			slog.String("error", err.Error()),
		)
		return nil, apperror.Wrap(err, ErrGeocodingFailed.Code, ErrGeocodingFailed.Message)
	}

	area := geo.IsWithinServiceArea(s.cfg.Business, loc)
	if !area.WithinArea {
		return nil, apperror.WithDetails(ErrOutsideServiceArea,
			fmt.Sprintf("address is %.2f miles away; we only travel up to %.0f miles", area.Distance, geo.ServiceRadiusMiles),
			map[string]any{"distance": area.Distance, "maxDistance": geo.ServiceRadiusMiles},
		)
	}

	result, err := pricing.CalculatePricing(pricingInput(pkg, addons, area.Distance, req.IsGlowNight),
		pricing.WithTaxRate(s.cfg.TaxRate),
		pricing.WithDepositRate(s.cfg.DepositRate),
	)
	if err != nil {
		return nil, err
	}

	return &Quote{
		Result:    *result,
		Distance:  area.Distance,
		Location:  loc,
		Address:   addr,
		EventDate: eventDate,
		Package:   pkg,
		Addons:    addons,
	}, nil
}

func pricingInput(pkg *catalog.Package, addons []catalog.Addon, distance float64, glowNight bool) pricing.Input {
	in := pricing.Input{
		Package: pricing.Package{
			Name:                     pkg.Name,
			BasePriceCents:           pkg.BasePriceCents,
			SupportsEveningSurcharge: pkg.SupportsEveningSurcharge,
		},
		Addons:        make([]pricing.Addon, len(addons)),
		DistanceMiles: distance,
		IsGlowNight:   glowNight,
	}
	for i, a := range addons {
		in.Addons[i] = pricing.Addon{Name: a.Name, PriceCents: a.PriceCents}
	}
	return in
}
