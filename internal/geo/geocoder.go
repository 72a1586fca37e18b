package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nekogravitycat/party-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/party-booking-backend/internal/pkg/cache"
)

var (
	ErrAddressNotLocated = apperror.New(http.StatusBadRequest, "address could not be located")
	errGeocoderStatus    = errors.New("geocoder returned an error status")
)

// Geocoder resolves a postal address into coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, addr Address) (Location, error)
}

// HTTPGeocoder talks to a Google Geocoding compatible JSON endpoint.
type HTTPGeocoder struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPGeocoder creates a geocoder client. baseURL is the full endpoint URL,
// e.g. https://maps.googleapis.com/maps/api/geocode/json.
func NewHTTPGeocoder(baseURL, apiKey string, timeout time.Duration) *HTTPGeocoder {
	return &HTTPGeocoder{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location Location `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
	ErrorMessage string `json:"error_message"`
}

func (g *HTTPGeocoder) Geocode(ctx context.Context, addr Address) (Location, error) {
	q := url.Values{}
	q.Set("address", addr.Normalize().String())
	q.Set("components", "country:US")
	if g.apiKey != "" {
		q.Set("key", g.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return Location{}, fmt.Errorf("build geocode request failed: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return Location{}, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Location{}, fmt.Errorf("%w: http %d", errGeocoderStatus, resp.StatusCode)
	}

	var body geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Location{}, fmt.Errorf("decode geocode response failed: %w", err)
	}

	switch body.Status {
	case "OK":
	case "ZERO_RESULTS":
		return Location{}, ErrAddressNotLocated
	default:
		return Location{}, fmt.Errorf("%w: %s %s", errGeocoderStatus, body.Status, body.ErrorMessage)
	}

	if len(body.Results) == 0 {
		return Location{}, ErrAddressNotLocated
	}
	return body.Results[0].Geometry.Location, nil
}

// CachedGeocoder memoizes successful lookups in Redis.
type CachedGeocoder struct {
	next  Geocoder
	cache *cache.Cache
	ttl   time.Duration
}

func NewCachedGeocoder(next Geocoder, c *cache.Cache, ttl time.Duration) *CachedGeocoder {
	return &CachedGeocoder{next: next, cache: c, ttl: ttl}
}

func (g *CachedGeocoder) Geocode(ctx context.Context, addr Address) (Location, error) {
	key := cache.Key("geocode", strings.ToLower(addr.Normalize().String()))
	return cache.GetOrSetJSON(ctx, g.cache, key, g.ttl, func(ctx context.Context) (Location, error) {
		return g.next.Geocode(ctx, addr)
	})
}
