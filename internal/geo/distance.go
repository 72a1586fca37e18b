package geo

import "math"

const (
	// EarthRadiusMiles is the mean Earth radius used by the haversine formula.
	EarthRadiusMiles = 3959.0
	// ServiceRadiusMiles is the maximum distance from the business we travel to.
	ServiceRadiusMiles = 50.0
)

// Location is a point in decimal degrees.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ServiceAreaResult is the outcome of a service area check.
type ServiceAreaResult struct {
	WithinArea bool
	Distance   float64
}

// CalculateDistance returns the great-circle distance in miles between two points,
// rounded to 2 decimal places.
func CalculateDistance(from, to Location) float64 {
	if from == to {
		return 0
	}

	lat1 := toRadians(from.Lat)
	lat2 := toRadians(to.Lat)
	dLat := toRadians(to.Lat - from.Lat)
	dLng := toRadians(to.Lng - from.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	a := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLng*sinLng

	// Float error can push a a hair outside [0, 1].
	a = math.Min(1, math.Max(0, a))
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return roundTo(EarthRadiusMiles*c, 2)
}

// IsWithinServiceArea reports whether the customer is close enough to the business.
func IsWithinServiceArea(business, customer Location) ServiceAreaResult {
	distance := CalculateDistance(business, customer)
	return ServiceAreaResult{
		WithinArea: WithinRadius(distance),
		Distance:   distance,
	}
}

// WithinRadius applies the service radius to an already computed distance.
func WithinRadius(distance float64) bool {
	return distance <= ServiceRadiusMiles
}

// ValidCoordinates reports whether lat/lng are inside the valid degree ranges.
func ValidCoordinates(loc Location) bool {
	return loc.Lat >= -90 && loc.Lat <= 90 && loc.Lng >= -180 && loc.Lng <= 180
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
