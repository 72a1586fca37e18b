package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	detroit    = Location{Lat: 42.3314, Lng: -83.0458}
	annArbor   = Location{Lat: 42.2808, Lng: -83.7430}
	lansing    = Location{Lat: 42.7325, Lng: -84.5555}
	nullIsland = Location{}
)

func TestCalculateDistance(t *testing.T) {
	t.Run("identical points are exactly zero", func(t *testing.T) {
		assert.Equal(t, 0.0, CalculateDistance(detroit, detroit))
		assert.Equal(t, 0.0, CalculateDistance(nullIsland, nullIsland))
	})

	t.Run("symmetric", func(t *testing.T) {
		pairs := [][2]Location{{detroit, annArbor}, {detroit, lansing}, {annArbor, nullIsland}}
		for _, p := range pairs {
			assert.Equal(t, CalculateDistance(p[0], p[1]), CalculateDistance(p[1], p[0]))
		}
	})

	t.Run("known distance", func(t *testing.T) {
		d := CalculateDistance(detroit, annArbor)
		assert.InDelta(t, 35.9, d, 0.5)
		assert.True(t, d > 0)
	})

	t.Run("rounded to two decimals", func(t *testing.T) {
		d := CalculateDistance(detroit, lansing)
		assert.InDelta(t, d, float64(int64(d*100+0.5))/100, 1e-9)
	})

	t.Run("one degree of latitude", func(t *testing.T) {
		d := CalculateDistance(Location{Lat: 0, Lng: 0}, Location{Lat: 1, Lng: 0})
		assert.Equal(t, 69.1, roundTo(d, 1))
	})
}

func TestIsWithinServiceArea(t *testing.T) {
	res := IsWithinServiceArea(detroit, annArbor)
	assert.True(t, res.WithinArea)
	assert.Equal(t, CalculateDistance(detroit, annArbor), res.Distance)

	res = IsWithinServiceArea(detroit, lansing)
	assert.False(t, res.WithinArea)
	assert.Greater(t, res.Distance, ServiceRadiusMiles)
}

func TestWithinRadiusBoundary(t *testing.T) {
	assert.True(t, WithinRadius(0))
	assert.True(t, WithinRadius(49.99))
	assert.True(t, WithinRadius(50))
	assert.False(t, WithinRadius(50.01))
}

func TestValidCoordinates(t *testing.T) {
	assert.True(t, ValidCoordinates(detroit))
	assert.False(t, ValidCoordinates(Location{Lat: 91}))
	assert.False(t, ValidCoordinates(Location{Lng: -181}))
}
