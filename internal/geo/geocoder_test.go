package geo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPGeocoder(t *testing.T) {
	addr := Address{Street: "1 Woodward Ave", City: "Detroit", State: "MI", Zip: "48226"}

	t.Run("returns first result", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "1 Woodward Ave, Detroit, MI 48226", r.URL.Query().Get("address"))
			assert.Equal(t, "secret", r.URL.Query().Get("key"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"OK","results":[{"geometry":{"location":{"lat":42.33,"lng":-83.04}}}]}`))
		}))
		defer srv.Close()

		g := NewHTTPGeocoder(srv.URL, "secret", time.Second)
		loc, err := g.Geocode(context.Background(), addr)
		require.NoError(t, err)
		assert.Equal(t, Location{Lat: 42.33, Lng: -83.04}, loc)
	})

	t.Run("zero results", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
		}))
		defer srv.Close()

		_, err := NewHTTPGeocoder(srv.URL, "", time.Second).Geocode(context.Background(), addr)
		assert.True(t, errors.Is(err, ErrAddressNotLocated))
	})

	t.Run("upstream failure is not a client error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := NewHTTPGeocoder(srv.URL, "", time.Second).Geocode(context.Background(), addr)
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrAddressNotLocated))
	})

	t.Run("denied request", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"REQUEST_DENIED","error_message":"bad key"}`))
		}))
		defer srv.Close()

		_, err := NewHTTPGeocoder(srv.URL, "", time.Second).Geocode(context.Background(), addr)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "REQUEST_DENIED")
	})
}
