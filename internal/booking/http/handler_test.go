package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/party-booking-backend/internal/booking"
	"github.com/nekogravitycat/party-booking-backend/internal/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	createErr error
	created   booking.CreateRequest
}

func (s *stubService) Create(ctx context.Context, req booking.CreateRequest) (*booking.Booking, error) {
	s.created = req
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &booking.Booking{
		ID:        "0b7e8f5e-8a4b-4f4e-9d7c-1f2a3b4c5d6e",
		Status:    booking.StatusPendingPayment,
		StartAt:   time.Date(2025, time.June, 10, 18, 0, 0, 0, time.UTC),
		EndAt:     time.Date(2025, time.June, 10, 20, 0, 0, 0, time.UTC),
		Customer:  req.Customer,
		AddonIDs:  []string{},
		CreatedAt: time.Now(),
	}, nil
}

func (s *stubService) GetByID(ctx context.Context, id string) (*booking.Booking, error) {
	return nil, booking.ErrNotFound
}

func (s *stubService) List(ctx context.Context, filter booking.Filter) ([]*booking.Booking, int, error) {
	return nil, 0, nil
}

func (s *stubService) Confirm(ctx context.Context, id string) (*booking.Booking, error) {
	return nil, nil
}

func (s *stubService) Cancel(ctx context.Context, id string) (*booking.Booking, error) {
	return nil, nil
}

func (s *stubService) Expire(ctx context.Context, id string) (*booking.Booking, error) {
	return nil, nil
}

func setupRouter(svc booking.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	pass := func(c *gin.Context) { c.Next() }
	RegisterRoutes(r.Group("/v1"), NewHandler(svc), pass, pass)
	return r
}

const createBody = `{
	"customer": {"name": "Jamie", "email": "jamie@example.com"},
	"packageId": "starter",
	"addonIds": ["extra-30"],
	"address": {"street": "1 Main St", "city": "Troy", "state": "MI", "zip": "48083"},
	"eventDate": "2025-06-10",
	"startTime": "14:00"
}`

func TestCreateBooking(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &stubService{}
		r := setupRouter(svc)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/bookings", strings.NewReader(createBody))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "14:00", svc.created.StartTime)
		assert.Equal(t, "starter", svc.created.Quote.PackageID)

		var resp BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, booking.StatusPendingPayment, resp.Status)
	})

	t.Run("slot taken", func(t *testing.T) {
		svc := &stubService{createErr: apperror.WithDetails(booking.ErrSlotUnavailable,
			"requested time is not available: overlaps existing booking",
			map[string]any{"reason": "overlaps existing booking"})}
		r := setupRouter(svc)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/bookings", strings.NewReader(createBody))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "overlaps existing booking")
	})
}

func TestGetBooking(t *testing.T) {
	r := setupRouter(&stubService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/bookings/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/bookings/0b7e8f5e-8a4b-4f4e-9d7c-1f2a3b4c5d6e", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListBookings_BadStatus(t *testing.T) {
	r := setupRouter(&stubService{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/admin/bookings?status=paid", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
