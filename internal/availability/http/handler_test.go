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
	"github.com/nekogravitycat/party-booking-backend/internal/availability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	last availability.SlotsRequest
	err  error
}

func (s *stubService) GetSlots(ctx context.Context, req availability.SlotsRequest) (*availability.SlotsResponse, error) {
	s.last = req
	if s.err != nil {
		return nil, s.err
	}
	if req.Date == "" {
		return nil, availability.ErrDateRequired
	}
	return &availability.SlotsResponse{
		Slots:    []availability.TimeSlot{{Time: "09:00", Available: true}},
		Timezone: "America/Detroit",
		Date:     time.Date(2025, time.June, 10, 4, 0, 0, 0, time.UTC),
	}, nil
}

func (s *stubService) Snapshot(ctx context.Context, day time.Time) ([]availability.Event, []availability.MaintenanceBlock, error) {
	return nil, nil, nil
}

func (s *stubService) Policy() availability.Policy {
	return availability.DefaultPolicy(time.UTC)
}

func setupRouter(svc availability.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/v1"), NewHandler(svc))
	return r
}

func TestQuery(t *testing.T) {
	t.Run("malformed JSON", func(t *testing.T) {
		r := setupRouter(&stubService{})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/availability", strings.NewReader(`{"date":`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid JSON body")
	})

	t.Run("missing date", func(t *testing.T) {
		r := setupRouter(&stubService{})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/availability", strings.NewReader(`{"durationMin":60}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "date is required")
	})

	t.Run("ok", func(t *testing.T) {
		svc := &stubService{}
		r := setupRouter(svc)
		w := httptest.NewRecorder()
		body := `{"date":"2025-06-10","durationMin":90,"addonIds":["a1"]}`
		req := httptest.NewRequest(http.MethodPost, "/v1/availability", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 90, svc.last.DurationMin)
		assert.Equal(t, []string{"a1"}, svc.last.AddonIDs)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "America/Detroit", resp["timezone"])
		assert.Len(t, resp["slots"], 1)
	})
}

func TestQueryString(t *testing.T) {
	svc := &stubService{}
	r := setupRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/availability?date=2025-06-10&durationMin=60&addonIds=a1,%20a2,", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"a1", "a2"}, svc.last.AddonIDs)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/availability?date=2025-06-10&durationMin=abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
