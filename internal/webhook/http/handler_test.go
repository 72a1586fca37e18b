package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/party-booking-backend/internal/booking"
	"github.com/nekogravitycat/party-booking-backend/internal/webhook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	seen map[string]bool
	err  error
}

func (s *stubService) Handle(ctx context.Context, e webhook.Event) (*webhook.Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.seen[e.ID] {
		return &webhook.Result{Duplicate: true}, nil
	}
	s.seen[e.ID] = true
	return &webhook.Result{Outcome: webhook.OutcomeConfirmed}, nil
}

func setupRouter(svc webhook.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/v1"), NewHandler(svc))
	return r
}

func post(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/payments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestPayments_DuplicateDelivery(t *testing.T) {
	r := setupRouter(&stubService{seen: map[string]bool{}})
	body := `{"id":"evt_1","type":"checkout.completed","bookingId":"b1"}`

	w := post(r, body)
	require.Equal(t, http.StatusOK, w.Code)
	var first PaymentEventResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	assert.False(t, first.Duplicate)
	assert.Equal(t, "confirmed", first.Outcome)

	w = post(r, body)
	require.Equal(t, http.StatusOK, w.Code)
	var second PaymentEventResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	assert.True(t, second.Duplicate)
}

func TestPayments_BadRequests(t *testing.T) {
	r := setupRouter(&stubService{seen: map[string]bool{}})

	w := post(r, `{"id":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid JSON body")

	w = post(r, `{"type":"checkout.completed"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPayments_UnknownBooking(t *testing.T) {
	r := setupRouter(&stubService{err: booking.ErrNotFound})

	w := post(r, `{"id":"evt_2","type":"checkout.completed","bookingId":"missing"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
