package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/party-booking-backend/internal/catalog"
	"github.com/nekogravitycat/party-booking-backend/internal/geo"
	"github.com/nekogravitycat/party-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/party-booking-backend/internal/pricing"
	"github.com/nekogravitycat/party-booking-backend/internal/quote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	err error
	got quote.Request
}

func (s *stubService) Quote(ctx context.Context, req quote.Request) (*quote.Quote, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &quote.Quote{
		Result:   pricing.Result{PackagePrice: 29900, Total: 34000, DepositAmount: 10200, BalanceAmount: 23800, LineItems: []pricing.LineItem{}},
		Distance: 20.7,
		Location: geo.Location{Lat: 42.6, Lng: -83.0},
		Address:  req.Address,
		Package:  &catalog.Package{ID: req.PackageID, DurationMin: 120},
		Addons:   []catalog.Addon{{ID: "a1", ExtraMinutes: 30}},
	}, nil
}

func setupRouter(svc quote.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/v1"), NewHandler(svc))
	return r
}

func postQuote(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/quotes", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

const validBody = `{"packageId":"p1","addonIds":["a1"],"address":{"street":"1 Main St","city":"Troy","state":"MI","zip":"48084"},"eventDate":"2025-06-10","isGlowNight":false}`

func TestCreate_OK(t *testing.T) {
	svc := &stubService{}
	w := postQuote(setupRouter(svc), validBody)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"a1"}, svc.got.AddonIDs)
	assert.Equal(t, "MI", svc.got.Address.State)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 34000, resp["total"])
	assert.EqualValues(t, 20.7, resp["distance"])
	assert.EqualValues(t, 150, resp["durationMin"])
	address := resp["address"].(map[string]any)
	assert.Equal(t, "Troy", address["city"])
	assert.Contains(t, address, "location")
}

func TestCreate_Errors(t *testing.T) {
	w := postQuote(setupRouter(&stubService{}), `{"packageId":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid JSON body")

	outside := apperror.WithDetails(quote.ErrOutsideServiceArea,
		"address is 81.71 miles away; we only travel up to 50 miles",
		map[string]any{"distance": 81.71, "maxDistance": 50.0})
	w = postQuote(setupRouter(&stubService{err: outside}), validBody)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "81.71 miles")
	assert.EqualValues(t, 50, resp["details"].(map[string]any)["maxDistance"])

	w = postQuote(setupRouter(&stubService{err: quote.ErrGeocodingFailed}), validBody)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
