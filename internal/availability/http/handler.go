package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/party-booking-backend/internal/availability"
	"github.com/nekogravitycat/party-booking-backend/internal/pkg/response"
)

type Handler struct {
	service availability.Service
}

func NewHandler(service availability.Service) *Handler {
	return &Handler{service: service}
}

// Query returns the slot grid for a day. A malformed body is rejected before field validation,
// so "invalid JSON" and "date is required" stay distinguishable for clients.
func (h *Handler) Query(c *gin.Context) {
	var body AvailabilityRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid JSON body", Details: err.Error()})
		return
	}

	h.respond(c, availability.SlotsRequest{
		Date:        body.Date,
		DurationMin: body.DurationMin,
		AddonIDs:    body.AddonIDs,
	})
}

// QueryString is the GET form: ?date=YYYY-MM-DD&durationMin=60&addonIds=a,b
func (h *Handler) QueryString(c *gin.Context) {
	req := availability.SlotsRequest{Date: c.Query("date")}

	if raw := c.Query("durationMin"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, availability.ErrInvalidDuration)
			return
		}
		req.DurationMin = d
	}

	if raw := c.Query("addonIds"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				req.AddonIDs = append(req.AddonIDs, id)
			}
		}
	}

	h.respond(c, req)
}

func (h *Handler) respond(c *gin.Context, req availability.SlotsRequest) {
	resp, err := h.service.GetSlots(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
