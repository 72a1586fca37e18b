package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/party-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/party-booking-backend/internal/webhook"
)

type Handler struct {
	service webhook.Service
}

func NewHandler(service webhook.Service) *Handler {
	return &Handler{service: service}
}

// Payments receives provider notifications. Duplicates still answer 200 so the provider stops retrying.
func (h *Handler) Payments(c *gin.Context) {
	var body PaymentEventBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid JSON body", Details: err.Error()})
		return
	}

	result, err := h.service.Handle(c.Request.Context(), body.ToDomain())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewPaymentEventResponse(result))
}
