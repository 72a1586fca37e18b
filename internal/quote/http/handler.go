package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/party-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/party-booking-backend/internal/quote"
)

type Handler struct {
	service quote.Service
}

func NewHandler(service quote.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body QuoteRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid JSON body", Details: err.Error()})
		return
	}

	q, err := h.service.Quote(c.Request.Context(), body.ToDomain())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewQuoteResponse(q))
}
