package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nekogravitycat/party-booking-backend/internal/auth"
	"github.com/nekogravitycat/party-booking-backend/internal/maintenance"
	"github.com/nekogravitycat/party-booking-backend/internal/pkg/response"
)

type Handler struct {
	service maintenance.Service
}

func NewHandler(service maintenance.Service) *Handler {
	return &Handler{service: service}
}

// List returns blocks, optionally restricted to those intersecting ?from=&to= (RFC 3339).
func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	filter := maintenance.Filter{Page: page, PageSize: pageSize}
	for param, dst := range map[string]**time.Time{"from": &filter.From, "to": &filter.To} {
		raw := c.Query(param)
		if raw == "" {
			continue
		}
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.BadRequest(c, param+" must be an RFC 3339 timestamp")
			return
		}
		*dst = &ts
	}

	blocks, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BlockResponse, len(blocks))
	for i, b := range blocks {
		items[i] = NewBlockResponse(b)
	}

	page, pageSize = response.NormalizePage(page, pageSize)
	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBlockBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	b, err := h.service.Create(c.Request.Context(), maintenance.CreateRequest{
		StartAt:   body.StartAt,
		EndAt:     body.EndAt,
		Reason:    body.Reason,
		CreatedBy: auth.GetUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBlockResponse(b))
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.BadRequest(c, "invalid UUID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
