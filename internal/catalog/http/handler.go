package http

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nekogravitycat/party-booking-backend/internal/catalog"
	"github.com/nekogravitycat/party-booking-backend/internal/pkg/response"
)

// MaxImageSizeBytes caps admin package photo uploads.
const MaxImageSizeBytes = 5 << 20

type Handler struct {
	service catalog.Service
}

func NewHandler(service catalog.Service) *Handler {
	return &Handler{service: service}
}

// ListPackages returns the bookable packages.
func (h *Handler) ListPackages(c *gin.Context) {
	h.listPackages(c, catalog.Filter{})
}

// ListAllPackages includes retired packages for the admin console.
func (h *Handler) ListAllPackages(c *gin.Context) {
	h.listPackages(c, catalog.Filter{IncludeInactive: true})
}

func (h *Handler) listPackages(c *gin.Context, filter catalog.Filter) {
	pkgs, err := h.service.ListPackages(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]PackageResponse, len(pkgs))
	for i, p := range pkgs {
		items[i] = NewPackageResponse(p)
	}
	c.JSON(http.StatusOK, ListResponse[PackageResponse]{Items: items})
}

func (h *Handler) GetPackage(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.BadRequest(c, "invalid UUID")
		return
	}

	p, err := h.service.GetActivePackage(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewPackageResponse(p))
}

func (h *Handler) ListAddons(c *gin.Context) {
	addons, err := h.service.ListAddons(c.Request.Context(), catalog.Filter{})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]AddonResponse, len(addons))
	for i, a := range addons {
		items[i] = NewAddonResponse(a)
	}
	c.JSON(http.StatusOK, ListResponse[AddonResponse]{Items: items})
}

func (h *Handler) ServeImage(c *gin.Context) {
	h.serveImage(c, false)
}

func (h *Handler) ServeThumbnail(c *gin.Context) {
	h.serveImage(c, true)
}

func (h *Handler) serveImage(c *gin.Context, thumbnail bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.BadRequest(c, "invalid UUID")
		return
	}

	stream, contentType, err := h.service.OpenPackageImage(c.Request.Context(), id, thumbnail)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", "public, max-age=86400")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		// response already started
		slog.WarnContext(c.Request.Context(), "image stream interrupted", slog.String("error", err.Error()))
	}
}

// UploadImage replaces a package's photo. Expects multipart field "image".
func (h *Handler) UploadImage(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.BadRequest(c, "invalid UUID")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "image is required")
		return
	}
	if fileHeader.Size > MaxImageSizeBytes {
		c.JSON(http.StatusRequestEntityTooLarge, response.ErrorResponse{Error: "image exceeds 5 MB"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "unable to read image")
		return
	}
	defer f.Close()

	p, err := h.service.UploadPackageImage(c.Request.Context(), id, f)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewPackageResponse(p))
}
