package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/party-booking-backend/internal/auth"
	"github.com/nekogravitycat/party-booking-backend/internal/availability"
	availabilityHttp "github.com/nekogravitycat/party-booking-backend/internal/availability/http"
	"github.com/nekogravitycat/party-booking-backend/internal/booking"
	bookingHttp "github.com/nekogravitycat/party-booking-backend/internal/booking/http"
	"github.com/nekogravitycat/party-booking-backend/internal/catalog"
	catalogHttp "github.com/nekogravitycat/party-booking-backend/internal/catalog/http"
	"github.com/nekogravitycat/party-booking-backend/internal/maintenance"
	maintenanceHttp "github.com/nekogravitycat/party-booking-backend/internal/maintenance/http"
	"github.com/nekogravitycat/party-booking-backend/internal/pkg/ratelimit"
	"github.com/nekogravitycat/party-booking-backend/internal/quote"
	quoteHttp "github.com/nekogravitycat/party-booking-backend/internal/quote/http"
	"github.com/nekogravitycat/party-booking-backend/internal/user"
	userHttp "github.com/nekogravitycat/party-booking-backend/internal/user/http"
	"github.com/nekogravitycat/party-booking-backend/internal/webhook"
	webhookHttp "github.com/nekogravitycat/party-booking-backend/internal/webhook/http"
)

// Config carries the services the router exposes.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	Logger       *slog.Logger

	UserService         user.Service
	CatalogService      catalog.Service
	AvailabilityService availability.Service
	QuoteService        quote.Service
	BookingService      booking.Service
	MaintenanceService  maintenance.Service
	WebhookService      webhook.Service
	JWTManager          *auth.JWTManager

	// Limiter throttles quote and booking writes per client IP. Nil disables throttling.
	Limiter ratelimit.Limiter
}

// NewRouter assembles middleware and registers every module under /v1.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), Logging(logger), CORS(cfg.IsProduction, cfg.ProdOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// authMiddleware validates the bearer token; sysAdminMiddleware then checks the admin flag.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	sysAdminMiddleware := RequireSystemAdmin(cfg.UserService)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHttp.NewHandler(cfg.UserService, cfg.JWTManager), authMiddleware)
		catalogHttp.RegisterRoutes(v1, catalogHttp.NewHandler(cfg.CatalogService), authMiddleware, sysAdminMiddleware)
		availabilityHttp.RegisterRoutes(v1, availabilityHttp.NewHandler(cfg.AvailabilityService))
		maintenanceHttp.RegisterRoutes(v1, maintenanceHttp.NewHandler(cfg.MaintenanceService), authMiddleware, sysAdminMiddleware)
		webhookHttp.RegisterRoutes(v1, webhookHttp.NewHandler(cfg.WebhookService))

		// Writes that geocode or reserve are throttled.
		throttled := v1.Group("")
		if cfg.Limiter != nil {
			throttled.Use(ratelimit.Middleware(cfg.Limiter))
		}
		quoteHttp.RegisterRoutes(throttled, quoteHttp.NewHandler(cfg.QuoteService))
		bookingHttp.RegisterRoutes(throttled, bookingHttp.NewHandler(cfg.BookingService), authMiddleware, sysAdminMiddleware)
	}

	return r
}
