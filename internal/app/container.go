package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/nekogravitycat/party-booking-backend/internal/api"
	"github.com/nekogravitycat/party-booking-backend/internal/auth"
	"github.com/nekogravitycat/party-booking-backend/internal/availability"
	"github.com/nekogravitycat/party-booking-backend/internal/booking"
	"github.com/nekogravitycat/party-booking-backend/internal/catalog"
	"github.com/nekogravitycat/party-booking-backend/internal/geo"
	"github.com/nekogravitycat/party-booking-backend/internal/maintenance"
	"github.com/nekogravitycat/party-booking-backend/internal/pkg/cache"
	"github.com/nekogravitycat/party-booking-backend/internal/pkg/clock"
	"github.com/nekogravitycat/party-booking-backend/internal/pkg/ratelimit"
	"github.com/nekogravitycat/party-booking-backend/internal/pkg/storage"
	"github.com/nekogravitycat/party-booking-backend/internal/quote"
	"github.com/nekogravitycat/party-booking-backend/internal/user"
	"github.com/nekogravitycat/party-booking-backend/internal/webhook"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	Logger       *slog.Logger

	DBPool *pgxpool.Pool
	// Redis is optional. Without it geocodes are not cached, writes are not throttled
	// and webhook dedupe relies on Postgres alone.
	Redis *redis.Client

	JWTSecret  string
	JWTTTL     time.Duration
	BcryptCost int

	Timezone    string
	Business    geo.Location
	TaxRate     float64
	DepositRate float64

	GeocoderBaseURL string
	GeocoderAPIKey  string
	GeocodeCacheTTL time.Duration

	UploadDir       string
	IdempotencyTTL  time.Duration
	RateLimit       int
	RateLimitWindow time.Duration
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router      *gin.Engine
	JWTManager  *auth.JWTManager
	UserService user.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	policy, err := availability.LoadPolicy(cfg.Timezone)
	if err != nil {
		return nil, err
	}
	clk := clock.NewSystem()

	store, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}

	// Init components
	passwordHasher := auth.NewBcryptPasswordHasher(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	var geocoder geo.Geocoder = geo.NewHTTPGeocoder(cfg.GeocoderBaseURL, cfg.GeocoderAPIKey, 5*time.Second)
	var limiter ratelimit.Limiter
	if cfg.Redis != nil {
		geocoder = geo.NewCachedGeocoder(geocoder, cache.New(cfg.Redis), cfg.GeocodeCacheTTL)
		if cfg.RateLimit > 0 {
			limiter = ratelimit.NewSlidingWindowLimiter(cfg.Redis, "writes", cfg.RateLimit, cfg.RateLimitWindow)
		}
	}

	// User module
	userService := user.NewService(user.NewPgxRepository(cfg.DBPool), passwordHasher, clk)

	// Catalog module
	catalogService := catalog.NewService(catalog.NewPgxRepository(cfg.DBPool), store)

	// Maintenance module
	maintenanceRepo := maintenance.NewPgxRepository(cfg.DBPool)
	maintenanceService := maintenance.NewService(maintenanceRepo)

	// Booking repository feeds the availability engine
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)

	// Availability module
	availabilityService := availability.NewService(policy, bookingRepo, maintenanceRepo, catalogService, clk)

	// Quote module
	quoteService := quote.NewService(catalogService, geocoder, quote.Config{
		Business:    cfg.Business,
		TaxRate:     cfg.TaxRate,
		DepositRate: cfg.DepositRate,
	})

	// Booking module
	bookingService := booking.NewService(bookingRepo, quoteService, policy, clk)

	// Webhook module
	webhookService := webhook.NewService(webhook.NewLedger(cfg.DBPool, cfg.Redis, cfg.IdempotencyTTL), bookingService)

	router := api.NewRouter(api.Config{
		IsProduction:        cfg.IsProduction,
		ProdOrigins:         cfg.ProdOrigins,
		Logger:              cfg.Logger,
		UserService:         userService,
		CatalogService:      catalogService,
		AvailabilityService: availabilityService,
		QuoteService:        quoteService,
		BookingService:      bookingService,
		MaintenanceService:  maintenanceService,
		WebhookService:      webhookService,
		JWTManager:          jwtManager,
		Limiter:             limiter,
	})

	return &Container{
		Router:      router,
		JWTManager:  jwtManager,
		UserService: userService,
	}, nil
}

// BootstrapAdmin creates the configured admin account if it does not exist yet.
func (c *Container) BootstrapAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	u, err := c.UserService.EnsureAdmin(ctx, email, password, "Administrator")
	if err != nil {
		return fmt.Errorf("failed to bootstrap admin: %w", err)
	}
	slog.InfoContext(ctx, "admin account ready", slog.String("user_id", u.ID))
	return nil
}
