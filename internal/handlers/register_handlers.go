package handlers

import (
	"fmt"
	"log/slog"
	"slices"

	portssvc "github.com/SscSPs/pix_simulator/internal/core/ports/services"
	"github.com/SscSPs/pix_simulator/internal/middleware"
	"github.com/SscSPs/pix_simulator/internal/platform/config"
	"github.com/SscSPs/pix_simulator/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const apiBasePath = "/api"

// Header names understood by the API.
const (
	IdempotencyKeyHeader  = "X-Idempotency-Key"
	SimulateTimeoutHeader = "X-Simulate-Timeout"
)

// NewRouter builds the gin engine with the global middleware chain and every route.
func NewRouter(
	cfg *config.Config,
	logger *slog.Logger,
	services *portssvc.ServiceContainer,
	analytics *utils.PosthogClientWrapper,
) (*gin.Engine, error) {
	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(middleware.Metrics())
	r.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))

	if cfg.RateLimit != "" {
		limiterInstance, err := middleware.NewRateLimiter(cfg.RateLimit)
		if err != nil {
			return nil, fmt.Errorf("configuring rate limit: %w", err)
		}
		r.Use(middleware.RateLimit(limiterInstance))
	}

	r.Use(middleware.PosthogMiddleware(analytics))

	if err := r.SetTrustedProxies(nil); err != nil {
		return nil, fmt.Errorf("setting trusted proxies: %w", err)
	}

	RegisterRoutes(r, services)
	return r, nil
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	registerHomeRoutes(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group(apiBasePath)
	RegisterAccountRoutes(api, services.Account)
	RegisterPixRoutes(api, services.Transfer, services.Refund)
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", IdempotencyKeyHeader, SimulateTimeoutHeader, middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
