package router

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/Mdtr3002/hms-be/internal/handler/health"
	"github.com/Mdtr3002/hms-be/internal/handler/prometheus"
	"github.com/Mdtr3002/hms-be/internal/middleware"
	"github.com/Mdtr3002/hms-be/pkg/auth"
	"github.com/Mdtr3002/hms-be/pkg/httputil"
)

// AdminPrefix is where every entity controller is mounted.
const AdminPrefix = "/admin"

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

// Controller describes one entity controller and the path it is mounted under.
type Controller struct {
	Path     string
	Register func(*gin.RouterGroup)
}

// For builds the descriptor for a handler mounted at path.
func For(path string, h Handler) Controller {
	return Controller{Path: path, Register: h.RegisterRoutes}
}

// Mount mounts every controller under group, recording its path as the route prefix.
// It has no effect besides registering routes on group.
func Mount(group *gin.RouterGroup, controllers []Controller) *gin.RouterGroup {
	for _, ctrl := range controllers {
		sub := group.Group("/"+ctrl.Path, middleware.RecordRoutePrefix(ctrl.Path))
		ctrl.Register(sub)
	}
	return group
}

type RouterConfig struct {
	Mode             string
	CORSOrigins      []string
	RateLimitEnabled bool
	RateLimit        rate.Limit
	RateBurst        int
	MaxBodyBytes     int64
	// JWT is optional. Without it every request is anonymous.
	JWT auth.JWTService
}

// NewRouter builds the engine: core middleware, health and metrics endpoints and the
// admin controllers.
func NewRouter(config RouterConfig, healthH *health.Handler, metricsH *prometheus.Handler, controllers []Controller) *gin.Engine {
	if config.Mode != "" {
		gin.SetMode(config.Mode)
	}

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
	)
	if metricsH != nil {
		engine.Use(metricsH.Middleware())
	}
	engine.Use(
		middleware.CORS(config.CORSOrigins),
		middleware.SecurityHeaders(middleware.DefaultSecurityConfig()),
		middleware.SizeLimit(config.MaxBodyBytes),
	)
	if config.RateLimitEnabled {
		engine.Use(middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
		}).RateLimit())
	}

	engine.NoRoute(func(c *gin.Context) {
		httputil.From(c).NotFound()
	})

	if healthH != nil {
		healthH.RegisterRoutes(&engine.RouterGroup)
	}
	if metricsH != nil {
		engine.GET("/metrics", metricsH.Handler())
	}

	admin := engine.Group(AdminPrefix,
		httputil.BindComposer(),
		middleware.OptionalAuth(config.JWT),
	)
	Mount(admin, controllers)

	return engine
}
