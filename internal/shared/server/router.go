package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	googleauth "recruit-backend/internal/auth"
	"recruit-backend/internal/shared/config"
	"recruit-backend/internal/shared/metrics"
	"recruit-backend/internal/shared/server/middleware"
	"recruit-backend/internal/shared/server/respond"
)

// RouteRegistrar attaches a handler's routes to a router group.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RouterDeps carries everything NewRouter needs to wire routes.
type RouterDeps struct {
	Config       config.Config
	Profiles     RouteRegistrar
	Matching     RouteRegistrar
	Applications RouteRegistrar
	GoogleAuth   *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Actor(deps.Config.Env),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"DEFAULT": {Rate: 20, Burst: 40},
				"BULK":    {Rate: 2, Burst: 4},
				"RANK":    {Rate: 1, Burst: 2},
			},
			GroupFor: rateLimitGroup,
		}),
	)

	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	for _, registrar := range []RouteRegistrar{deps.Profiles, deps.Matching, deps.Applications} {
		if registrar != nil {
			registrar.RegisterRoutes(api)
		}
	}

	return r
}

func rateLimitGroup(c *gin.Context) string {
	switch c.FullPath() {
	case "/api/v1/applications/bulk/status":
		return "BULK"
	case "/api/v1/matches/rank":
		return "RANK"
	default:
		return "DEFAULT"
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
