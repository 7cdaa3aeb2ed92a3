package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"fractal.app/api/internal/http/handler"
	"fractal.app/api/internal/http/middleware"
	"fractal.app/api/internal/service"
)

type RouterConfig struct {
	FrontendURL  string
	IsProduction bool
	SessionTTL   time.Duration

	// AuthRateLimit is requests per second per client IP on /auth. Zero disables it.
	AuthRateLimit float64
	AuthBurst     int
	DB            handler.Pinger
	Metrics       *middleware.Metrics
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	health := handler.NewHealthHandler(cfg.DB)
	router.GET("/health", health.Health)
	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	requireAuth := middleware.RequireAuth(services.Auth())

	authGroup := router.Group("/auth")
	if cfg.AuthRateLimit > 0 {
		authGroup.Use(middleware.RateLimit(cfg.AuthRateLimit, cfg.AuthBurst))
	}
	authHandler := handler.NewAuthHandler(services.Auth(), services.Users(), cfg.FrontendURL, cfg.IsProduction, cfg.SessionTTL)
	AuthRouter(authGroup, requireAuth, authHandler)

	v1 := router.Group("/api/v1")
	{
		invHandler := handler.NewInvitationHandler(services.Invitations())
		InvitationRouter(v1.Group("/invitations"), requireAuth, invHandler)

		authed := v1.Group("", requireAuth)

		wsHandler := handler.NewWorkspaceHandler(services.Workspaces())
		WorkspaceRouter(authed.Group("/workspaces"), wsHandler, invHandler)

		projectHandler := handler.NewProjectHandler(services.Projects())
		ProjectRouter(authed, projectHandler)
	}
}
