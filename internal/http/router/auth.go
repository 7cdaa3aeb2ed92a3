package router

import (
	"github.com/gin-gonic/gin"

	"fractal.app/api/internal/http/handler"
)

func AuthRouter(rg *gin.RouterGroup, requireAuth gin.HandlerFunc, h *handler.AuthHandler) {
	rg.GET("/login", h.Login)
	rg.GET("/callback", h.Callback)
	rg.POST("/logout", requireAuth, h.Logout)
	rg.GET("/me", requireAuth, h.Me)
}
