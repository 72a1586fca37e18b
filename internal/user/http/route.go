package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r gin.IRouter, h *Handler, authMiddleware gin.HandlerFunc) {
	r.POST("/auth/login", h.Login)
	r.GET("/me", authMiddleware, h.Me)
}
