package http

import "github.com/gin-gonic/gin"

func RegisterRoutes(r gin.IRouter, h *Handler) {
	group := r.Group("/availability")
	{
		group.POST("", h.Query)
		group.GET("", h.QueryString)
	}
}
