package http

import "github.com/gin-gonic/gin"

func RegisterRoutes(r gin.IRouter, h *Handler, authMiddleware, sysAdminMiddleware gin.HandlerFunc) {
	packages := r.Group("/packages")
	{
		packages.GET("", h.ListPackages)
		packages.GET("/:id", h.GetPackage)
		packages.GET("/:id/image", h.ServeImage)
		packages.GET("/:id/thumbnail", h.ServeThumbnail)
	}

	r.GET("/addons", h.ListAddons)

	// === System Admin Routes ===
	admin := r.Group("/admin/packages")
	admin.Use(authMiddleware, sysAdminMiddleware)
	{
		admin.GET("", h.ListAllPackages)
		admin.POST("/:id/image", h.UploadImage)
	}
}
