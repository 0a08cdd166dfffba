package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/safety-storefront/app/controllers"
	"github.com/safety-storefront/app/middleware"
)

// SetupAPIRoutes thiết lập tất cả API routes
func SetupAPIRoutes(router *gin.Engine, storefront *controllers.StorefrontController, admin *controllers.AdminController, auth *middleware.AdminAuth) {
	v1 := router.Group("/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("", storefront.ListProducts)
			products.GET("/:id", storefront.GetProduct)
			products.POST("/:id/views", storefront.RecordView)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", storefront.ListCategories)
			categories.GET("/:id", storefront.GetCategory)
			categories.GET("/:id/products", storefront.GetCategoryProducts)
		}

		search := v1.Group("/search")
		{
			search.GET("/suggest", storefront.Suggest)
			search.GET("/instant", storefront.InstantSearch)
		}

		v1.GET("/images/:id", storefront.GetImage)
		v1.GET("/health", storefront.HealthCheck)

		// Admin routes, key là key document (không phải id số)
		adminGroup := v1.Group("/admin", auth.RequireAdmin())
		{
			adminGroup.GET("/products", admin.ListProducts)
			adminGroup.POST("/products", admin.CreateProduct)
			adminGroup.GET("/products/:key", admin.GetProduct)
			adminGroup.PUT("/products/:key", admin.UpdateProduct)
			adminGroup.DELETE("/products/:key", admin.DeleteProduct)

			adminGroup.GET("/categories", admin.ListCategories)
			adminGroup.POST("/categories", admin.CreateCategory)
			adminGroup.GET("/categories/:key", admin.GetCategory)
			adminGroup.PUT("/categories/:key", admin.UpdateCategory)
			adminGroup.DELETE("/categories/:key", admin.DeleteCategory)

			adminGroup.POST("/images", admin.UploadImage)
			adminGroup.POST("/seed", admin.Seed)
			adminGroup.GET("/validate", admin.Validate)
			adminGroup.GET("/stats", admin.GetStats)
			adminGroup.POST("/search/reindex", admin.ReindexSearch)
			adminGroup.POST("/views/flush", admin.FlushViews)
		}
	}
}

// SetupHealthRoutes thiết lập health check routes
func SetupHealthRoutes(router *gin.Engine, storefront *controllers.StorefrontController) {
	router.GET("/health", storefront.HealthCheck)
	router.GET("/ready", storefront.HealthCheck)
	router.GET("/live", storefront.HealthCheck)
}

// SetupAllRoutes thiết lập tất cả routes
func SetupAllRoutes(router *gin.Engine, storefront *controllers.StorefrontController, admin *controllers.AdminController, auth *middleware.AdminAuth) {
	SetupWebRoutes(router)
	SetupHealthRoutes(router, storefront)
	SetupAPIRoutes(router, storefront, admin, auth)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error":  "Route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})
}
