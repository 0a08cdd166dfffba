package routes

import (
	"github.com/gin-gonic/gin"
)

// SetupWebRoutes thiết lập web routes
func SetupWebRoutes(router *gin.Engine) {
	web := router.Group("/")
	{
		web.GET("/", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"message": "Safety Storefront API",
				"version": "1.0.0",
				"docs":    "/docs",
			})
		})

		web.GET("/docs", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"api": "Safety Storefront API v1",
				"endpoints": map[string]string{
					"products":         "GET /v1/products?search=",
					"product":          "GET /v1/products/:id",
					"product_view":     "POST /v1/products/:id/views",
					"categories":       "GET /v1/categories",
					"category":         "GET /v1/categories/:id",
					"category_product": "GET /v1/categories/:id/products",
					"suggest":          "GET /v1/search/suggest?q=",
					"instant":          "GET /v1/search/instant?q=",
					"image":            "GET /v1/images/:id",
					"health":           "GET /v1/health",
					"admin":            "/v1/admin/* (Authorization: Bearer <id token>)",
				},
			})
		})
	}
}
