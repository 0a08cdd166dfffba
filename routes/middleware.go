package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/safety-storefront/app/middleware"
	"go.uber.org/zap"
)

// SetupMiddleware thiết lập middleware cho router
func SetupMiddleware(router *gin.Engine, logger *zap.Logger) {
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
}
