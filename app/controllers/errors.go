package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/safety-storefront/app/middleware"
	"github.com/safety-storefront/app/responses"
	"github.com/safety-storefront/app/services"
	"go.uber.org/zap"
)

// errorStatus ánh xạ lỗi service sang HTTP status và mã lỗi
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrInvalidKey):
		return http.StatusBadRequest, responses.CodeInvalidID
	case errors.Is(err, services.ErrInvalidInput):
		return http.StatusBadRequest, responses.CodeInvalidRequest
	case errors.Is(err, services.ErrProductNotFound):
		return http.StatusNotFound, responses.CodeProductNotFound
	case errors.Is(err, services.ErrCategoryNotFound):
		return http.StatusNotFound, responses.CodeCategoryNotFound
	case errors.Is(err, services.ErrImageNotFound):
		return http.StatusNotFound, responses.CodeImageNotFound
	case errors.Is(err, services.ErrCategoryInUse):
		return http.StatusConflict, responses.CodeCategoryInUse
	case errors.Is(err, services.ErrInvalidImage):
		return http.StatusUnsupportedMediaType, responses.CodeInvalidImage
	case errors.Is(err, services.ErrImageTooLarge):
		return http.StatusRequestEntityTooLarge, responses.CodeImageTooLarge
	case errors.Is(err, services.ErrReadOnlyCatalog):
		return http.StatusNotImplemented, responses.CodeReadOnlyCatalog
	case errors.Is(err, services.ErrSearchDisabled):
		return http.StatusServiceUnavailable, responses.CodeSearchDisabled
	default:
		return http.StatusInternalServerError, responses.CodeInternal
	}
}

func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status, code := errorStatus(err)
	if status >= http.StatusInternalServerError && status != http.StatusNotImplemented {
		logger.Error("Lỗi xử lý request",
			zap.Error(err),
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString(middleware.ContextRequestID)))
	}
	writeError(c, status, code, err.Error())
}

func writeError(c *gin.Context, status int, code, message string) {
	c.JSON(status, responses.ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now().Format(time.RFC3339),
		RequestID: c.GetString(middleware.ContextRequestID),
	})
}
