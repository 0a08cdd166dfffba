package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/safety-storefront/app/middleware"
	"github.com/safety-storefront/app/models"
	"github.com/safety-storefront/app/requests"
	"github.com/safety-storefront/app/responses"
	"github.com/safety-storefront/app/services"
	"github.com/safety-storefront/internal/bridge"
	"go.uber.org/zap"
)

// BundleLoader nguồn bundle JSON mặc định khi seed không kèm dữ liệu
type BundleLoader func() (*models.CatalogBundle, error)

// AdminController controller xử lý các request admin
type AdminController struct {
	adminService *services.AdminService
	loadBundle   BundleLoader
	logger       *zap.Logger
}

// NewAdminController tạo mới AdminController
func NewAdminController(adminService *services.AdminService, loadBundle BundleLoader, logger *zap.Logger) *AdminController {
	return &AdminController{
		adminService: adminService,
		loadBundle:   loadBundle,
		logger:       logger,
	}
}

// ListProducts GET /v1/admin/products
func (ac *AdminController) ListProducts(c *gin.Context) {
	entries, err := ac.adminService.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, ac.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": entries, "total": len(entries)})
}

// GetProduct GET /v1/admin/products/:key
func (ac *AdminController) GetProduct(c *gin.Context) {
	doc, err := ac.adminService.GetProduct(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondError(c, ac.logger, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// CreateProduct POST /v1/admin/products
func (ac *AdminController) CreateProduct(c *gin.Context) {
	var req requests.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, responses.CodeInvalidRequest, "Request không hợp lệ: "+err.Error())
		return
	}

	key, err := ac.adminService.CreateProduct(c.Request.Context(), req)
	if err != nil {
		respondError(c, ac.logger, err)
		return
	}

	ac.logger.Info("Admin tạo sản phẩm", zap.String("key", key), zap.String("by", c.GetString(middleware.ContextAdminEmail)))
	c.JSON(http.StatusCreated, responses.CreatedResponse{
		Key:     key,
		ID:      bridge.DocKeyToID(key),
		Message: "Đã tạo sản phẩm",
	})
}

// UpdateProduct PUT /v1/admin/products/:key
func (ac *AdminController) UpdateProduct(c *gin.Context) {
	var req requests.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, responses.CodeInvalidRequest, "Request không hợp lệ: "+err.Error())
		return
	}

	if err := ac.adminService.UpdateProduct(c.Request.Context(), c.Param("key"), req); err != nil {
		respondError(c, ac.logger, err)
		return
	}
	ac.success(c, "Đã cập nhật sản phẩm", gin.H{"key": c.Param("key")})
}

// DeleteProduct DELETE /v1/admin/products/:key
func (ac *AdminController) DeleteProduct(c *gin.Context) {
	if err := ac.adminService.DeleteProduct(c.Request.Context(), c.Param("key")); err != nil {
		respondError(c, ac.logger, err)
		return
	}
	ac.logger.Info("Admin xóa sản phẩm", zap.String("key", c.Param("key")), zap.String("by", c.GetString(middleware.ContextAdminEmail)))
	ac.success(c, "Đã xóa sản phẩm", gin.H{"key": c.Param("key")})
}

// ListCategories GET /v1/admin/categories
func (ac *AdminController) ListCategories(c *gin.Context) {
	entries, err := ac.adminService.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, ac.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": entries, "total": len(entries)})
}

// GetCategory GET /v1/admin/categories/:key
func (ac *AdminController) GetCategory(c *gin.Context) {
	doc, err := ac.adminService.GetCategory(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondError(c, ac.logger, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// CreateCategory POST /v1/admin/categories
func (ac *AdminController) CreateCategory(c *gin.Context) {
	var req requests.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, responses.CodeInvalidRequest, "Request không hợp lệ: "+err.Error())
		return
	}

	key, err := ac.adminService.CreateCategory(c.Request.Context(), req)
	if err != nil {
		respondError(c, ac.logger, err)
		return
	}
	c.JSON(http.StatusCreated, responses.CreatedResponse{
		Key:     key,
		ID:      bridge.DocKeyToID(key),
		Message: "Đã tạo danh mục",
	})
}

// UpdateCategory PUT /v1/admin/categories/:key
func (ac *AdminController) UpdateCategory(c *gin.Context) {
	var req requests.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, responses.CodeInvalidRequest, "Request không hợp lệ: "+err.Error())
		return
	}

	if err := ac.adminService.UpdateCategory(c.Request.Context(), c.Param("key"), req); err != nil {
		respondError(c, ac.logger, err)
		return
	}
	ac.success(c, "Đã cập nhật danh mục", gin.H{"key": c.Param("key")})
}

// DeleteCategory DELETE /v1/admin/categories/:key; còn sản phẩm thì 409
func (ac *AdminController) DeleteCategory(c *gin.Context) {
	if err := ac.adminService.DeleteCategory(c.Request.Context(), c.Param("key")); err != nil {
		respondError(c, ac.logger, err)
		return
	}
	ac.success(c, "Đã xóa danh mục", gin.H{"key": c.Param("key")})
}

// UploadImage POST /v1/admin/images (multipart: file, path)
func (ac *AdminController) UploadImage(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		writeError(c, http.StatusBadRequest, responses.CodeInvalidRequest, "Thiếu file ảnh")
		return
	}
	dir := c.DefaultPostForm("path", "products")

	file, err := header.Open()
	if err != nil {
		writeError(c, http.StatusBadRequest, responses.CodeInvalidRequest, "Không đọc được file")
		return
	}
	defer file.Close()

	image, err := ac.adminService.UploadImage(c.Request.Context(), dir, header.Filename, file)
	if err != nil {
		respondError(c, ac.logger, err)
		return
	}
	c.JSON(http.StatusCreated, image)
}

// Seed POST /v1/admin/seed?dry_run=true&replace=true
func (ac *AdminController) Seed(c *gin.Context) {
	var q requests.SeedQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, http.StatusBadRequest, responses.CodeInvalidRequest, "Query không hợp lệ: "+err.Error())
		return
	}

	var req requests.SeedRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, http.StatusBadRequest, responses.CodeInvalidRequest, "Request không hợp lệ: "+err.Error())
			return
		}
	}

	bundle := req.Bundle()
	if req.Empty() {
		if ac.loadBundle == nil {
			writeError(c, http.StatusBadRequest, responses.CodeInvalidRequest, "Không có dữ liệu để seed")
			return
		}
		var err error
		bundle, err = ac.loadBundle()
		if err != nil {
			respondError(c, ac.logger, err)
			return
		}
	}

	result, err := ac.adminService.SeedFromBundle(c.Request.Context(), bundle, services.SeedOptions{
		DryRun:  q.DryRun,
		Replace: q.Replace,
	})
	if err != nil {
		respondError(c, ac.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Validate GET /v1/admin/validate
func (ac *AdminController) Validate(c *gin.Context) {
	result, err := ac.adminService.ValidateCatalog(c.Request.Context())
	if err != nil {
		respondError(c, ac.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetStats GET /v1/admin/stats
func (ac *AdminController) GetStats(c *gin.Context) {
	stats, err := ac.adminService.GetStats(c.Request.Context())
	if err != nil {
		respondError(c, ac.logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ReindexSearch POST /v1/admin/search/reindex
func (ac *AdminController) ReindexSearch(c *gin.Context) {
	startTime := time.Now()
	n, err := ac.adminService.ReindexSearch(c.Request.Context())
	if err != nil {
		respondError(c, ac.logger, err)
		return
	}
	ac.success(c, "Đã đồng bộ index tìm kiếm", gin.H{
		"documents":          n,
		"processing_time_ms": time.Since(startTime).Milliseconds(),
	})
}

// FlushViews POST /v1/admin/views/flush
func (ac *AdminController) FlushViews(c *gin.Context) {
	result, err := ac.adminService.FlushViews(c.Request.Context())
	if err != nil {
		respondError(c, ac.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (ac *AdminController) success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
