package responses

// ErrorResponse response lỗi
type ErrorResponse struct {
	Error     string      `json:"error"`                // Mã lỗi
	Message   string      `json:"message"`              // Thông báo lỗi
	Details   interface{} `json:"details,omitempty"`    // Chi tiết lỗi
	Timestamp string      `json:"timestamp"`            // Thời gian xảy ra lỗi
	RequestID string      `json:"request_id,omitempty"` // ID của request
}

// SuccessResponse response thành công
type SuccessResponse struct {
	Success   bool        `json:"success"`        // Có thành công không
	Message   string      `json:"message"`        // Thông báo
	Data      interface{} `json:"data,omitempty"` // Dữ liệu
	Timestamp string      `json:"timestamp"`      // Thời gian
}

// HealthCheckResponse response kiểm tra sức khỏe
type HealthCheckResponse struct {
	Status    string            `json:"status"`    // Trạng thái sức khỏe
	Timestamp string            `json:"timestamp"` // Thời gian kiểm tra
	Uptime    string            `json:"uptime"`    // Thời gian hoạt động
	Version   string            `json:"version"`   // Phiên bản
	Services  map[string]string `json:"services"`  // Trạng thái các service
}

// CreatedResponse tạo mới thành công
type CreatedResponse struct {
	Key     string `json:"key"`     // key document
	ID      int    `json:"id"`      // id số dùng ở storefront
	Message string `json:"message"` // Thông báo
}

// Error codes
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeInvalidID        = "INVALID_ID"
	CodeProductNotFound  = "PRODUCT_NOT_FOUND"
	CodeCategoryNotFound = "CATEGORY_NOT_FOUND"
	CodeCategoryInUse    = "CATEGORY_IN_USE"
	CodeImageNotFound    = "IMAGE_NOT_FOUND"
	CodeInvalidImage     = "INVALID_IMAGE"
	CodeImageTooLarge    = "IMAGE_TOO_LARGE"
	CodeReadOnlyCatalog  = "READ_ONLY_CATALOG"
	CodeSearchDisabled   = "SEARCH_DISABLED"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
	CodeInternal         = "INTERNAL_ERROR"
)
