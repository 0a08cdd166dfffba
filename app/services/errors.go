package services

import "errors"

var (
	ErrProductNotFound  = errors.New("không tìm thấy sản phẩm")
	ErrCategoryNotFound = errors.New("không tìm thấy danh mục")
	ErrCategoryInUse    = errors.New("danh mục vẫn còn sản phẩm")
	ErrReadOnlyCatalog  = errors.New("catalog chỉ đọc")
	ErrInvalidImage     = errors.New("file không phải ảnh")
	ErrImageTooLarge    = errors.New("ảnh vượt quá dung lượng cho phép")
	ErrImageNotFound    = errors.New("không tìm thấy ảnh")
	ErrInvalidKey       = errors.New("key không hợp lệ")
	ErrInvalidInput     = errors.New("dữ liệu không hợp lệ")
	ErrSearchDisabled   = errors.New("search index chưa được bật")
)
