// Package bridge ánh xạ key chuỗi của document store sang id số mà storefront dùng.
//
// Đây là lớp tương thích: phép băm có thể trùng (1.000.000 slot), không đảo ngược
// được, và không tự phát hiện trùng. Muốn tìm lại record gốc phải quét danh sách
// record (xem FindProductByID). DetectCollisions dùng để kiểm tra dữ liệu thật.
package bridge

import (
	"unicode/utf16"

	"github.com/safety-storefront/app/models"
)

// IDRange id sau khi bridge luôn nằm trong [0, IDRange)
const IDRange = 1_000_000

// DocKeyToID băm key thành id trong [0, IDRange).
// hash = hash*31 + code trên từng UTF-16 code unit, cắt về int32 mỗi bước,
// lấy trị tuyệt đối rồi mod IDRange.
func DocKeyToID(key string) int {
	var hash int32
	for _, code := range utf16.Encode([]rune(key)) {
		hash = hash*31 + int32(code)
	}
	v := int64(hash)
	if v < 0 {
		v = -v
	}
	return int(v % IDRange)
}

// KeyID id số của một RecordKey: key số giữ nguyên, key chuỗi đi qua DocKeyToID
func KeyID(key models.RecordKey) int {
	switch key.Kind() {
	case models.KeyNumeric:
		return key.Numeric()
	case models.KeyDocument:
		return DocKeyToID(key.Document())
	default:
		return 0
	}
}
