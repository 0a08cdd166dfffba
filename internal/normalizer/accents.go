package normalizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// đ/Đ không tách được bằng NFD nên phải thay thế thủ công
var dStroke = strings.NewReplacer("đ", "d", "Đ", "D")

// NormalizeForSearch chuẩn hóa text để so khớp không dấu, không phân biệt hoa thường.
// Thứ tự: lowercase → đ→d → NFD → bỏ dấu (Mn).
func NormalizeForSearch(text string) string {
	if text == "" {
		return text
	}

	s := strings.ToLower(text)
	s = dStroke.Replace(s)

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		// transform.String chỉ lỗi với transformer hỏng; trả về bản lowercase
		return s
	}
	return out
}

// StripDiacritics loại bỏ dấu tiếng Việt nhưng giữ nguyên hoa thường
func StripDiacritics(s string) string {
	s = dStroke.Replace(s)
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	out, _, _ := transform.String(t, s)
	return out
}

// isMn kiểm tra xem rune có phải là diacritic mark không
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

// Contains so khớp chuỗi con sau khi chuẩn hóa cả hai phía
func Contains(haystack, needle string) bool {
	return strings.Contains(NormalizeForSearch(haystack), NormalizeForSearch(needle))
}
