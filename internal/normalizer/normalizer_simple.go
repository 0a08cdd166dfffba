package normalizer

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

var reSpaces = regexp.MustCompile(`\s+`)
var reSlugJunk = regexp.MustCompile(`[^a-z0-9]+`)

func unaccent(s string) string { return strings.ToLower(unidecode.Unidecode(dStroke.Replace(s))) }

// CollapseSpaces gộp khoảng trắng liên tiếp và cắt hai đầu
func CollapseSpaces(s string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}

// Slugify chuyển text về dạng ascii-slug: "Mũ Bảo Hộ 3M" → "mu-bao-ho-3m".
// Dùng cho product_code mặc định và tên object ảnh.
func Slugify(s string) string {
	slug := reSlugJunk.ReplaceAllString(unaccent(s), "-")
	return strings.Trim(slug, "-")
}
