package bridge

import (
	"sort"

	"github.com/safety-storefront/app/models"
)

// Collision nhóm các key khác nhau cùng bridge ra một id
type Collision struct {
	ID   int                `json:"id"`
	Keys []models.RecordKey `json:"-"`
}

// KeyStrings key dạng chuỗi để log/trả về API
func (c Collision) KeyStrings() []string {
	out := make([]string, len(c.Keys))
	for i, k := range c.Keys {
		out[i] = k.String()
	}
	return out
}

// DetectCollisions trả về các id bị nhiều key khác nhau dùng chung, sắp theo id.
// Key trùng lặp y hệt nhau không tính là va chạm.
func DetectCollisions(keys []models.RecordKey) []Collision {
	byID := make(map[int][]models.RecordKey)
	seen := make(map[models.RecordKey]struct{}, len(keys))
	for _, k := range keys {
		if k.IsZero() {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		id := KeyID(k)
		byID[id] = append(byID[id], k)
	}

	var collisions []Collision
	for id, ks := range byID {
		if len(ks) > 1 {
			collisions = append(collisions, Collision{ID: id, Keys: ks})
		}
	}
	sort.Slice(collisions, func(i, j int) bool { return collisions[i].ID < collisions[j].ID })
	return collisions
}

// ProductKeys key của danh sách record sản phẩm
func ProductKeys(records []models.ProductRecord) []models.RecordKey {
	keys := make([]models.RecordKey, len(records))
	for i, r := range records {
		keys[i] = r.Key
	}
	return keys
}

// CategoryKeys key của danh sách record danh mục
func CategoryKeys(records []models.CategoryRecord) []models.RecordKey {
	keys := make([]models.RecordKey, len(records))
	for i, r := range records {
		keys[i] = r.Key
	}
	return keys
}
