package search

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/safety-storefront/app/models"
	"github.com/safety-storefront/internal/normalizer"
	"github.com/xrash/smetrics"
)

// SuggestThreshold điểm Jaro-Winkler tối thiểu để gợi ý
const SuggestThreshold = 0.80

// Suggestion gợi ý "có phải bạn muốn tìm" cho query không ra kết quả
type Suggestion struct {
	Text     string  `json:"text"`
	Kind     string  `json:"kind"` // product | category
	Score    float64 `json:"score"`
	distance int
}

// Suggest tìm tên sản phẩm/danh mục gần với query nhất.
// So từng cụm từ liên tiếp cùng số từ với query để "gang tya" vẫn khớp "Găng Tay Chống Cắt".
func Suggest(query string, products []models.Product, categories []models.Category, limit int) []Suggestion {
	q := normalizer.CollapseSpaces(normalizer.NormalizeForSearch(query))
	if q == "" || limit <= 0 {
		return []Suggestion{}
	}

	best := make(map[string]Suggestion)
	consider := func(text, kind string) {
		score, dist := bestWindowScore(q, normalizer.CollapseSpaces(normalizer.NormalizeForSearch(text)))
		if score < SuggestThreshold {
			return
		}
		if prev, ok := best[text]; ok && prev.Score >= score {
			return
		}
		best[text] = Suggestion{Text: text, Kind: kind, Score: score, distance: dist}
	}

	for _, c := range categories {
		consider(c.Name, "category")
	}
	for _, p := range products {
		consider(p.Name, "product")
	}

	out := make([]Suggestion, 0, len(best))
	for _, s := range best {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].distance != out[j].distance {
			return out[i].distance < out[j].distance
		}
		return out[i].Text < out[j].Text
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// bestWindowScore điểm cao nhất giữa query và mọi cửa sổ từ cùng độ dài trong text
func bestWindowScore(query, text string) (float64, int) {
	qWords := strings.Fields(query)
	tWords := strings.Fields(text)
	if len(tWords) == 0 {
		return 0, 0
	}

	size := len(qWords)
	if size > len(tWords) {
		size = len(tWords)
	}

	bestScore, bestDist := 0.0, -1
	for i := 0; i+size <= len(tWords); i++ {
		window := strings.Join(tWords[i:i+size], " ")
		score := smetrics.JaroWinkler(query, window, 0.7, 4)
		dist := levenshtein.ComputeDistance(query, window)
		if score > bestScore || (score == bestScore && dist < bestDist) {
			bestScore, bestDist = score, dist
		}
	}
	return bestScore, bestDist
}
