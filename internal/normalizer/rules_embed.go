package normalizer

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/search_rules.yaml
var searchRulesYAML []byte

// SearchRules cấu hình synonyms/stop words cho search index, load từ YAML nhúng
type SearchRules struct {
	Synonyms  map[string][]string `yaml:"synonyms"`
	StopWords []string            `yaml:"stop_words"`
}

// LoadSearchRules load rules từ embedded YAML. Key và value được chuẩn hóa
// qua NormalizeForSearch để khớp với normalized_* trong index.
func LoadSearchRules() (*SearchRules, error) {
	raw := &SearchRules{}
	if err := yaml.Unmarshal(searchRulesYAML, raw); err != nil {
		return nil, fmt.Errorf("lỗi parse search_rules.yaml: %w", err)
	}

	rules := &SearchRules{
		Synonyms:  make(map[string][]string, len(raw.Synonyms)),
		StopWords: make([]string, 0, len(raw.StopWords)),
	}
	for term, alts := range raw.Synonyms {
		key := CollapseSpaces(NormalizeForSearch(term))
		for _, alt := range alts {
			rules.Synonyms[key] = append(rules.Synonyms[key], CollapseSpaces(NormalizeForSearch(alt)))
		}
	}
	for _, w := range raw.StopWords {
		rules.StopWords = append(rules.StopWords, NormalizeForSearch(w))
	}
	return rules, nil
}
