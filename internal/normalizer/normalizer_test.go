package normalizer

import (
	"testing"
)

func TestNormalizeForSearch(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "City", input: "Đà Lạt", expected: "da lat"},
		{name: "Upper case", input: "ÁO BẢO HỘ", expected: "ao bao ho"},
		{name: "Product name", input: "Mũ Bảo Hộ Công Nghiệp", expected: "mu bao ho cong nghiep"},
		{name: "Horn and breve", input: "Găng Tay Chống Cắt ƯỚT", expected: "gang tay chong cat uot"},
		{name: "Already plain", input: "ao bao ho", expected: "ao bao ho"},
		{name: "Lowercase đ", input: "đầu", expected: "dau"},
		{name: "Combining marks", input: "Áo", expected: "ao"},
		{name: "Empty", input: "", expected: ""},
		{name: "Whitespace", input: "   ", expected: "   "},
		{name: "Digits and symbols", input: "Kính UV-400 (3M)", expected: "kinh uv-400 (3m)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeForSearch(tc.input)
			if got != tc.expected {
				t.Errorf("NormalizeForSearch(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestNormalizeForSearch_Idempotent(t *testing.T) {
	inputs := []string{
		"Đà Lạt",
		"ÁO BẢO HỘ",
		"Giày Bảo Hộ Mũi Thép",
		"Phòng cháy chữa cháy",
		"İstanbul",
		"Ǆemal",
		"ﬁle",
		"Ω Ångström",
		"日本語テキスト",
		"한국어",
		"  khoảng   trắng  ",
		"",
	}

	for _, in := range inputs {
		once := NormalizeForSearch(in)
		twice := NormalizeForSearch(once)
		if once != twice {
			t.Errorf("not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}

func TestStripDiacritics_KeepsCase(t *testing.T) {
	if got := StripDiacritics("Bảo Vệ Đầu"); got != "Bao Ve Dau" {
		t.Errorf("StripDiacritics = %q", got)
	}
}

func TestContains(t *testing.T) {
	if !Contains("Áo Phản Quang An Toàn", "ao phan") {
		t.Error("expected accent-insensitive match")
	}
	if Contains("Giày Bảo Hộ", "gang tay") {
		t.Error("unexpected match")
	}
}

func TestSlugify(t *testing.T) {
	testCases := map[string]string{
		"Mũ Bảo Hộ 3M": "mu-bao-ho-3m",
		"  Đèn pin / LED  ": "den-pin-led",
		"helmet_photo (1).JPG": "helmet-photo-1-jpg",
		"": "",
	}
	for in, want := range testCases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoadSearchRules(t *testing.T) {
	rules, err := LoadSearchRules()
	if err != nil {
		t.Fatalf("LoadSearchRules error: %v", err)
	}
	if len(rules.Synonyms) == 0 {
		t.Fatal("expected synonyms")
	}
	if alts := rules.Synonyms["gang tay"]; len(alts) == 0 || alts[0] != "bao tay" {
		t.Errorf("unexpected synonyms for gang tay: %v", alts)
	}
	for _, w := range rules.StopWords {
		if w != NormalizeForSearch(w) {
			t.Errorf("stop word %q is not normalized", w)
		}
	}
}
