package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatVND(t *testing.T) {
	testCases := map[float64]string{
		0:          "Liên hệ",
		5:          "5đ",
		999:        "999đ",
		1000:       "1.000đ",
		250000:     "250.000đ",
		1234567:    "1.234.567đ",
		1234.5:     "1.234,5đ",
		12000000.0: "12.000.000đ",
	}
	for price, expected := range testCases {
		assert.Equal(t, expected, FormatVND(price), "price=%v", price)
	}
}

func TestGenerateUUID(t *testing.T) {
	a, b := GenerateUUID(), GenerateUUID()
	assert.True(t, IsUUID(a))
	assert.NotEqual(t, a, b)
	assert.False(t, IsUUID("not-a-uuid"))
}
