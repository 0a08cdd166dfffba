package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PriceOnRequestLabel hiển thị khi giá = 0
const PriceOnRequestLabel = "Liên hệ"

// FormatVND định dạng giá kiểu vi-VN: 250000 → "250.000đ", 1234.5 → "1.234,5đ", 0 → "Liên hệ"
func FormatVND(price float64) string {
	d := decimal.NewFromFloat(price).Round(3)
	if d.IsZero() {
		return PriceOnRequestLabel
	}

	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	intPart, fracPart, _ := strings.Cut(d.String(), ".")
	out := sign + groupThousands(intPart)
	if fracPart != "" {
		out += "," + fracPart
	}
	return out + "đ"
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
