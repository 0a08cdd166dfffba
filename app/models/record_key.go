package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// KeyKind phân biệt hai nguồn dữ liệu: bundle JSON cũ (id số) và document store (key chuỗi)
type KeyKind uint8

const (
	KeyNone KeyKind = iota
	KeyNumeric
	KeyDocument
)

// RecordKey là định danh gốc (chưa bridge) của một record.
// Zero value nghĩa là "không có key" (ví dụ product không gán category).
type RecordKey struct {
	kind KeyKind
	num  int
	doc  string
}

// ErrInvalidRecordKey key không parse được
var ErrInvalidRecordKey = errors.New("record key không hợp lệ")

// NumericKey key của dataset JSON cũ
func NumericKey(n int) RecordKey {
	return RecordKey{kind: KeyNumeric, num: n}
}

// DocumentKey key của document store; chuỗi rỗng cho ra zero key
func DocumentKey(key string) RecordKey {
	if key == "" {
		return RecordKey{}
	}
	return RecordKey{kind: KeyDocument, doc: key}
}

func (k RecordKey) Kind() KeyKind { return k.kind }

func (k RecordKey) IsZero() bool { return k.kind == KeyNone }

// Numeric trả về id số (chỉ hợp lệ khi Kind() == KeyNumeric)
func (k RecordKey) Numeric() int { return k.num }

// Document trả về key chuỗi (chỉ hợp lệ khi Kind() == KeyDocument)
func (k RecordKey) Document() string { return k.doc }

// String dạng "n:<id>" hoặc "d:<key>", parse lại được bằng ParseRecordKey
func (k RecordKey) String() string {
	switch k.kind {
	case KeyNumeric:
		return "n:" + strconv.Itoa(k.num)
	case KeyDocument:
		return "d:" + k.doc
	default:
		return ""
	}
}

// ParseRecordKey parse chuỗi do RecordKey.String tạo ra
func ParseRecordKey(s string) (RecordKey, error) {
	prefix, rest, ok := strings.Cut(s, ":")
	if !ok || rest == "" {
		return RecordKey{}, fmt.Errorf("%w: %q", ErrInvalidRecordKey, s)
	}
	switch prefix {
	case "n":
		n, err := strconv.Atoi(rest)
		if err != nil {
			return RecordKey{}, fmt.Errorf("%w: %q", ErrInvalidRecordKey, s)
		}
		return NumericKey(n), nil
	case "d":
		return DocumentKey(rest), nil
	default:
		return RecordKey{}, fmt.Errorf("%w: %q", ErrInvalidRecordKey, s)
	}
}
