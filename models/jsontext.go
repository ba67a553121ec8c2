package models

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// EmptyJSONArray is the stored form of an empty embedded list.
const EmptyJSONArray JSONText = "[]"

// JSONText is a structured value kept as opaque serialized text inside a flat row.
// Encoding and decoding happen at the serialization boundary, never in SQL.
type JSONText string

// EncodeJSONText serializes v for storage. A nil value is stored as an empty array.
func EncodeJSONText(v any) (JSONText, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode embedded json: %w", err)
	}
	if bytes.Equal(raw, []byte("null")) {
		return EmptyJSONArray, nil
	}
	return JSONText(raw), nil
}

// IsBlank reports whether nothing meaningful is stored.
func (t JSONText) IsBlank() bool {
	s := strings.TrimSpace(string(t))
	return s == "" || s == "null"
}

// DecodeArray parses the stored text into dst, which must point at a slice.
// Blank text leaves dst untouched.
func (t JSONText) DecodeArray(dst any) error {
	if t.IsBlank() {
		return nil
	}
	if err := json.Unmarshal([]byte(t), dst); err != nil {
		return fmt.Errorf("decode embedded json: %w", err)
	}
	return nil
}
