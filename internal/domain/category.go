package domain

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// CategoryID identifies a category. Clients send it either as a JSON number
// or as a numeric string; both decode to the same value.
type CategoryID int64

// ParseCategoryID parses a decimal category id
func ParseCategoryID(s string) (CategoryID, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid category id %q: %w", s, err)
	}
	return CategoryID(v), nil
}

// UnmarshalJSON accepts 5, "5" and null
func (id *CategoryID) UnmarshalJSON(data []byte) error {
	v, ok, err := unmarshalInt(data)
	if err != nil {
		return fmt.Errorf("invalid category id: %w", err)
	}
	if ok {
		*id = CategoryID(v)
	}
	return nil
}

// unmarshalInt decodes a JSON number or numeric string. ok is false for null.
func unmarshalInt(data []byte) (v int64, ok bool, err error) {
	raw := string(bytes.TrimSpace(data))
	if raw == "null" {
		return 0, false, nil
	}
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = unquoted
	}

	v, err = strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}

// String returns the decimal form of the id
func (id CategoryID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Category represents a question category
type Category struct {
	ID   CategoryID `json:"id"`
	Type string     `json:"type"`
}
