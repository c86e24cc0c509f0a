package db_models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// CommaList is an ordered list of short labels that travels as a single
// comma-joined string, both in JSON and in its database column.
type CommaList []string

// ParseCommaList splits raw on commas, trimming blanks and dropping empty items.
func ParseCommaList(raw string) CommaList {
	parts := strings.Split(raw, ",")
	out := make(CommaList, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (l CommaList) String() string {
	return strings.Join(l, ", ")
}

// Contains reports whether any item equals s, ignoring case.
func (l CommaList) Contains(s string) bool {
	for _, item := range l {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}

func (l CommaList) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON accepts the comma-joined form and, for older clients,
// a JSON array of strings.
func (l *CommaList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = CommaList{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*l = ParseCommaList(raw)
		return nil
	}

	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("comma list must be a string or an array of strings: %w", err)
	}
	*l = ParseCommaList(strings.Join(items, ","))
	return nil
}

func (l CommaList) Value() (driver.Value, error) {
	return l.String(), nil
}

func (l *CommaList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = CommaList{}
	case string:
		*l = ParseCommaList(v)
	case []byte:
		*l = ParseCommaList(string(v))
	default:
		return fmt.Errorf("cannot scan %T into CommaList", src)
	}
	return nil
}

func (CommaList) GormDataType() string {
	return "text"
}
