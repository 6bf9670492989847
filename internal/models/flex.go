package models

import (
	"encoding/json"
	"strings"
)

// FlexStrings decodes a backend field that may arrive either as a JSON
// array of strings or as a JSON-encoded string containing such an array
// (the backend serializes tag fields inconsistently across endpoints).
// It is normalized exactly once at the API boundary; downstream code only
// ever sees the slice.
type FlexStrings []string

func (f *FlexStrings) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		*f = nil
		return nil
	}

	var arr []string
	if err := json.Unmarshal(b, &arr); err == nil {
		*f = arr
		return nil
	}

	var inner string
	if err := json.Unmarshal(b, &inner); err != nil {
		*f = nil
		return nil
	}

	inner = strings.TrimSpace(inner)
	if inner == "" {
		*f = nil
		return nil
	}

	if err := json.Unmarshal([]byte(inner), &arr); err == nil {
		*f = arr
		return nil
	}

	// Legacy comma-separated fallback.
	parts := strings.Split(inner, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	*f = out
	return nil
}

func (f FlexStrings) MarshalJSON() ([]byte, error) {
	if f == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(f))
}

// JSONString renders the slice as a JSON array string for storage.
func (f FlexStrings) JSONString() string {
	b, err := f.MarshalJSON()
	if err != nil {
		return "[]"
	}
	return string(b)
}
