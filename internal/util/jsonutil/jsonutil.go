package jsonutil

import (
	"bytes"
	"encoding/json"
	"strings"
)

// StripFences removes a surrounding markdown code fence (``` or ```json) from a
// provider response. Providers are asked for bare JSON but some wrap it anyway.
func StripFences(raw []byte) []byte {
	s := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(s, "```") {
		return []byte(s)
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		// drop the language tag line ("json", "JSON", or empty)
		s = s[i+1:]
	}
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return []byte(strings.TrimSpace(s))
}

// MarshalNoEscape encodes v into JSON without escaping <, >, & into < etc.
func MarshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalFlex tries to unmarshal provider JSON into v with best effort:
// 1) direct unmarshal
// 2) fence-stripped unmarshal
// 3) unwrap one level of string quoting (double-encoded documents), then parse
func UnmarshalFlex(raw []byte, v any) error {
	if err := json.Unmarshal(raw, v); err == nil {
		return nil
	}
	stripped := StripFences(raw)
	err := json.Unmarshal(stripped, v)
	if err == nil {
		return nil
	}
	var s string
	if err2 := json.Unmarshal(stripped, &s); err2 == nil {
		if err3 := json.Unmarshal(StripFences([]byte(s)), v); err3 == nil {
			return nil
		}
	}
	return err
}
