package utils

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoJSONObject is returned when no top-level JSON object can be
// located in a model response.
var ErrNoJSONObject = errors.New("no JSON object found in response")

// ExtractJSONObject pulls the first balanced { ... } block out of raw
// model output. Structured-output mode is best effort: responses arrive
// wrapped in markdown fences, prefixed with chatty text, or both.
func ExtractJSONObject(raw string) (string, error) {
	cleaned := stripCodeFences(raw)
	block := balancedObject(cleaned)
	if block == "" {
		return "", ErrNoJSONObject
	}
	return block, nil
}

// DecodeObject extracts and unmarshals a JSON object into dst. A bare
// array or scalar at the top level counts as a failure.
func DecodeObject(raw string, dst any) error {
	block, err := ExtractJSONObject(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(block), dst)
}

// AsNumber coerces a loosely typed JSON value to float64. Models return
// totals as numbers, numeric strings, or garbage; garbage becomes zero.
func AsNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case json.Number:
		f, _ := n.Float64()
		return f
	case string:
		var f float64
		if err := json.Unmarshal([]byte(strings.TrimSpace(n)), &f); err == nil {
			return f
		}
	}
	return 0
}

func stripCodeFences(s string) string {
	if !strings.Contains(s, "```") {
		return s
	}
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// balancedObject returns the first brace-balanced object in s,
// respecting string literals and escapes.
func balancedObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if escaped {
			escaped = false
			continue
		}
		if c == '\\' && inString {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
