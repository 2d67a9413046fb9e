package jsonschema

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// splitJSONPointer tokenizes a JSON Pointer into its unescaped reference
// tokens, ignoring the leading "/" root marker.
func splitJSONPointer(ptr string) []string {
	if ptr == "" || ptr == "/" {
		return nil
	}
	parts := strings.Split(strings.TrimPrefix(ptr, "/"), "/")
	out := make([]string, len(parts))
	for i, p := range parts {
		p = strings.ReplaceAll(p, "~1", "/")
		p = strings.ReplaceAll(p, "~0", "~")
		out[i] = p
	}
	return out
}

// asArrayIndex reports whether tok is a JSON Pointer array index (all
// digits, no leading zero unless exactly "0").
func asArrayIndex(tok string) (int, bool) {
	if tok == "" {
		return 0, false
	}
	if tok != "0" && tok[0] == '0' {
		return 0, false
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func quoteJSONPathKey(key string) string {
	b, _ := json.Marshal(key)
	return string(b)
}

// marshalJSONDriver re-encodes v as JSON with encoding/json. The active
// JSON driver is not consulted: JSONDriver only decodes, and any driver
// Compile uses reads plain JSON text.
func marshalJSONDriver(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
