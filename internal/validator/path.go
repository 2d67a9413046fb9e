package validator

import (
	"sort"
	"strconv"
	"strings"
)

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// joinPointer appends one JSON Pointer token to base, matching
// internal/engine's escaping so compile-time and validate-time paths use
// the same rendering.
func joinPointer(base, token string) string {
	esc := pointerEscaper.Replace(token)
	if base == "" || base == "/" {
		return "/" + esc
	}
	return base + "/" + esc
}

func joinPointerIndex(base string, i int) string { return joinPointer(base, strconv.Itoa(i)) }

func sortedObjectKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
