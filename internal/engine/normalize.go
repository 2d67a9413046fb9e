package engine

import (
	"encoding/json"
	"math/big"
	"sort"
	"strconv"
	"strings"

	"github.com/correl/jsonschema/internal/ir"
)

// InstanceKindOf classifies a decoded value into the closed set of JSON
// instance kinds (spec §3). true and false both classify as IKBoolean;
// nothing in this core's keyword set needs to distinguish them more finely
// than that.
func InstanceKindOf(v any) ir.InstanceKind {
	switch v.(type) {
	case nil:
		return ir.IKNull
	case bool:
		return ir.IKBoolean
	case json.Number:
		return ir.IKNumber
	case string:
		return ir.IKString
	case []any:
		return ir.IKArray
	case map[string]any:
		return ir.IKObject
	default:
		return ir.IKNull
	}
}

// IsIntegerNumber reports whether a decoded JSON number has zero fractional
// part, the refinement draft 2020-12's `type: integer` applies on top of
// `type: number`.
func IsIntegerNumber(n json.Number) bool {
	r, ok := new(big.Rat).SetString(string(n))
	if !ok {
		return false
	}
	return r.IsInt()
}

// TypeMaskMatches reports whether v's instance kind (and, for the
// synthetic IKInteger bit, its integer-ness) is permitted by mask.
func TypeMaskMatches(mask ir.InstanceKind, v any) bool {
	kind := InstanceKindOf(v)
	if mask&kind != 0 {
		return true
	}
	if mask&ir.IKInteger != 0 && kind == ir.IKNumber {
		return IsIntegerNumber(v.(json.Number))
	}
	return false
}

// TypeNameToMask maps one `type` keyword string value to its mask bit.
func TypeNameToMask(name string) (ir.InstanceKind, bool) {
	switch name {
	case "null":
		return ir.IKNull, true
	case "boolean":
		return ir.IKBoolean, true
	case "object":
		return ir.IKObject, true
	case "array":
		return ir.IKArray, true
	case "number":
		return ir.IKNumber, true
	case "string":
		return ir.IKString, true
	case "integer":
		return ir.IKNumber | ir.IKInteger, true
	default:
		return 0, false
	}
}

// Normalize renders v into the canonical textual form spec §3/§9 define:
// round-tripping equality (two values are equal iff their normalized forms
// are byte-identical), object keys sorted lexicographically, numbers
// reduced to a canonical rational, strings passed through unchanged.
func Normalize(v any) string {
	var b strings.Builder
	writeNormalized(&b, v)
	return b.String()
}

func writeNormalized(b *strings.Builder, v any) {
	switch x := v.(type) {
	case nil:
		b.WriteByte('n')
	case bool:
		if x {
			b.WriteByte('T')
		} else {
			b.WriteByte('F')
		}
	case json.Number:
		b.WriteByte('d')
		b.WriteString(CanonicalDecimal(string(x)))
	case string:
		b.WriteByte('s')
		b.WriteString(strconv.Itoa(len(x)))
		b.WriteByte(':')
		b.WriteString(x)
	case []any:
		b.WriteByte('[')
		for i, e := range x {
			if i > 0 {
				b.WriteByte(',')
			}
			writeNormalized(b, e)
		}
		b.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('k')
			b.WriteString(strconv.Itoa(len(k)))
			b.WriteByte(':')
			b.WriteString(k)
			b.WriteByte('=')
			writeNormalized(b, x[k])
		}
		b.WriteByte('}')
	}
}

// CanonicalDecimal reduces a JSON number's decimal text to a canonical
// rational string (big.Rat.RatString, already lowest-terms), so "1", "1.0"
// and "1e0" all normalize identically.
func CanonicalDecimal(s string) string {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return s
	}
	return r.RatString()
}

// CompareDecimal orders two JSON number texts exactly, without the
// precision loss a float64 comparison would introduce.
func CompareDecimal(a, b string) (int, bool) {
	ra, ok1 := new(big.Rat).SetString(a)
	rb, ok2 := new(big.Rat).SetString(b)
	if !ok1 || !ok2 {
		return 0, false
	}
	return ra.Cmp(rb), true
}

// IsMultipleOf reports whether instance/param has zero fractional part,
// computed exactly via big.Rat division (spec §4.1 `multipleOf`).
func IsMultipleOf(instance, param string) (bool, bool) {
	ri, ok1 := new(big.Rat).SetString(instance)
	rp, ok2 := new(big.Rat).SetString(param)
	if !ok1 || !ok2 || rp.Sign() == 0 {
		return false, false
	}
	q := new(big.Rat).Quo(ri, rp)
	return q.IsInt(), true
}
