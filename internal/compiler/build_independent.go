package compiler

import (
	"encoding/json"
	"regexp"

	eng "github.com/correl/jsonschema/internal/engine"
	"github.com/correl/jsonschema/internal/ir"
)

// annotationKeywords are purely informational: compile only type-checks
// (loosely) and validate is always a no-op (spec.md §4.1).
var annotationKeywords = map[string]bool{
	"title": true, "description": true, "$comment": true, "$schema": true,
	"deprecated": true, "readOnly": true, "writeOnly": true,
	"example": true, "default": true, "format": true,
}

// buildPassthrough compiles every sibling keyword not claimed by one of the
// interdependent clusters: pure assertions and annotations, appended to the
// plan in (sorted, since map order is not preserved past decoding --
// DESIGN.md) key order, per spec.md §4.2 step 7.
func (b *builder) buildPassthrough(obj map[string]any, path string, depth int, consumed map[string]bool) ([]*ir.Node, error) {
	var out []*ir.Node
	for _, k := range sortedKeys(obj) {
		if consumed[k] {
			continue
		}
		v := obj[k]
		node, ok, err := b.buildIndependent(k, v, path, depth)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, b.reg(node))
		} else {
			// Unrecognized keyword: compile to a no-op node rather than
			// rejecting (original_source's create_object() fallback
			// branch; DESIGN.md).
			out = append(out, b.reg(&ir.Node{Kind: ir.KNoop, Name: k}))
		}
	}
	return out, nil
}

func (b *builder) buildIndependent(k string, v any, path string, depth int) (*ir.Node, bool, error) {
	kp := joinPath(path, k)
	switch k {
	case "type":
		mask, err := compileTypeMask(kp, v)
		if err != nil {
			return nil, true, err
		}
		return &ir.Node{Kind: ir.KType, Name: k, TypeMask: mask}, true, nil
	case "const":
		return &ir.Node{Kind: ir.KConst, Name: k, ConstNorm: eng.Normalize(v)}, true, nil
	case "enum":
		arr, ok := v.([]any)
		if !ok {
			return nil, true, errInvalid(k, kp, "enum must be an array")
		}
		norms := make([]string, 0, len(arr))
		for _, e := range arr {
			norms = append(norms, eng.Normalize(e))
		}
		return &ir.Node{Kind: ir.KEnum, Name: k, EnumNorm: norms}, true, nil
	case "maximum":
		return b.numericNode(ir.KMaximum, k, kp, v)
	case "minimum":
		return b.numericNode(ir.KMinimum, k, kp, v)
	case "exclusiveMaximum":
		return b.numericNode(ir.KExclusiveMaximum, k, kp, v)
	case "exclusiveMinimum":
		return b.numericNode(ir.KExclusiveMinimum, k, kp, v)
	case "multipleOf":
		n, ok := v.(json.Number)
		if !ok {
			return nil, true, errInvalid(k, kp, "multipleOf must be a number")
		}
		// "the source rejects negatives but does not guard zero" (spec.md
		// §9 open question) -- this rewrite rejects both zero and
		// negative, since a zero divisor makes multipleOf() undefined for
		// every instance (DESIGN.md).
		r := eng.CanonicalDecimal(string(n))
		cmp, ok := eng.CompareDecimal(r, "0")
		if !ok || cmp <= 0 {
			return nil, true, errInvalid(k, kp, "multipleOf must be a positive number")
		}
		return &ir.Node{Kind: ir.KMultipleOf, Name: k, NumBound: r}, true, nil
	case "maxLength":
		n, err := asNonNegInt(k, kp, v)
		if err != nil {
			return nil, true, err
		}
		return &ir.Node{Kind: ir.KMaxLength, Name: k, IntBound: n}, true, nil
	case "minLength":
		n, err := asNonNegInt(k, kp, v)
		if err != nil {
			return nil, true, err
		}
		return &ir.Node{Kind: ir.KMinLength, Name: k, IntBound: n}, true, nil
	case "pattern":
		s, ok := v.(string)
		if !ok {
			return nil, true, errInvalid(k, kp, "pattern must be a string")
		}
		re, err := regexp.Compile(s)
		if err != nil {
			return nil, true, errInvalid(k, kp, "pattern does not compile: %s", err)
		}
		return &ir.Node{Kind: ir.KPattern, Name: k, Pattern: re, PatternSrc: s}, true, nil
	case "maxItems":
		n, err := asNonNegInt(k, kp, v)
		if err != nil {
			return nil, true, err
		}
		return &ir.Node{Kind: ir.KMaxItems, Name: k, IntBound: n}, true, nil
	case "minItems":
		n, err := asNonNegInt(k, kp, v)
		if err != nil {
			return nil, true, err
		}
		return &ir.Node{Kind: ir.KMinItems, Name: k, IntBound: n}, true, nil
	case "uniqueItems":
		bv, ok := v.(bool)
		if !ok {
			return nil, true, errInvalid(k, kp, "uniqueItems must be a boolean")
		}
		return &ir.Node{Kind: ir.KUniqueItems, Name: k, Allowed: bv}, true, nil
	case "required":
		names, err := asStringArray(k, kp, v)
		if err != nil {
			return nil, true, err
		}
		return &ir.Node{Kind: ir.KRequired, Name: k, RequiredNames: names}, true, nil
	case "maxProperties":
		n, err := asNonNegInt(k, kp, v)
		if err != nil {
			return nil, true, err
		}
		return &ir.Node{Kind: ir.KMaxProperties, Name: k, IntBound: n}, true, nil
	case "minProperties":
		n, err := asNonNegInt(k, kp, v)
		if err != nil {
			return nil, true, err
		}
		return &ir.Node{Kind: ir.KMinProperties, Name: k, IntBound: n}, true, nil
	case "propertyNames", "propertyName":
		// original_source's get_key_name_for_property() accepts the
		// legacy misspelling as an alias (SPEC_FULL §3; DESIGN.md).
		sub, err := b.compileSub(v, kp, depth+1)
		if err != nil {
			return nil, true, err
		}
		return &ir.Node{Kind: ir.KPropertyNames, Name: "propertyNames", Sub: sub}, true, nil
	case "dependentRequired":
		m, ok := v.(map[string]any)
		if !ok {
			return nil, true, errInvalid(k, kp, "dependentRequired must be an object")
		}
		dep := make(map[string][]string, len(m))
		for key, raw := range m {
			names, err := asStringArray(k, joinPath(kp, key), raw)
			if err != nil {
				return nil, true, err
			}
			dep[key] = names
		}
		return &ir.Node{Kind: ir.KDependentRequired, Name: k, DependentRequired: dep}, true, nil
	default:
		if annotationKeywords[k] {
			switch k {
			case "title", "description", "$comment", "$schema", "format":
				if _, ok := v.(string); !ok {
					return nil, true, errInvalid(k, kp, "%s must be a string", k)
				}
			case "deprecated", "readOnly", "writeOnly":
				if _, ok := v.(bool); !ok {
					return nil, true, errInvalid(k, kp, "%s must be a boolean", k)
				}
			}
			return &ir.Node{Kind: ir.KAnnotation, Name: k}, true, nil
		}
		return nil, false, nil
	}
}

func (b *builder) numericNode(kind ir.Kind, keyword, path string, v any) (*ir.Node, bool, error) {
	n, ok := v.(json.Number)
	if !ok {
		return nil, true, errInvalid(keyword, path, "%s must be a number", keyword)
	}
	return &ir.Node{Kind: kind, Name: keyword, NumBound: eng.CanonicalDecimal(string(n))}, true, nil
}

func compileTypeMask(path string, v any) (ir.InstanceKind, error) {
	switch t := v.(type) {
	case string:
		mask, ok := eng.TypeNameToMask(t)
		if !ok {
			return 0, errInvalid("type", path, "unrecognized type name %q", t)
		}
		return mask, nil
	case []any:
		var mask ir.InstanceKind
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return 0, errInvalid("type", path, "type array must contain only strings")
			}
			m, ok := eng.TypeNameToMask(s)
			if !ok {
				return 0, errInvalid("type", path, "unrecognized type name %q", s)
			}
			mask |= m
		}
		return mask, nil
	default:
		return 0, errInvalid("type", path, "type must be a string or array of strings")
	}
}
