package validator

import (
	"encoding/json"

	eng "github.com/correl/jsonschema/internal/engine"
	"github.com/correl/jsonschema/internal/ir"
)

// validateAssertion dispatches the sibling-independent keywords (spec.md
// §4.1's assertion table) plus propertyNames/dependentRequired/annotations/
// unrecognized-keyword no-ops. Every case follows the universal abstention
// rule: a keyword whose target kind does not match the instance kind
// returns Satisfied without inspecting the value.
func validateAssertion(n *ir.Node, v any, path string, depth, maxDepth int) (*FailInfo, error) {
	switch n.Kind {
	case ir.KType:
		if !eng.TypeMaskMatches(n.TypeMask, v) {
			return fail(path, n.Name), nil
		}
	case ir.KConst:
		if eng.Normalize(v) != n.ConstNorm {
			return fail(path, n.Name), nil
		}
	case ir.KEnum:
		norm := eng.Normalize(v)
		for _, e := range n.EnumNorm {
			if e == norm {
				return nil, nil
			}
		}
		return fail(path, n.Name), nil
	case ir.KMaximum, ir.KMinimum, ir.KExclusiveMaximum, ir.KExclusiveMinimum:
		num, ok := v.(json.Number)
		if !ok {
			return nil, nil
		}
		cmp, ok := eng.CompareDecimal(string(num), n.NumBound)
		if !ok {
			return nil, nil
		}
		bad := false
		switch n.Kind {
		case ir.KMaximum:
			bad = cmp > 0
		case ir.KMinimum:
			bad = cmp < 0
		case ir.KExclusiveMaximum:
			bad = cmp >= 0
		case ir.KExclusiveMinimum:
			bad = cmp <= 0
		}
		if bad {
			return fail(path, n.Name), nil
		}
	case ir.KMultipleOf:
		num, ok := v.(json.Number)
		if !ok {
			return nil, nil
		}
		isMultiple, ok := eng.IsMultipleOf(string(num), n.NumBound)
		if !ok || !isMultiple {
			return fail(path, n.Name), nil
		}
	case ir.KMaxLength, ir.KMinLength:
		s, ok := v.(string)
		if !ok {
			return nil, nil
		}
		// String length is measured in bytes, not Unicode code points
		// (spec.md §9 open question; DESIGN.md records this resolution).
		n2 := len(s)
		if n.Kind == ir.KMaxLength && n2 > n.IntBound {
			return fail(path, n.Name), nil
		}
		if n.Kind == ir.KMinLength && n2 < n.IntBound {
			return fail(path, n.Name), nil
		}
	case ir.KPattern:
		s, ok := v.(string)
		if !ok {
			return nil, nil
		}
		if !n.Pattern.MatchString(s) {
			return fail(path, n.Name), nil
		}
	case ir.KMaxItems, ir.KMinItems:
		arr, ok := v.([]any)
		if !ok {
			return nil, nil
		}
		if n.Kind == ir.KMaxItems && len(arr) > n.IntBound {
			return fail(path, n.Name), nil
		}
		if n.Kind == ir.KMinItems && len(arr) < n.IntBound {
			return fail(path, n.Name), nil
		}
	case ir.KUniqueItems:
		arr, ok := v.([]any)
		if !ok || !n.Allowed {
			return nil, nil
		}
		seen := make(map[string]bool, len(arr))
		for _, e := range arr {
			norm := eng.Normalize(e)
			if seen[norm] {
				return fail(path, n.Name), nil
			}
			seen[norm] = true
		}
	case ir.KRequired:
		obj, ok := v.(map[string]any)
		if !ok {
			return nil, nil
		}
		for _, name := range n.RequiredNames {
			if _, present := obj[name]; !present {
				return fail(path, n.Name), nil
			}
		}
	case ir.KMaxProperties, ir.KMinProperties:
		obj, ok := v.(map[string]any)
		if !ok {
			return nil, nil
		}
		if n.Kind == ir.KMaxProperties && len(obj) > n.IntBound {
			return fail(path, n.Name), nil
		}
		if n.Kind == ir.KMinProperties && len(obj) < n.IntBound {
			return fail(path, n.Name), nil
		}
	case ir.KPropertyNames:
		obj, ok := v.(map[string]any)
		if !ok {
			return nil, nil
		}
		for _, key := range sortedObjectKeys(obj) {
			subFail, _, err := ValidateSchema(n.Sub, key, joinPointer(path, key), depth+1, maxDepth)
			if err != nil {
				return nil, err
			}
			if subFail != nil {
				return fail(path, n.Name), nil
			}
		}
	case ir.KDependentRequired:
		obj, ok := v.(map[string]any)
		if !ok {
			return nil, nil
		}
		for trigger, companions := range n.DependentRequired {
			if _, present := obj[trigger]; !present {
				continue
			}
			for _, c := range companions {
				if _, present := obj[c]; !present {
					return fail(path, n.Name), nil
				}
			}
		}
	case ir.KAnnotation, ir.KNoop:
		// Purely informational; compile already type-checked what it
		// could, validate is always a no-op (spec.md §4.1).
	}
	return nil, nil
}

func fail(path, keyword string) *FailInfo { return &FailInfo{Path: path, Keyword: keyword} }
