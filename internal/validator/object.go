package validator

import "github.com/correl/jsonschema/internal/ir"

// validateObjectCluster runs the properties/patternProperties/
// additionalProperties chain (or, when those are all absent,
// unevaluatedProperties standing alone as the chain's sole member) against
// every key of an object instance, then applies unevaluatedProperties
// (spec.md §4.2's "fallback ordering" testable property) to whatever keys
// nothing else -- this chain or the logical group run earlier in
// validateSiblings -- examined.
func validateObjectCluster(head *ir.Node, v any, priorEv *evalResult, path string, depth, maxDepth int) (*FailInfo, *evalResult, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, nil, nil
	}
	own := newEvalResult()

	if head.Kind == ir.KUnevaluatedProperties {
		for _, key := range sortedObjectKeys(obj) {
			if priorEv.keyEvaluated(key) {
				continue
			}
			f, _, err := ValidateSchema(head.Sub, obj[key], joinPointer(path, key), depth+1, maxDepth)
			if err != nil {
				return nil, nil, err
			}
			if f != nil {
				return fail(path, head.Name), nil, nil
			}
			own.markKey(key)
		}
		return nil, own, nil
	}

	for _, key := range sortedObjectKeys(obj) {
		f, owned, err := evaluateObjectKey(head, key, obj[key], path, depth, maxDepth)
		if err != nil {
			return nil, nil, err
		}
		if f != nil {
			return f, nil, nil
		}
		if owned {
			own.markKey(key)
		}
	}

	if head.UnevaluatedProperties != nil {
		for _, key := range sortedObjectKeys(obj) {
			if own.keyEvaluated(key) || priorEv.keyEvaluated(key) {
				continue
			}
			f, _, err := ValidateSchema(head.UnevaluatedProperties.Sub, obj[key], joinPointer(path, key), depth+1, maxDepth)
			if err != nil {
				return nil, nil, err
			}
			if f != nil {
				return fail(path, head.UnevaluatedProperties.Name), nil, nil
			}
			own.markKey(key)
		}
	}

	return nil, own, nil
}

// evaluateObjectKey walks the alternate_schema chain for a single object
// key (spec.md §4.2 "Fallback semantics"): properties owns keys present in
// its map; patternProperties owns keys matched by any of its patterns
// (applying every matching sub-schema); additionalProperties/
// unevaluatedProperties-as-chain-member own whatever reaches them. owned
// reports whether some node actually examined the key, so the caller can
// tell "examined and passed" apart from "nothing claimed it."
func evaluateObjectKey(n *ir.Node, key string, val any, path string, depth, maxDepth int) (f *FailInfo, owned bool, err error) {
	switch n.Kind {
	case ir.KProperties:
		if sub, ok := n.Properties[key]; ok {
			sf, _, err := ValidateSchema(sub, val, joinPointer(path, key), depth+1, maxDepth)
			if err != nil {
				return nil, true, err
			}
			if sf != nil {
				return fail(path, n.Name), true, nil
			}
			return nil, true, nil
		}
		if n.AlternateSchema != nil {
			return evaluateObjectKey(n.AlternateSchema, key, val, path, depth, maxDepth)
		}
		return nil, false, nil
	case ir.KPatternProperties:
		matched := false
		for _, ps := range n.PatternProps {
			if !ps.Pattern.MatchString(key) {
				continue
			}
			matched = true
			sf, _, err := ValidateSchema(ps.Sub, val, joinPointer(path, key), depth+1, maxDepth)
			if err != nil {
				return nil, true, err
			}
			if sf != nil {
				return fail(path, n.Name), true, nil
			}
		}
		if matched {
			return nil, true, nil
		}
		if n.AlternateSchema != nil {
			return evaluateObjectKey(n.AlternateSchema, key, val, path, depth, maxDepth)
		}
		return nil, false, nil
	case ir.KAdditionalProperties, ir.KUnevaluatedProperties:
		sf, _, err := ValidateSchema(n.Sub, val, joinPointer(path, key), depth+1, maxDepth)
		if err != nil {
			return nil, true, err
		}
		if sf != nil {
			return fail(path, n.Name), true, nil
		}
		return nil, true, nil
	default:
		return nil, false, nil
	}
}
