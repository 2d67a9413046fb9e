package compiler

import "github.com/correl/jsonschema/internal/ir"

// buildObjectCluster compiles properties/patternProperties/
// additionalProperties/unevaluatedProperties and wires them into the
// object-chain per spec.md §4.2 step 3: sorted by priority, each earlier
// keyword's AlternateSchema set to the next keyword in the chain, only the
// head returned for the plan. unevaluatedProperties is not part of that
// per-key alternate chain -- it is a separate fallback the validator
// consults once nothing else (chain or logical group) evaluated a given
// key, so it is also returned separately for the logical group's one-level
// forwarding (spec.md §4.2 step 4). When it is the only object keyword it
// becomes the head instead and is not returned for forwarding.
func (b *builder) buildObjectCluster(obj map[string]any, path string, depth int, consumed map[string]bool) (head *ir.Node, unevaluated *ir.Node, err error) {
	var properties, patternProperties, additionalProperties, unevaluatedProperties *ir.Node

	if v, ok := obj["properties"]; ok {
		consumed["properties"] = true
		m, ok := v.(map[string]any)
		if !ok {
			return nil, nil, errInvalid("properties", joinPath(path, "properties"), "properties must be an object")
		}
		props := make(map[string]*ir.Node, len(m))
		order := sortedKeys(m)
		for _, key := range order {
			sub, err := b.compileSub(m[key], joinPath(joinPath(path, "properties"), key), depth+1)
			if err != nil {
				return nil, nil, err
			}
			props[key] = sub
		}
		properties = b.reg(&ir.Node{Kind: ir.KProperties, Name: "properties", Priority: ir.PriorityProperties, Properties: props, PropertyOrder: order})
	}

	if v, ok := obj["patternProperties"]; ok {
		consumed["patternProperties"] = true
		m, ok := v.(map[string]any)
		if !ok {
			return nil, nil, errInvalid("patternProperties", joinPath(path, "patternProperties"), "patternProperties must be an object")
		}
		var pairs []ir.PatternSchema
		for _, key := range sortedKeys(m) {
			kp := joinPath(joinPath(path, "patternProperties"), key)
			re, err := compileRegex(kp, key)
			if err != nil {
				return nil, nil, err
			}
			sub, err := b.compileSub(m[key], kp, depth+1)
			if err != nil {
				return nil, nil, err
			}
			pairs = append(pairs, ir.PatternSchema{Pattern: re, Source: key, Sub: sub})
		}
		patternProperties = b.reg(&ir.Node{Kind: ir.KPatternProperties, Name: "patternProperties", Priority: ir.PriorityPatternProperties, PatternProps: pairs})
	}

	if v, ok := obj["additionalProperties"]; ok {
		consumed["additionalProperties"] = true
		sub, err := b.compileSub(v, joinPath(path, "additionalProperties"), depth+1)
		if err != nil {
			return nil, nil, err
		}
		additionalProperties = b.reg(&ir.Node{Kind: ir.KAdditionalProperties, Name: "additionalProperties", Priority: ir.PriorityAdditionalProperties, Sub: sub})
	}

	if v, ok := obj["unevaluatedProperties"]; ok {
		consumed["unevaluatedProperties"] = true
		sub, err := b.compileSub(v, joinPath(path, "unevaluatedProperties"), depth+1)
		if err != nil {
			return nil, nil, err
		}
		unevaluatedProperties = b.reg(&ir.Node{Kind: ir.KUnevaluatedProperties, Name: "unevaluatedProperties", Priority: ir.PriorityUnevaluatedProps, Sub: sub})
	}

	var chain []*ir.Node
	for _, n := range []*ir.Node{properties, patternProperties, additionalProperties} {
		if n != nil {
			chain = append(chain, n)
		}
	}
	for i := 0; i < len(chain)-1; i++ {
		chain[i].AlternateSchema = chain[i+1]
	}

	if len(chain) > 0 {
		head = chain[0]
	} else if unevaluatedProperties != nil {
		// No properties/patternProperties/additionalProperties at all:
		// unevaluatedProperties is the sole member and becomes the head
		// that the plan runs directly (spec.md §4.2 step 3).
		head = unevaluatedProperties
		return head, nil, nil
	}
	if head != nil {
		head.UnevaluatedProperties = unevaluatedProperties
	}
	return head, unevaluatedProperties, nil
}
