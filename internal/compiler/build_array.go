package compiler

import (
	"strconv"

	"github.com/correl/jsonschema/internal/ir"
)

// buildArrayCluster compiles prefixItems/items/additionalItems/
// unevaluatedItems and wires them into the array-chain per spec.md §4.2
// step 2: sorted by priority (prefixItems=1, items=2, additionalItems=3),
// unevaluatedItems dropped from the chain and wired separately as a global
// fallback, only the head returned for the plan.
func (b *builder) buildArrayCluster(obj map[string]any, path string, depth int, consumed map[string]bool) (head *ir.Node, unevaluated *ir.Node, err error) {
	var prefixItems, items, additionalItems, unevaluatedItems *ir.Node

	if v, ok := obj["prefixItems"]; ok {
		consumed["prefixItems"] = true
		arr, ok := v.([]any)
		if !ok {
			return nil, nil, errInvalid("prefixItems", joinPath(path, "prefixItems"), "prefixItems must be an array of schemas")
		}
		subs := make([]*ir.Node, 0, len(arr))
		for i, e := range arr {
			sub, err := b.compileSub(e, joinPath(joinPath(path, "prefixItems"), strconv.Itoa(i)), depth+1)
			if err != nil {
				return nil, nil, err
			}
			subs = append(subs, sub)
		}
		prefixItems = b.reg(&ir.Node{Kind: ir.KPrefixItems, Name: "prefixItems", Priority: ir.PriorityPrefixItems, PrefixItems: subs})
	}

	if v, ok := obj["items"]; ok {
		consumed["items"] = true
		kp := joinPath(path, "items")
		if arr, isArr := v.([]any); isArr {
			// Legacy array-shape: behaves like prefixItems (spec.md §4.1).
			subs := make([]*ir.Node, 0, len(arr))
			for i, e := range arr {
				sub, err := b.compileSub(e, joinPath(kp, strconv.Itoa(i)), depth+1)
				if err != nil {
					return nil, nil, err
				}
				subs = append(subs, sub)
			}
			items = b.reg(&ir.Node{Kind: ir.KItems, Name: "items", Priority: ir.PriorityItems, PrefixItems: subs, ItemsIsArrayShape: true})
		} else {
			sub, err := b.compileSub(v, kp, depth+1)
			if err != nil {
				return nil, nil, err
			}
			items = b.reg(&ir.Node{Kind: ir.KItems, Name: "items", Priority: ir.PriorityItems, Sub: sub})
		}
	}

	if v, ok := obj["additionalItems"]; ok {
		consumed["additionalItems"] = true
		sub, err := b.compileSub(v, joinPath(path, "additionalItems"), depth+1)
		if err != nil {
			return nil, nil, err
		}
		additionalItems = b.reg(&ir.Node{Kind: ir.KAdditionalItems, Name: "additionalItems", Priority: ir.PriorityAdditionalItems, Sub: sub})
	}

	if v, ok := obj["unevaluatedItems"]; ok {
		consumed["unevaluatedItems"] = true
		sub, err := b.compileSub(v, joinPath(path, "unevaluatedItems"), depth+1)
		if err != nil {
			return nil, nil, err
		}
		unevaluatedItems = b.reg(&ir.Node{Kind: ir.KUnevaluatedItems, Name: "unevaluatedItems", Priority: ir.PriorityUnevaluatedItems, Sub: sub})
	}

	var chain []*ir.Node
	for _, n := range []*ir.Node{prefixItems, items, additionalItems} {
		if n != nil {
			chain = append(chain, n)
		}
	}
	for i := 0; i < len(chain)-1; i++ {
		chain[i].AlternateSchema = chain[i+1]
	}

	if len(chain) > 0 {
		head = chain[0]
	} else if unevaluatedItems != nil {
		head = unevaluatedItems
		return head, nil, nil
	}
	if head != nil {
		head.UnevaluatedItems = unevaluatedItems
	}
	return head, unevaluatedItems, nil
}

