package validator

import "github.com/correl/jsonschema/internal/ir"

// validateArrayCluster is the array-shape counterpart of
// validateObjectCluster: walks the prefixItems/items/additionalItems chain
// (or unevaluatedItems alone) over every element, then applies
// unevaluatedItems to whatever indices nothing else examined.
func validateArrayCluster(head *ir.Node, v any, priorEv *evalResult, path string, depth, maxDepth int) (*FailInfo, *evalResult, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, nil, nil
	}
	own := newEvalResult()

	if head.Kind == ir.KUnevaluatedItems {
		for i, elem := range arr {
			if priorEv.indexEvaluated(i) {
				continue
			}
			f, _, err := ValidateSchema(head.Sub, elem, joinPointerIndex(path, i), depth+1, maxDepth)
			if err != nil {
				return nil, nil, err
			}
			if f != nil {
				return fail(path, head.Name), nil, nil
			}
			own.markIndex(i)
		}
		return nil, own, nil
	}

	for i, elem := range arr {
		f, owned, err := evaluateArrayIndex(head, i, elem, path, depth, maxDepth)
		if err != nil {
			return nil, nil, err
		}
		if f != nil {
			return f, nil, nil
		}
		if owned {
			own.markIndex(i)
		}
	}

	if head.UnevaluatedItems != nil {
		for i, elem := range arr {
			if own.indexEvaluated(i) || priorEv.indexEvaluated(i) {
				continue
			}
			f, _, err := ValidateSchema(head.UnevaluatedItems.Sub, elem, joinPointerIndex(path, i), depth+1, maxDepth)
			if err != nil {
				return nil, nil, err
			}
			if f != nil {
				return fail(path, head.UnevaluatedItems.Name), nil, nil
			}
			own.markIndex(i)
		}
	}

	return nil, own, nil
}

// evaluateArrayIndex is evaluateObjectKey's array analogue. prefixItems
// owns indices within its list; items owns either every index (schema
// shape) or indices within its list (legacy array shape, spec.md §4.1);
// additionalItems/unevaluatedItems-as-chain-member own whatever reaches
// them.
func evaluateArrayIndex(n *ir.Node, idx int, val any, path string, depth, maxDepth int) (f *FailInfo, owned bool, err error) {
	switch n.Kind {
	case ir.KPrefixItems:
		if idx < len(n.PrefixItems) {
			sf, _, err := ValidateSchema(n.PrefixItems[idx], val, joinPointerIndex(path, idx), depth+1, maxDepth)
			if err != nil {
				return nil, true, err
			}
			if sf != nil {
				return fail(path, n.Name), true, nil
			}
			return nil, true, nil
		}
		if n.AlternateSchema != nil {
			return evaluateArrayIndex(n.AlternateSchema, idx, val, path, depth, maxDepth)
		}
		return nil, false, nil
	case ir.KItems:
		if n.ItemsIsArrayShape {
			if idx < len(n.PrefixItems) {
				sf, _, err := ValidateSchema(n.PrefixItems[idx], val, joinPointerIndex(path, idx), depth+1, maxDepth)
				if err != nil {
					return nil, true, err
				}
				if sf != nil {
					return fail(path, n.Name), true, nil
				}
				return nil, true, nil
			}
			if n.AlternateSchema != nil {
				return evaluateArrayIndex(n.AlternateSchema, idx, val, path, depth, maxDepth)
			}
			return nil, false, nil
		}
		sf, _, err := ValidateSchema(n.Sub, val, joinPointerIndex(path, idx), depth+1, maxDepth)
		if err != nil {
			return nil, true, err
		}
		if sf != nil {
			return fail(path, n.Name), true, nil
		}
		return nil, true, nil
	case ir.KAdditionalItems, ir.KUnevaluatedItems:
		sf, _, err := ValidateSchema(n.Sub, val, joinPointerIndex(path, idx), depth+1, maxDepth)
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
