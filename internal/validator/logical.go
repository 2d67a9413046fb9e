package validator

import "github.com/correl/jsonschema/internal/ir"

// validateLogical runs one allOf/anyOf/oneOf/not node and, for allOf/
// anyOf/oneOf, returns the union of what their satisfied branch(es)
// evaluated -- the one-level-deep forwarding spec.md §4.2 step 4 and §9
// describe. not never contributes annotations: a schema that must fail
// says nothing about which of its children's children were "evaluated".
func validateLogical(n *ir.Node, v any, path string, depth, maxDepth int) (*FailInfo, *evalResult, error) {
	switch n.Kind {
	case ir.KAllOf:
		ev := newEvalResult()
		for _, child := range n.Children {
			f, childEv, err := ValidateSchema(child, v, path, depth+1, maxDepth)
			if err != nil {
				return nil, nil, err
			}
			if f != nil {
				return fail(path, n.Name), nil, nil
			}
			mergeEval(ev, childEv)
		}
		return nil, ev, nil
	case ir.KAnyOf:
		ev := newEvalResult()
		satisfied := 0
		for _, child := range n.Children {
			f, childEv, err := ValidateSchema(child, v, path, depth+1, maxDepth)
			if err != nil {
				return nil, nil, err
			}
			if f == nil {
				satisfied++
				mergeEval(ev, childEv)
			}
		}
		if satisfied < 1 {
			return fail(path, n.Name), nil, nil
		}
		return nil, ev, nil
	case ir.KOneOf:
		satisfied := 0
		var only *evalResult
		for _, child := range n.Children {
			f, childEv, err := ValidateSchema(child, v, path, depth+1, maxDepth)
			if err != nil {
				return nil, nil, err
			}
			if f == nil {
				satisfied++
				only = childEv
			}
		}
		if satisfied != 1 {
			return fail(path, n.Name), nil, nil
		}
		return nil, only, nil
	case ir.KNot:
		f, _, err := ValidateSchema(n.Sub, v, path, depth+1, maxDepth)
		if err != nil {
			return nil, nil, err
		}
		if f == nil {
			// The sub-schema was satisfied, so not fails.
			return fail(path, n.Name), nil, nil
		}
		return nil, nil, nil
	default:
		return nil, nil, nil
	}
}

// validateIf runs if, then dispatches to then or else per which branch
// spec.md §4.1 says applies; a missing branch is trivially satisfied. The
// taken branch's evaluated set is forwarded one level (same rationale as
// validateLogical).
func validateIf(n *ir.Node, v any, path string, depth, maxDepth int) (*FailInfo, *evalResult, error) {
	ifFail, _, err := ValidateSchema(n.Sub, v, path, depth+1, maxDepth)
	if err != nil {
		return nil, nil, err
	}
	branch := n.Then
	if ifFail != nil {
		branch = n.Else
	}
	if branch == nil {
		return nil, nil, nil
	}
	f, ev, err := ValidateSchema(branch, v, path, depth+1, maxDepth)
	if err != nil {
		return nil, nil, err
	}
	if f != nil {
		return fail(path, n.Name), nil, nil
	}
	return nil, ev, nil
}

// validateContains applies spec.md §4.1's contains/minContains/maxContains
// semantics: the count of matching elements must lie in
// [minContains, maxContains] (defaults 1 and +∞). It returns the indices
// that matched, since draft 2020-12 treats them as evaluated for
// unevaluatedItems.
func validateContains(n *ir.Node, v any, path string, depth, maxDepth int) (*FailInfo, []int, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, nil, nil
	}
	var matched []int
	for i, elem := range arr {
		f, _, err := ValidateSchema(n.Sub, elem, joinPointerIndex(path, i), depth+1, maxDepth)
		if err != nil {
			return nil, nil, err
		}
		if f == nil {
			matched = append(matched, i)
		}
	}
	if len(matched) < n.MinContains {
		return fail(path, n.Name), nil, nil
	}
	if n.MaxContains >= 0 && len(matched) > n.MaxContains {
		return fail(path, n.Name), nil, nil
	}
	return nil, matched, nil
}
