// Package validator implements the compiled-schema evaluator (spec.md §4.3):
// given an internal/ir.Plan and a decoded instance value, it walks the plan
// and reports first-failure (spec.md §4.4).
package validator

import (
	"errors"

	"github.com/correl/jsonschema/internal/ir"
)

// ErrStackOverflowGuard is the validation-time counterpart to
// internal/engine's decode-time guard (spec.md §5): it trips when the
// schema/instance recursion implied by nested applicators exceeds the
// configured bound, independent of how deeply the instance bytes
// themselves were nested during decoding.
var ErrStackOverflowGuard = errors.New("validator: stack depth guard tripped")

// FailInfo names the first keyword that failed, for diagnostics only (not
// part of the outcome contract -- spec.md §4.4).
type FailInfo struct {
	Path    string
	Keyword string
}

// evalResult threads "which children did this schema examine" one level
// up, so a parent's unevaluatedProperties/unevaluatedItems can tell which
// keys/indices a logical-group child (or a taken if/then/else branch)
// already evaluated (spec.md §4.2 step 4; §9's "one level deep" deviation).
type evalResult struct {
	objEvaluated map[string]bool
	arrEvaluated map[int]bool
}

func newEvalResult() *evalResult { return &evalResult{} }

func (e *evalResult) markKey(k string) {
	if e.objEvaluated == nil {
		e.objEvaluated = make(map[string]bool)
	}
	e.objEvaluated[k] = true
}

func (e *evalResult) keyEvaluated(k string) bool {
	return e != nil && e.objEvaluated != nil && e.objEvaluated[k]
}

func (e *evalResult) markIndex(i int) {
	if e.arrEvaluated == nil {
		e.arrEvaluated = make(map[int]bool)
	}
	e.arrEvaluated[i] = true
}

func (e *evalResult) indexEvaluated(i int) bool {
	return e != nil && e.arrEvaluated != nil && e.arrEvaluated[i]
}

func mergeEval(dst, src *evalResult) {
	if src == nil {
		return
	}
	for k := range src.objEvaluated {
		dst.markKey(k)
	}
	for i := range src.arrEvaluated {
		dst.markIndex(i)
	}
}

// Validate runs the compiled plan against one decoded instance value,
// spec.md §4.3's entry point.
func Validate(plan *ir.Plan, instance any, maxDepth int) (*FailInfo, error) {
	if len(plan.Keywords) == 1 && plan.Keywords[0].Kind == ir.KSchema {
		// A boolean root schema compiles to a single KSchema node.
		fail, _, err := ValidateSchema(plan.Keywords[0], instance, "/", 0, maxDepth)
		return fail, err
	}
	fail, _, err := validateSiblings(plan.Keywords, instance, "/", 0, maxDepth)
	return fail, err
}

// ValidateSchema runs a KSchema node (the unit every applicator's child
// slot holds) against one instance value.
func ValidateSchema(n *ir.Node, v any, path string, depth, maxDepth int) (*FailInfo, *evalResult, error) {
	if n == nil {
		return nil, nil, nil
	}
	if n.IsBoolForm {
		if n.Allowed {
			return nil, nil, nil
		}
		return &FailInfo{Path: path, Keyword: "false"}, nil, nil
	}
	return validateSiblings(n.Siblings, v, path, depth, maxDepth)
}

// validateSiblings is spec.md §4.3's validator loop for one compiled
// schema object against one instance position. Keywords are grouped by
// family and executed in a fixed, deterministic order chosen so that
// unevaluatedProperties/unevaluatedItems -- which must know what every
// other sibling (including the logical group) evaluated -- run last; this
// departs from the literal plan-array order for implementation
// convenience only (DESIGN.md), since spec.md §4.4 already makes the
// specific failing keyword a diagnostic, not a contractual, detail.
func validateSiblings(siblings []*ir.Node, v any, path string, depth, maxDepth int) (*FailInfo, *evalResult, error) {
	if maxDepth > 0 && depth > maxDepth {
		return nil, nil, ErrStackOverflowGuard
	}

	var (
		objHead, arrHead, containsNode, ifNode *ir.Node
		logical                                []*ir.Node
		rest                                   []*ir.Node
	)
	for _, n := range siblings {
		switch n.Kind {
		case ir.KProperties, ir.KPatternProperties, ir.KAdditionalProperties, ir.KUnevaluatedProperties:
			objHead = n
		case ir.KPrefixItems, ir.KItems, ir.KAdditionalItems, ir.KUnevaluatedItems:
			arrHead = n
		case ir.KContains:
			containsNode = n
		case ir.KIf:
			ifNode = n
		case ir.KAllOf, ir.KAnyOf, ir.KOneOf, ir.KNot:
			logical = append(logical, n)
		default:
			rest = append(rest, n)
		}
	}

	ev := newEvalResult()

	for _, n := range rest {
		if fail, err := validateAssertion(n, v, path, depth, maxDepth); fail != nil || err != nil {
			return fail, nil, err
		}
	}

	if containsNode != nil {
		fail, idxs, err := validateContains(containsNode, v, path, depth, maxDepth)
		if fail != nil || err != nil {
			return fail, nil, err
		}
		for _, i := range idxs {
			ev.markIndex(i)
		}
	}

	if ifNode != nil {
		fail, childEv, err := validateIf(ifNode, v, path, depth, maxDepth)
		if fail != nil || err != nil {
			return fail, nil, err
		}
		mergeEval(ev, childEv)
	}

	for _, n := range logical {
		fail, childEv, err := validateLogical(n, v, path, depth, maxDepth)
		if fail != nil || err != nil {
			return fail, nil, err
		}
		mergeEval(ev, childEv)
	}

	if objHead != nil {
		fail, objEv, err := validateObjectCluster(objHead, v, ev, path, depth, maxDepth)
		if fail != nil || err != nil {
			return fail, nil, err
		}
		mergeEval(ev, objEv)
	}

	if arrHead != nil {
		fail, arrEv, err := validateArrayCluster(arrHead, v, ev, path, depth, maxDepth)
		if fail != nil || err != nil {
			return fail, nil, err
		}
		mergeEval(ev, arrEv)
	}

	return nil, ev, nil
}
