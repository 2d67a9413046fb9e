package compiler

import (
	"strconv"

	"github.com/correl/jsonschema/internal/ir"
)

// buildLogicalGroup compiles allOf/anyOf/oneOf/not. Each is independently
// added to the plan; each of its child sub-schemas receives the parent's
// unevaluatedItems/unevaluatedProperties back-references, forwarded one
// level deep only -- a known deviation from draft 2020-12's full annotation
// propagation (spec.md §4.2 step 4, §9 open questions; DESIGN.md).
func (b *builder) buildLogicalGroup(obj map[string]any, path string, depth int, consumed map[string]bool, objUnevaluated, arrUnevaluated *ir.Node) ([]*ir.Node, error) {
	var out []*ir.Node

	build := func(keyword string, kind ir.Kind) error {
		v, ok := obj[keyword]
		if !ok {
			return nil
		}
		consumed[keyword] = true
		arr, ok := v.([]any)
		if !ok {
			return errInvalid(keyword, joinPath(path, keyword), "%s must be an array of schemas", keyword)
		}
		children := make([]*ir.Node, 0, len(arr))
		for i, e := range arr {
			sub, err := b.compileSub(e, joinPath(joinPath(path, keyword), strconv.Itoa(i)), depth+1)
			if err != nil {
				return err
			}
			forwardUnevaluated(sub, objUnevaluated, arrUnevaluated)
			children = append(children, sub)
		}
		out = append(out, b.reg(&ir.Node{Kind: kind, Name: keyword, Children: children}))
		return nil
	}

	if err := build("allOf", ir.KAllOf); err != nil {
		return nil, err
	}
	if err := build("anyOf", ir.KAnyOf); err != nil {
		return nil, err
	}
	if err := build("oneOf", ir.KOneOf); err != nil {
		return nil, err
	}

	if v, ok := obj["not"]; ok {
		consumed["not"] = true
		sub, err := b.compileSub(v, joinPath(path, "not"), depth+1)
		if err != nil {
			return nil, err
		}
		forwardUnevaluated(sub, objUnevaluated, arrUnevaluated)
		out = append(out, b.reg(&ir.Node{Kind: ir.KNot, Name: "not", Sub: sub}))
	}

	return out, nil
}

// forwardUnevaluated hands the parent's unevaluated* nodes to a freshly
// compiled child KSchema so the child's own chain heads can consult them
// when their own chain abstains on a key/index the child itself does not
// own.
func forwardUnevaluated(child *ir.Node, objUnevaluated, arrUnevaluated *ir.Node) {
	if child == nil || child.Kind != ir.KSchema {
		return
	}
	for _, sib := range child.Siblings {
		switch sib.Kind {
		case ir.KProperties, ir.KPatternProperties, ir.KAdditionalProperties:
			if sib.UnevaluatedProperties == nil && objUnevaluated != nil {
				tail := chainTail(sib)
				tail.UnevaluatedProperties = objUnevaluated
			}
		case ir.KPrefixItems, ir.KItems, ir.KAdditionalItems:
			if sib.UnevaluatedItems == nil && arrUnevaluated != nil {
				tail := chainTail(sib)
				tail.UnevaluatedItems = arrUnevaluated
			}
		}
	}
}

func chainTail(n *ir.Node) *ir.Node {
	for n.AlternateSchema != nil {
		n = n.AlternateSchema
	}
	return n
}



// buildContains compiles contains plus its dependent minContains/
// maxContains (spec.md §4.2 step 5): both are bound onto the contains node
// and removed from the sibling list, since they carry no independent
// semantics.
func (b *builder) buildContains(obj map[string]any, path string, depth int, consumed map[string]bool) (*ir.Node, error) {
	v, ok := obj["contains"]
	if !ok {
		return nil, nil
	}
	consumed["contains"] = true
	sub, err := b.compileSub(v, joinPath(path, "contains"), depth+1)
	if err != nil {
		return nil, err
	}

	minContains := 1
	maxContains := -1
	if mv, ok := obj["minContains"]; ok {
		consumed["minContains"] = true
		n, err := asNonNegInt("minContains", joinPath(path, "minContains"), mv)
		if err != nil {
			return nil, err
		}
		minContains = n
	}
	if mv, ok := obj["maxContains"]; ok {
		consumed["maxContains"] = true
		n, err := asNonNegInt("maxContains", joinPath(path, "maxContains"), mv)
		if err != nil {
			return nil, err
		}
		maxContains = n
	}

	return b.reg(&ir.Node{Kind: ir.KContains, Name: "contains", Sub: sub, MinContains: minContains, MaxContains: maxContains}), nil
}

// buildConditional compiles if/then/else (spec.md §4.2 step 6): it is a
// compile error for if to be absent while either branch is present, or for
// both branches to be absent when if is present.
func (b *builder) buildConditional(obj map[string]any, path string, depth int, consumed map[string]bool) (*ir.Node, error) {
	ifVal, hasIf := obj["if"]
	_, hasThen := obj["then"]
	_, hasElse := obj["else"]

	if !hasIf {
		if hasThen || hasElse {
			bad := "then"
			if hasElse {
				bad = "else"
			}
			return nil, errInvalid(bad, joinPath(path, bad), "%s present without if", bad)
		}
		return nil, nil
	}
	if !hasThen && !hasElse {
		return nil, errInvalid("if", joinPath(path, "if"), "if present without then or else")
	}

	consumed["if"] = true
	ifSub, err := b.compileSub(ifVal, joinPath(path, "if"), depth+1)
	if err != nil {
		return nil, err
	}

	var thenSub, elseSub *ir.Node
	if hasThen {
		consumed["then"] = true
		thenSub, err = b.compileSub(obj["then"], joinPath(path, "then"), depth+1)
		if err != nil {
			return nil, err
		}
	}
	if hasElse {
		consumed["else"] = true
		elseSub, err = b.compileSub(obj["else"], joinPath(path, "else"), depth+1)
		if err != nil {
			return nil, err
		}
	}

	return b.reg(&ir.Node{Kind: ir.KIf, Name: "if", Sub: ifSub, Then: thenSub, Else: elseSub}), nil
}
