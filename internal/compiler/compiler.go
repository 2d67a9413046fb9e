// Package compiler implements the schema compiler and dependency-wiring
// pass (spec.md §4.2): it walks a decoded schema value and produces an
// internal/ir.Plan the validator can run against a decoded instance.
package compiler

import (
	"encoding/json"
	"fmt"
	"sort"

	eng "github.com/correl/jsonschema/internal/engine"
	"github.com/correl/jsonschema/internal/ir"
)

// ErrorKind mirrors the three compile-error kinds spec.md §7 defines,
// without the root package's i18n/formatting baggage; jsonschema.Compile
// converts an *Error into its own *CompileError.
type ErrorKind int

const (
	KindInvalidValue ErrorKind = iota
	KindAllocation
	KindStackOverflow
)

// Error is the structured compile-time failure the compiler package raises.
type Error struct {
	Kind    ErrorKind
	Keyword string
	Path    string
	Message string
}

func (e *Error) Error() string {
	if e.Keyword == "" {
		return fmt.Sprintf("compile error at %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("compile error at %s (keyword %q): %s", e.Path, e.Keyword, e.Message)
}

func errInvalid(keyword, path, format string, args ...any) *Error {
	return &Error{Kind: KindInvalidValue, Keyword: keyword, Path: path, Message: fmt.Sprintf(format, args...)}
}

func errStackOverflow(path string) *Error {
	return &Error{Kind: KindStackOverflow, Path: path, Message: "maximum schema nesting depth exceeded"}
}

// builder accumulates every node transitively created while compiling one
// top-level Compile call, so the resulting Plan can report the flat
// `all_keywords` registry spec.md §3 describes.
type builder struct {
	maxDepth int
	all      []*ir.Node
}

func (b *builder) reg(n *ir.Node) *ir.Node {
	b.all = append(b.all, n)
	return n
}

// Compile walks a decoded schema value (expected to be a JSON object; see
// spec.md §6 "Inputs") and produces the wired evaluation plan.
func Compile(schema any, maxDepth int) (*ir.Plan, error) {
	b := &builder{maxDepth: maxDepth}
	obj, ok := schema.(map[string]any)
	if !ok {
		if bv, isBool := schema.(bool); isBool {
			node := b.reg(ir.BoolSchema(bv))
			return &ir.Plan{Keywords: []*ir.Node{node}, All: b.all}, nil
		}
		return nil, errInvalid("", "/", "schema document must be a JSON object or boolean")
	}
	siblings, err := b.compileObject(obj, "/", 0)
	if err != nil {
		return nil, err
	}
	return &ir.Plan{Keywords: siblings, All: b.all}, nil
}

// compileSub compiles one sub-schema slot (a child of an applicator
// keyword), which per JSON Schema may be the boolean shorthand or a nested
// schema object.
func (b *builder) compileSub(val any, path string, depth int) (*ir.Node, error) {
	switch v := val.(type) {
	case bool:
		return b.reg(ir.BoolSchema(v)), nil
	case map[string]any:
		siblings, err := b.compileObject(v, path, depth)
		if err != nil {
			return nil, err
		}
		return b.reg(ir.ObjectSchema(siblings)), nil
	default:
		return nil, errInvalid("", path, "sub-schema must be an object or boolean, got %T", v)
	}
}

// compileObject compiles the siblings of one schema object and runs the
// dependency-wiring pass over them (spec.md §4.2), returning the resulting
// evaluation plan (only chain heads and pass-through/logical/contains/
// conditional nodes -- the tails of the property/array chains are reached
// transitively via AlternateSchema).
func (b *builder) compileObject(obj map[string]any, path string, depth int) ([]*ir.Node, error) {
	if b.maxDepth > 0 && depth > b.maxDepth {
		return nil, errStackOverflow(path)
	}

	consumed := make(map[string]bool)

	objNode, objUnevaluated, err := b.buildObjectCluster(obj, path, depth, consumed)
	if err != nil {
		return nil, err
	}
	arrNode, arrUnevaluated, err := b.buildArrayCluster(obj, path, depth, consumed)
	if err != nil {
		return nil, err
	}
	containsNode, err := b.buildContains(obj, path, depth, consumed)
	if err != nil {
		return nil, err
	}
	ifNode, err := b.buildConditional(obj, path, depth, consumed)
	if err != nil {
		return nil, err
	}
	logical, err := b.buildLogicalGroup(obj, path, depth, consumed, objUnevaluated, arrUnevaluated)
	if err != nil {
		return nil, err
	}

	var plan []*ir.Node
	if objNode != nil {
		plan = append(plan, objNode)
	}
	if arrNode != nil {
		plan = append(plan, arrNode)
	}
	plan = append(plan, logical...)
	if containsNode != nil {
		plan = append(plan, containsNode)
	}
	if ifNode != nil {
		plan = append(plan, ifNode)
	}

	passthrough, err := b.buildPassthrough(obj, path, depth, consumed)
	if err != nil {
		return nil, err
	}
	plan = append(plan, passthrough...)

	return plan, nil
}

func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// asNonNegInt validates that v is a JSON number with no fractional part and
// a non-negative value, returning it as an int (spec.md §4.1's "non-negative
// integer" parameter kind for maxLength/minLength/maxItems/minItems/
// maxProperties/minProperties/minContains/maxContains).
func asNonNegInt(keyword, path string, v any) (int, error) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, errInvalid(keyword, path, "%s must be a non-negative integer", keyword)
	}
	if !eng.IsIntegerNumber(n) {
		return 0, errInvalid(keyword, path, "%s must be an integer", keyword)
	}
	f, err := n.Int64()
	if err != nil || f < 0 {
		return 0, errInvalid(keyword, path, "%s must be a non-negative integer", keyword)
	}
	return int(f), nil
}

func asStringArray(keyword, path string, v any) ([]string, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, errInvalid(keyword, path, "%s must be an array of strings", keyword)
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		s, ok := e.(string)
		if !ok {
			return nil, errInvalid(keyword, path, "%s must be an array of strings", keyword)
		}
		out = append(out, s)
	}
	return out, nil
}

func joinPath(base, seg string) string {
	if base == "/" || base == "" {
		return "/" + seg
	}
	return base + "/" + seg
}
