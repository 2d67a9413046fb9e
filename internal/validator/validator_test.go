package validator

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/correl/jsonschema/internal/compiler"
	"github.com/correl/jsonschema/internal/ir"
)

func compileSchema(t *testing.T, src string) *ir.Plan {
	t.Helper()
	var v any
	dec := json.NewDecoder(strings.NewReader(src))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		t.Fatalf("decoding schema %q: %v", src, err)
	}
	plan, err := compiler.Compile(v, 64)
	if err != nil {
		t.Fatalf("compiling schema %q: %v", src, err)
	}
	return plan
}

func decodeInstance(t *testing.T, src string) any {
	t.Helper()
	var v any
	dec := json.NewDecoder(strings.NewReader(src))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		t.Fatalf("decoding instance %q: %v", src, err)
	}
	return v
}

func TestValidate_TypeMismatch(t *testing.T) {
	p := compileSchema(t, `{"type": "string"}`)
	fail, err := Validate(p, decodeInstance(t, `42`), 64)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if fail == nil || fail.Keyword != "type" {
		t.Fatalf("expected a type failure, got %+v", fail)
	}
}

func TestValidate_RequiredSatisfied(t *testing.T) {
	p := compileSchema(t, `{"required": ["a", "b"]}`)
	fail, err := Validate(p, decodeInstance(t, `{"a": 1, "b": 2}`), 64)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if fail != nil {
		t.Fatalf("expected success, got failure on %q", fail.Keyword)
	}
}

func TestValidate_RequiredMissing(t *testing.T) {
	p := compileSchema(t, `{"required": ["a", "b"]}`)
	fail, err := Validate(p, decodeInstance(t, `{"a": 1}`), 64)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if fail == nil || fail.Keyword != "required" {
		t.Fatalf("expected a required failure, got %+v", fail)
	}
}

func TestValidate_AdditionalPropertiesFalse(t *testing.T) {
	p := compileSchema(t, `{"properties": {"a": {"type": "string"}}, "additionalProperties": false}`)

	if fail, err := Validate(p, decodeInstance(t, `{"a": "x"}`), 64); err != nil || fail != nil {
		t.Fatalf("expected success, got fail=%+v err=%v", fail, err)
	}
	fail, err := Validate(p, decodeInstance(t, `{"a": "x", "b": 1}`), 64)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if fail == nil || fail.Keyword != "additionalProperties" {
		t.Fatalf("expected additionalProperties failure, got %+v", fail)
	}
}

func TestValidate_UnevaluatedPropertiesRespectsAllOf(t *testing.T) {
	p := compileSchema(t, `{
		"allOf": [{"properties": {"a": {"type": "string"}}}],
		"unevaluatedProperties": false
	}`)

	if fail, err := Validate(p, decodeInstance(t, `{"a": "x"}`), 64); err != nil || fail != nil {
		t.Fatalf("expected success, got fail=%+v err=%v", fail, err)
	}
	fail, err := Validate(p, decodeInstance(t, `{"a": "x", "b": 1}`), 64)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if fail == nil || fail.Keyword != "unevaluatedProperties" {
		t.Fatalf("expected unevaluatedProperties failure, got %+v", fail)
	}
}

func TestValidate_IfThenElse(t *testing.T) {
	p := compileSchema(t, `{
		"if": {"properties": {"kind": {"const": "a"}}},
		"then": {"required": ["x"]},
		"else": {"required": ["y"]}
	}`)

	if fail, err := Validate(p, decodeInstance(t, `{"kind": "a", "x": 1}`), 64); err != nil || fail != nil {
		t.Fatalf("expected then-branch success, got fail=%+v err=%v", fail, err)
	}
	if fail, err := Validate(p, decodeInstance(t, `{"kind": "b", "y": 1}`), 64); err != nil || fail != nil {
		t.Fatalf("expected else-branch success, got fail=%+v err=%v", fail, err)
	}
	fail, err := Validate(p, decodeInstance(t, `{"kind": "a"}`), 64)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if fail == nil {
		t.Fatalf("expected then-branch failure when x is missing")
	}
}

func TestValidate_ContainsMinMax(t *testing.T) {
	p := compileSchema(t, `{"contains": {"type": "number"}, "minContains": 2, "maxContains": 3}`)

	if fail, err := Validate(p, decodeInstance(t, `[1, "x", 2]`), 64); err != nil || fail != nil {
		t.Fatalf("expected success, got fail=%+v err=%v", fail, err)
	}
	fail, err := Validate(p, decodeInstance(t, `["x", 1]`), 64)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if fail == nil || fail.Keyword != "contains" {
		t.Fatalf("expected a contains failure, got %+v", fail)
	}
}

func TestValidate_OneOfExactlyOne(t *testing.T) {
	p := compileSchema(t, `{"oneOf": [{"type": "string"}, {"type": "number"}]}`)

	if fail, err := Validate(p, decodeInstance(t, `"x"`), 64); err != nil || fail != nil {
		t.Fatalf("expected success, got fail=%+v err=%v", fail, err)
	}
	fail, err := Validate(p, decodeInstance(t, `true`), 64)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if fail == nil || fail.Keyword != "oneOf" {
		t.Fatalf("expected oneOf failure for a value matching neither branch, got %+v", fail)
	}
}

func TestValidate_UniqueItems(t *testing.T) {
	p := compileSchema(t, `{"uniqueItems": true}`)

	if fail, err := Validate(p, decodeInstance(t, `[1, 2, 3]`), 64); err != nil || fail != nil {
		t.Fatalf("expected success, got fail=%+v err=%v", fail, err)
	}
	fail, err := Validate(p, decodeInstance(t, `[1, 2, 1]`), 64)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if fail == nil || fail.Keyword != "uniqueItems" {
		t.Fatalf("expected uniqueItems failure, got %+v", fail)
	}
}

func TestValidate_MultipleOfExactDecimal(t *testing.T) {
	p := compileSchema(t, `{"multipleOf": 0.1}`)
	if fail, err := Validate(p, decodeInstance(t, `0.3`), 64); err != nil || fail != nil {
		t.Fatalf("expected 0.3 to be an exact multiple of 0.1, got fail=%+v err=%v", fail, err)
	}
}

func TestValidate_StackOverflowGuard(t *testing.T) {
	p := compileSchema(t, `{"properties": {"a": {"properties": {"b": {"type": "string"}}}}}`)
	_, err := Validate(p, decodeInstance(t, `{"a": {"b": "x"}}`), 1)
	if err != ErrStackOverflowGuard {
		t.Fatalf("expected ErrStackOverflowGuard, got %v", err)
	}
}

// spec.md §8 scenario 2: prefixItems covers the first k positions, items
// covers the rest via the array chain's AlternateSchema.
func TestValidate_PrefixItemsThenItems(t *testing.T) {
	p := compileSchema(t, `{
		"type": "array",
		"prefixItems": [{"type": "string"}, {"type": "number"}],
		"items": {"type": "boolean"}
	}`)
	if fail, err := Validate(p, decodeInstance(t, `["a", 1, true, false]`), 64); err != nil || fail != nil {
		t.Fatalf("expected success, got fail=%+v err=%v", fail, err)
	}
	fail, err := Validate(p, decodeInstance(t, `["a", 1, true, 0]`), 64)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if fail == nil || fail.Keyword != "items" {
		t.Fatalf("expected an items failure on the trailing 0, got %+v", fail)
	}
}

// spec.md §8 scenario 3: properties/patternProperties/additionalProperties
// fallback ordering.
func TestValidate_PropertiesPatternPropertiesAdditionalProperties(t *testing.T) {
	p := compileSchema(t, `{
		"type": "object",
		"properties": {"a": {"type": "integer"}},
		"patternProperties": {"^x": {"type": "string"}},
		"additionalProperties": false
	}`)
	if fail, err := Validate(p, decodeInstance(t, `{"a": 1, "x1": "ok"}`), 64); err != nil || fail != nil {
		t.Fatalf("expected success, got fail=%+v err=%v", fail, err)
	}
	fail, err := Validate(p, decodeInstance(t, `{"a": 1, "y": 2}`), 64)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if fail == nil || fail.Keyword != "additionalProperties" {
		t.Fatalf("expected additionalProperties failure for the unmatched key 'y', got %+v", fail)
	}
}

// spec.md §8 scenario 4: contains/minContains without maxContains.
func TestValidate_ContainsMinOnly(t *testing.T) {
	p := compileSchema(t, `{"contains": {"const": 7}, "minContains": 2}`)
	if fail, err := Validate(p, decodeInstance(t, `[1, 7, 2, 7]`), 64); err != nil || fail != nil {
		t.Fatalf("expected success, got fail=%+v err=%v", fail, err)
	}
	fail, err := Validate(p, decodeInstance(t, `[1, 7, 2]`), 64)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if fail == nil || fail.Keyword != "contains" {
		t.Fatalf("expected a contains failure, got %+v", fail)
	}
}

// spec.md §8 scenario 5: the if/then/else copy-paste bug spec.md §9 flags
// must not regress -- else must actually run the else branch, not re-test
// then.
func TestValidate_IfThenElse_ElseBranchActuallyRuns(t *testing.T) {
	p := compileSchema(t, `{
		"if": {"type": "string"},
		"then": {"minLength": 3},
		"else": {"type": "number"}
	}`)
	fail, err := Validate(p, decodeInstance(t, `"ab"`), 64)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if fail == nil {
		t.Fatalf("expected then-branch failure for a too-short string")
	}
	if fail, err := Validate(p, decodeInstance(t, `"abc"`), 64); err != nil || fail != nil {
		t.Fatalf("expected success, got fail=%+v err=%v", fail, err)
	}
	if fail, err := Validate(p, decodeInstance(t, `42`), 64); err != nil || fail != nil {
		t.Fatalf("expected else-branch (number) success, got fail=%+v err=%v", fail, err)
	}
	fail, err = Validate(p, decodeInstance(t, `true`), 64)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if fail == nil {
		t.Fatalf("expected else-branch failure for a boolean instance (not a number)")
	}
}

// spec.md §8 scenario 6 and the "normalization" invariant: uniqueItems
// treats different kinds as distinct, numeric values as equal under
// canonical-decimal normalization regardless of literal spelling, and
// object equality as key-order-independent.
func TestValidate_UniqueItemsNormalization(t *testing.T) {
	p := compileSchema(t, `{"uniqueItems": true}`)

	if fail, err := Validate(p, decodeInstance(t, `[1, "1"]`), 64); err != nil || fail != nil {
		t.Fatalf("expected success: different kinds are never equal, got fail=%+v err=%v", fail, err)
	}
	fail, err := Validate(p, decodeInstance(t, `[1, 1.0]`), 64)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if fail == nil || fail.Keyword != "uniqueItems" {
		t.Fatalf("expected 1 and 1.0 to normalize equal, got %+v", fail)
	}
	fail, err = Validate(p, decodeInstance(t, `[{"a":1,"b":2},{"b":2,"a":1}]`), 64)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if fail == nil || fail.Keyword != "uniqueItems" {
		t.Fatalf("expected object key-order to be irrelevant under normalization, got %+v", fail)
	}
}

// spec.md §8 "Empty-applicator identity": allOf: [] is Satisfied, anyOf: []
// and oneOf: [] are NotSatisfied, not: {} is NotSatisfied.
func TestValidate_EmptyApplicatorIdentity(t *testing.T) {
	if fail, err := Validate(compileSchema(t, `{"allOf": []}`), decodeInstance(t, `1`), 64); err != nil || fail != nil {
		t.Fatalf("allOf: [] should be vacuously satisfied, got fail=%+v err=%v", fail, err)
	}
	fail, err := Validate(compileSchema(t, `{"anyOf": []}`), decodeInstance(t, `1`), 64)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if fail == nil || fail.Keyword != "anyOf" {
		t.Fatalf("anyOf: [] should never be satisfied, got %+v", fail)
	}
	fail, err = Validate(compileSchema(t, `{"oneOf": []}`), decodeInstance(t, `1`), 64)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if fail == nil || fail.Keyword != "oneOf" {
		t.Fatalf("oneOf: [] should never be satisfied, got %+v", fail)
	}
	fail, err = Validate(compileSchema(t, `{"not": {}}`), decodeInstance(t, `1`), 64)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if fail == nil || fail.Keyword != "not" {
		t.Fatalf("not: {} (empty sub-schema always passes) should always fail, got %+v", fail)
	}
}

// spec.md §8 "Abstention": an assertion keyword whose target kind does not
// match the instance kind is always Satisfied, regardless of the parameter.
func TestValidate_AbstentionOnMismatchedKind(t *testing.T) {
	cases := []struct {
		schema, instance string
	}{
		{`{"minLength": 10}`, `42`},
		{`{"minimum": 1000}`, `"not a number"`},
		{`{"minItems": 10}`, `{}`},
		{`{"required": ["x"]}`, `[1,2,3]`},
		{`{"pattern": "^impossible$"}`, `true`},
	}
	for _, c := range cases {
		p := compileSchema(t, c.schema)
		fail, err := Validate(p, decodeInstance(t, c.instance), 64)
		if err != nil {
			t.Fatalf("Validate(%s, %s): %v", c.schema, c.instance, err)
		}
		if fail != nil {
			t.Fatalf("expected abstention (Satisfied) for schema %s against instance %s, got fail=%+v", c.schema, c.instance, fail)
		}
	}
}
