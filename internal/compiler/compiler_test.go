package compiler

import (
	"encoding/json"
	"strings"
	"testing"
)

func mustDecode(t *testing.T, src string) any {
	t.Helper()
	var v any
	dec := json.NewDecoder(strings.NewReader(src))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		t.Fatalf("decoding %q: %v", src, err)
	}
	return v
}

func TestCompile_BooleanSchema(t *testing.T) {
	plan, err := Compile(true, 64)
	if err != nil {
		t.Fatalf("Compile(true): %v", err)
	}
	if len(plan.Keywords) != 1 || !plan.Keywords[0].IsBoolForm || !plan.Keywords[0].Allowed {
		t.Fatalf("expected a single permissive KSchema node, got %+v", plan.Keywords)
	}

	plan, err = Compile(false, 64)
	if err != nil {
		t.Fatalf("Compile(false): %v", err)
	}
	if len(plan.Keywords) != 1 || !plan.Keywords[0].IsBoolForm || plan.Keywords[0].Allowed {
		t.Fatalf("expected a single rejecting KSchema node, got %+v", plan.Keywords)
	}
}

func TestCompile_RejectsNonObjectNonBool(t *testing.T) {
	if _, err := Compile(mustDecode(t, `"nope"`), 64); err == nil {
		t.Fatalf("expected an error compiling a bare string")
	}
}

func TestCompile_SimpleObjectSchema(t *testing.T) {
	schema := mustDecode(t, `{"type": "string", "minLength": 2}`)
	plan, err := Compile(schema, 64)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(plan.Keywords) != 2 {
		t.Fatalf("expected 2 compiled keywords, got %d: %+v", len(plan.Keywords), plan.Keywords)
	}
}

func TestCompile_MultipleOfRejectsNonPositive(t *testing.T) {
	schema := mustDecode(t, `{"multipleOf": 0}`)
	if _, err := Compile(schema, 64); err == nil {
		t.Fatalf("expected multipleOf: 0 to be a compile error")
	}
}

func TestCompile_ThenWithoutIfIsError(t *testing.T) {
	schema := mustDecode(t, `{"then": {"type": "string"}}`)
	if _, err := Compile(schema, 64); err == nil {
		t.Fatalf("expected then-without-if to be a compile error")
	}
}

func TestCompile_IfWithoutThenOrElseIsError(t *testing.T) {
	schema := mustDecode(t, `{"if": {"type": "string"}}`)
	if _, err := Compile(schema, 64); err == nil {
		t.Fatalf("expected if-without-then/else to be a compile error")
	}
}

func TestCompile_StackOverflowGuard(t *testing.T) {
	schema := mustDecode(t, `{"properties": {"a": {"properties": {"b": {"type": "string"}}}}}`)
	if _, err := Compile(schema, 1); err == nil {
		t.Fatalf("expected maxDepth=1 to trip the stack overflow guard on nested properties")
	}
}

func TestCompile_PatternPropertiesInvalidRegex(t *testing.T) {
	schema := mustDecode(t, `{"patternProperties": {"(": {"type": "string"}}}`)
	if _, err := Compile(schema, 64); err == nil {
		t.Fatalf("expected an invalid regex in patternProperties to be a compile error")
	}
}
