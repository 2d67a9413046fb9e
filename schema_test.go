package jsonschema

import "testing"

func TestCompileAndValidate_Satisfied(t *testing.T) {
	schema, err := Compile([]byte(`{
		"type": "object",
		"properties": {"name": {"type": "string"}, "age": {"type": "integer", "minimum": 0}},
		"required": ["name"]
	}`))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	result, err := schema.Validate([]byte(`{"name": "Ada", "age": 30}`))
	if err != nil {
		t.Fatalf("Validate returned an error for a satisfying instance: %v", err)
	}
	if result.Outcome != Satisfied {
		t.Fatalf("expected Satisfied, got %v", result.Outcome)
	}
}

func TestCompileAndValidate_NotSatisfied(t *testing.T) {
	schema, err := Compile([]byte(`{"type": "object", "required": ["name"]}`))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	result, err := schema.Validate([]byte(`{}`))
	if result.Outcome != NotSatisfied {
		t.Fatalf("expected NotSatisfied, got %v (err=%v)", result.Outcome, err)
	}
	issues, ok := AsIssues(err)
	if !ok || len(issues) != 1 {
		t.Fatalf("expected exactly one Issue, got %+v (ok=%v)", issues, ok)
	}
	if issues[0].Path != "/" {
		t.Fatalf("expected the failure to point at the root, got %q", issues[0].Path)
	}
}

func TestCompile_InvalidSchemaYieldsCompileError(t *testing.T) {
	_, err := Compile([]byte(`{"multipleOf": -1}`))
	if err == nil {
		t.Fatalf("expected an error compiling multipleOf: -1")
	}
	var cerr *CompileError
	if ce, ok := err.(*CompileError); !ok {
		t.Fatalf("expected a *CompileError, got %T", err)
	} else {
		cerr = ce
	}
	if cerr.Kind != InvalidValueForKeyword {
		t.Fatalf("expected InvalidValueForKeyword, got %v", cerr.Kind)
	}
}

func TestCompile_MalformedJSONIsCompileError(t *testing.T) {
	if _, err := Compile([]byte(`{"type": `)); err == nil {
		t.Fatalf("expected an error for truncated JSON")
	}
}

func TestCompile_DuplicateKeyIsRejected(t *testing.T) {
	_, err := Compile([]byte(`{"type": "string", "type": "number"}`))
	if err == nil {
		t.Fatalf("expected duplicate top-level keys to be rejected")
	}
	cerr, ok := err.(*CompileError)
	if !ok {
		t.Fatalf("expected a *CompileError, got %T", err)
	}
	if cerr.Kind != InvalidValueForKeyword {
		t.Fatalf("expected a duplicate key to report InvalidValueForKeyword, not %v", cerr.Kind)
	}
}

func TestCompile_StackOverflowGuardDuringDecodeReportsStackOverflowGuard(t *testing.T) {
	_, err := Compile([]byte(`{"properties": {"a": {"properties": {"b": {"type": "string"}}}}}`), WithMaxDepth(2))
	if err == nil {
		t.Fatalf("expected deeply nested schema bytes to trip the decode-time depth guard")
	}
	cerr, ok := err.(*CompileError)
	if !ok {
		t.Fatalf("expected a *CompileError, got %T", err)
	}
	if cerr.Kind != StackOverflowGuard {
		t.Fatalf("expected StackOverflowGuard, got %v", cerr.Kind)
	}
}

func TestValidate_StackOverflowGuardSurfacesAsFatal(t *testing.T) {
	schema, err := Compile([]byte(`{"type": "object"}`), WithMaxDepth(2))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	result, err := schema.Validate([]byte(`{"a": {"b": {"c": 1}}}`), WithValidateMaxDepth(2))
	if result.Outcome != Fatal {
		t.Fatalf("expected Fatal outcome for a deeply nested instance, got %v (err=%v)", result.Outcome, err)
	}
}

func TestLoadSchemaYAML_RoundTripsToJSON(t *testing.T) {
	jsonBytes, err := LoadSchemaYAML([]byte("type: string\nminLength: 3\n"))
	if err != nil {
		t.Fatalf("LoadSchemaYAML: %v", err)
	}
	schema, err := Compile(jsonBytes)
	if err != nil {
		t.Fatalf("Compile(LoadSchemaYAML output): %v", err)
	}
	result, err := schema.Validate([]byte(`"hi there"`))
	if result.Outcome != Satisfied {
		t.Fatalf("expected Satisfied, got %v (err=%v)", result.Outcome, err)
	}
}

func TestIssue_JSONPath(t *testing.T) {
	iss := Issue{Path: "/items/2/price"}
	p, err := iss.JSONPath()
	if err != nil {
		t.Fatalf("JSONPath: %v", err)
	}
	if p == nil {
		t.Fatalf("expected a non-nil parsed path")
	}
}
