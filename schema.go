// Package jsonschema compiles and evaluates JSON Schema draft 2020-12
// documents (spec.md). Compile produces a *Schema from schema bytes;
// (*Schema).Validate runs it against instance bytes.
package jsonschema

import (
	"errors"
	"fmt"

	"github.com/theory/jsonpath"
	"gopkg.in/yaml.v3"

	"github.com/correl/jsonschema/internal/compiler"
	eng "github.com/correl/jsonschema/internal/engine"
	"github.com/correl/jsonschema/internal/ir"
	"github.com/correl/jsonschema/internal/validator"
)

// Schema is a compiled, immutable schema handle (spec.md §6 "a compiled
// schema handle"). It is safe for concurrent use by multiple goroutines:
// validation only reads the plan compilation produced.
type Schema struct {
	plan *ir.Plan
}

// Compile decodes schemaBytes and runs the compiler (spec.md §4.2),
// returning a reusable Schema or a *CompileError describing the first
// offending keyword found.
func Compile(schemaBytes []byte, opts ...CompileOption) (*Schema, error) {
	cfg := newCompileConfig(opts)

	src := cfg.driver
	if src == nil {
		src = JSONBytes(schemaBytes)
	}
	enforced := eng.WrapWithEnforcement(engineTokenSource(src), eng.EnforceOptions{
		OnDuplicate: eng.DupError,
		MaxDepth:    cfg.maxDepth,
	})

	decoded, err := eng.DecodeAnyFromSource(enforced)
	if err != nil {
		if iss, ok := fromEngineIssueError(err); ok {
			kind := InvalidValueForKeyword
			if iss.Code == CodeStackOverflowGuard {
				kind = StackOverflowGuard
			}
			return nil, newCompileError(kind, "", iss.Path, iss.Message)
		}
		return nil, newCompileError(InvalidValueForKeyword, "", "/", "decoding schema document: %v", err)
	}

	plan, err := compiler.Compile(decoded, cfg.maxDepth)
	if err != nil {
		var cerr *compiler.Error
		if errors.As(err, &cerr) {
			return nil, &CompileError{Kind: fromCompilerKind(cerr.Kind), Keyword: cerr.Keyword, Path: cerr.Path, Message: cerr.Message}
		}
		return nil, newCompileError(InvalidValueForKeyword, "", "/", "%v", err)
	}

	return &Schema{plan: plan}, nil
}

func fromCompilerKind(k compiler.ErrorKind) CompileErrorKind {
	switch k {
	case compiler.KindAllocation:
		return AllocationFailure
	case compiler.KindStackOverflow:
		return StackOverflowGuard
	default:
		return InvalidValueForKeyword
	}
}

// Validate decodes instanceBytes and runs the compiled plan against it
// (spec.md §4.3), returning the pass/fail Result and, on failure, an error
// that satisfies AsIssues.
func (s *Schema) Validate(instanceBytes []byte, opts ...ValidateOption) (Result, error) {
	cfg := newValidateConfig(opts)

	src := cfg.driver
	if src == nil {
		src = JSONBytes(instanceBytes)
	}
	enforced := eng.WrapWithEnforcement(engineTokenSource(src), eng.EnforceOptions{
		OnDuplicate: eng.DupIgnore,
		MaxDepth:    cfg.maxDepth,
	})

	decoded, err := eng.DecodeAnyFromSource(enforced)
	if err != nil {
		if iss, ok := fromEngineIssueError(err); ok {
			return Result{Outcome: Fatal}, Issues{{Path: iss.Path, Code: iss.Code, Message: issueMessage(iss.Code, nil)}}
		}
		return Result{Outcome: Fatal}, fmt.Errorf("decoding instance document: %w", err)
	}

	fail, err := validator.Validate(s.plan, decoded, cfg.maxDepth)
	if err != nil {
		if errors.Is(err, validator.ErrStackOverflowGuard) {
			return Result{Outcome: Fatal}, Issues{{Path: "/", Code: CodeStackOverflowGuard, Message: issueMessage(CodeStackOverflowGuard, nil)}}
		}
		return Result{Outcome: Fatal}, err
	}
	if fail == nil {
		return Result{Outcome: Satisfied}, nil
	}

	code := codeForKeyword(fail.Keyword)
	issue := Issue{Path: fail.Path, Code: code, Keyword: fail.Keyword, Message: issueMessage(code, map[string]string{"keyword": fail.Keyword})}
	return Result{Outcome: NotSatisfied, FailingKeyword: fail.Keyword}, Issues{issue}
}

// codeForKeyword maps a failing keyword name to one of the Code* message
// keys. Keywords with no dedicated code (the properties/patternProperties/
// prefixItems/items chain members and a `false` sub-schema) fall back to
// CodeInvalidType; the Issue's Keyword field still names the keyword.
func codeForKeyword(keyword string) string {
	switch keyword {
	case "type":
		return CodeInvalidType
	case "required":
		return CodeRequired
	case "additionalProperties":
		return CodeAdditionalProperty
	case "unevaluatedProperties":
		return CodeUnevaluatedProperty
	case "additionalItems":
		return CodeAdditionalItem
	case "unevaluatedItems":
		return CodeUnevaluatedItem
	case "maximum", "exclusiveMaximum":
		return CodeTooBig
	case "minimum", "exclusiveMinimum":
		return CodeTooSmall
	case "maxLength", "maxItems", "maxProperties":
		return CodeTooLong
	case "minLength", "minItems", "minProperties":
		return CodeTooShort
	case "pattern", "propertyNames":
		return CodePattern
	case "const":
		return CodeInvalidConst
	case "enum":
		return CodeInvalidEnum
	case "multipleOf":
		return CodeMultipleOf
	case "uniqueItems":
		return CodeUniqueness
	case "contains", "minContains", "maxContains":
		return CodeContains
	case "allOf":
		return CodeAllOf
	case "anyOf":
		return CodeAnyOf
	case "oneOf":
		return CodeOneOf
	case "not":
		return CodeNot
	case "if":
		return CodeIfThenElse
	case "dependentRequired":
		return CodeDependentRequired
	default:
		return CodeInvalidType
	}
}

// LoadSchemaYAML converts a YAML schema document into the JSON bytes Compile
// expects (SPEC_FULL.md §2.2), so a schema author can write YAML and still
// go through the one decode/compile path.
func LoadSchemaYAML(yamlBytes []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(yamlBytes, &v); err != nil {
		return nil, fmt.Errorf("parsing YAML schema: %w", err)
	}
	return marshalJSONDriver(v)
}

// JSONPath renders an Issue's Path (a JSON Pointer) as a RFC 9535 JSONPath
// query (SPEC_FULL.md §2.4), for tooling that wants to re-select the
// offending value rather than just display the pointer.
func (iss Issue) JSONPath() (*jsonpath.Path, error) {
	expr := "$"
	for _, tok := range splitJSONPointer(iss.Path) {
		if idx, ok := asArrayIndex(tok); ok {
			expr += fmt.Sprintf("[%d]", idx)
			continue
		}
		expr += "[" + quoteJSONPathKey(tok) + "]"
	}
	return jsonpath.Parse(expr)
}
