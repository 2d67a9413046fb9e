package jsonschema

import (
	"errors"
	"fmt"

	"github.com/correl/jsonschema/i18n"
	eng "github.com/correl/jsonschema/internal/engine"
)

// CompileErrorKind is one of the three compile-time failure kinds spec.md
// §7 defines. Compilation aborts on the first one encountered.
type CompileErrorKind int

const (
	// InvalidValueForKeyword: the JSON value under a keyword does not
	// satisfy that keyword's parameter schema (wrong kind, negative where
	// non-negative required, malformed pattern, missing companion in
	// if/then/else, ...).
	InvalidValueForKeyword CompileErrorKind = iota
	// AllocationFailure: reserved for environments where schema
	// compilation can exhaust memory; no code path in this module
	// currently produces it.
	AllocationFailure
	// StackOverflowGuard: the depth guard tripped during compilation.
	StackOverflowGuard
)

func (k CompileErrorKind) String() string {
	switch k {
	case InvalidValueForKeyword:
		return "invalid_value_for_keyword"
	case AllocationFailure:
		return "allocation_failure"
	case StackOverflowGuard:
		return "stack_overflow_guard"
	default:
		return "unknown"
	}
}

// CompileError is the structured error compilation yields on failure (spec
// §6: "a compiled schema handle or a structured error
// {kind, offending_keyword_name}").
type CompileError struct {
	Kind    CompileErrorKind
	Keyword string
	Path    string
	Message string
}

func (e *CompileError) Error() string {
	if e.Keyword == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s at %s (keyword %q): %s", e.Kind, e.Path, e.Keyword, e.Message)
}

func newCompileError(kind CompileErrorKind, keyword, path string, format string, args ...any) *CompileError {
	return &CompileError{Kind: kind, Keyword: keyword, Path: path, Message: fmt.Sprintf(format, args...)}
}

// Outcome is one of the three validation outcomes spec.md §7 defines.
type Outcome int

const (
	Satisfied Outcome = iota
	NotSatisfied
	Fatal
)

func (o Outcome) String() string {
	switch o {
	case Satisfied:
		return "Satisfied"
	case NotSatisfied:
		return "NotSatisfied"
	case Fatal:
		return "Fatal"
	default:
		return "unknown"
	}
}

// Result is what Validate returns: the literal pass/fail verdict spec.md
// §6 requires, optionally accompanied by the failing keyword's name for
// diagnostics (not part of the contract callers may rely on for behavior).
type Result struct {
	Outcome        Outcome
	FailingKeyword string
}

// Issue codes. These key the i18n message table and double as the Code
// field on Issue; they are deliberately one step more granular than the
// three CompileErrorKind/Outcome values above, since they name the keyword
// family that produced the diagnostic.
const (
	CodeInvalidType          = "invalid_type"
	CodeRequired             = "required"
	CodeAdditionalProperty   = "additional_property"
	CodeUnevaluatedProperty  = "unevaluated_property"
	CodeAdditionalItem       = "additional_item"
	CodeUnevaluatedItem      = "unevaluated_item"
	CodeTooSmall             = "too_small"
	CodeTooBig               = "too_big"
	CodeTooShort             = "too_short"
	CodeTooLong              = "too_long"
	CodePattern              = "pattern"
	CodeInvalidConst         = "invalid_const"
	CodeInvalidEnum          = "invalid_enum"
	CodeMultipleOf           = "multiple_of"
	CodeUniqueness           = "uniqueness"
	CodeContains             = "contains"
	CodeAllOf                = "all_of"
	CodeAnyOf                = "any_of"
	CodeOneOf                = "one_of"
	CodeNot                  = "not"
	CodeIfThenElse           = "if_then_else"
	CodeDependentRequired    = "dependent_required"
	CodeStackOverflowGuard   = "stack_overflow_guard"
	CodeDuplicateKey         = "duplicate_key"
	CodeParseError           = "parse_error"
)

// Issue represents one diagnostic. Validation is first-failure (spec §4.4),
// so a successful Validate call never produces one and a failing call
// produces at most one; Issues stays plural for symmetry with the
// compile-error model and so a future non-first-failure mode has somewhere
// to put more than one.
type Issue struct {
	Path    string // JSON Pointer into the instance, e.g. /items/2/price
	Code    string
	Keyword string
	Message string
}

// Issues is a collection of validation diagnostics that implements error.
type Issues []Issue

// Error renders Issues as a single line. Validate is first-failure (spec
// §4.4): the zero- and one-element cases below are the only ones Validate
// itself ever produces. The multi-element case exists for a caller that
// builds an Issues value by hand out of several Validate calls (batching
// results together before reporting one combined error), so it names how
// many distinct failure kinds are involved rather than listing each one.
func (iss Issues) Error() string {
	switch len(iss) {
	case 0:
		return ""
	case 1:
		it := iss[0]
		if it.Keyword == "" {
			return fmt.Sprintf("%s at %s", it.Code, it.Path)
		}
		return fmt.Sprintf("%s at %s (keyword %q)", it.Code, it.Path, it.Keyword)
	default:
		kinds := make(map[string]struct{}, len(iss))
		for _, it := range iss {
			kinds[it.Code] = struct{}{}
		}
		return fmt.Sprintf("%d issues across %d kinds (%s, ...)", len(iss), len(kinds), iss[0].Code)
	}
}

// AsIssues recovers the Issues a failed Validate call returned. The common
// path is the direct type assertion: Validate always hands back an Issues
// value itself, never one wrapped with fmt.Errorf or similar, so paying for
// errors.As's reflection-based unwrap on every call would be wasted work.
// The fallback exists for callers joining a Validate error into a larger
// error chain (errors.Join, %w) before passing it to AsIssues.
func AsIssues(err error) (Issues, bool) {
	if iss, ok := err.(Issues); ok {
		return iss, true
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

func issueMessage(code string, params map[string]string) string { return i18n.T(code, params) }

func fromEngineIssueError(err error) (Issue, bool) {
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return Issue{Path: ie.SimpleIssue.Path, Code: ie.SimpleIssue.Code, Message: ie.SimpleIssue.Message}, true
	}
	return Issue{}, false
}
