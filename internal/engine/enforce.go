package engine

import (
	"errors"
	"strconv"
	"strings"
)

// DuplicateStrictness controls how a repeated object key is handled while
// decoding a schema or an instance document.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupError
)

// SimpleIssue is a minimal issue representation used by the enforcement
// layer; the root package's error model converts these into its own Issue
// type so internal/engine never imports outward.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
}

// ErrStackOverflowGuard is returned, wrapped in an IssueError, when the
// configured recursion bound (schema nesting depth during compilation, or
// instance nesting depth during validation) is exceeded. It is the concrete
// form of spec §5's "dedicated error kind" for the stack-depth guard, the
// sole denial-of-service defense the core provides.
var ErrStackOverflowGuard = errors.New("engine: stack depth guard tripped")

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type dupFrame struct {
	kind         containerKind
	keys         map[string]struct{}
	expectingKey bool
	path         string
	nextIndex    int
	pendingKey   string
}

// IssueError is a lightweight error carrying a SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.SimpleIssue.Message }

func (e IssueError) Unwrap() error {
	if e.SimpleIssue.Code == "stack_overflow_guard" {
		return ErrStackOverflowGuard
	}
	return nil
}

// EnforceOptions controls runtime enforcement behavior.
type EnforceOptions struct {
	OnDuplicate DuplicateStrictness
	MaxDepth    int
}

// WrapWithEnforcement returns a TokenSource that enforces duplicate-key
// policy and the maximum nesting depth (spec §5's stack-depth guard),
// tracking a JSON-Pointer path for diagnostics as it goes.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	return &enforcingTokenSource{inner: inner, opt: opt}
}

type enforcingTokenSource struct {
	inner TokenSource
	opt   EnforceOptions
	stack []dupFrame
	depth int
	path  string
}

func (e *enforcingTokenSource) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}

	path := e.currentPathForToken(tok)
	npath := normalizeIssuePath(path)

	switch tok.Kind {
	case KindBeginObject:
		e.stack = append(e.stack, dupFrame{kind: kindObject, keys: make(map[string]struct{}), expectingKey: true, path: path})
		e.depth++
		if e.opt.MaxDepth > 0 && e.depth > e.opt.MaxDepth {
			return Token{}, IssueError{SimpleIssue{Code: "stack_overflow_guard", Path: npath, Message: "max nesting depth exceeded"}}
		}
	case KindEndObject:
		e.popFrame()
	case KindBeginArray:
		e.stack = append(e.stack, dupFrame{kind: kindArray, path: path})
		e.depth++
		if e.opt.MaxDepth > 0 && e.depth > e.opt.MaxDepth {
			return Token{}, IssueError{SimpleIssue{Code: "stack_overflow_guard", Path: npath, Message: "max nesting depth exceeded"}}
		}
	case KindEndArray:
		e.popFrame()
	case KindKey:
		if n := len(e.stack); n > 0 {
			top := &e.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				if e.opt.OnDuplicate == DupError {
					if _, ok := top.keys[tok.String]; ok {
						msg := "key '" + tok.String + "' duplicated"
						return Token{}, IssueError{SimpleIssue{Code: "duplicate_key", Path: npath, Message: msg}}
					}
				}
				top.keys[tok.String] = struct{}{}
				top.expectingKey = false
				top.pendingKey = tok.String
			}
		}
	case KindString, KindNumber, KindBool, KindNull:
		if n := len(e.stack); n > 0 {
			top := &e.stack[n-1]
			if top.kind == kindObject && !top.expectingKey {
				top.expectingKey = true
				top.pendingKey = ""
			}
		}
	}

	return tok, nil
}

func (e *enforcingTokenSource) popFrame() {
	if n := len(e.stack); n > 0 {
		e.stack = e.stack[:n-1]
	}
	if e.depth > 0 {
		e.depth--
	}
	if n := len(e.stack); n > 0 {
		top := &e.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
			top.pendingKey = ""
		}
	}
}

func (e *enforcingTokenSource) currentPathForToken(tok Token) string {
	var path string
	if len(e.stack) == 0 {
		switch tok.Kind {
		case KindKey:
			path = joinJSONPointer("", tok.String)
		default:
			path = ""
		}
		e.path = path
		return path
	}

	top := &e.stack[len(e.stack)-1]
	switch tok.Kind {
	case KindKey:
		path = joinJSONPointer(top.path, tok.String)
		top.pendingKey = tok.String
	case KindBeginObject, KindBeginArray, KindString, KindNumber, KindBool, KindNull:
		switch top.kind {
		case kindArray:
			path = joinJSONPointer(top.path, strconv.Itoa(top.nextIndex))
			top.nextIndex++
		case kindObject:
			if top.pendingKey != "" || !top.expectingKey {
				path = joinJSONPointer(top.path, top.pendingKey)
			} else {
				path = top.path
			}
		}
	default:
		path = top.path
	}

	e.path = path
	return path
}

func normalizeIssuePath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

var jsonPointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func escapeJSONPointerToken(s string) string {
	return jsonPointerEscaper.Replace(s)
}

func joinJSONPointer(base, token string) string {
	if base == "" {
		return "/" + escapeJSONPointerToken(token)
	}
	return base + "/" + escapeJSONPointerToken(token)
}

func (e *enforcingTokenSource) Location() int64 { return e.inner.Location() }
