//go:build gojson

package gojson

import (
	"bytes"
	"io"

	j "github.com/goccy/go-json"

	jsonschema "github.com/correl/jsonschema"
	eng "github.com/correl/jsonschema/internal/engine"
)

// Driver returns a jsonschema.JSONDriver backed by goccy/go-json, selected
// by the `gojson` build tag or an explicit WithJSONDriver/
// WithValidateJSONDriver option (SPEC_FULL.md §2.1).
func Driver() jsonschema.JSONDriver { return driverGoJSON{} }

type driverGoJSON struct{}

func (driverGoJSON) NewReader(r io.Reader) jsonschema.Source {
	return jsonschema.SourceFromEngine(NewReader(r))
}
func (driverGoJSON) NewBytes(b []byte) jsonschema.Source {
	return jsonschema.SourceFromEngine(NewBytes(b))
}
func (driverGoJSON) Name() string { return "go-json" }

// frame tracks one open container the same way source/json's decoder does:
// only objects need to distinguish "expecting a key" from "expecting a
// value", so that is the only state a frame carries.
type frame struct {
	isObject    bool
	awaitingKey bool
}

type source struct {
	dec    *j.Decoder
	frames []frame
}

// NewReader wraps an io.Reader into an engine.TokenSource using go-json.
func NewReader(r io.Reader) eng.TokenSource {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	return &source{dec: dec}
}

// NewBytes wraps a byte slice into an engine.TokenSource using go-json.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *source) NextToken() (eng.Token, error) {
	raw, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}

	if delim, ok := raw.(j.Delim); ok {
		return s.openOrClose(delim), nil
	}

	if str, ok := raw.(string); ok && s.expectingKey() {
		s.topFrame().awaitingKey = false
		return eng.Token{Kind: eng.KindKey, String: str, Offset: -1}, nil
	}

	s.sawValue()
	return scalarToken(raw)
}

func (s *source) openOrClose(delim j.Delim) eng.Token {
	switch delim {
	case '{':
		s.frames = append(s.frames, frame{isObject: true, awaitingKey: true})
		return eng.Token{Kind: eng.KindBeginObject, Offset: -1}
	case '[':
		s.frames = append(s.frames, frame{})
		return eng.Token{Kind: eng.KindBeginArray, Offset: -1}
	case '}':
		s.closeFrame()
		return eng.Token{Kind: eng.KindEndObject, Offset: -1}
	default: // ']'
		s.closeFrame()
		return eng.Token{Kind: eng.KindEndArray, Offset: -1}
	}
}

func (s *source) expectingKey() bool {
	n := len(s.frames)
	return n > 0 && s.frames[n-1].isObject && s.frames[n-1].awaitingKey
}

func (s *source) topFrame() *frame { return &s.frames[len(s.frames)-1] }

func (s *source) sawValue() {
	if n := len(s.frames); n > 0 && s.frames[n-1].isObject {
		s.frames[n-1].awaitingKey = true
	}
}

func (s *source) closeFrame() {
	if n := len(s.frames); n > 0 {
		s.frames = s.frames[:n-1]
	}
	s.sawValue()
}

// scalarToken converts one decoded leaf value. go-json's Decoder, like
// encoding/json's, never emits float64 here once UseNumber() is set above:
// every number arrives as j.Number instead.
func scalarToken(raw any) (eng.Token, error) {
	switch v := raw.(type) {
	case string:
		return eng.Token{Kind: eng.KindString, String: v, Offset: -1}, nil
	case j.Number:
		return eng.Token{Kind: eng.KindNumber, Number: string(v), Offset: -1}, nil
	case bool:
		return eng.Token{Kind: eng.KindBool, Bool: v, Offset: -1}, nil
	case nil:
		return eng.Token{Kind: eng.KindNull, Offset: -1}, nil
	default:
		return eng.Token{}, io.ErrUnexpectedEOF
	}
}

func (s *source) Location() int64 { return -1 }
