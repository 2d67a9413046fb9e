// Package json adapts encoding/json's token stream into engine.TokenSource,
// the Go stand-in for spec.md §6's external "Token cursor" collaborator.
// encoding/json.Decoder already hands back a flat token stream; what it does
// not do is say whether a bare string is an object key or a string value, so
// this adapter's only real job is tracking just enough container state to
// answer that question as tokens go by.
package json

import (
	"bytes"
	"encoding/json"
	"io"

	eng "github.com/correl/jsonschema/internal/engine"
)

// frame remembers whether an open container is an object and, if so,
// whether the next token it emits should be read as a key. Arrays need
// neither bit, so a container is exactly this one pair rather than a tagged
// enum.
type frame struct {
	isObject    bool
	awaitingKey bool
}

type decoder struct {
	dec    *json.Decoder
	frames []frame
	offset int64
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON.
func NewReader(r io.Reader) eng.TokenSource {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &decoder{dec: dec, offset: -1}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (d *decoder) Location() int64 { return d.offset }

func (d *decoder) NextToken() (eng.Token, error) {
	raw, err := d.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	d.offset = d.dec.InputOffset()

	if delim, ok := raw.(json.Delim); ok {
		return d.openOrClose(delim), nil
	}

	if s, ok := raw.(string); ok && d.expectingKey() {
		d.topFrame().awaitingKey = false
		return eng.Token{Kind: eng.KindKey, String: s, Offset: d.offset}, nil
	}

	d.sawValue()
	return scalarToken(raw, d.offset)
}

func (d *decoder) openOrClose(delim json.Delim) eng.Token {
	switch delim {
	case '{':
		d.frames = append(d.frames, frame{isObject: true, awaitingKey: true})
		return eng.Token{Kind: eng.KindBeginObject, Offset: d.offset}
	case '[':
		d.frames = append(d.frames, frame{})
		return eng.Token{Kind: eng.KindBeginArray, Offset: d.offset}
	case '}':
		d.closeFrame()
		return eng.Token{Kind: eng.KindEndObject, Offset: d.offset}
	default: // ']'
		d.closeFrame()
		return eng.Token{Kind: eng.KindEndArray, Offset: d.offset}
	}
}

// expectingKey reports whether the innermost open container is an object
// positioned at a key rather than a value.
func (d *decoder) expectingKey() bool {
	n := len(d.frames)
	return n > 0 && d.frames[n-1].isObject && d.frames[n-1].awaitingKey
}

func (d *decoder) topFrame() *frame { return &d.frames[len(d.frames)-1] }

// sawValue flips an enclosing object back to awaiting its next key; arrays
// have nothing to flip.
func (d *decoder) sawValue() {
	if n := len(d.frames); n > 0 && d.frames[n-1].isObject {
		d.frames[n-1].awaitingKey = true
	}
}

func (d *decoder) closeFrame() {
	if n := len(d.frames); n > 0 {
		d.frames = d.frames[:n-1]
	}
	d.sawValue()
}

// scalarToken converts one decoded leaf value. encoding/json.Decoder never
// emits float64 here: UseNumber() is set unconditionally above, so every
// number token arrives as json.Number.
func scalarToken(raw any, offset int64) (eng.Token, error) {
	switch v := raw.(type) {
	case string:
		return eng.Token{Kind: eng.KindString, String: v, Offset: offset}, nil
	case json.Number:
		return eng.Token{Kind: eng.KindNumber, Number: string(v), Offset: offset}, nil
	case bool:
		return eng.Token{Kind: eng.KindBool, Bool: v, Offset: offset}, nil
	case nil:
		return eng.Token{Kind: eng.KindNull, Offset: offset}, nil
	default:
		return eng.Token{}, io.ErrUnexpectedEOF
	}
}
