//go:build !gojson

package gojson

import (
	"io"

	jsonschema "github.com/correl/jsonschema"
	jsonsrc "github.com/correl/jsonschema/source/json"
)

// Driver is what package gojson resolves to when the gojson build tag is
// absent: the goccy/go-json source in driver_gojson.go never compiles in,
// so callers that merely import this package (say, transitively through
// source/usegojson) still link against something that satisfies
// jsonschema.JSONDriver, backed by the stdlib decoder in source/json.
func Driver() jsonschema.JSONDriver { return stub{} }

type stub struct{}

func (stub) NewReader(r io.Reader) jsonschema.Source {
	return jsonschema.SourceFromEngine(jsonsrc.NewReader(r))
}
func (stub) NewBytes(b []byte) jsonschema.Source {
	return jsonschema.SourceFromEngine(jsonsrc.NewBytes(b))
}
func (stub) Name() string { return "encoding/json (gojson stub)" }
