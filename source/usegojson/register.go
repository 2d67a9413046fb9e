// Package usegojson switches the process-wide default JSON driver to
// source/gojson's Driver() as a side effect of being imported, for callers
// that want the faster driver without threading a CompileOption/
// ValidateOption through every call site. That driver is goccy/go-json only
// when built with the `gojson` tag; without it, Driver() is the
// encoding/json-backed stub:
//
//	import _ "github.com/correl/jsonschema/source/usegojson"
package usegojson

import (
	jsonschema "github.com/correl/jsonschema"
	drvgojson "github.com/correl/jsonschema/source/gojson"
)

func init() { jsonschema.SetJSONDriver(drvgojson.Driver()) }
