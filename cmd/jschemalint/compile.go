package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	jsonschema "github.com/correl/jsonschema"
)

func runCompile(args []string) int {
	fs := flag.NewFlagSet("compile", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintln(os.Stderr, "compile:", err)
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: jschemalint compile <schema-file>")
		return 2
	}

	schemaBytes, err := readSchemaFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "jschemalint:", err)
		return 1
	}

	if _, err := jsonschema.Compile(schemaBytes); err != nil {
		fmt.Fprintln(os.Stderr, "invalid schema:", err)
		return 1
	}

	fmt.Fprintln(os.Stdout, "schema compiles")
	return 0
}

// readSchemaFile loads a schema document, transparently converting YAML
// input (detected by extension) to JSON via LoadSchemaYAML (SPEC_FULL.md
// §2.2) so compile/validate/batch all funnel through one decode path.
func readSchemaFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if isYAMLPath(path) {
		return jsonschema.LoadSchemaYAML(raw)
	}
	return raw, nil
}

func isYAMLPath(path string) bool {
	n := len(path)
	return n >= 5 && path[n-5:] == ".yaml" || n >= 4 && path[n-4:] == ".yml"
}
