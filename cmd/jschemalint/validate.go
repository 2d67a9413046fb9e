package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	jsonschema "github.com/correl/jsonschema"
)

func runValidate(args []string) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintln(os.Stderr, "validate:", err)
		return 2
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: jschemalint validate <schema-file> <instance-file>")
		return 2
	}

	schemaBytes, err := readSchemaFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "jschemalint:", err)
		return 1
	}
	schema, err := jsonschema.Compile(schemaBytes)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid schema:", err)
		return 1
	}

	instanceBytes, err := os.ReadFile(fs.Arg(1))
	if err != nil {
		fmt.Fprintln(os.Stderr, "jschemalint:", err)
		return 1
	}

	return reportResult(fs.Arg(1), schema, instanceBytes)
}

// reportResult validates one instance and prints a one-line verdict,
// returning the process exit code that batch mode also uses per instance.
func reportResult(label string, schema *jsonschema.Schema, instanceBytes []byte) int {
	result, err := schema.Validate(instanceBytes)
	switch result.Outcome {
	case jsonschema.Satisfied:
		fmt.Fprintf(os.Stdout, "%s: ok\n", label)
		return 0
	case jsonschema.NotSatisfied:
		if issues, ok := jsonschema.AsIssues(err); ok {
			fmt.Fprintf(os.Stdout, "%s: fail (%s)\n", label, issues.Error())
		} else {
			fmt.Fprintf(os.Stdout, "%s: fail\n", label)
		}
		return 1
	default:
		fmt.Fprintf(os.Stderr, "%s: error: %v\n", label, err)
		return 1
	}
}
