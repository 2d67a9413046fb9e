// Command jschemalint is the CLI surface SPEC_FULL.md §4 describes:
// compile a schema, validate an instance against it, or batch-validate a
// directory of instances with rate limiting and bounded concurrency.
package main

import (
	"fmt"
	"os"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, usage())
		return 2
	}

	switch args[1] {
	case "compile":
		return runCompile(args[2:])
	case "validate":
		return runValidate(args[2:])
	case "batch":
		return runBatch(args[2:])
	case "-h", "--help", "help":
		fmt.Fprintln(os.Stdout, usage())
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n\n%s\n", args[1], usage())
		return 2
	}
}

func usage() string {
	return `jschemalint compiles and validates JSON Schema draft 2020-12 documents.

Usage:
  jschemalint compile <schema-file>
  jschemalint validate <schema-file> <instance-file>
  jschemalint batch [-rate N] [-concurrency N] <schema-file> <instances-dir>`
}
