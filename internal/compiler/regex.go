package compiler

import "regexp"

// compileRegex compiles a patternProperties key (itself a regular
// expression) once at schema-compile time, per spec.md §9 "Regex lifetime"
// -- the validator never recompiles it.
func compileRegex(path, pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errInvalid("patternProperties", path, "pattern %q does not compile: %s", pattern, err)
	}
	return re, nil
}
