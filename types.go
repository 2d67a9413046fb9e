package jsonschema

// DefaultMaxDepth bounds schema and instance nesting when no explicit
// MaxDepth option is given. It exists so the stack-depth guard (spec §5)
// is always active, not just when a caller remembers to configure it.
const DefaultMaxDepth = 512

type compileConfig struct {
	maxDepth int
	driver   Source
}

// CompileOption configures Compile.
type CompileOption func(*compileConfig)

// WithMaxDepth overrides the nesting-depth bound the stack-depth guard
// enforces while compiling the schema document.
func WithMaxDepth(n int) CompileOption {
	return func(c *compileConfig) { c.maxDepth = n }
}

// WithJSONDriver overrides the Source used to decode the schema bytes for
// this call only, without touching the process-wide default driver.
func WithJSONDriver(src Source) CompileOption {
	return func(c *compileConfig) { c.driver = src }
}

func newCompileConfig(opts []CompileOption) compileConfig {
	cfg := compileConfig{maxDepth: DefaultMaxDepth}
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

type validateConfig struct {
	maxDepth int
	driver   Source
}

// ValidateOption configures Schema.Validate.
type ValidateOption func(*validateConfig)

// WithValidateMaxDepth overrides the nesting-depth bound the stack-depth
// guard enforces while decoding the instance document and while walking
// the compiled plan against it.
func WithValidateMaxDepth(n int) ValidateOption {
	return func(c *validateConfig) { c.maxDepth = n }
}

// WithValidateJSONDriver overrides the Source used to decode the instance
// bytes for this call only.
func WithValidateJSONDriver(src Source) ValidateOption {
	return func(c *validateConfig) { c.driver = src }
}

func newValidateConfig(opts []ValidateOption) validateConfig {
	cfg := validateConfig{maxDepth: DefaultMaxDepth}
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}
