package filter

import (
	"maps"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Env is the variable set a filter runs against.
type Env map[string]any

// Filter is a compiled expression. It is safe for concurrent use.
type Filter struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// CompilerOption configures a Compiler
type CompilerOption func(*Compiler)

// WithCache keeps up to size compiled filters keyed by expression
func WithCache(size int) CompilerOption {
	return func(c *Compiler) {
		if size > 0 {
			c.cache = newProgramCache(size)
		}
	}
}

// WithFunctions adds helper functions visible to every expression
func WithFunctions(funcs map[string]any) CompilerOption {
	return func(c *Compiler) {
		maps.Copy(c.helpers, funcs)
	}
}

// Compiler turns expressions into Filters
type Compiler struct {
	helpers map[string]any
	cache   *programCache
}

// NewCompiler creates a Compiler with the built-in helpers
func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{helpers: helperFunctions()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile parses expression. The result must be boolean.
func (c *Compiler) Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{Expression: expression, Reason: "empty expression"}
	}

	if c.cache != nil {
		if f, ok := c.cache.get(expression); ok {
			return f, nil
		}
	}

	// Post fields differ per dialect, so they are only known at run time.
	program, err := expr.Compile(expression,
		expr.Env(c.helpers),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	f := &Filter{expression: expression, program: program, helpers: maps.Clone(c.helpers)}
	if c.cache != nil {
		c.cache.put(expression, f)
	}
	return f, nil
}

// CacheSize reports how many compiled filters are cached
func (c *Compiler) CacheSize() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.len()
}

// Compile compiles expression with a default Compiler
func Compile(expression string) (*Filter, error) {
	return NewCompiler().Compile(expression)
}

// Expression returns the source text
func (f *Filter) Expression() string {
	return f.expression
}

// Match runs the filter against env. item names the post in errors.
func (f *Filter) Match(env Env, item string) (bool, error) {
	runEnv := make(map[string]any, len(env)+len(f.helpers))
	maps.Copy(runEnv, f.helpers)
	maps.Copy(runEnv, env)

	result, err := expr.Run(f.program, runEnv)
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			Item:       item,
			Reason:     "runtime failure",
			Err:        err,
		}
	}

	matched, ok := result.(bool)
	if !ok {
		return false, &EvaluationError{
			Expression: f.expression,
			Item:       item,
			Reason:     "expression did not return a boolean",
		}
	}
	return matched, nil
}

// helperFunctions are available to every expression. contains, startsWith
// and endsWith are expr operators, so the case-insensitive variants carry
// a Fold suffix.
func helperFunctions() map[string]any {
	return map[string]any{
		"daysSince": func(t time.Time) int {
			return int(time.Since(t).Hours() / 24)
		},
		"daysAgo": func(days int) time.Time {
			return time.Now().AddDate(0, 0, -days)
		},
		"parseDate": func(s string) time.Time {
			t, _ := time.Parse(time.DateOnly, s)
			return t
		},
		"containsFold": func(s, substr string) bool {
			return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
		},
		"hasPrefixFold": func(s, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(s), strings.ToLower(prefix))
		},
		"hasSuffixFold": func(s, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(s), strings.ToLower(suffix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
		"now":   time.Now,
	}
}
