package expr

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/expr-lang/expr"
)

// CompileOptions returns expr options with built-in functions registered.
func CompileOptions() []expr.Option {
	return []expr.Option{
		expr.Env(&Context{}),
		expr.Function("exists", existsFunc,
			new(func(string) bool),
		),
		expr.Function("default", defaultFunc,
			new(func(any, any) any),
		),
		expr.Function("hasSubstr", containsStrFunc,
			new(func(string, string) bool),
		),
		expr.Function("between", betweenFunc,
			new(func(int, int, int) bool),
		),
		expr.Function("weekend", weekendFunc,
			new(func(string) bool),
		),
	}
}

// exists checks if a file or directory exists.
// Usage: exists("~/.config/fate/skip-lunch")
func existsFunc(params ...any) (any, error) {
	if len(params) != 1 {
		return nil, fmt.Errorf("exists: expected 1 argument, got %d", len(params))
	}
	path, ok := params[0].(string)
	if !ok {
		return nil, fmt.Errorf("exists: expected string, got %T", params[0])
	}
	_, err := os.Stat(expandPath(path))
	return err == nil, nil
}

// default returns the first non-nil/non-empty value.
// Usage: default(vars.city, "Berlin")
func defaultFunc(params ...any) (any, error) {
	if len(params) != 2 {
		return nil, fmt.Errorf("default: expected 2 arguments, got %d", len(params))
	}
	val, fallback := params[0], params[1]
	if val == nil {
		return fallback, nil
	}
	if s, ok := val.(string); ok && s == "" {
		return fallback, nil
	}
	return val, nil
}

// Usage: hasSubstr(env.USER, "admin")
func containsStrFunc(params ...any) (any, error) {
	if len(params) != 2 {
		return nil, fmt.Errorf("hasSubstr: expected 2 arguments, got %d", len(params))
	}
	haystack, ok := params[0].(string)
	if !ok {
		return nil, fmt.Errorf("hasSubstr: expected string, got %T", params[0])
	}
	needle, ok := params[1].(string)
	if !ok {
		return nil, fmt.Errorf("hasSubstr: expected string, got %T", params[1])
	}
	return strings.Contains(haystack, needle), nil
}

// between reports whether lo <= n < hi. Wraps past midnight when lo > hi.
// Usage: between(hour, 11, 14)
func betweenFunc(params ...any) (any, error) {
	if len(params) != 3 {
		return nil, fmt.Errorf("between: expected 3 arguments, got %d", len(params))
	}
	var ints [3]int
	for i, p := range params {
		v, ok := p.(int)
		if !ok {
			return nil, fmt.Errorf("between: expected int, got %T", p)
		}
		ints[i] = v
	}
	n, lo, hi := ints[0], ints[1], ints[2]
	if lo <= hi {
		return n >= lo && n < hi, nil
	}
	return n >= lo || n < hi, nil
}

// Usage: weekend(weekday)
func weekendFunc(params ...any) (any, error) {
	if len(params) != 1 {
		return nil, fmt.Errorf("weekend: expected 1 argument, got %d", len(params))
	}
	day, ok := params[0].(string)
	if !ok {
		return nil, fmt.Errorf("weekend: expected string, got %T", params[0])
	}
	return day == "Saturday" || day == "Sunday", nil
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	return os.ExpandEnv(path)
}
