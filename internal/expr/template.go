// Package expr evaluates the small expression language used in wheel files:
// item conditions (when:) and ${ } interpolation in labels.
package expr

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Template is a wheel file string that may embed expressions. It is either
//   - a literal with no expressions
//   - a whole expression: the entire value is ${ expr }
//   - an interpolated string: "prefix ${ expr } suffix"
type Template struct {
	raw   string
	whole *vm.Program
	parts []part
}

type part struct {
	literal string
	program *vm.Program
}

// Compile parses raw and compiles every ${ } expression in it.
func Compile(raw string) (*Template, error) {
	t := &Template{raw: raw}

	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "${") && strings.HasSuffix(trimmed, "}") {
		inner := strings.TrimSpace(trimmed[2 : len(trimmed)-1])
		if !strings.Contains(inner, "${") {
			program, err := expr.Compile(inner, CompileOptions()...)
			if err != nil {
				return nil, fmt.Errorf("invalid expression %q: %w", inner, err)
			}
			t.whole = program
			return t, nil
		}
	}

	parts, err := parseInterpolated(raw)
	if err != nil {
		return nil, err
	}
	t.parts = parts
	return t, nil
}

func parseInterpolated(s string) ([]part, error) {
	var parts []part
	lastEnd := 0
	for _, span := range findExpressions(s) {
		if span.start > lastEnd {
			parts = append(parts, part{literal: s[lastEnd:span.start]})
		}

		program, err := expr.Compile(span.inner, CompileOptions()...)
		if err != nil {
			return nil, fmt.Errorf("invalid expression %q: %w", span.inner, err)
		}
		parts = append(parts, part{program: program})
		lastEnd = span.end
	}

	if lastEnd < len(s) {
		parts = append(parts, part{literal: s[lastEnd:]})
	}
	return parts, nil
}

type exprSpan struct {
	start int // index of '$'
	end   int // index after the closing '}'
	inner string
}

// findExpressions locates ${ ... } spans, matching nested braces and
// skipping quoted strings.
func findExpressions(s string) []exprSpan {
	var spans []exprSpan
	i := 0

	for i < len(s)-1 {
		if s[i] != '$' || s[i+1] != '{' {
			i++
			continue
		}

		start := i
		i += 2
		depth := 1
		exprStart := i

		for i < len(s) && depth > 0 {
			switch s[i] {
			case '{':
				depth++
			case '}':
				depth--
			case '"', '\'':
				quote := s[i]
				i++
				for i < len(s) && s[i] != quote {
					if s[i] == '\\' && i+1 < len(s) {
						i++
					}
					i++
				}
			}
			if depth > 0 {
				i++
			}
		}

		if depth == 0 {
			spans = append(spans, exprSpan{
				start: start,
				end:   i + 1,
				inner: strings.TrimSpace(s[exprStart:i]),
			})
		}
		i++
	}

	return spans
}

// IsLiteral reports whether the template contains no expressions.
func (t *Template) IsLiteral() bool {
	if t.whole != nil {
		return false
	}
	for _, p := range t.parts {
		if p.program != nil {
			return false
		}
	}
	return true
}

// Eval evaluates the template. Whole expressions keep their result type;
// everything else renders to a string.
func (t *Template) Eval(ctx *Context) (any, error) {
	if t.whole != nil {
		return expr.Run(t.whole, ctx)
	}
	if t.IsLiteral() {
		return t.raw, nil
	}

	var sb strings.Builder
	for _, p := range t.parts {
		if p.program == nil {
			sb.WriteString(p.literal)
			continue
		}
		result, err := expr.Run(p.program, ctx)
		if err != nil {
			return nil, err
		}
		sb.WriteString(fmt.Sprint(result))
	}
	return sb.String(), nil
}

// Render evaluates the template to a string.
func (t *Template) Render(ctx *Context) (string, error) {
	v, err := t.Eval(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprint(v), nil
}

func (t *Template) String() string {
	switch {
	case t.whole != nil:
		return fmt.Sprintf("Expr(%s)", t.raw)
	case t.IsLiteral():
		return fmt.Sprintf("Literal(%s)", t.raw)
	default:
		return fmt.Sprintf("Interpolated(%s)", t.raw)
	}
}

// Condition is a compiled item condition.
type Condition struct {
	raw     string
	program *vm.Program
}

// CompileCondition compiles a when: value. Both the bare form
// (weekday == "Friday") and the wrapped form (${ weekday == "Friday" }) are
// accepted. An empty condition always holds.
func CompileCondition(raw string) (*Condition, error) {
	c := &Condition{raw: raw}

	src := strings.TrimSpace(raw)
	if src == "" {
		return c, nil
	}
	if strings.HasPrefix(src, "${") && strings.HasSuffix(src, "}") {
		src = strings.TrimSpace(src[2 : len(src)-1])
	}

	program, err := expr.Compile(src, append(CompileOptions(), expr.AsBool())...)
	if err != nil {
		return nil, fmt.Errorf("invalid condition %q: %w", raw, err)
	}
	c.program = program
	return c, nil
}

// Holds evaluates the condition.
func (c *Condition) Holds(ctx *Context) (bool, error) {
	if c == nil || c.program == nil {
		return true, nil
	}

	result, err := expr.Run(c.program, ctx)
	if err != nil {
		return false, fmt.Errorf("evaluate condition %q: %w", c.raw, err)
	}
	b, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("condition must evaluate to bool, got %T", result)
	}
	return b, nil
}
