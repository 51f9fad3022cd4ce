package expr

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Friday 2026-10-16, 12:30
var lunchtime = time.Date(2026, time.October, 16, 12, 30, 0, 0, time.UTC)

func TestTemplate_Literal(t *testing.T) {
	tpl, err := Compile("Pizza")
	require.NoError(t, err)
	assert.True(t, tpl.IsLiteral())

	got, err := tpl.Render(NewContext())
	require.NoError(t, err)
	assert.Equal(t, "Pizza", got)
	assert.Equal(t, "Literal(Pizza)", tpl.String())
}

func TestTemplate_WholeExpressionKeepsType(t *testing.T) {
	ctx := NewContextAt(lunchtime)

	tests := []struct {
		name string
		raw  string
		want any
	}{
		{"hour", "${ hour }", 12},
		{"weekday", "${ weekday }", "Friday"},
		{"arithmetic", "${ 1 + 2 }", 3},
		{"comparison", `${ os == "` + runtime.GOOS + `" }`, true},
		{"with spaces", "${   month   }", "October"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl, err := Compile(tt.raw)
			require.NoError(t, err)
			assert.False(t, tpl.IsLiteral())

			got, err := tpl.Eval(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTemplate_Interpolation(t *testing.T) {
	ctx := NewContextAt(lunchtime).WithVars(map[string]any{"city": "Lyon", "team": "platform"})

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"prefix only", "Lunch in ${ vars.city }", "Lunch in Lyon"},
		{"suffix only", "${ vars.team } standup", "platform standup"},
		{"multiple", "${ vars.team } @ ${ vars.city }!", "platform @ Lyon!"},
		{"clock", "${ weekday } special", "Friday special"},
		{"nested braces", `${ {"k": "v"}.k } side`, "v side"},
		{"quoted brace", `${ "}" } brace`, "} brace"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl, err := Compile(tt.raw)
			require.NoError(t, err)

			got, err := tpl.Render(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTemplate_InvalidExpression(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"undefined variable", "${ undefined_var }"},
		{"syntax error", "${ 1 + }"},
		{"bad interpolation", "Lunch ${ 1 + }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.raw)
			assert.Error(t, err)
		})
	}
}

func TestCondition(t *testing.T) {
	ctx := NewContextAt(lunchtime).WithVars(map[string]any{"team": "platform"})

	tests := []struct {
		name      string
		when      string
		want      bool
		wantError bool
	}{
		{"empty always holds", "", true, false},
		{"blank always holds", "   ", true, false},
		{"bare form", `weekday == "Friday"`, true, false},
		{"wrapped form", `${ weekday == "Monday" }`, false, false},
		{"between", "between(hour, 11, 14)", true, false},
		{"between wraps midnight", "between(hour, 22, 6)", false, false},
		{"weekend", "weekend(weekday)", false, false},
		{"vars", `vars.team == "platform"`, true, false},
		{"in operator", `month in ["October", "November"]`, true, false},
		{"and", `hour >= 12 and day == 16`, true, false},
		{"default fallback", `default(vars.missing, "x") == "x"`, true, false},
		{"non-bool var", "vars.team", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond, err := CompileCondition(tt.when)
			if tt.wantError && err != nil {
				return
			}
			require.NoError(t, err)

			got, err := cond.Holds(ctx)

			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCondition_RejectsNonBoolAtCompile(t *testing.T) {
	_, err := CompileCondition("hour + 1")
	assert.Error(t, err)

	_, err = CompileCondition("${ nope }")
	assert.Error(t, err)
}

func TestCondition_NilHolds(t *testing.T) {
	var cond *Condition

	got, err := cond.Holds(NewContext())

	require.NoError(t, err)
	assert.True(t, got)
}

func TestCondition_Exists(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "skip")
	require.NoError(t, os.WriteFile(marker, nil, 0o644))

	present, err := CompileCondition(`exists("` + marker + `")`)
	require.NoError(t, err)
	absent, err := CompileCondition(`exists("` + filepath.Join(dir, "nope") + `")`)
	require.NoError(t, err)

	ok, err := present.Holds(NewContext())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = absent.Holds(NewContext())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestContext_EnvAccess(t *testing.T) {
	t.Setenv("FATE_TEST_VALUE", "on")
	ctx := NewContext()

	cond, err := CompileCondition(`env.FATE_TEST_VALUE == "on"`)
	require.NoError(t, err)

	got, err := cond.Holds(ctx)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestContext_WithVarsNil(t *testing.T) {
	ctx := NewContext().WithVars(nil)
	assert.NotNil(t, ctx.Vars)
}
