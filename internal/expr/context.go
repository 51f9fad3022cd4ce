package expr

import (
	"os"
	"runtime"
	"strings"
	"time"
)

// Context is the environment item conditions and labels are evaluated in.
type Context struct {
	OS   string `expr:"os"`
	Home string `expr:"home"`

	// Clock values, taken once when the wheel is loaded.
	Weekday string `expr:"weekday"`
	Month   string `expr:"month"`
	Day     int    `expr:"day"`
	Hour    int    `expr:"hour"`

	// Environment variables (accessed as env.VAR_NAME)
	Env map[string]string `expr:"env"`

	// User-defined variables from the wheel file
	Vars map[string]any `expr:"vars"`
}

// NewContext creates a Context for the current time.
func NewContext() *Context {
	return NewContextAt(time.Now())
}

// NewContextAt creates a Context with clock values taken from now.
func NewContextAt(now time.Time) *Context {
	return &Context{
		OS:      runtime.GOOS,
		Home:    os.Getenv("HOME"),
		Weekday: now.Weekday().String(),
		Month:   now.Month().String(),
		Day:     now.Day(),
		Hour:    now.Hour(),
		Env:     envToMap(),
		Vars:    make(map[string]any),
	}
}

// WithVars returns a copy of the context with variables set.
func (c *Context) WithVars(vars map[string]any) *Context {
	cp := *c
	cp.Vars = vars
	if cp.Vars == nil {
		cp.Vars = make(map[string]any)
	}
	return &cp
}

func envToMap() map[string]string {
	env := make(map[string]string)
	for _, e := range os.Environ() {
		if k, v, ok := strings.Cut(e, "="); ok {
			env[k] = v
		}
	}
	return env
}
