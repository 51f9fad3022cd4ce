package tui

import (
	"errors"
	"fate/internal/expr"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
)

// ItemInput is what the add prompt collects.
type ItemInput struct {
	Label  string
	Weight float64
	When   string
}

type ItemPrompter struct {
	input      io.Reader
	accessible bool
}

func NewItemPrompter() *ItemPrompter {
	return &ItemPrompter{}
}

// WithInput reads answers from r in accessible mode, one line per field.
func (p *ItemPrompter) WithInput(r io.Reader) *ItemPrompter {
	p.input = r
	p.accessible = true
	return p
}

// Prompt asks for a new item, prefilled with defaults. Empty answers keep
// the default.
func (p *ItemPrompter) Prompt(defaults ItemInput) (ItemInput, error) {
	if defaults.Weight <= 0 {
		defaults.Weight = 1
	}

	label := defaults.Label
	weight := strconv.FormatFloat(defaults.Weight, 'g', -1, 64)
	when := defaults.When

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Label").
				Placeholder("e.g. Pizza or ${ weekday } special").
				Value(&label).
				Validate(validateLabel),
			huh.NewInput().
				Title("Weight").
				Value(&weight).
				Placeholder(weight).
				Validate(func(s string) error {
					_, err := parseWeight(s)
					return err
				}),
			huh.NewInput().
				Title("Only when (optional)").
				Placeholder(`e.g. weekday != "Monday"`).
				Value(&when).
				Validate(func(s string) error {
					_, err := expr.CompileCondition(s)
					return err
				}),
		),
	).WithTheme(huh.ThemeCatppuccin())

	if p.input != nil {
		form = form.WithInput(p.input)
	}
	if p.accessible {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return ItemInput{}, fmt.Errorf("prompt cancelled: %w", err)
	}

	w, err := parseWeight(weight)
	if err != nil {
		return ItemInput{}, err
	}

	return ItemInput{
		Label:  strings.TrimSpace(label),
		Weight: w,
		When:   strings.TrimSpace(when),
	}, nil
}

func validateLabel(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("label cannot be empty")
	}
	_, err := expr.Compile(s)
	return err
}

func parseWeight(s string) (float64, error) {
	w, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("weight must be a number: %w", err)
	}
	if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
		return 0, fmt.Errorf("weight must be positive, got %v", w)
	}
	return w, nil
}
