// Package config handles loading, validating and saving wheel files.
package config

import (
	"errors"
	"fate/internal/expr"
	"fate/internal/pathutil"
	"fate/internal/wheel"
	"fmt"
	"maps"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	CurrentVersion = "1"

	DefaultFrameInterval = 16 * time.Millisecond
)

var ErrItemNotFound = errors.New("item not found")

// Config is a wheel file.
type Config struct {
	Version string         `yaml:"version"`
	Vars    map[string]any `yaml:"vars,omitempty"`
	Spin    Spin           `yaml:"spin,omitempty"`
	Items   []Item         `yaml:"items"`
}

// Spin overrides the spin physics. Zero values keep the defaults.
type Spin struct {
	Seed            uint64  `yaml:"seed,omitempty"`
	FrameMS         int     `yaml:"frame_ms,omitempty"`
	OnRetrigger     string  `yaml:"on_retrigger,omitempty"`
	MinSpeed        float64 `yaml:"min_speed,omitempty"`
	Spread          float64 `yaml:"spread,omitempty"`
	Damping         float64 `yaml:"damping,omitempty"`
	SettleThreshold float64 `yaml:"settle_threshold,omitempty"`
}

// Item is a wheel entry as stored on disk.
type Item struct {
	ID     int     `yaml:"id"`
	Label  string  `yaml:"label"`
	Weight float64 `yaml:"weight"`
	When   string  `yaml:"when,omitempty"`
}

// New returns an empty wheel at the current version.
func New() *Config {
	return &Config{Version: CurrentVersion}
}

// Clone returns a copy whose items and vars can be edited without touching c.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Items = slices.Clone(c.Items)
	clone.Vars = maps.Clone(c.Vars)
	return &clone
}

// Load reads and validates the wheel file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(pathutil.Expand(path))
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrNew is like Load but returns an empty wheel when the file does not
// exist yet.
func LoadOrNew(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return New(), nil
	}
	return cfg, err
}

// Save writes the wheel file, creating parent directories if needed.
func Save(path string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	expanded := pathutil.Expand(path)
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(expanded, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate checks the version, the spin settings and every item.
func (c *Config) Validate() error {
	if c.Version == "" {
		return errors.New("config missing version field")
	}
	if c.Version != CurrentVersion {
		return fmt.Errorf("unsupported config version: %s", c.Version)
	}

	if _, err := c.Tuning(); err != nil {
		return fmt.Errorf("spin: %w", err)
	}
	if c.Spin.FrameMS < 0 {
		return fmt.Errorf("spin: frame_ms must not be negative, got %d", c.Spin.FrameMS)
	}

	seen := make(map[int]bool, len(c.Items))
	for i, item := range c.Items {
		if item.ID <= 0 {
			return fmt.Errorf("item %d: id must be positive", i+1)
		}
		if seen[item.ID] {
			return fmt.Errorf("item %d: duplicate id %d", i+1, item.ID)
		}
		seen[item.ID] = true

		if strings.TrimSpace(item.Label) == "" {
			return fmt.Errorf("item %d: label cannot be empty", i+1)
		}
		if math.IsNaN(item.Weight) || math.IsInf(item.Weight, 0) || item.Weight <= 0 {
			return fmt.Errorf("item %d: weight must be positive", i+1)
		}
		if _, err := expr.Compile(item.Label); err != nil {
			return fmt.Errorf("item %d: label: %w", i+1, err)
		}
		if _, err := expr.CompileCondition(item.When); err != nil {
			return fmt.Errorf("item %d: %w", i+1, err)
		}
	}
	return nil
}

// Tuning merges the spin overrides into the default physics.
func (c *Config) Tuning() (wheel.Tuning, error) {
	t := wheel.DefaultTuning()
	if c.Spin.MinSpeed != 0 {
		t.MinSpeed = c.Spin.MinSpeed
	}
	if c.Spin.Spread != 0 {
		t.SpinSpread = c.Spin.Spread
	}
	if c.Spin.Damping != 0 {
		t.Damping = c.Spin.Damping
	}
	if c.Spin.SettleThreshold != 0 {
		t.SettleThreshold = c.Spin.SettleThreshold
	}

	policy, err := wheel.ParseRetrigger(c.Spin.OnRetrigger)
	if err != nil {
		return wheel.Tuning{}, err
	}
	t.Retrigger = policy

	if err := t.Validate(); err != nil {
		return wheel.Tuning{}, err
	}
	return t, nil
}

// FrameInterval is the delay between animation frames.
func (c *Config) FrameInterval() time.Duration {
	if c.Spin.FrameMS <= 0 {
		return DefaultFrameInterval
	}
	return time.Duration(c.Spin.FrameMS) * time.Millisecond
}

// NextID returns an id one past the highest in use.
func (c *Config) NextID() int {
	next := 1
	for _, item := range c.Items {
		if item.ID >= next {
			next = item.ID + 1
		}
	}
	return next
}

// Add appends a new item and returns it.
func (c *Config) Add(label string, weight float64, when string) Item {
	item := Item{
		ID:     c.NextID(),
		Label:  label,
		Weight: weight,
		When:   when,
	}
	c.Items = append(c.Items, item)
	return item
}

func (c *Config) index(id int) int {
	for i, item := range c.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the item with the given id.
func (c *Config) Find(id int) (Item, error) {
	i := c.index(id)
	if i < 0 {
		return Item{}, fmt.Errorf("%w: id %d", ErrItemNotFound, id)
	}
	return c.Items[i], nil
}

// Remove deletes the item with the given id, keeping the order of the rest.
func (c *Config) Remove(id int) (Item, error) {
	i := c.index(id)
	if i < 0 {
		return Item{}, fmt.Errorf("%w: id %d", ErrItemNotFound, id)
	}
	removed := c.Items[i]
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	return removed, nil
}

// SetWeight changes the weight of the item with the given id.
func (c *Config) SetWeight(id int, weight float64) error {
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight <= 0 {
		return fmt.Errorf("weight must be positive, got %v", weight)
	}
	i := c.index(id)
	if i < 0 {
		return fmt.Errorf("%w: id %d", ErrItemNotFound, id)
	}
	c.Items[i].Weight = weight
	return nil
}

// WheelItems returns the items whose condition holds in ctx, with labels
// rendered, in file order.
func (c *Config) WheelItems(ctx *expr.Context) ([]wheel.Item, error) {
	ctx = ctx.WithVars(c.Vars)

	var out []wheel.Item
	for _, item := range c.Items {
		cond, err := expr.CompileCondition(item.When)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", item.ID, err)
		}
		ok, err := cond.Holds(ctx)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", item.ID, err)
		}
		if !ok {
			continue
		}

		tpl, err := expr.Compile(item.Label)
		if err != nil {
			return nil, fmt.Errorf("item %d: label: %w", item.ID, err)
		}
		label, err := tpl.Render(ctx)
		if err != nil {
			return nil, fmt.Errorf("item %d: label: %w", item.ID, err)
		}
		if strings.TrimSpace(label) == "" {
			return nil, fmt.Errorf("item %d: label rendered empty", item.ID)
		}

		out = append(out, wheel.Item{ID: item.ID, Label: label, Weight: item.Weight})
	}
	return out, nil
}
