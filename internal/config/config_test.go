package config

import (
	"fate/internal/expr"
	"fate/internal/wheel"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wheel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		checkValid func(*testing.T, *Config)
		name       string
		content    string
		wantErr    string
	}{
		{
			name: "valid config",
			content: `version: "1"
items:
  - id: 1
    label: Pizza
    weight: 3
  - id: 2
    label: Sushi
    weight: 1
`,
			checkValid: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "1", cfg.Version)
				require.Len(t, cfg.Items, 2)
				assert.Equal(t, Item{ID: 1, Label: "Pizza", Weight: 3}, cfg.Items[0])
				assert.Equal(t, 2, cfg.Items[1].ID)
			},
		},
		{
			name: "empty items",
			content: `version: "1"
items: []
`,
			checkValid: func(t *testing.T, cfg *Config) {
				assert.Empty(t, cfg.Items)
			},
		},
		{
			name: "spin overrides and vars",
			content: `version: "1"
vars:
  city: Lyon
spin:
  seed: 42
  frame_ms: 20
  on_retrigger: restart
  damping: 0.98
items:
  - id: 1
    label: "Lunch in ${ vars.city }"
    weight: 1
    when: weekday != "Sunday"
`,
			checkValid: func(t *testing.T, cfg *Config) {
				assert.Equal(t, uint64(42), cfg.Spin.Seed)
				assert.Equal(t, 20*time.Millisecond, cfg.FrameInterval())
				assert.Equal(t, "Lyon", cfg.Vars["city"])

				tuning, err := cfg.Tuning()
				require.NoError(t, err)
				assert.Equal(t, 0.98, tuning.Damping)
				assert.Equal(t, wheel.RetriggerRestart, tuning.Retrigger)
				assert.Equal(t, wheel.DefaultMinSpeed, tuning.MinSpeed)
			},
		},
		{
			name: "missing version",
			content: `items: []
`,
			wantErr: "missing version",
		},
		{
			name: "unsupported version",
			content: `version: "2"
items: []
`,
			wantErr: "unsupported config version",
		},
		{
			name: "invalid YAML",
			content: `version: "1"
items:
  - id: [invalid yaml structure
`,
			wantErr: "parse config",
		},
		{
			name: "empty label",
			content: `version: "1"
items:
  - id: 1
    label: ""
    weight: 1
`,
			wantErr: "item 1: label cannot be empty",
		},
		{
			name: "zero weight in second item",
			content: `version: "1"
items:
  - id: 1
    label: A
    weight: 1
  - id: 2
    label: B
    weight: 0
`,
			wantErr: "item 2: weight must be positive",
		},
		{
			name: "negative weight",
			content: `version: "1"
items:
  - id: 1
    label: A
    weight: -2
`,
			wantErr: "item 1: weight must be positive",
		},
		{
			name: "duplicate id",
			content: `version: "1"
items:
  - id: 4
    label: A
    weight: 1
  - id: 4
    label: B
    weight: 1
`,
			wantErr: "item 2: duplicate id 4",
		},
		{
			name: "missing id",
			content: `version: "1"
items:
  - label: A
    weight: 1
`,
			wantErr: "item 1: id must be positive",
		},
		{
			name: "invalid condition",
			content: `version: "1"
items:
  - id: 1
    label: A
    weight: 1
    when: "hour +"
`,
			wantErr: "item 1: invalid condition",
		},
		{
			name: "invalid label expression",
			content: `version: "1"
items:
  - id: 1
    label: "A ${ nope }"
    weight: 1
`,
			wantErr: "item 1: label",
		},
		{
			name: "bad retrigger policy",
			content: `version: "1"
spin:
  on_retrigger: queue
items: []
`,
			wantErr: "spin: unknown retrigger policy",
		},
		{
			name: "damping out of range",
			content: `version: "1"
spin:
  damping: 1.5
items: []
`,
			wantErr: "spin: damping must be between 0 and 1",
		},
		{
			name: "negative frame interval",
			content: `version: "1"
spin:
  frame_ms: -5
items: []
`,
			wantErr: "frame_ms must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.content))

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			if tt.checkValid != nil {
				tt.checkValid(t, cfg)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "definitely-does-not-exist.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoadOrNew(t *testing.T) {
	t.Run("missing file gives empty wheel", func(t *testing.T) {
		cfg, err := LoadOrNew(filepath.Join(t.TempDir(), "nested", "wheel.yaml"))

		require.NoError(t, err)
		assert.Equal(t, CurrentVersion, cfg.Version)
		assert.Empty(t, cfg.Items)
	})

	t.Run("malformed file is still an error", func(t *testing.T) {
		_, err := LoadOrNew(writeConfig(t, "version: [\n"))

		assert.Error(t, err)
	})
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "dir", "wheel.yaml")
	cfg := New()
	cfg.Vars = map[string]any{"city": "Lyon"}
	cfg.Spin.Seed = 9
	cfg.Add("Pizza", 3, "")
	cfg.Add("Sushi", 1, `weekday == "Friday"`)

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSave_OmitsZeroSpin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wheel.yaml")
	cfg := New()
	cfg.Add("Pizza", 1, "")

	require.NoError(t, Save(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, yaml.Unmarshal(data, &raw))
	assert.NotContains(t, raw, "spin")
	assert.NotContains(t, raw, "vars")
}

func TestSave_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wheel.yaml")
	cfg := New()
	cfg.Items = append(cfg.Items, Item{ID: 1, Label: "", Weight: 1})

	err := Save(path, cfg)

	require.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "invalid wheel must not be written")
}

func TestConfig_Edits(t *testing.T) {
	cfg := New()
	a := cfg.Add("A", 1, "")
	b := cfg.Add("B", 2, "")
	c := cfg.Add("C", 3, "")

	assert.Equal(t, []int{1, 2, 3}, []int{a.ID, b.ID, c.ID})

	removed, err := cfg.Remove(b.ID)
	require.NoError(t, err)
	assert.Equal(t, "B", removed.Label)
	assert.Equal(t, []Item{a, c}, cfg.Items, "order of the rest is kept")

	d := cfg.Add("D", 1, "")
	assert.Equal(t, 4, d.ID, "ids are not reused")

	require.NoError(t, cfg.SetWeight(a.ID, 7.5))
	found, err := cfg.Find(a.ID)
	require.NoError(t, err)
	assert.Equal(t, 7.5, found.Weight)

	_, err = cfg.Remove(99)
	assert.ErrorIs(t, err, ErrItemNotFound)
	_, err = cfg.Find(99)
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.ErrorIs(t, cfg.SetWeight(99, 1), ErrItemNotFound)
	assert.Error(t, cfg.SetWeight(a.ID, 0))
}

func TestConfig_WheelItems(t *testing.T) {
	cfg := New()
	cfg.Vars = map[string]any{"city": "Lyon"}
	cfg.Add("Pizza", 3, "")
	cfg.Add("Brunch", 2, "weekend(weekday)")
	cfg.Add("Lunch in ${ vars.city }", 1, `${ weekday == "Friday" }`)

	friday := expr.NewContextAt(time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC))

	got, err := cfg.WheelItems(friday)

	require.NoError(t, err)
	assert.Equal(t, []wheel.Item{
		{ID: 1, Label: "Pizza", Weight: 3},
		{ID: 3, Label: "Lunch in Lyon", Weight: 1},
	}, got)
}

func TestConfig_WheelItemsRejectsEmptyRenderedLabel(t *testing.T) {
	cfg := New()
	cfg.Vars = map[string]any{"blank": "  "}
	cfg.Add("Pizza", 1, "")
	cfg.Add(`${ "" }`, 1, "")
	require.NoError(t, cfg.Validate())

	_, err := cfg.WheelItems(expr.NewContext())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "item 2: label rendered empty")

	cfg.Items[1].Label = "${ vars.blank }"
	_, err = cfg.WheelItems(expr.NewContext())
	assert.ErrorContains(t, err, "label rendered empty")
}

func TestConfig_Clone(t *testing.T) {
	cfg := New()
	cfg.Vars = map[string]any{"city": "Lyon"}
	cfg.Add("A", 1, "")
	cfg.Add("B", 2, "")

	clone := cfg.Clone()
	_, err := clone.Remove(1)
	require.NoError(t, err)
	require.NoError(t, clone.SetWeight(2, 9))
	clone.Vars["city"] = "Paris"

	assert.Len(t, cfg.Items, 2)
	assert.Equal(t, 2.0, cfg.Items[1].Weight)
	assert.Equal(t, "Lyon", cfg.Vars["city"])
	assert.Len(t, clone.Items, 1)
}

func TestConfig_SlowDampingStillValid(t *testing.T) {
	cfg := New()
	cfg.Spin.Damping = 0.9999
	assert.NoError(t, cfg.Validate())

	cfg.Spin.Damping = 0.9999999
	assert.ErrorContains(t, cfg.Validate(), "ticks to settle")
}

func TestConfig_FrameIntervalDefault(t *testing.T) {
	assert.Equal(t, DefaultFrameInterval, New().FrameInterval())
}
