package wheel

import (
	"errors"
	"fmt"
	"math"
)

// All speeds are degrees per frame; the engine assumes one tick per rendered
// frame and does not compensate for frame timing.
const (
	FullTurn      = 360.0
	PointerOffset = 90.0 // pointer sits at the top, 90° from the layout's zero

	DefaultInitialDecay    = 0.01
	DefaultMinSpeed        = 5.0
	DefaultSpinSpread      = 10.0
	DefaultSpinUpFactor    = 1.05
	DefaultDamping         = 0.991
	DefaultSettleThreshold = 0.5

	// MaxSpinTicks caps how long any accepted tuning may take to settle.
	// Default tuning settles in well under 600 ticks for every speed target.
	MaxSpinTicks = 1_000_000
)

// RetriggerPolicy decides what a spin request does while a spin is running.
type RetriggerPolicy int

const (
	RetriggerIgnore RetriggerPolicy = iota
	RetriggerRestart
)

func (p RetriggerPolicy) String() string {
	switch p {
	case RetriggerRestart:
		return "restart"
	default:
		return "ignore"
	}
}

// ParseRetrigger maps a config value to a policy. Empty means ignore.
func ParseRetrigger(s string) (RetriggerPolicy, error) {
	switch s {
	case "", "ignore":
		return RetriggerIgnore, nil
	case "restart":
		return RetriggerRestart, nil
	default:
		return RetriggerIgnore, fmt.Errorf("unknown retrigger policy %q, must be one of: ignore, restart", s)
	}
}

// Tuning holds the spin physics constants.
type Tuning struct {
	InitialDecay    float64
	MinSpeed        float64
	SpinSpread      float64
	SpinUpFactor    float64
	Damping         float64
	SettleThreshold float64
	Retrigger       RetriggerPolicy
}

func DefaultTuning() Tuning {
	return Tuning{
		InitialDecay:    DefaultInitialDecay,
		MinSpeed:        DefaultMinSpeed,
		SpinSpread:      DefaultSpinSpread,
		SpinUpFactor:    DefaultSpinUpFactor,
		Damping:         DefaultDamping,
		SettleThreshold: DefaultSettleThreshold,
		Retrigger:       RetriggerIgnore,
	}
}

// Validate rejects tunings under which a spin could never settle.
func (t Tuning) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"initial decay", t.InitialDecay},
		{"min speed", t.MinSpeed},
		{"settle threshold", t.SettleThreshold},
	}
	for _, p := range positive {
		if !finite(p.value) || p.value <= 0 {
			return fmt.Errorf("%s must be positive, got %v", p.name, p.value)
		}
	}
	if !finite(t.SpinSpread) || t.SpinSpread < 0 {
		return fmt.Errorf("spin spread must not be negative, got %v", t.SpinSpread)
	}
	if !finite(t.SpinUpFactor) || t.SpinUpFactor <= 1 {
		return fmt.Errorf("spin-up factor must be greater than 1, got %v", t.SpinUpFactor)
	}
	if !finite(t.Damping) || t.Damping <= 0 || t.Damping >= 1 {
		return fmt.Errorf("damping must be between 0 and 1, got %v", t.Damping)
	}
	if t.SettleThreshold >= t.MinSpeed {
		return errors.New("settle threshold must be below min speed")
	}
	if n := t.SettleTicks(); n > MaxSpinTicks {
		return fmt.Errorf("spin could take %d ticks to settle, limit is %d", n, MaxSpinTicks)
	}
	return nil
}

// SettleTicks is an upper bound on the ticks a spin takes to settle, taken
// at the fastest speed target the spread allows. Tunings that could never
// settle report MaxSpinTicks+1.
func (t Tuning) SettleTicks() int {
	never := MaxSpinTicks + 1
	if t.SpinUpFactor <= 1 || t.Damping <= 0 || t.Damping >= 1 ||
		t.InitialDecay <= 0 || t.SettleThreshold <= 0 {
		return never
	}

	target := t.MinSpeed + t.SpinSpread
	peak := math.Max(target*t.SpinUpFactor, t.InitialDecay)

	up := math.Ceil(math.Max(0, math.Log(target/t.InitialDecay)/math.Log(t.SpinUpFactor))) + 1
	down := math.Ceil(math.Max(0, math.Log(peak/t.SettleThreshold)/-math.Log(t.Damping))) + 1

	total := up + down + 2
	if !finite(total) || total > float64(never) {
		return never
	}
	return int(total)
}

// Normalize maps any angle into [0, 360). NaN and infinities become 0.
func Normalize(deg float64) float64 {
	if !finite(deg) {
		return 0
	}
	deg = math.Mod(deg, FullTurn)
	if deg < 0 {
		deg += FullTurn
	}
	// -1e-14 + 360 rounds to 360
	if deg >= FullTurn {
		deg = 0
	}
	return deg
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
