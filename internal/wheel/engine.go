package wheel

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

var (
	ErrTooFewItems    = errors.New("at least two items are needed to spin")
	ErrSpinInProgress = errors.New("spin already in progress")
	ErrNoSettle       = errors.New("spin did not settle")
)

// Phase is the spin animation state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSpinningUp
	PhaseSpinningDown
	PhaseSettled
)

func (p Phase) String() string {
	switch p {
	case PhaseSpinningUp:
		return "spinning up"
	case PhaseSpinningDown:
		return "spinning down"
	case PhaseSettled:
		return "settled"
	default:
		return "idle"
	}
}

// SpinState is the transient animation state of one spin.
type SpinState struct {
	Rotation float64 // degrees, always in [0, 360)
	Decay    float64
	Target   float64 // per-spin speed target drawn at trigger time
	Phase    Phase
	Ticks    int
}

// NewSpinState starts a spin from rotation toward the given speed target.
func NewSpinState(rotation, target float64, t Tuning) SpinState {
	return SpinState{
		Rotation: Normalize(rotation),
		Decay:    t.InitialDecay,
		Target:   target,
		Phase:    PhaseSpinningUp,
	}
}

// Spinning reports whether the wheel is still moving.
func (s SpinState) Spinning() bool {
	return s.Phase == PhaseSpinningUp || s.Phase == PhaseSpinningDown
}

// Speed is the rotation the next tick would apply, in degrees.
func (s SpinState) Speed(t Tuning) float64 {
	switch s.Phase {
	case PhaseSpinningUp:
		return t.MinSpeed * s.Decay
	case PhaseSpinningDown:
		return s.Target * s.Decay
	default:
		return 0
	}
}

// Advance applies one frame of spin physics and returns the new state.
//
// Spinning up, the decay grows by the spin-up factor until it passes the
// target; spinning down, it shrinks geometrically until it drops below the
// settle threshold. A settled state holds its rotation and returns to idle
// on the following tick.
func (s SpinState) Advance(t Tuning) SpinState {
	switch s.Phase {
	case PhaseSpinningUp:
		if s.Decay <= s.Target {
			s.Decay *= t.SpinUpFactor
		} else {
			s.Phase = PhaseSpinningDown
		}
		s.Rotation = Normalize(s.Rotation + t.MinSpeed*s.Decay)
	case PhaseSpinningDown:
		s.Rotation = Normalize(s.Rotation + s.Target*s.Decay)
		s.Decay *= t.Damping
		if s.Decay < t.SettleThreshold {
			s.Phase = PhaseSettled
		}
	case PhaseSettled:
		s.Phase = PhaseIdle
		return s
	default:
		return s
	}
	s.Ticks++
	return s
}

// Source supplies the per-spin random draw. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// NewSource returns a seeded source. A zero seed picks a random one.
func NewSource(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// Engine drives spins of a single wheel. It is not safe for concurrent use;
// the host calls Tick once per rendered frame.
type Engine struct {
	tuning Tuning
	rng    Source
	state  SpinState
	layout Layout
}

func NewEngine(t Tuning, rng Source) *Engine {
	if rng == nil {
		rng = NewSource(0)
	}
	return &Engine{tuning: t, rng: rng}
}

func (e *Engine) Tuning() Tuning {
	return e.tuning
}

func (e *Engine) State() SpinState {
	return e.state
}

func (e *Engine) Rotation() float64 {
	return e.state.Rotation
}

func (e *Engine) Spinning() bool {
	return e.state.Spinning()
}

// Layout returns the snapshot the current or last spin runs against.
func (e *Engine) Layout() Layout {
	return e.layout
}

// CanSpin reports why a layout cannot be spun, or nil.
func CanSpin(l Layout) error {
	if l.Empty() {
		return fmt.Errorf("%w: no items", ErrInvalidLayout)
	}
	if l.Len() < 2 {
		return ErrTooFewItems
	}
	return nil
}

// Spin triggers a new spin against a snapshot of l. The rotation carries
// over from the previous spin; everything else is reset.
func (e *Engine) Spin(l Layout) error {
	if err := CanSpin(l); err != nil {
		return err
	}
	if e.state.Spinning() && e.tuning.Retrigger == RetriggerIgnore {
		return ErrSpinInProgress
	}

	target := e.rng.Float64()*e.tuning.SpinSpread + e.tuning.MinSpeed
	e.layout = l
	e.state = NewSpinState(e.state.Rotation, target, e.tuning)
	return nil
}

// Tick advances the spin by one frame. It returns the selection exactly
// once per spin, on the tick the decay crosses the settle threshold.
func (e *Engine) Tick() (Selection, bool) {
	prev := e.state.Phase
	e.state = e.state.Advance(e.tuning)

	if prev != PhaseSettled && e.state.Phase == PhaseSettled {
		sel, ok := Resolve(e.layout, e.state.Rotation)
		if !ok {
			return Selection{}, false
		}
		return sel, true
	}
	return Selection{}, false
}

// Nudge turns an idle wheel by delta degrees, e.g. for mouse wheel input.
// It is ignored while spinning.
func (e *Engine) Nudge(delta float64) {
	if e.state.Spinning() {
		return
	}
	e.state.Rotation = Normalize(e.state.Rotation + delta)
	if e.state.Phase == PhaseSettled {
		e.state.Phase = PhaseIdle
	}
}

// Run spins l to completion without a renderer, ticking at most maxTicks
// times. A non-positive maxTicks uses the tuning's SettleTicks bound.
func (e *Engine) Run(l Layout, maxTicks int) (Selection, error) {
	if maxTicks <= 0 {
		maxTicks = e.tuning.SettleTicks()
	}
	if err := e.Spin(l); err != nil {
		return Selection{}, err
	}
	for range maxTicks {
		if sel, ok := e.Tick(); ok {
			return sel, nil
		}
	}
	return Selection{}, fmt.Errorf("%w after %d ticks", ErrNoSettle, maxTicks)
}
