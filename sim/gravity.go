package sim

import (
	"errors"
	"fmt"
	"math"
)

const (
	DefaultBaseInterval    = 2.0
	DefaultSpeedMultiplier = 1.0
	DefaultSpeedStep       = 0.5
)

var ErrInvalidGravity = errors.New("gravity interval, multiplier and step must be positive")

// GravityState is the repeating gravity timer. Interval is always
// BaseInterval / SpeedMultiplier.
type GravityState struct {
	BaseInterval    float64
	Step            float64
	SpeedMultiplier float64
	Interval        float64
	Elapsed         float64
}

// NewGravityState returns a timer with no progress toward its first tick.
func NewGravityState(base, multiplier, step float64) (GravityState, error) {
	if !(base > 0) || !(multiplier > 0) || !(step > 0) {
		return GravityState{}, fmt.Errorf("%w: base=%v multiplier=%v step=%v",
			ErrInvalidGravity, base, multiplier, step)
	}
	return GravityState{
		BaseInterval:    base,
		Step:            step,
		SpeedMultiplier: multiplier,
		Interval:        base / multiplier,
	}, nil
}

// DefaultGravity returns a 2s timer at normal speed.
func DefaultGravity() GravityState {
	g, _ := NewGravityState(DefaultBaseInterval, DefaultSpeedMultiplier, DefaultSpeedStep)
	return g
}

// Tick advances the timer by dt seconds and reports whether it fired.
// It fires at most once per call; leftover time carries into the next
// interval.
func (g *GravityState) Tick(dt float64) bool {
	if dt <= 0 || g.Interval <= 0 {
		return false
	}
	g.Elapsed += dt
	if g.Elapsed < g.Interval {
		return false
	}
	g.Elapsed -= g.Interval
	if g.Elapsed >= g.Interval {
		g.Elapsed = math.Mod(g.Elapsed, g.Interval)
	}
	return true
}

// IncreaseSpeed raises the multiplier by Step and rearms the timer.
// Progress toward the next tick is discarded.
func (g *GravityState) IncreaseSpeed() {
	g.SpeedMultiplier += g.Step
	g.Interval = g.BaseInterval / g.SpeedMultiplier
	g.Elapsed = 0
}

// Remaining returns the seconds left until the next tick.
func (g GravityState) Remaining() float64 {
	return math.Max(0, g.Interval-g.Elapsed)
}
