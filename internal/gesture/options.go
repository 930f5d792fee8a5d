package gesture

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidOptions is returned when gesture options fail validation.
var ErrInvalidOptions = errors.New("invalid gesture options")

// Options holds the tuning parameters for classification and debouncing.
// They are fixed at construction; invalid values are rejected, never
// clamped.
type Options struct {
	// AngularThreshold is the half-width in degrees of each directional
	// band (right at 0/360, up at 90, left at 180). Must stay below 45 or
	// adjacent bands would collide.
	AngularThreshold float64

	// StabilityDistance is the minimum length of the wrist-to-fingertips
	// vector, in landmark coordinate units, below which a pose is too
	// close to neutral to read a direction.
	StabilityDistance float64

	// Cooldown is the minimum interval between two emissions of the same
	// action. Each action keeps its own clock.
	Cooldown time.Duration

	// MinConfidenceFrames is the number of consecutive identical
	// candidates required before a new direction is adopted. 1 adopts
	// immediately.
	MinConfidenceFrames int
}

// DefaultOptions returns the tuning used for gameplay: wide 35 degree
// bands, a 15 unit stability distance and a 50ms per-action cooldown.
func DefaultOptions() Options {
	return Options{
		AngularThreshold:    35,
		StabilityDistance:   15,
		Cooldown:            50 * time.Millisecond,
		MinConfidenceFrames: 1,
	}
}

// Validate checks the options and reports the first violation found.
func (o Options) Validate() error {
	if o.AngularThreshold <= 0 {
		return fmt.Errorf("%w: angular threshold must be positive, got %v", ErrInvalidOptions, o.AngularThreshold)
	}
	if o.AngularThreshold >= 45 {
		return fmt.Errorf("%w: angular threshold %v would make directional bands collide (must be < 45)", ErrInvalidOptions, o.AngularThreshold)
	}
	if o.StabilityDistance < 0 {
		return fmt.Errorf("%w: stability distance must not be negative, got %v", ErrInvalidOptions, o.StabilityDistance)
	}
	if o.Cooldown < 0 {
		return fmt.Errorf("%w: cooldown must not be negative, got %v", ErrInvalidOptions, o.Cooldown)
	}
	if o.MinConfidenceFrames < 1 {
		return fmt.Errorf("%w: min confidence frames must be at least 1, got %d", ErrInvalidOptions, o.MinConfidenceFrames)
	}
	return nil
}
