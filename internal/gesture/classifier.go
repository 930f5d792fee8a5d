package gesture

import (
	"errors"
	"fmt"
	"math"

	"github.com/ayusman/handsurf/internal/detector"
)

// ErrInvalidLandmarks is returned when a landmark set has the wrong size or
// contains non-finite coordinates. Callers should treat such frames as "no
// hand" rather than stopping the control loop.
var ErrInvalidLandmarks = errors.New("invalid hand landmarks")

// fingerJoints lists the (tip, pip) landmark pairs of the four non-thumb
// fingers. The thumb is excluded: its flexion discriminates the other
// fingers' extension state poorly for this vocabulary.
var fingerJoints = [4][2]int{
	{detector.IndexTip, detector.IndexPIP},
	{detector.MiddleTip, detector.MiddlePIP},
	{detector.RingTip, detector.RingPIP},
	{detector.PinkyTip, detector.PinkyPIP},
}

// Classifier maps one frame's hand landmarks to a raw gesture. It is pure:
// no state survives between calls and the landmark set is never mutated.
type Classifier struct {
	stabilityDistSq float64
}

// NewClassifier creates a Classifier with the given stability distance, in
// the same units as the landmark coordinates.
func NewClassifier(stabilityDistance float64) *Classifier {
	return &Classifier{
		stabilityDistSq: stabilityDistance * stabilityDistance,
	}
}

// Classify returns exactly one raw gesture for the given landmark set.
//
// A closed fist (at most 2 of the 4 non-thumb fingers extended) always wins
// over any apparent pointing angle. Otherwise the direction is read from
// the wrist to the midpoint of the index and middle fingertips; if that
// vector is shorter than the stability distance the pose is ambiguous.
func (c *Classifier) Classify(points []detector.Point) (Raw, error) {
	if err := validateLandmarks(points); err != nil {
		return AmbiguousGesture(), err
	}

	if isFist(points) {
		return RollGesture(), nil
	}

	wrist := points[detector.Wrist]
	midX := (points[detector.IndexTip].X + points[detector.MiddleTip].X) / 2
	midY := (points[detector.IndexTip].Y + points[detector.MiddleTip].Y) / 2

	dx := midX - wrist.X
	dy := midY - wrist.Y

	if dx*dx+dy*dy < c.stabilityDistSq {
		return AmbiguousGesture(), nil
	}

	// Image y grows downward, so negate dy to measure counter-clockwise
	// from the positive x axis with screen-up at 90 degrees.
	angle := math.Atan2(-dy, dx) * 180 / math.Pi
	angle = math.Mod(angle+360, 360)

	return DirectionGesture(angle), nil
}

// isFist reports whether at most 2 of the 4 non-thumb fingers are extended.
// A finger counts as extended when its tip is farther from the wrist than
// its pip joint. Squared distances avoid a sqrt per finger per frame.
func isFist(points []detector.Point) bool {
	wrist := points[detector.Wrist]

	extended := 0
	for _, pair := range fingerJoints {
		tip := points[pair[0]]
		pip := points[pair[1]]

		tipDistSq := (tip.X-wrist.X)*(tip.X-wrist.X) + (tip.Y-wrist.Y)*(tip.Y-wrist.Y)
		pipDistSq := (pip.X-wrist.X)*(pip.X-wrist.X) + (pip.Y-wrist.Y)*(pip.Y-wrist.Y)

		if tipDistSq > pipDistSq {
			extended++
		}
	}

	return extended <= 2
}

// validateLandmarks checks for the fixed landmark count and finite
// coordinates.
func validateLandmarks(points []detector.Point) error {
	if len(points) != detector.NumLandmarks {
		return fmt.Errorf("%w: expected %d points, got %d", ErrInvalidLandmarks, detector.NumLandmarks, len(points))
	}
	for i, p := range points {
		if !isFinite(p.X) || !isFinite(p.Y) {
			return fmt.Errorf("%w: non-finite coordinate at landmark %d", ErrInvalidLandmarks, i)
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
