package gesture

import (
	"time"

	"github.com/ayusman/handsurf/internal/detector"
)

// Controller wires the classifier and the stabilizer into the per-frame
// evaluation entry point used by the capture pipeline: landmarks in, at
// most one control action out.
type Controller struct {
	opts       Options
	classifier *Classifier
	stabilizer *Stabilizer
	lastRaw    Raw
}

// NewController creates a Controller, failing fast on invalid options.
func NewController(opts Options) (*Controller, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Controller{
		opts:       opts,
		classifier: NewClassifier(opts.StabilityDistance),
		stabilizer: NewStabilizer(opts),
		lastRaw:    AmbiguousGesture(),
	}, nil
}

// Evaluate classifies one frame's landmarks and runs the result through the
// stabilizer, returning the action to emit (or ActionNone). A nil landmark
// slice means no hand was detected. Malformed landmarks are reported
// through the returned error but the frame is still evaluated as ambiguous,
// so a single bad frame never halts the control loop.
func (c *Controller) Evaluate(points []detector.Point, now time.Time) (Action, error) {
	raw := AmbiguousGesture()
	var err error

	if points != nil {
		raw, err = c.classifier.Classify(points)
		if err != nil {
			raw = AmbiguousGesture()
		}
	}
	c.lastRaw = raw

	candidate := CandidateAction(raw, c.opts.AngularThreshold)
	return c.stabilizer.Step(candidate, now), err
}

// LastRaw returns the raw gesture observed on the most recent evaluation.
func (c *Controller) LastRaw() Raw {
	return c.lastRaw
}

// Stable returns the stabilizer's current belief.
func (c *Controller) Stable() Action {
	return c.stabilizer.Stable()
}

// Options returns the controller's tuning.
func (c *Controller) Options() Options {
	return c.opts
}

// Reset clears all session state.
func (c *Controller) Reset() {
	c.stabilizer.Reset()
	c.lastRaw = AmbiguousGesture()
}
