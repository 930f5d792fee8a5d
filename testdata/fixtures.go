// Package testdata provides scripted hand sequences for end to end tests.
package testdata

import "github.com/ayusman/handsurf/internal/detector"

// Frame is one captured frame's worth of detection output. A nil Hand
// means no hand was in view.
type Frame struct {
	Hand *detector.Hand
}

// Hold returns n frames of the same pose, simulating a hand held still
// across consecutive captures.
func Hold(h detector.Hand, n int) []Frame {
	frames := make([]Frame, n)
	for i := range frames {
		hand := h
		frames[i] = Frame{Hand: &hand}
	}
	return frames
}

// Gap returns n frames with no hand in view.
func Gap(n int) []Frame {
	return make([]Frame, n)
}

// Concat joins frame sequences into a single script.
func Concat(sequences ...[]Frame) []Frame {
	var out []Frame
	for _, seq := range sequences {
		out = append(out, seq...)
	}
	return out
}

// SurfRun is a scripted play session: steer left, straighten out, jump,
// then roll, with a brief hand dropout between moves.
func SurfRun() []Frame {
	return Concat(
		Hold(detector.PointingLeftHand(), 3),
		Gap(2),
		Hold(detector.PointingUpHand(), 3),
		Gap(1),
		Hold(detector.FistHand(), 3),
	)
}
