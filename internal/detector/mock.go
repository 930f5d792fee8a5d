package detector

import (
	"math"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []Hand
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []Hand) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]Hand, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Fixture geometry. Image coordinates: x grows right, y grows down, so
// "screen up" is negative y. Distances are in pixels with the wrist at
// (80, 80); fingertip reach of 44 px keeps the wrist-to-tips vector well
// above the default stability distance of 15.
const (
	fixtureWristX = 80.0
	fixtureWristY = 80.0

	mcpReach = 18.0
	pipReach = 28.0
	dipReach = 36.0
	tipReach = 44.0
)

// pointingHand builds a hand with all four fingers extended along the unit
// direction (dx, dy), fanned slightly sideways so the fingers don't overlap.
func pointingHand(dx, dy float64) Hand {
	hand := Hand{
		Handedness: "Right",
		Score:      0.95,
	}

	wrist := Point{X: fixtureWristX, Y: fixtureWristY}
	hand.Points[Wrist] = wrist

	// Perpendicular axis for fanning the fingers apart
	px, py := -dy, dx

	at := func(reach, fan float64) Point {
		return Point{
			X: wrist.X + dx*reach + px*fan,
			Y: wrist.Y + dy*reach + py*fan,
		}
	}

	// Thumb angled off to the side, not used by the classifier
	hand.Points[ThumbCMC] = at(8, -10)
	hand.Points[ThumbMCP] = at(14, -14)
	hand.Points[ThumbIP] = at(20, -17)
	hand.Points[ThumbTip] = at(26, -20)

	fingers := []struct {
		mcp, pip, dip, tip int
		fan                float64
	}{
		{IndexMCP, IndexPIP, IndexDIP, IndexTip, 6},
		{MiddleMCP, MiddlePIP, MiddleDIP, MiddleTip, 2},
		{RingMCP, RingPIP, RingDIP, RingTip, -2},
		{PinkyMCP, PinkyPIP, PinkyDIP, PinkyTip, -6},
	}

	for _, f := range fingers {
		hand.Points[f.mcp] = at(mcpReach, f.fan)
		hand.Points[f.pip] = at(pipReach, f.fan)
		hand.Points[f.dip] = at(dipReach, f.fan)
		hand.Points[f.tip] = at(tipReach, f.fan)
	}

	return hand
}

// PointingRightHand returns a hand pointing toward the right edge of the
// frame (angle near 0 degrees).
func PointingRightHand() Hand {
	return pointingHand(1, 0)
}

// PointingLeftHand returns a hand pointing toward the left edge of the
// frame (angle near 180 degrees).
func PointingLeftHand() Hand {
	return pointingHand(-1, 0)
}

// PointingUpHand returns a hand pointing toward the top of the frame
// (angle near 90 degrees).
func PointingUpHand() Hand {
	return pointingHand(0, -1)
}

// DiagonalHand returns a hand pointing up-and-right at roughly 45 degrees,
// outside every directional band at the default threshold.
func DiagonalHand() Hand {
	d := 1 / math.Sqrt2
	return pointingHand(d, -d)
}

// FistHand returns a closed fist: every fingertip is pulled back closer to
// the wrist than its proximal joint.
func FistHand() Hand {
	hand := pointingHand(0, -1)

	curl := func(dip, tip int) {
		// Tips fold back inside the pip reach
		hand.Points[dip] = scaleToward(hand.Points[Wrist], hand.Points[dip], 0.55)
		hand.Points[tip] = scaleToward(hand.Points[Wrist], hand.Points[tip], 0.40)
	}

	curl(IndexDIP, IndexTip)
	curl(MiddleDIP, MiddleTip)
	curl(RingDIP, RingTip)
	curl(PinkyDIP, PinkyTip)

	return hand
}

// CrampedHand returns a hand whose fingers count as extended but whose
// fingertips sit so close to the wrist that no direction can be read.
func CrampedHand() Hand {
	hand := pointingHand(0, -1)

	for i := 1; i < NumLandmarks; i++ {
		hand.Points[i] = scaleToward(hand.Points[Wrist], hand.Points[i], 0.2)
	}

	return hand
}

// scaleToward moves p toward origin so its distance becomes factor times
// the original.
func scaleToward(origin, p Point, factor float64) Point {
	return Point{
		X: origin.X + (p.X-origin.X)*factor,
		Y: origin.Y + (p.Y-origin.Y)*factor,
	}
}
