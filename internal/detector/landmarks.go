// Package detector provides hand detection interfaces and types for the
// gesture control pipeline.
package detector

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point represents a 2D landmark position in the camera's image plane.
// Coordinates may be pixel or normalized; the pipeline only requires that
// they stay consistent within a session.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Hand represents the 21 hand landmarks detected for a single hand.
type Hand struct {
	Points     [NumLandmarks]Point `json:"points"`
	Handedness string              `json:"handedness"` // "Left" or "Right"
	Score      float64             `json:"score"`
}

// Landmarks returns the hand's points as a slice, the form consumed by the
// gesture classifier.
func (h *Hand) Landmarks() []Point {
	if h == nil {
		return nil
	}
	return h.Points[:]
}
