// Package gesture implements the classification and debouncing engine that
// turns per-frame hand landmarks into stable directional control actions.
package gesture

// Action is the discrete control signal handed to the key injector.
type Action string

const (
	// ActionNone means no key should be pressed for this frame.
	ActionNone Action = "none"
	// ActionLeft steers left.
	ActionLeft Action = "left"
	// ActionRight steers right.
	ActionRight Action = "right"
	// ActionUp jumps.
	ActionUp Action = "up"
	// ActionDown is the roll action, reachable only through the fist
	// gesture; there is no directional band for it.
	ActionDown Action = "down"
)

// Kind tags a Raw gesture value.
type Kind string

const (
	// KindAmbiguous means no hand was found or the pose was too unclear
	// to read.
	KindAmbiguous Kind = "ambiguous"
	// KindRoll means a closed fist.
	KindRoll Kind = "roll"
	// KindDirection means a clear pointing direction; the angle carries
	// the payload.
	KindDirection Kind = "direction"
)

// Raw is the classifier's stateless read of a single frame: a closed tagged
// value that is either a roll (fist), a pointing direction with its angle,
// or ambiguous. Construct values through RollGesture, DirectionGesture and
// AmbiguousGesture so the Kind and Angle fields stay consistent.
type Raw struct {
	Kind  Kind    `json:"kind"`
	Angle float64 `json:"angle,omitempty"` // degrees in [0,360), valid only for KindDirection
}

// RollGesture returns the raw gesture for a closed fist.
func RollGesture() Raw {
	return Raw{Kind: KindRoll}
}

// DirectionGesture returns the raw gesture for a pointing direction at the
// given angle in degrees.
func DirectionGesture(deg float64) Raw {
	return Raw{Kind: KindDirection, Angle: deg}
}

// AmbiguousGesture returns the raw gesture for a frame with no readable
// hand pose.
func AmbiguousGesture() Raw {
	return Raw{Kind: KindAmbiguous}
}
