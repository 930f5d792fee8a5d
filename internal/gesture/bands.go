package gesture

// ActionForAngle maps a pointing angle in degrees to its control action
// using three disjoint bands of half-width threshold degrees, centered on
// 0/360 (right), 90 (up) and 180 (left). Band edges are inclusive. Angles
// outside every band map to ActionNone: there is deliberately no band for
// down, which is only reachable through the fist gesture.
func ActionForAngle(angle, threshold float64) Action {
	switch {
	case angle <= threshold || angle >= 360-threshold:
		return ActionRight
	case angle >= 90-threshold && angle <= 90+threshold:
		return ActionUp
	case angle >= 180-threshold && angle <= 180+threshold:
		return ActionLeft
	}
	return ActionNone
}

// CandidateAction maps a raw gesture to the candidate action fed to the
// stabilizer: a roll becomes down, a banded direction becomes its action,
// and everything else is none.
func CandidateAction(raw Raw, threshold float64) Action {
	switch raw.Kind {
	case KindRoll:
		return ActionDown
	case KindDirection:
		return ActionForAngle(raw.Angle, threshold)
	}
	return ActionNone
}
