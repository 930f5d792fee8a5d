package gesture

import "time"

// Stabilizer turns per-frame candidate actions into debounced emissions.
// It holds the hysteresis belief about the ongoing gesture and one cooldown
// clock per action. State lives for one session and is touched only by the
// single evaluation path, so no locking is needed.
type Stabilizer struct {
	cooldown  time.Duration
	minFrames int

	// stable is the hysteresis-held belief about the intended action. A
	// single ambiguous frame does not clear it.
	stable Action

	// pending tracks the confirmation streak of a not-yet-adopted
	// direction when minFrames > 1.
	pending    Action
	pendingRun int

	// lastEmitted maps each action to the time it was last emitted. A
	// missing entry means never, i.e. the unbounded past.
	lastEmitted map[Action]time.Time
}

// NewStabilizer creates a Stabilizer from the given options. The options
// are assumed to be validated.
func NewStabilizer(opts Options) *Stabilizer {
	return &Stabilizer{
		cooldown:    opts.Cooldown,
		minFrames:   opts.MinConfidenceFrames,
		stable:      ActionNone,
		pending:     ActionNone,
		lastEmitted: make(map[Action]time.Time),
	}
}

// Step evaluates one frame's candidate action at the given timestamp and
// returns the action to emit, or ActionNone.
//
// Hysteresis: a new non-neutral candidate is adopted as the stable belief
// once it has been seen on minFrames consecutive evaluations (immediately
// for the default of 1). A neutral candidate never clears the belief; the
// frame is evaluated as the held direction instead, bridging single-frame
// detector dropout. The post-update belief is then emitted unless that same
// action was emitted less than the cooldown ago. ActionNone is never
// emitted and never touches a cooldown clock.
func (s *Stabilizer) Step(candidate Action, now time.Time) Action {
	switch {
	case candidate == ActionNone, candidate == s.stable:
		// Neutral or agreeing frames break any confirmation streak.
		s.pending = ActionNone
		s.pendingRun = 0
	default:
		if candidate == s.pending {
			s.pendingRun++
		} else {
			s.pending = candidate
			s.pendingRun = 1
		}
		if s.pendingRun >= s.minFrames {
			s.stable = candidate
			s.pending = ActionNone
			s.pendingRun = 0
		}
	}

	emit := s.stable
	if emit == ActionNone {
		return ActionNone
	}

	if last, ok := s.lastEmitted[emit]; ok && now.Sub(last) <= s.cooldown {
		return ActionNone
	}

	s.lastEmitted[emit] = now
	return emit
}

// Stable returns the current hysteresis belief.
func (s *Stabilizer) Stable() Action {
	return s.stable
}

// Reset clears the belief and all cooldown clocks, as at session start.
func (s *Stabilizer) Reset() {
	s.stable = ActionNone
	s.pending = ActionNone
	s.pendingRun = 0
	s.lastEmitted = make(map[Action]time.Time)
}
