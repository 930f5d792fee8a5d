package gesture

import (
	"testing"
	"time"
)

func stabilizerForTest(opts Options) *Stabilizer {
	if err := opts.Validate(); err != nil {
		panic(err)
	}
	return NewStabilizer(opts)
}

func TestStabilizer_StickyNeutral(t *testing.T) {
	s := stabilizerForTest(DefaultOptions())
	t0 := time.Now()

	// Frames spaced wider than the cooldown so every frame may emit.
	if got := s.Step(ActionLeft, t0); got != ActionLeft {
		t.Fatalf("frame 1 = %s, want left", got)
	}
	// Single ambiguous frame: the ongoing gesture must survive.
	if got := s.Step(ActionNone, t0.Add(60*time.Millisecond)); got != ActionLeft {
		t.Errorf("ambiguous frame = %s, want left (sticky neutral)", got)
	}
	if got := s.Step(ActionLeft, t0.Add(120*time.Millisecond)); got != ActionLeft {
		t.Errorf("frame 3 = %s, want left", got)
	}

	if s.Stable() != ActionLeft {
		t.Errorf("stable = %s, want left throughout", s.Stable())
	}
}

func TestStabilizer_NewGestureAdoptedImmediately(t *testing.T) {
	s := stabilizerForTest(DefaultOptions())
	t0 := time.Now()

	s.Step(ActionLeft, t0)
	// Default MinConfidenceFrames = 1: no debounce delay on acquiring a
	// new non-neutral gesture.
	if got := s.Step(ActionUp, t0.Add(time.Millisecond)); got != ActionUp {
		t.Errorf("new gesture = %s, want up", got)
	}
	if s.Stable() != ActionUp {
		t.Errorf("stable = %s, want up", s.Stable())
	}
}

func TestStabilizer_Cooldown(t *testing.T) {
	opts := DefaultOptions() // 50ms cooldown
	t0 := time.Now()

	t.Run("within cooldown emits once", func(t *testing.T) {
		s := stabilizerForTest(opts)
		if got := s.Step(ActionUp, t0); got != ActionUp {
			t.Fatalf("frame 1 = %s, want up", got)
		}
		if got := s.Step(ActionUp, t0.Add(20*time.Millisecond)); got != ActionNone {
			t.Errorf("frame 2 = %s, want none within cooldown", got)
		}
	})

	t.Run("past cooldown emits twice", func(t *testing.T) {
		s := stabilizerForTest(opts)
		if got := s.Step(ActionUp, t0); got != ActionUp {
			t.Fatalf("frame 1 = %s, want up", got)
		}
		if got := s.Step(ActionUp, t0.Add(60*time.Millisecond)); got != ActionUp {
			t.Errorf("frame 2 = %s, want up past cooldown", got)
		}
	})
}

func TestStabilizer_PerActionCooldownIndependence(t *testing.T) {
	s := stabilizerForTest(DefaultOptions())
	t0 := time.Now()

	// Alternating actions must not share a cooldown clock.
	if got := s.Step(ActionLeft, t0); got != ActionLeft {
		t.Fatalf("frame 1 = %s, want left", got)
	}
	if got := s.Step(ActionRight, t0.Add(time.Millisecond)); got != ActionRight {
		t.Errorf("frame 2 = %s, want right despite recent left emission", got)
	}
}

func TestStabilizer_NoneIsNeverEmitted(t *testing.T) {
	s := stabilizerForTest(DefaultOptions())
	t0 := time.Now()

	for i := 0; i < 5; i++ {
		if got := s.Step(ActionNone, t0.Add(time.Duration(i)*100*time.Millisecond)); got != ActionNone {
			t.Fatalf("frame %d = %s, want none with no prior gesture", i, got)
		}
	}
}

func TestStabilizer_MinConfidenceFrames(t *testing.T) {
	opts := DefaultOptions()
	opts.MinConfidenceFrames = 3

	t.Run("adopts after N consecutive frames", func(t *testing.T) {
		s := stabilizerForTest(opts)
		t0 := time.Now()

		if got := s.Step(ActionRight, t0); got != ActionNone {
			t.Errorf("frame 1 = %s, want none before confirmation", got)
		}
		if got := s.Step(ActionRight, t0.Add(60*time.Millisecond)); got != ActionNone {
			t.Errorf("frame 2 = %s, want none before confirmation", got)
		}
		if got := s.Step(ActionRight, t0.Add(120*time.Millisecond)); got != ActionRight {
			t.Errorf("frame 3 = %s, want right after confirmation", got)
		}
	})

	t.Run("neutral frame resets the streak", func(t *testing.T) {
		s := stabilizerForTest(opts)
		t0 := time.Now()

		s.Step(ActionRight, t0)
		s.Step(ActionRight, t0.Add(60*time.Millisecond))
		s.Step(ActionNone, t0.Add(120*time.Millisecond))
		if got := s.Step(ActionRight, t0.Add(180*time.Millisecond)); got != ActionNone {
			t.Errorf("frame after reset = %s, want none (streak restarted)", got)
		}
	})

	t.Run("different candidate restarts the streak", func(t *testing.T) {
		s := stabilizerForTest(opts)
		t0 := time.Now()

		s.Step(ActionRight, t0)
		s.Step(ActionRight, t0.Add(60*time.Millisecond))
		s.Step(ActionLeft, t0.Add(120*time.Millisecond))
		s.Step(ActionLeft, t0.Add(180*time.Millisecond))
		if got := s.Step(ActionLeft, t0.Add(240*time.Millisecond)); got != ActionLeft {
			t.Errorf("third consecutive left = %s, want left", got)
		}
	})
}

func TestStabilizer_Reset(t *testing.T) {
	s := stabilizerForTest(DefaultOptions())
	t0 := time.Now()

	s.Step(ActionLeft, t0)
	s.Reset()

	if s.Stable() != ActionNone {
		t.Errorf("stable after reset = %s, want none", s.Stable())
	}
	// Cooldown clocks cleared: an immediate re-emission is allowed.
	if got := s.Step(ActionLeft, t0.Add(time.Millisecond)); got != ActionLeft {
		t.Errorf("step after reset = %s, want left", got)
	}
}
