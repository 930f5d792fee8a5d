package capture

import (
	"errors"
	"testing"
)

func TestNewCamera_StartsAtIdleRate(t *testing.T) {
	// Cameras open slow; the control loop raises the rate once the
	// player moves.
	for _, deviceID := range []int{0, 1, 2} {
		cam := NewCamera(deviceID)

		if got := cam.FPS(); got != 5 {
			t.Errorf("device %d: FPS() = %d, want 5", deviceID, got)
		}
		if cam.IsOpen() {
			t.Errorf("device %d: camera reports open before Open()", deviceID)
		}
	}
}

func TestCamera_SetFPS(t *testing.T) {
	cam := NewCamera(0)

	t.Run("switches between idle and active rates", func(t *testing.T) {
		cam.SetFPS(15)
		if got := cam.FPS(); got != 15 {
			t.Errorf("FPS() = %d, want 15", got)
		}

		cam.SetFPS(5)
		if got := cam.FPS(); got != 5 {
			t.Errorf("FPS() = %d, want 5", got)
		}
	})

	t.Run("ignores non-positive rates", func(t *testing.T) {
		cam.SetFPS(15)

		cam.SetFPS(0)
		cam.SetFPS(-5)

		if got := cam.FPS(); got != 15 {
			t.Errorf("FPS() = %d after bogus rates, want 15", got)
		}
	})
}

func TestCamera_ReadFrameBeforeOpen(t *testing.T) {
	cam := NewCamera(0)

	frame, err := cam.ReadFrame()
	if !errors.Is(err, ErrCameraNotOpen) {
		t.Errorf("ReadFrame() error = %v, want ErrCameraNotOpen", err)
	}
	if frame != nil {
		t.Error("ReadFrame() returned a frame from a closed camera")
	}
}

func TestCamera_CloseWithoutOpen(t *testing.T) {
	cam := NewCamera(0)

	// Stop() closes the camera unconditionally; that must be safe even
	// when Open never ran or already failed.
	if err := cam.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := cam.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if cam.IsOpen() {
		t.Error("camera reports open after Close()")
	}
}
