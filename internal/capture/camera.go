// Package capture feeds webcam frames to the gesture control loop. It
// wraps GoCV video capture and adds a frame-difference motion gate so the
// hand detector only runs while the player is actually moving.
package capture

import (
	"errors"
	"sync"

	"gocv.io/x/gocv"
)

// ErrCameraNotOpen is returned when reading from a camera that has not
// been opened or was already closed.
var ErrCameraNotOpen = errors.New("camera is not open")

// Capture geometry. 640x480 keeps the MediaPipe round trip under the
// active-mode frame interval on a laptop webcam.
const (
	frameWidth  = 640
	frameHeight = 480

	// startupFPS is the rate a camera opens at. The control loop raises
	// it once motion is seen.
	startupFPS = 5
)

// Camera is the frame source consumed by the control pipeline and the
// MJPEG preview stream.
type Camera interface {
	Open() error
	Close() error
	ReadFrame() (*gocv.Mat, error)
	SetFPS(fps int)
	FPS() int
	IsOpen() bool
}

// webcam is the real Camera backed by a GoCV video device.
type webcam struct {
	deviceID int

	mu   sync.Mutex
	dev  *gocv.VideoCapture
	open bool
	fps  int
}

// NewCamera returns a Camera for the given video device. The device is
// not touched until Open.
func NewCamera(deviceID int) Camera {
	return &webcam{
		deviceID: deviceID,
		fps:      startupFPS,
	}
}

// Open acquires the device and applies the capture geometry. Opening an
// already open camera is a no-op.
func (w *webcam) Open() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.open {
		return nil
	}

	dev, err := gocv.OpenVideoCapture(w.deviceID)
	if err != nil {
		return err
	}

	dev.Set(gocv.VideoCaptureFrameWidth, frameWidth)
	dev.Set(gocv.VideoCaptureFrameHeight, frameHeight)
	dev.Set(gocv.VideoCaptureFPS, float64(w.fps))

	w.dev = dev
	w.open = true
	return nil
}

// Close releases the device. Safe to call repeatedly.
func (w *webcam) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.dev == nil {
		w.open = false
		return nil
	}

	err := w.dev.Close()
	w.dev = nil
	w.open = false
	return err
}

// ReadFrame grabs one frame. The caller owns the returned Mat and must
// Close it.
func (w *webcam) ReadFrame() (*gocv.Mat, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.open || w.dev == nil {
		return nil, ErrCameraNotOpen
	}

	frame := gocv.NewMat()
	if !w.dev.Read(&frame) {
		frame.Close()
		return nil, errors.New("camera read failed")
	}
	if frame.Empty() {
		frame.Close()
		return nil, errors.New("camera produced an empty frame")
	}

	return &frame, nil
}

// SetFPS changes the capture rate, used by the control loop to switch
// between idle and active pacing. Non-positive rates are ignored.
func (w *webcam) SetFPS(fps int) {
	if fps <= 0 {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.fps = fps
	if w.dev != nil {
		w.dev.Set(gocv.VideoCaptureFPS, float64(fps))
	}
}

// FPS reports the current capture rate.
func (w *webcam) FPS() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fps
}

// IsOpen reports whether the device is currently held.
func (w *webcam) IsOpen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.open
}
