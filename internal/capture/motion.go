package capture

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// Preprocessing parameters for the frame-difference gate. The blur kernel
// smears away sensor noise so a still scene does not flicker above the
// pixel delta.
const (
	blurKernel = 21
	pixelDelta = 25
)

// MotionDetector gates the hand detector: frames are compared against the
// previous one and the expensive detection step only runs while enough of
// the image is changing. Threshold is the percentage of pixels that must
// differ, e.g. 1.0 means one percent of the frame.
type MotionDetector struct {
	mu        sync.Mutex
	threshold float64
	baseline  gocv.Mat
	primed    bool
}

// NewMotionDetector returns a detector with the given change-percentage
// threshold.
func NewMotionDetector(threshold float64) *MotionDetector {
	return &MotionDetector{
		threshold: threshold,
		baseline:  gocv.NewMat(),
	}
}

// Detect compares the frame against the previous one and reports whether
// the changed-pixel percentage exceeds the threshold, along with the
// percentage itself. The first frame only primes the baseline and never
// counts as motion.
func (m *MotionDetector) Detect(frame *gocv.Mat) (bool, float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if frame == nil || frame.Empty() {
		return false, 0
	}

	smoothed := flatten(frame)
	defer smoothed.Close()

	if !m.primed {
		smoothed.CopyTo(&m.baseline)
		m.primed = true
		return false, 0
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(smoothed, m.baseline, &diff)

	changed := gocv.NewMat()
	defer changed.Close()
	gocv.Threshold(diff, &changed, pixelDelta, 255, gocv.ThresholdBinary)

	percent := float64(gocv.CountNonZero(changed)) / float64(changed.Rows()*changed.Cols()) * 100

	smoothed.CopyTo(&m.baseline)

	return percent > m.threshold, percent
}

// flatten reduces a frame to blurred grayscale for differencing.
func flatten(frame *gocv.Mat) gocv.Mat {
	gray := gocv.NewMat()
	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	smoothed := gocv.NewMat()
	gocv.GaussianBlur(gray, &smoothed, image.Point{X: blurKernel, Y: blurKernel}, 0, 0, gocv.BorderDefault)
	gray.Close()

	return smoothed
}

// SetThreshold adjusts the change-percentage threshold. Non-positive
// values are ignored.
func (m *MotionDetector) SetThreshold(threshold float64) {
	if threshold <= 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.threshold = threshold
}

// Reset drops the baseline; the next frame primes a fresh one. Used when
// the camera reopens between sessions.
func (m *MotionDetector) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dropBaseline()
}

// Close releases the baseline Mat. The detector may be reused afterwards;
// it reprimes on the next frame.
func (m *MotionDetector) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dropBaseline()
}

func (m *MotionDetector) dropBaseline() {
	if !m.baseline.Empty() {
		m.baseline.Close()
		m.baseline = gocv.NewMat()
	}
	m.primed = false
}
