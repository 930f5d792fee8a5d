package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ayusman/handsurf/internal/capture"
	"gocv.io/x/gocv"
)

// mjpegBoundary separates frames in the multipart stream.
const mjpegBoundary = "frame"

// StreamHandler serves the camera as an MJPEG stream so the settings page
// can show what the classifier sees while tuning.
type StreamHandler struct {
	camera capture.Camera
}

// NewStreamHandler returns a StreamHandler over the given camera.
func NewStreamHandler(camera capture.Camera) *StreamHandler {
	return &StreamHandler{camera: camera}
}

// ServeHTTP pushes JPEG frames until the client disconnects. Frames are
// paced at the camera's current rate, so the preview slows down with the
// pipeline in idle mode.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary="+mjpegBoundary)
	w.Header().Set("Cache-Control", "no-cache")

	for r.Context().Err() == nil {
		if err := h.writeFrame(w); err != nil {
			// Camera hiccups are transient; client write errors end the
			// stream via the context check.
			time.Sleep(100 * time.Millisecond)
			continue
		}
		flusher.Flush()

		fps := h.camera.FPS()
		if fps <= 0 {
			fps = 5
		}
		time.Sleep(time.Second / time.Duration(fps))
	}
}

// writeFrame grabs one frame, encodes it and writes one multipart part.
func (h *StreamHandler) writeFrame(w http.ResponseWriter) error {
	frame, err := h.camera.ReadFrame()
	if err != nil {
		return err
	}
	defer frame.Close()

	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		return err
	}
	defer buf.Close()

	fmt.Fprintf(w, "--%s\r\nContent-Type: image/jpeg\r\nContent-Length: %d\r\n\r\n", mjpegBoundary, buf.Len())
	w.Write(buf.GetBytes())
	fmt.Fprint(w, "\r\n")
	return nil
}
