package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ayusman/handsurf/internal/capture"
	"gocv.io/x/gocv"
)

func TestStreamHandler_ServesMJPEG(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stream test")
	}

	frame := gocv.NewMatWithSize(120, 160, gocv.MatTypeCV8UC3)
	defer frame.Close()

	cam := capture.NewMockCamera([]*gocv.Mat{&frame}, true)
	if err := cam.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer cam.Close()

	srv := httptest.NewServer(NewStreamHandler(cam))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("Content-Type"); !strings.Contains(got, "multipart/x-mixed-replace") {
		t.Errorf("Content-Type = %s, want multipart/x-mixed-replace", got)
	}

	// Read until the deadline cuts the stream, then check we got at
	// least one full part.
	body, _ := io.ReadAll(resp.Body)
	text := string(body)

	if !strings.Contains(text, "--frame") {
		t.Error("stream is missing the part boundary")
	}
	if !strings.Contains(text, "Content-Type: image/jpeg") {
		t.Error("stream is missing the JPEG part header")
	}
}

func TestStreamHandler_MethodNotAllowed(t *testing.T) {
	cam := capture.NewMockCamera(nil, false)
	h := NewStreamHandler(cam)

	req := httptest.NewRequest(http.MethodPost, "/api/stream", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}
