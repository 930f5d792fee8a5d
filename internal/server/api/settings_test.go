package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ayusman/handsurf/internal/gesture"
	"github.com/ayusman/handsurf/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func TestSettingsHandler_GetDefaults(t *testing.T) {
	h := NewSettingsHandler(newTestStore(t))

	req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var payload settingsPayload
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	defaults := gesture.DefaultOptions()
	if payload.AngularThresholdDegrees != defaults.AngularThreshold {
		t.Errorf("angular threshold = %v, want %v", payload.AngularThresholdDegrees, defaults.AngularThreshold)
	}
	if payload.MinConfidenceFrames != defaults.MinConfidenceFrames {
		t.Errorf("min confidence frames = %v, want %v", payload.MinConfidenceFrames, defaults.MinConfidenceFrames)
	}
}

func TestSettingsHandler_Update(t *testing.T) {
	s := newTestStore(t)
	h := NewSettingsHandler(s)

	body := `{"angular_threshold_degrees": 30, "stability_distance": 20, "cooldown_seconds": 0.25, "min_confidence_frames": 2}`
	req := httptest.NewRequest(http.MethodPut, "/api/settings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	opts, err := s.Settings().LoadOptions()
	if err != nil {
		t.Fatalf("LoadOptions() error = %v", err)
	}
	if opts.AngularThreshold != 30 || opts.MinConfidenceFrames != 2 {
		t.Errorf("stored options = %+v", opts)
	}
}

func TestSettingsHandler_PartialUpdateKeepsOtherFields(t *testing.T) {
	s := newTestStore(t)
	h := NewSettingsHandler(s)

	body := `{"stability_distance": 25}`
	req := httptest.NewRequest(http.MethodPut, "/api/settings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	opts, err := s.Settings().LoadOptions()
	if err != nil {
		t.Fatalf("LoadOptions() error = %v", err)
	}
	if opts.StabilityDistance != 25 {
		t.Errorf("stability distance = %v, want 25", opts.StabilityDistance)
	}
	if opts.AngularThreshold != gesture.DefaultOptions().AngularThreshold {
		t.Errorf("angular threshold changed unexpectedly: %v", opts.AngularThreshold)
	}
}

func TestSettingsHandler_RejectsInvalidTuning(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"colliding bands", `{"angular_threshold_degrees": 45}`},
		{"negative cooldown", `{"cooldown_seconds": -0.1}`},
		{"zero confidence frames", `{"min_confidence_frames": 0}`},
		{"not JSON", `{angular`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			h := NewSettingsHandler(s)

			req := httptest.NewRequest(http.MethodPut, "/api/settings", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}

			// Nothing may be persisted from a rejected update.
			opts, err := s.Settings().LoadOptions()
			if err != nil {
				t.Fatalf("LoadOptions() error = %v", err)
			}
			if opts != gesture.DefaultOptions() {
				t.Errorf("rejected update was persisted: %+v", opts)
			}
		})
	}
}

func TestSettingsHandler_MethodNotAllowed(t *testing.T) {
	h := NewSettingsHandler(newTestStore(t))

	req := httptest.NewRequest(http.MethodDelete, "/api/settings", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}
