// Package api provides HTTP API handlers for the handsurf control
// application.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/handsurf/internal/gesture"
	"github.com/ayusman/handsurf/internal/store"
)

// SettingsHandler handles HTTP requests for the gesture tuning settings.
type SettingsHandler struct {
	store *store.Store
}

// NewSettingsHandler creates a new SettingsHandler with the given store.
func NewSettingsHandler(s *store.Store) *SettingsHandler {
	return &SettingsHandler{store: s}
}

// settingsPayload mirrors gesture.Options with the external option names.
type settingsPayload struct {
	AngularThresholdDegrees float64 `json:"angular_threshold_degrees"`
	StabilityDistance       float64 `json:"stability_distance"`
	CooldownSeconds         float64 `json:"cooldown_seconds"`
	MinConfidenceFrames     int     `json:"min_confidence_frames"`
}

func toPayload(opts gesture.Options) settingsPayload {
	return settingsPayload{
		AngularThresholdDegrees: opts.AngularThreshold,
		StabilityDistance:       opts.StabilityDistance,
		CooldownSeconds:         opts.Cooldown.Seconds(),
		MinConfidenceFrames:     opts.MinConfidenceFrames,
	}
}

func (p settingsPayload) toOptions() gesture.Options {
	return gesture.Options{
		AngularThreshold:    p.AngularThresholdDegrees,
		StabilityDistance:   p.StabilityDistance,
		Cooldown:            time.Duration(p.CooldownSeconds * float64(time.Second)),
		MinConfidenceFrames: p.MinConfidenceFrames,
	}
}

// ServeHTTP implements the http.Handler interface.
func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.update(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// get handles GET /api/settings and returns the stored tuning, with
// defaults filled in for unset keys.
func (h *SettingsHandler) get(w http.ResponseWriter, r *http.Request) {
	opts, err := h.store.Settings().LoadOptions()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}

	writeJSON(w, http.StatusOK, toPayload(opts))
}

// update handles PUT /api/settings. Invalid tuning is rejected with 400,
// never clamped. Saved settings take effect on the next session.
func (h *SettingsHandler) update(w http.ResponseWriter, r *http.Request) {
	// Start from the stored values so a partial payload only changes the
	// fields it names.
	opts, err := h.store.Settings().LoadOptions()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}

	payload := toPayload(opts)
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	opts = payload.toOptions()
	if err := opts.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.Settings().SaveOptions(opts); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save settings")
		return
	}

	writeJSON(w, http.StatusOK, toPayload(opts))
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
