package api

import (
	"net/http"
	"strconv"

	"github.com/ayusman/handsurf/internal/store"
)

// EventsHandler serves the emitted-event history.
type EventsHandler struct {
	store *store.Store
}

// NewEventsHandler creates a new EventsHandler with the given store.
func NewEventsHandler(s *store.Store) *EventsHandler {
	return &EventsHandler{store: s}
}

type eventResponse struct {
	ID        int64    `json:"id"`
	SessionID string   `json:"session_id"`
	Action    string   `json:"action"`
	RawKind   string   `json:"raw_kind"`
	Angle     *float64 `json:"angle,omitempty"`
	CreatedAt string   `json:"created_at"`
}

type listEventsResponse struct {
	Events []eventResponse `json:"events"`
}

// ServeHTTP handles GET /api/events?limit=N&session=ID.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var (
		events []store.Event
		err    error
	)

	if sessionID := r.URL.Query().Get("session"); sessionID != "" {
		events, err = h.store.Events().ListBySession(sessionID)
	} else {
		limit := 50
		if v := r.URL.Query().Get("limit"); v != "" {
			limit, err = strconv.Atoi(v)
			if err != nil || limit <= 0 {
				writeError(w, http.StatusBadRequest, "limit must be a positive integer")
				return
			}
		}
		events, err = h.store.Events().ListRecent(limit)
	}

	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list events")
		return
	}

	response := listEventsResponse{Events: make([]eventResponse, len(events))}
	for i, e := range events {
		response.Events[i] = eventResponse{
			ID:        e.ID,
			SessionID: e.SessionID,
			Action:    e.Action,
			RawKind:   e.RawKind,
			Angle:     e.Angle,
			CreatedAt: e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	writeJSON(w, http.StatusOK, response)
}
