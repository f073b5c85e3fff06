package api

import (
	"net/http"
	"strconv"

	"github.com/ayusman/lumikey/internal/store"
)

// EventsHandler serves the recent key event log.
type EventsHandler struct {
	store *store.Store
}

// NewEventsHandler creates a new EventsHandler with the given store.
func NewEventsHandler(s *store.Store) *EventsHandler {
	return &EventsHandler{store: s}
}

type eventResponse struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Kind string `json:"kind"`
	AtMs int64  `json:"at_ms"`
}

type listEventsResponse struct {
	Events []eventResponse `json:"events"`
}

// ServeHTTP handles GET /api/events/recent?n=50.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	n := 50
	if q := r.URL.Query().Get("n"); q != "" {
		parsed, err := strconv.Atoi(q)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "n must be a positive integer")
			return
		}
		n = parsed
	}

	events, err := h.store.Events().Recent(n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := listEventsResponse{Events: []eventResponse{}}
	for _, ev := range events {
		resp.Events = append(resp.Events, eventResponse{
			ID:   ev.ID,
			Key:  ev.Key,
			Kind: ev.Kind,
			AtMs: ev.At.UnixMilli(),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
