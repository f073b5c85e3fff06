// Package api provides HTTP API handlers for the Lumikey tracker.
package api

import (
	"encoding/json"
	"errors"
	"image"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ayusman/lumikey/internal/keymap"
	"github.com/ayusman/lumikey/internal/store"
)

// LayoutHandler handles HTTP requests for layout resources.
type LayoutHandler struct {
	store *store.Store
}

// NewLayoutHandler creates a new LayoutHandler with the given store.
func NewLayoutHandler(s *store.Store) *LayoutHandler {
	return &LayoutHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *LayoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/layouts or /api/layouts/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/layouts")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type zonePayload struct {
	Key string `json:"key"`
	X   int    `json:"x"`
	Y   int    `json:"y"`
	W   int    `json:"w"`
	H   int    `json:"h"`
	CX  int    `json:"cx"`
	CY  int    `json:"cy"`
}

type createLayoutRequest struct {
	Name  string        `json:"name"`
	Zones []zonePayload `json:"zones"`
}

type layoutResponse struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	CreatedAt string        `json:"created_at"`
	Zones     []zonePayload `json:"zones,omitempty"`
}

type listLayoutsResponse struct {
	Layouts []layoutResponse `json:"layouts"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toZonePayloads(zones []keymap.Zone) []zonePayload {
	out := make([]zonePayload, len(zones))
	for i, z := range zones {
		out[i] = zonePayload{
			Key: string(z.Key),
			X:   z.Rect.Min.X,
			Y:   z.Rect.Min.Y,
			W:   z.Rect.Dx(),
			H:   z.Rect.Dy(),
			CX:  z.Center.X,
			CY:  z.Center.Y,
		}
	}
	return out
}

func toZones(payloads []zonePayload) []keymap.Zone {
	out := make([]keymap.Zone, len(payloads))
	for i, p := range payloads {
		out[i] = keymap.Zone{
			Key:    keymap.KeyID(p.Key),
			Rect:   keymap.R(p.X, p.Y, p.W, p.H),
			Center: image.Pt(p.CX, p.CY),
		}
	}
	return out
}

func toResponse(l *store.Layout, zones []keymap.Zone) layoutResponse {
	return layoutResponse{
		ID:        l.ID,
		Name:      l.Name,
		CreatedAt: l.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		Zones:     toZonePayloads(zones),
	}
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

// list handles GET /api/layouts and returns all layouts without zones.
func (h *LayoutHandler) list(w http.ResponseWriter, r *http.Request) {
	layouts, err := h.store.Layouts().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := listLayoutsResponse{Layouts: []layoutResponse{}}
	for _, l := range layouts {
		resp.Layouts = append(resp.Layouts, toResponse(l, nil))
	}
	writeJSON(w, http.StatusOK, resp)
}

// create handles POST /api/layouts. The zone list is validated the same way
// as at startup: empty rectangles are rejected.
func (h *LayoutHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createLayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if len(req.Zones) == 0 {
		writeError(w, http.StatusBadRequest, "at least one zone is required")
		return
	}

	zones := toZones(req.Zones)
	if _, err := keymap.NewLayout(req.Name, zones); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	l := &store.Layout{
		ID:   uuid.New().String(),
		Name: req.Name,
	}
	if err := h.store.Layouts().Create(l, zones); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(l, zones))
}

// get handles GET /api/layouts/{id} and returns the layout with its zones.
func (h *LayoutHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	l, err := h.store.Layouts().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "layout not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	zones, err := h.store.Layouts().GetZones(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, toResponse(l, zones))
}

// delete handles DELETE /api/layouts/{id}.
func (h *LayoutHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.Layouts().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "layout not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
