package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/messijoe-pos/api/internal/enum"
	"github.com/messijoe-pos/api/internal/menu"
	"github.com/messijoe-pos/api/internal/service"
)

// FloorFlow defines the workflow operations needed by floor endpoints.
// Satisfied by *service.Workflow.
type FloorFlow interface {
	TableStatuses() []service.TableStatus
	AvailableSeats(tableID int) (int, error)
	StatusOf(tableID int) (string, error)
	Menu() []menu.Item
	CanClose() bool
	Close() error
}

// FloorHandler handles floor reporting and restaurant close endpoints.
type FloorHandler struct {
	flow FloorFlow
	hub  Broadcaster
}

// NewFloorHandler creates a new FloorHandler. hub may be nil.
func NewFloorHandler(flow FloorFlow, hub Broadcaster) *FloorHandler {
	return &FloorHandler{flow: flow, hub: hub}
}

// RegisterRoutes registers floor endpoints on the given Chi router.
func (h *FloorHandler) RegisterRoutes(r chi.Router) {
	r.Get("/menu", h.Menu)
	r.Get("/tables", h.Tables)
	r.Get("/tables/{id}/seats", h.Seats)
	r.Get("/tables/{id}/status", h.Status)
	r.Get("/restaurant/closable", h.Closable)
}

// Menu handles GET /menu.
func (h *FloorHandler) Menu(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.flow.Menu())
}

// Tables handles GET /tables: the full floor report.
func (h *FloorHandler) Tables(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.flow.TableStatuses())
}

// Seats handles GET /tables/{id}/seats.
func (h *FloorHandler) Seats(w http.ResponseWriter, r *http.Request) {
	tableID, ok := tableParam(w, r)
	if !ok {
		return
	}

	n, err := h.flow.AvailableSeats(tableID)
	if err != nil {
		writeError(w, err, "available seats")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"table_id": tableID, "available_seats": n})
}

// Status handles GET /tables/{id}/status.
func (h *FloorHandler) Status(w http.ResponseWriter, r *http.Request) {
	tableID, ok := tableParam(w, r)
	if !ok {
		return
	}

	status, err := h.flow.StatusOf(tableID)
	if err != nil {
		writeError(w, err, "table status")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"table_id": tableID, "order_status": status})
}

// Closable handles GET /restaurant/closable.
func (h *FloorHandler) Closable(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"can_close": h.flow.CanClose()})
}

// Close handles POST /restaurant/close. Registered separately so the router
// can gate it behind the MANAGER role.
func (h *FloorHandler) Close(w http.ResponseWriter, r *http.Request) {
	if err := h.flow.Close(); err != nil {
		writeError(w, err, "close restaurant")
		return
	}

	if h.hub != nil {
		h.hub.BroadcastJSON(enum.EventRestaurantClosed, map[string]bool{"closed": true})
	}

	writeJSON(w, http.StatusOK, map[string]bool{"closed": true})
}
