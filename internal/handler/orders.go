package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/messijoe-pos/api/internal/enum"
	"github.com/messijoe-pos/api/internal/floor"
	"github.com/messijoe-pos/api/internal/order"
	"github.com/messijoe-pos/api/internal/service"
)

// OrderFlow defines the workflow operations needed by order endpoints.
// Satisfied by *service.Workflow; narrow interface for testability.
type OrderFlow interface {
	PlaceOrder(tableID, guestCount int, selections []int) error
	CompleteOrder(tableID int) error
	ComputeBill(tableID int) (service.Bill, error)
	ConfirmPayment(tableID int) (service.PaymentRecord, string, error)
	StatusOf(tableID int) (string, error)
}

// Broadcaster fans floor events out to connected displays.
// Satisfied by *ws.Hub.
type Broadcaster interface {
	BroadcastJSON(eventType string, payload any)
}

// OrderHandler handles the per-table order lifecycle endpoints.
type OrderHandler struct {
	flow OrderFlow
	hub  Broadcaster
}

// NewOrderHandler creates a new OrderHandler. hub may be nil when no floor
// displays are attached (tests, CLI embedding).
func NewOrderHandler(flow OrderFlow, hub Broadcaster) *OrderHandler {
	return &OrderHandler{flow: flow, hub: hub}
}

// RegisterRoutes registers order endpoints on the given Chi router.
// Expected to be mounted at /tables/{id}/order
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Place)
	r.Post("/complete", h.Complete)
	r.Get("/bill", h.Bill)
	r.Post("/payment", h.Pay)
}

// --- Request / Response types ---

type placeOrderRequest struct {
	Guests     int   `json:"guests"`
	Selections []int `json:"selections"`
}

type billResponse struct {
	TableID int          `json:"table_id"`
	Bill    service.Bill `json:"bill"`
}

type paymentResponse struct {
	Record  service.PaymentRecord `json:"record"`
	Receipt string                `json:"receipt"`
}

// --- Handlers ---

// Place handles POST /tables/{id}/order.
func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	tableID, ok := tableParam(w, r)
	if !ok {
		return
	}

	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := h.flow.PlaceOrder(tableID, req.Guests, req.Selections); err != nil {
		writeError(w, err, "place order")
		return
	}

	status, err := h.flow.StatusOf(tableID)
	if err != nil {
		log.Printf("ERROR: status after place order: %v", err)
		status = enum.OrderStatusAwaitingCompletion
	}

	if h.hub != nil {
		h.hub.BroadcastJSON(enum.EventOrderPlaced, map[string]any{
			"table_id": tableID,
			"guests":   req.Guests,
			"status":   status,
		})
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"table_id": tableID,
		"status":   status,
	})
}

// Complete handles POST /tables/{id}/order/complete.
func (h *OrderHandler) Complete(w http.ResponseWriter, r *http.Request) {
	tableID, ok := tableParam(w, r)
	if !ok {
		return
	}

	if err := h.flow.CompleteOrder(tableID); err != nil {
		writeError(w, err, "complete order")
		return
	}

	if h.hub != nil {
		h.hub.BroadcastJSON(enum.EventOrderCompleted, map[string]any{
			"table_id": tableID,
			"status":   enum.OrderStatusAwaitingPayment,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"table_id": tableID,
		"status":   enum.OrderStatusAwaitingPayment,
	})
}

// Bill handles GET /tables/{id}/order/bill.
func (h *OrderHandler) Bill(w http.ResponseWriter, r *http.Request) {
	tableID, ok := tableParam(w, r)
	if !ok {
		return
	}

	bill, err := h.flow.ComputeBill(tableID)
	if err != nil {
		writeError(w, err, "compute bill")
		return
	}

	writeJSON(w, http.StatusOK, billResponse{TableID: tableID, Bill: bill})
}

// Pay handles POST /tables/{id}/order/payment.
func (h *OrderHandler) Pay(w http.ResponseWriter, r *http.Request) {
	tableID, ok := tableParam(w, r)
	if !ok {
		return
	}

	rec, receiptPath, err := h.flow.ConfirmPayment(tableID)
	if err != nil {
		writeError(w, err, "confirm payment")
		return
	}

	if h.hub != nil {
		h.hub.BroadcastJSON(enum.EventOrderPaid, map[string]any{
			"table_id":       tableID,
			"transaction_id": rec.TransactionID,
			"total":          rec.Bill.Total,
		})
	}

	writeJSON(w, http.StatusCreated, paymentResponse{Record: rec, Receipt: receiptPath})
}

// --- Helpers ---

// tableParam parses the {id} path segment. Writes the error response itself.
func tableParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid table id"})
		return 0, false
	}
	return id, true
}

// writeError maps workflow errors to HTTP statuses.
func writeError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, floor.ErrUnknownTable),
		errors.Is(err, order.ErrNoSuchOrder):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, floor.ErrInvalidCount),
		errors.Is(err, service.ErrInvalidSelection):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, floor.ErrTableFull),
		errors.Is(err, service.ErrCapacityExceeded),
		errors.Is(err, order.ErrAlreadyCompleted),
		errors.Is(err, order.ErrNotCompleted),
		errors.Is(err, order.ErrAlreadyPaid),
		errors.Is(err, service.ErrNotClosable):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		log.Printf("ERROR: %s: %v", op, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
