package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/messijoe-pos/api/internal/enum"
	"github.com/messijoe-pos/api/internal/floor"
	"github.com/messijoe-pos/api/internal/handler"
	"github.com/messijoe-pos/api/internal/menu"
	"github.com/messijoe-pos/api/internal/order"
	"github.com/messijoe-pos/api/internal/receipt"
	"github.com/messijoe-pos/api/internal/service"
	"github.com/messijoe-pos/api/internal/txnid"
	"github.com/shopspring/decimal"
)

// newTestRouter wires the handlers over a real in-memory workflow.
// Receipts land in a per-test temp dir.
func newTestRouter(t *testing.T) (chi.Router, string) {
	t.Helper()

	dir := t.TempDir()
	sink, err := receipt.NewFileSink(dir)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}

	flow := service.NewWorkflow(
		floor.NewRegistry(4, 4),
		order.NewBook(),
		menu.Default(),
		txnid.NewSequential(),
		sink,
	)

	r := chi.NewRouter()
	floorHandler := handler.NewFloorHandler(flow, nil)
	floorHandler.RegisterRoutes(r)
	r.Post("/restaurant/close", floorHandler.Close)

	orderHandler := handler.NewOrderHandler(flow, nil)
	r.Route("/tables/{id}/order", orderHandler.RegisterRoutes)

	return r, dir
}

func doJSON(t *testing.T, r chi.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func placeBody(guests int, selections ...int) map[string]any {
	return map[string]any{"guests": guests, "selections": selections}
}

func TestPlaceOrder(t *testing.T) {
	r, _ := newTestRouter(t)

	rr := doJSON(t, r, "POST", "/tables/1/order", placeBody(2, 1, 2))
	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d: %s", rr.Code, http.StatusCreated, rr.Body)
	}

	var resp struct {
		TableID int    `json:"table_id"`
		Status  string `json:"status"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TableID != 1 || resp.Status != enum.OrderStatusAwaitingCompletion {
		t.Errorf("response: %+v", resp)
	}
}

func TestPlaceOrderInvalidBody(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest("POST", "/tables/1/order", bytes.NewBufferString("{not json"))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestPlaceOrderBadTableID(t *testing.T) {
	r, _ := newTestRouter(t)

	rr := doJSON(t, r, "POST", "/tables/abc/order", placeBody(1, 1))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestPlaceOrderUnknownTable(t *testing.T) {
	r, _ := newTestRouter(t)

	rr := doJSON(t, r, "POST", "/tables/9/order", placeBody(1, 1))
	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestPlaceOrderCapacityExceeded(t *testing.T) {
	r, _ := newTestRouter(t)

	rr := doJSON(t, r, "POST", "/tables/1/order", placeBody(5, 1, 1, 1, 1, 1))
	if rr.Code != http.StatusConflict {
		t.Errorf("status: got %d, want %d: %s", rr.Code, http.StatusConflict, rr.Body)
	}
}

func TestPlaceOrderInvalidSelection(t *testing.T) {
	r, _ := newTestRouter(t)

	rr := doJSON(t, r, "POST", "/tables/1/order", placeBody(2, 1, 99))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d: %s", rr.Code, http.StatusBadRequest, rr.Body)
	}
}

func TestCompleteOrder(t *testing.T) {
	r, _ := newTestRouter(t)
	doJSON(t, r, "POST", "/tables/1/order", placeBody(1, 1))

	rr := doJSON(t, r, "POST", "/tables/1/order/complete", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d: %s", rr.Code, http.StatusOK, rr.Body)
	}

	// Second completion is rejected
	rr = doJSON(t, r, "POST", "/tables/1/order/complete", nil)
	if rr.Code != http.StatusConflict {
		t.Errorf("second completion: got %d, want %d", rr.Code, http.StatusConflict)
	}
}

func TestCompleteOrderNoOrder(t *testing.T) {
	r, _ := newTestRouter(t)

	rr := doJSON(t, r, "POST", "/tables/1/order/complete", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestBill(t *testing.T) {
	r, _ := newTestRouter(t)
	doJSON(t, r, "POST", "/tables/1/order", placeBody(2, 1, 2))
	doJSON(t, r, "POST", "/tables/1/order/complete", nil)

	rr := doJSON(t, r, "GET", "/tables/1/order/bill", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d: %s", rr.Code, http.StatusOK, rr.Body)
	}

	var resp struct {
		TableID int          `json:"table_id"`
		Bill    service.Bill `json:"bill"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Bill.Subtotal.Equal(decimal.NewFromInt(80)) {
		t.Errorf("subtotal: got %s, want 80", resp.Bill.Subtotal)
	}
	if !resp.Bill.Total.Equal(decimal.RequireFromString("104")) {
		t.Errorf("total: got %s, want 104", resp.Bill.Total)
	}
}

func TestBillBeforeCompletion(t *testing.T) {
	r, _ := newTestRouter(t)
	doJSON(t, r, "POST", "/tables/1/order", placeBody(1, 1))

	rr := doJSON(t, r, "GET", "/tables/1/order/bill", nil)
	if rr.Code != http.StatusConflict {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusConflict)
	}
}

func TestPayment(t *testing.T) {
	r, dir := newTestRouter(t)
	doJSON(t, r, "POST", "/tables/1/order", placeBody(2, 1, 2))
	doJSON(t, r, "POST", "/tables/1/order/complete", nil)

	rr := doJSON(t, r, "POST", "/tables/1/order/payment", nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d: %s", rr.Code, http.StatusCreated, rr.Body)
	}

	var resp struct {
		Record  service.PaymentRecord `json:"record"`
		Receipt string                `json:"receipt"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Record.TransactionID != "1000" {
		t.Errorf("transaction id: got %s, want 1000", resp.Record.TransactionID)
	}
	if resp.Receipt != filepath.Join(dir, "Transaction#1000.txt") {
		t.Errorf("receipt path: got %s", resp.Receipt)
	}
	if _, err := os.Stat(resp.Receipt); err != nil {
		t.Errorf("receipt file missing: %v", err)
	}

	// Table is free again
	seatsRR := doJSON(t, r, "GET", "/tables/1/seats", nil)
	var seats struct {
		AvailableSeats int `json:"available_seats"`
	}
	if err := json.NewDecoder(seatsRR.Body).Decode(&seats); err != nil {
		t.Fatalf("decode seats: %v", err)
	}
	if seats.AvailableSeats != 4 {
		t.Errorf("available seats after payment: got %d, want 4", seats.AvailableSeats)
	}
}

func TestPaymentBeforeCompletion(t *testing.T) {
	r, _ := newTestRouter(t)
	doJSON(t, r, "POST", "/tables/1/order", placeBody(1, 1))

	rr := doJSON(t, r, "POST", "/tables/1/order/payment", nil)
	if rr.Code != http.StatusConflict {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusConflict)
	}
}

func TestPaymentTwice(t *testing.T) {
	r, _ := newTestRouter(t)
	doJSON(t, r, "POST", "/tables/1/order", placeBody(1, 1))
	doJSON(t, r, "POST", "/tables/1/order/complete", nil)
	doJSON(t, r, "POST", "/tables/1/order/payment", nil)

	rr := doJSON(t, r, "POST", "/tables/1/order/payment", nil)
	if rr.Code != http.StatusConflict {
		t.Errorf("status: got %d, want %d: %s", rr.Code, http.StatusConflict, rr.Body)
	}
}
