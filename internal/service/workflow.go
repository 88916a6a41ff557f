package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/messijoe-pos/api/internal/enum"
	"github.com/messijoe-pos/api/internal/floor"
	"github.com/messijoe-pos/api/internal/menu"
	"github.com/messijoe-pos/api/internal/order"
	"github.com/shopspring/decimal"
)

// Errors returned by the workflow.
var (
	ErrCapacityExceeded = errors.New("guest count exceeds available seats")
	ErrInvalidSelection = errors.New("invalid menu selection")
	ErrNotClosable      = errors.New("restaurant has unsettled or no orders")
)

// Billing rates applied to every order.
var (
	TaxRate = decimal.RequireFromString("0.10")
	TipRate = decimal.RequireFromString("0.20")
)

// Bill is the computed charges for a completed order. Derived, never stored:
// recomputing before payment always yields the same values.
type Bill struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Tip      decimal.Decimal `json:"tip"`
	Total    decimal.Decimal `json:"total"`
}

// PaymentRecord is the settled transaction handed to the receipt sink.
type PaymentRecord struct {
	TableID       int         `json:"table_id"`
	Items         []menu.Item `json:"items"`
	Bill          Bill        `json:"bill"`
	TransactionID string      `json:"transaction_id"`
}

// TransactionIDGenerator labels each confirmed payment. Ids must be unique
// for the life of the process; receipt filenames are derived from them.
type TransactionIDGenerator interface {
	Next() string
}

// ReceiptSink persists a human-readable receipt for a confirmed payment and
// returns where it was written.
type ReceiptSink interface {
	Write(rec PaymentRecord) (string, error)
}

// TableStatus is one row of the floor report.
type TableStatus struct {
	TableID        int    `json:"table_id"`
	Capacity       int    `json:"capacity"`
	SeatedGuests   int    `json:"seated_guests"`
	AvailableSeats int    `json:"available_seats"`
	OrderStatus    string `json:"order_status"`
}

// Workflow is the state machine over the table registry and the order book.
// Each table's order moves NoOrder → AwaitingCompletion → AwaitingPayment →
// Settled, forward-only. Every operation validates before mutating and runs
// under one mutex, so concurrent front-end calls observe each transition as
// atomic across both containers.
type Workflow struct {
	mu       sync.Mutex
	tables   *floor.Registry
	book     *order.Book
	catalog  *menu.Catalog
	ids      TransactionIDGenerator
	receipts ReceiptSink
}

// NewWorkflow wires the workflow to its containers and collaborators.
func NewWorkflow(tables *floor.Registry, book *order.Book, catalog *menu.Catalog, ids TransactionIDGenerator, receipts ReceiptSink) *Workflow {
	return &Workflow{
		tables:   tables,
		book:     book,
		catalog:  catalog,
		ids:      ids,
		receipts: receipts,
	}
}

// PlaceOrder seats guestCount guests at the table and records one menu
// selection per guest, in guest-entry order. All validation happens before
// either container is touched: a rejected order leaves seating and the order
// book exactly as they were.
func (w *Workflow) PlaceOrder(tableID, guestCount int, selections []int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	available, err := w.tables.AvailableSeats(tableID)
	if err != nil {
		return fmt.Errorf("table %d: %w", tableID, err)
	}
	if guestCount <= 0 {
		return fmt.Errorf("table %d: %w", tableID, floor.ErrInvalidCount)
	}
	if guestCount > available {
		return fmt.Errorf("table %d: %w", tableID, ErrCapacityExceeded)
	}
	if len(selections) != guestCount {
		return fmt.Errorf("table %d: %w: need %d selections, got %d",
			tableID, ErrInvalidSelection, guestCount, len(selections))
	}

	items := make([]menu.Item, 0, guestCount)
	for _, choice := range selections {
		item, err := w.catalog.Resolve(choice)
		if err != nil {
			return fmt.Errorf("table %d: %w: choice %d", tableID, ErrInvalidSelection, choice)
		}
		items = append(items, item)
	}

	// Validation passed; neither call below can fail.
	if err := w.tables.SeatGuests(tableID, guestCount); err != nil {
		return fmt.Errorf("table %d: %w", tableID, err)
	}
	w.book.AppendItems(tableID, items)
	return nil
}

// CompleteOrder marks the table's order complete. Re-completing an already
// completed order is rejected with order.ErrAlreadyCompleted.
func (w *Workflow) CompleteOrder(tableID int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.book.MarkCompleted(tableID); err != nil {
		return fmt.Errorf("table %d: %w", tableID, err)
	}
	return nil
}

// ComputeBill prices the table's completed order. Pure: callable any number
// of times before payment with identical results.
func (w *Workflow) ComputeBill(tableID int) (Bill, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.computeBill(tableID)
}

func (w *Workflow) computeBill(tableID int) (Bill, error) {
	status, err := w.book.StatusOf(tableID)
	if err != nil {
		return Bill{}, fmt.Errorf("table %d: %w", tableID, err)
	}
	if status == enum.OrderStatusAwaitingCompletion {
		return Bill{}, fmt.Errorf("table %d: %w", tableID, order.ErrNotCompleted)
	}

	items, err := w.book.Items(tableID)
	if err != nil {
		return Bill{}, fmt.Errorf("table %d: %w", tableID, err)
	}

	var sum int64
	for _, item := range items {
		sum += item.Price
	}
	subtotal := decimal.NewFromInt(sum)
	tax := subtotal.Mul(TaxRate)
	tip := subtotal.Mul(TipRate)
	return Bill{
		Subtotal: subtotal,
		Tax:      tax,
		Tip:      tip,
		Total:    subtotal.Add(tax).Add(tip),
	}, nil
}

// ConfirmPayment settles the table's order: it prices the bill, writes the
// receipt, marks the order paid, and frees the table's seats. The receipt is
// written before any state changes, so a sink failure leaves the order
// payable again. Returns the payment record and the receipt location.
func (w *Workflow) ConfirmPayment(tableID int) (PaymentRecord, string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	status, err := w.book.StatusOf(tableID)
	if err != nil {
		return PaymentRecord{}, "", fmt.Errorf("table %d: %w", tableID, err)
	}
	switch status {
	case enum.OrderStatusAwaitingCompletion:
		return PaymentRecord{}, "", fmt.Errorf("table %d: %w", tableID, order.ErrNotCompleted)
	case enum.OrderStatusSettled:
		return PaymentRecord{}, "", fmt.Errorf("table %d: %w", tableID, order.ErrAlreadyPaid)
	}

	bill, err := w.computeBill(tableID)
	if err != nil {
		return PaymentRecord{}, "", err
	}
	items, err := w.book.Items(tableID)
	if err != nil {
		return PaymentRecord{}, "", fmt.Errorf("table %d: %w", tableID, err)
	}

	rec := PaymentRecord{
		TableID:       tableID,
		Items:         items,
		Bill:          bill,
		TransactionID: w.ids.Next(),
	}
	path, err := w.receipts.Write(rec)
	if err != nil {
		return PaymentRecord{}, "", fmt.Errorf("table %d: write receipt: %w", tableID, err)
	}

	// State checked above; neither mutation below can fail.
	if err := w.book.MarkPaid(tableID); err != nil {
		return PaymentRecord{}, "", fmt.Errorf("table %d: %w", tableID, err)
	}
	if err := w.tables.ResetOccupancy(tableID); err != nil {
		return PaymentRecord{}, "", fmt.Errorf("table %d: %w", tableID, err)
	}
	return rec, path, nil
}

// CanClose reports whether the restaurant may shut down: at least one order
// has been placed and every order is settled. A restaurant that never served
// anyone stays open.
func (w *Workflow) CanClose() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.book.Len() > 0 && w.book.AllSettled()
}

// Close validates CanClose as a single operation for front ends that need a
// typed error instead of a boolean.
func (w *Workflow) Close() error {
	if !w.CanClose() {
		return ErrNotClosable
	}
	return nil
}

// StatusOf reports the table's order lifecycle stage. Tables without an
// order report enum.OrderStatusNone.
func (w *Workflow) StatusOf(tableID int) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.tables.AvailableSeats(tableID); err != nil {
		return "", fmt.Errorf("table %d: %w", tableID, err)
	}
	status, err := w.book.StatusOf(tableID)
	if errors.Is(err, order.ErrNoSuchOrder) {
		return enum.OrderStatusNone, nil
	}
	if err != nil {
		return "", fmt.Errorf("table %d: %w", tableID, err)
	}
	return status, nil
}

// AvailableSeats reports the table's free seats.
func (w *Workflow) AvailableSeats(tableID int) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err := w.tables.AvailableSeats(tableID)
	if err != nil {
		return 0, fmt.Errorf("table %d: %w", tableID, err)
	}
	return n, nil
}

// TableStatuses returns the floor report for every configured table.
func (w *Workflow) TableStatuses() []TableStatus {
	w.mu.Lock()
	defer w.mu.Unlock()

	tables := w.tables.Snapshot()
	out := make([]TableStatus, 0, len(tables))
	for _, t := range tables {
		status, err := w.book.StatusOf(t.ID)
		if err != nil {
			status = enum.OrderStatusNone
		}
		out = append(out, TableStatus{
			TableID:        t.ID,
			Capacity:       t.Capacity,
			SeatedGuests:   t.SeatedGuests,
			AvailableSeats: t.Capacity - t.SeatedGuests,
			OrderStatus:    status,
		})
	}
	return out
}

// Menu exposes the catalog for front ends that print it.
func (w *Workflow) Menu() []menu.Item {
	return w.catalog.Items()
}
