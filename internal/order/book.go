package order

import (
	"errors"

	"github.com/messijoe-pos/api/internal/enum"
	"github.com/messijoe-pos/api/internal/menu"
)

// Errors returned by the order book.
var (
	ErrNoSuchOrder      = errors.New("no order for table")
	ErrAlreadyCompleted = errors.New("order already completed")
	ErrNotCompleted     = errors.New("order not completed")
	ErrAlreadyPaid      = errors.New("order already paid")
)

// Order is one table's current dining session: the resolved item selections
// plus two completion flags. Both flags flip false→true exactly once;
// re-marking is rejected, never treated as a no-op. Items are kept after
// payment for receipt and status reporting.
type Order struct {
	TableID   int
	Items     []menu.Item
	Completed bool
	Paid      bool
}

// Status derives the lifecycle stage from the two flags.
func (o *Order) Status() string {
	switch {
	case !o.Completed:
		return enum.OrderStatusAwaitingCompletion
	case !o.Paid:
		return enum.OrderStatusAwaitingPayment
	default:
		return enum.OrderStatusSettled
	}
}

// Book owns the mapping from table id to its current order.
type Book struct {
	orders map[int]*Order
}

// NewBook creates an empty order book.
func NewBook() *Book {
	return &Book{orders: make(map[int]*Order)}
}

// AppendItems creates the table's order if absent, else appends to it.
// Items are never cleared by completion or payment.
func (b *Book) AppendItems(tableID int, items []menu.Item) {
	o, ok := b.orders[tableID]
	if !ok {
		o = &Order{TableID: tableID}
		b.orders[tableID] = o
	}
	o.Items = append(o.Items, items...)
}

// MarkCompleted flips the completed flag.
func (b *Book) MarkCompleted(tableID int) error {
	o, ok := b.orders[tableID]
	if !ok {
		return ErrNoSuchOrder
	}
	if o.Completed {
		return ErrAlreadyCompleted
	}
	o.Completed = true
	return nil
}

// MarkPaid flips the paid flag. Payment is unreachable until the order is
// completed, so Paid implies Completed at all times.
func (b *Book) MarkPaid(tableID int) error {
	o, ok := b.orders[tableID]
	if !ok {
		return ErrNoSuchOrder
	}
	if !o.Completed {
		return ErrNotCompleted
	}
	if o.Paid {
		return ErrAlreadyPaid
	}
	o.Paid = true
	return nil
}

// Items returns a copy of the table's item selections in entry order.
func (b *Book) Items(tableID int) ([]menu.Item, error) {
	o, ok := b.orders[tableID]
	if !ok {
		return nil, ErrNoSuchOrder
	}
	out := make([]menu.Item, len(o.Items))
	copy(out, o.Items)
	return out, nil
}

// StatusOf reports the table's lifecycle stage, or ErrNoSuchOrder.
func (b *Book) StatusOf(tableID int) (string, error) {
	o, ok := b.orders[tableID]
	if !ok {
		return "", ErrNoSuchOrder
	}
	return o.Status(), nil
}

// AllSettled reports whether every order in the book is completed and paid.
// An empty book is vacuously settled; the close policy for that case belongs
// to the workflow, not the book.
func (b *Book) AllSettled() bool {
	for _, o := range b.orders {
		if !o.Completed || !o.Paid {
			return false
		}
	}
	return true
}

// Len returns the number of orders placed so far.
func (b *Book) Len() int {
	return len(b.orders)
}
