package enum

// ── Order lifecycle (forward-only, see service.Workflow) ──

const (
	OrderStatusAwaitingCompletion = "AWAITING_COMPLETION"
	OrderStatusAwaitingPayment    = "AWAITING_PAYMENT"
	OrderStatusSettled            = "SETTLED"

	// OrderStatusNone is reported for tables without a live order.
	OrderStatusNone = "NO_ORDER"
)

// ── Staff roles ──

const (
	StaffRoleManager = "MANAGER"
	StaffRoleServer  = "SERVER"
)

// ── Floor event types (ws broadcasts) ──

const (
	EventOrderPlaced      = "order.placed"
	EventOrderCompleted   = "order.completed"
	EventOrderPaid        = "order.paid"
	EventRestaurantClosed = "restaurant.closed"
)
