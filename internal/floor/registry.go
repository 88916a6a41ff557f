package floor

import "errors"

// Errors returned by the table registry.
var (
	ErrUnknownTable = errors.New("unknown table")
	ErrInvalidCount = errors.New("guest count must be > 0")
	ErrTableFull    = errors.New("not enough free seats at table")
)

// Table is a physical seating unit with a fixed guest capacity.
type Table struct {
	ID           int `json:"id"`
	Capacity     int `json:"capacity"`
	SeatedGuests int `json:"seated_guests"`
}

// Registry owns the fixed collection of tables and their seating counters.
// Tables are numbered 1..count and live for the whole run. The registry is
// pure data ownership; all cross-container rules live in service.Workflow.
type Registry struct {
	tables []Table
}

// NewRegistry creates count tables, each with the given capacity.
func NewRegistry(count, capacity int) *Registry {
	r := &Registry{tables: make([]Table, count)}
	for i := range r.tables {
		r.tables[i] = Table{ID: i + 1, Capacity: capacity}
	}
	return r
}

func (r *Registry) table(id int) (*Table, error) {
	if id < 1 || id > len(r.tables) {
		return nil, ErrUnknownTable
	}
	return &r.tables[id-1], nil
}

// SeatGuests adds count guests to the table. The counter never exceeds
// capacity: an over-capacity request fails with ErrTableFull and leaves the
// counter unchanged.
func (r *Registry) SeatGuests(tableID, count int) error {
	t, err := r.table(tableID)
	if err != nil {
		return err
	}
	if count <= 0 {
		return ErrInvalidCount
	}
	if count > t.Capacity-t.SeatedGuests {
		return ErrTableFull
	}
	t.SeatedGuests += count
	return nil
}

// AvailableSeats reports capacity minus seated guests.
func (r *Registry) AvailableSeats(tableID int) (int, error) {
	t, err := r.table(tableID)
	if err != nil {
		return 0, err
	}
	return t.Capacity - t.SeatedGuests, nil
}

// ResetOccupancy clears the table's seating counter. Called by the workflow
// as part of a successful payment.
func (r *Registry) ResetOccupancy(tableID int) error {
	t, err := r.table(tableID)
	if err != nil {
		return err
	}
	t.SeatedGuests = 0
	return nil
}

// Count returns the number of configured tables.
func (r *Registry) Count() int {
	return len(r.tables)
}

// Snapshot returns a copy of all tables in id order.
func (r *Registry) Snapshot() []Table {
	out := make([]Table, len(r.tables))
	copy(out, r.tables)
	return out
}
