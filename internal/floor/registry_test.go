package floor

import (
	"errors"
	"testing"
)

func TestSeatGuests(t *testing.T) {
	r := NewRegistry(4, 4)

	if err := r.SeatGuests(1, 2); err != nil {
		t.Fatalf("seat 2 guests: %v", err)
	}

	n, err := r.AvailableSeats(1)
	if err != nil {
		t.Fatalf("available seats: %v", err)
	}
	if n != 2 {
		t.Errorf("available seats: got %d, want 2", n)
	}
}

func TestSeatGuestsAccumulates(t *testing.T) {
	r := NewRegistry(4, 4)

	if err := r.SeatGuests(2, 1); err != nil {
		t.Fatalf("first seating: %v", err)
	}
	if err := r.SeatGuests(2, 3); err != nil {
		t.Fatalf("second seating: %v", err)
	}

	n, _ := r.AvailableSeats(2)
	if n != 0 {
		t.Errorf("available seats: got %d, want 0", n)
	}
}

func TestSeatGuestsTableFull(t *testing.T) {
	r := NewRegistry(4, 4)

	if err := r.SeatGuests(1, 3); err != nil {
		t.Fatalf("seat 3 guests: %v", err)
	}

	err := r.SeatGuests(1, 2)
	if !errors.Is(err, ErrTableFull) {
		t.Fatalf("expected ErrTableFull, got %v", err)
	}

	// Counter must be unchanged by the rejected seating
	n, _ := r.AvailableSeats(1)
	if n != 1 {
		t.Errorf("available seats after rejection: got %d, want 1", n)
	}
}

func TestSeatGuestsInvalidCount(t *testing.T) {
	r := NewRegistry(4, 4)

	for _, count := range []int{0, -1} {
		if err := r.SeatGuests(1, count); !errors.Is(err, ErrInvalidCount) {
			t.Errorf("count %d: expected ErrInvalidCount, got %v", count, err)
		}
	}
}

func TestUnknownTable(t *testing.T) {
	r := NewRegistry(4, 4)

	for _, id := range []int{0, 5, -1} {
		if err := r.SeatGuests(id, 1); !errors.Is(err, ErrUnknownTable) {
			t.Errorf("seat at table %d: expected ErrUnknownTable, got %v", id, err)
		}
		if _, err := r.AvailableSeats(id); !errors.Is(err, ErrUnknownTable) {
			t.Errorf("seats of table %d: expected ErrUnknownTable, got %v", id, err)
		}
		if err := r.ResetOccupancy(id); !errors.Is(err, ErrUnknownTable) {
			t.Errorf("reset table %d: expected ErrUnknownTable, got %v", id, err)
		}
	}
}

func TestResetOccupancy(t *testing.T) {
	r := NewRegistry(4, 4)

	if err := r.SeatGuests(3, 4); err != nil {
		t.Fatalf("seat guests: %v", err)
	}
	if err := r.ResetOccupancy(3); err != nil {
		t.Fatalf("reset occupancy: %v", err)
	}

	n, _ := r.AvailableSeats(3)
	if n != 4 {
		t.Errorf("available seats after reset: got %d, want 4", n)
	}
}

func TestSnapshotInvariant(t *testing.T) {
	r := NewRegistry(4, 4)
	r.SeatGuests(1, 4)
	r.SeatGuests(2, 1)

	for _, tab := range r.Snapshot() {
		if tab.SeatedGuests < 0 || tab.SeatedGuests > tab.Capacity {
			t.Errorf("table %d: seated %d outside [0, %d]", tab.ID, tab.SeatedGuests, tab.Capacity)
		}
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	r := NewRegistry(2, 4)

	snap := r.Snapshot()
	snap[0].SeatedGuests = 99

	n, _ := r.AvailableSeats(1)
	if n != 4 {
		t.Errorf("registry mutated through snapshot: available %d, want 4", n)
	}
}
