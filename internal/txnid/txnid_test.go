package txnid

import (
	"sync"
	"testing"
)

func TestSequentialStartsAt1000(t *testing.T) {
	g := NewSequential()

	if id := g.Next(); id != "1000" {
		t.Errorf("first id: got %s, want 1000", id)
	}
	if id := g.Next(); id != "1001" {
		t.Errorf("second id: got %s, want 1001", id)
	}
}

func TestSequentialUniqueUnderConcurrency(t *testing.T) {
	g := NewSequential()

	const n = 100
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- g.Next()
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestRandomUnique(t *testing.T) {
	g := Random{}

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := g.Next()
		if id == "" {
			t.Fatal("empty id")
		}
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}
