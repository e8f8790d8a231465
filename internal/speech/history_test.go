package speech

import (
	"fmt"
	"sync"
	"testing"
)

func TestHistory_AddNewestFirst(t *testing.T) {
	h := NewHistory(3)
	h.Add(&Item{ID: "a"})
	h.Add(&Item{ID: "b"})

	items := h.List()
	if len(items) != 2 || items[0].ID != "b" || items[1].ID != "a" {
		t.Errorf("Expected [b a], got %v", ids(items))
	}
}

func TestHistory_EvictsOldest(t *testing.T) {
	h := NewHistory(2)
	h.Add(&Item{ID: "a"})
	h.Add(&Item{ID: "b"})
	n := h.Add(&Item{ID: "c"})

	if n != 2 {
		t.Errorf("Expected 2 retained items, got %d", n)
	}
	if _, ok := h.Get("a"); ok {
		t.Error("Expected oldest item to be evicted")
	}
	if got := ids(h.List()); got != "[c b]" {
		t.Errorf("Expected [c b], got %s", got)
	}
}

func TestHistory_DeleteAndClear(t *testing.T) {
	h := NewHistory(5)
	h.Add(&Item{ID: "a"})
	h.Add(&Item{ID: "b"})

	if !h.Delete("a") {
		t.Error("Expected delete of existing item to succeed")
	}
	if h.Delete("a") {
		t.Error("Expected second delete to report missing")
	}
	if h.Len() != 1 {
		t.Errorf("Expected 1 item, got %d", h.Len())
	}

	h.Clear()
	if h.Len() != 0 {
		t.Errorf("Expected empty history, got %d", h.Len())
	}
}

func TestHistory_ListIsSnapshot(t *testing.T) {
	h := NewHistory(5)
	h.Add(&Item{ID: "a"})

	snapshot := h.List()
	h.Add(&Item{ID: "b"})

	if len(snapshot) != 1 {
		t.Errorf("Expected snapshot to stay at 1 item, got %d", len(snapshot))
	}
}

func TestHistory_Concurrent(t *testing.T) {
	h := NewHistory(50)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("item-%d", i)
			h.Add(&Item{ID: id})
			h.Get(id)
			h.List()
		}(i)
	}
	wg.Wait()

	if h.Len() != 50 {
		t.Errorf("Expected history capped at 50, got %d", h.Len())
	}
}

func ids(items []*Item) string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return fmt.Sprint(out)
}
