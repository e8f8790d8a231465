package speech

import (
	"sync"
	"time"

	"github.com/lexiqai/speech-gateway/internal/audio"
	"github.com/lexiqai/speech-gateway/internal/tts"
)

// Item is one generated clip. Audio is the complete container and must be
// treated as read-only once stored.
type Item struct {
	ID         string       `json:"id"`
	Text       string       `json:"text"`
	Voice      tts.Voice    `json:"voice"`
	Format     audio.Format `json:"format"`
	MIMEType   string       `json:"mime_type"`
	SampleRate int          `json:"sample_rate"`
	SizeBytes  int          `json:"size_bytes"`
	DurationMs int64        `json:"duration_ms"`
	CreatedAt  time.Time    `json:"created_at"`
	Audio      []byte       `json:"-"`
}

// History is a bounded, newest-first store of generated clips
type History struct {
	mu       sync.RWMutex
	capacity int
	items    []*Item // newest first
}

// NewHistory creates a history that keeps at most capacity items
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = 1
	}
	return &History{
		capacity: capacity,
		items:    make([]*Item, 0, capacity),
	}
}

// Add stores item as the newest entry, evicting the oldest when full.
// It returns the number of retained items.
func (h *History) Add(item *Item) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.items) == h.capacity {
		h.items = h.items[:h.capacity-1]
	}
	h.items = append([]*Item{item}, h.items...)
	return len(h.items)
}

// Get returns the item with the given id
func (h *History) Get(id string) (*Item, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, item := range h.items {
		if item.ID == id {
			return item, true
		}
	}
	return nil, false
}

// List returns a snapshot of all items, newest first
func (h *History) List() []*Item {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]*Item, len(h.items))
	copy(out, h.items)
	return out
}

// Delete removes the item with the given id and reports whether it existed
func (h *History) Delete(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, item := range h.items {
		if item.ID == id {
			h.items = append(h.items[:i], h.items[i+1:]...)
			return true
		}
	}
	return false
}

// Clear removes every item
func (h *History) Clear() {
	h.mu.Lock()
	h.items = h.items[:0]
	h.mu.Unlock()
}

// Len returns the number of retained items
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.items)
}
