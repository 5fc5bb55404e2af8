package services

import (
	"sync"
	"time"
)

// maxHistoryTurns bounds a conversation; the oldest turns are silently
// truncated, not archived.
const maxHistoryTurns = 15

// HistoryStore keeps per-user conversation history. The assistant reads
// the whole buffer, appends, and writes it back each turn; concurrent
// turns in one session may lose updates, which is accepted for a
// single-human chat.
type HistoryStore interface {
	Get(userID uint) []Turn
	Put(userID uint, turns []Turn)
	Clear(userID uint)
}

type historyEntry struct {
	turns   []Turn
	touched time.Time
}

type memoryHistory struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[uint]historyEntry
}

// NewMemoryHistory builds an in-process history store. Sessions idle
// longer than ttl are evicted lazily on the next access.
func NewMemoryHistory(ttl time.Duration) HistoryStore {
	return &memoryHistory{
		ttl:     ttl,
		entries: make(map[uint]historyEntry),
	}
}

func (h *memoryHistory) Get(userID uint) []Turn {
	h.mu.Lock()
	defer h.mu.Unlock()

	e, ok := h.entries[userID]
	if !ok {
		return nil
	}
	if time.Since(e.touched) > h.ttl {
		delete(h.entries, userID)
		return nil
	}
	out := make([]Turn, len(e.turns))
	copy(out, e.turns)
	return out
}

func (h *memoryHistory) Put(userID uint, turns []Turn) {
	if len(turns) > maxHistoryTurns {
		turns = turns[len(turns)-maxHistoryTurns:]
	}
	stored := make([]Turn, len(turns))
	copy(stored, turns)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[userID] = historyEntry{turns: stored, touched: time.Now()}
	h.sweepLocked()
}

func (h *memoryHistory) Clear(userID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.entries, userID)
}

func (h *memoryHistory) sweepLocked() {
	now := time.Now()
	for id, e := range h.entries {
		if now.Sub(e.touched) > h.ttl {
			delete(h.entries, id)
		}
	}
}
