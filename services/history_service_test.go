package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryHistory_RoundTrip(t *testing.T) {
	h := NewMemoryHistory(time.Hour)
	h.Put(1, []Turn{{Role: "user", Content: "привет"}})

	turns := h.Get(1)
	require.Len(t, turns, 1)
	assert.Equal(t, "привет", turns[0].Content)
	assert.Nil(t, h.Get(2))
}

func TestMemoryHistory_BoundsTurns(t *testing.T) {
	h := NewMemoryHistory(time.Hour)
	var turns []Turn
	for i := 0; i < maxHistoryTurns+10; i++ {
		turns = append(turns, Turn{Role: "user", Content: fmt.Sprintf("msg %d", i)})
	}
	h.Put(1, turns)

	got := h.Get(1)
	require.Len(t, got, maxHistoryTurns)
	// Oldest turns are dropped, newest kept.
	assert.Equal(t, "msg 10", got[0].Content)
	assert.Equal(t, fmt.Sprintf("msg %d", maxHistoryTurns+9), got[len(got)-1].Content)
}

func TestMemoryHistory_TTLEviction(t *testing.T) {
	h := NewMemoryHistory(10 * time.Millisecond)
	h.Put(1, []Turn{{Role: "user", Content: "привет"}})

	time.Sleep(30 * time.Millisecond)
	assert.Nil(t, h.Get(1))
}

func TestMemoryHistory_Clear(t *testing.T) {
	h := NewMemoryHistory(time.Hour)
	h.Put(1, []Turn{{Role: "user", Content: "привет"}})
	h.Clear(1)
	assert.Nil(t, h.Get(1))
}

func TestMemoryHistory_GetReturnsCopy(t *testing.T) {
	h := NewMemoryHistory(time.Hour)
	h.Put(1, []Turn{{Role: "user", Content: "оригинал"}})

	got := h.Get(1)
	got[0].Content = "подмена"

	again := h.Get(1)
	assert.Equal(t, "оригинал", again[0].Content)
}
