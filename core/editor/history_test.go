package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistory_empty(t *testing.T) {
	var h History

	_, ok := h.Prev()
	assert.False(t, ok)
	_, ok = h.Next()
	assert.False(t, ok)
	assert.Equal(t, 0, h.Len())
}

func TestHistory_recall(t *testing.T) {
	var h History
	h.Add("A")
	h.Add("B")
	h.Add("C")

	for _, want := range []string{"C", "B", "A"} {
		got, ok := h.Prev()
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}

	// Stops at the oldest.
	_, ok := h.Prev()
	assert.False(t, ok)

	for _, want := range []string{"B", "C"} {
		got, ok := h.Next()
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}

	// Stops at the newest.
	_, ok = h.Next()
	assert.False(t, ok)
}

func TestHistory_addResetsCursor(t *testing.T) {
	var h History
	h.Add("A")
	h.Add("B")
	h.Prev()
	h.Prev()

	h.Add("C")
	got, ok := h.Prev()
	assert.True(t, ok)
	assert.Equal(t, "C", got)
}

func TestHistory_entriesIsCopy(t *testing.T) {
	var h History
	h.Add("A")

	entries := h.Entries()
	entries[0] = "changed"

	assert.Equal(t, []string{"A"}, h.Entries())
}
