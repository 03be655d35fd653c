package editor

// History is the list of submitted lines and a recall cursor into it.
//
// The cursor rests one past the newest entry. Prev walks towards the oldest
// entry and Next back towards the newest; neither moves past the ends.
type History struct {
	entries []string
	cursor  int
}

// Add appends a line and resets the cursor.
func (h *History) Add(line string) {
	h.entries = append(h.entries, line)
	h.Reset()
}

// Reset moves the cursor one past the newest entry.
func (h *History) Reset() {
	h.cursor = len(h.entries)
}

// Prev moves the cursor to the previous entry and returns it. It reports
// false without moving at the oldest entry.
func (h *History) Prev() (string, bool) {
	if h.cursor <= 0 {
		return "", false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// Next moves the cursor to the next entry and returns it. It reports false
// without moving at the newest entry.
func (h *History) Next() (string, bool) {
	if h.cursor >= len(h.entries)-1 {
		return "", false
	}
	h.cursor++
	return h.entries[h.cursor], true
}

// Entries returns a copy of the recorded lines, oldest first.
func (h *History) Entries() []string {
	return append([]string(nil), h.entries...)
}

func (h *History) Len() int {
	return len(h.entries)
}
