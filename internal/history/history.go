// Package history records the calculations of an interactive session.
package history

import "sync"

// Entry is one successful calculation.
type Entry struct {
	// Input is the expression as the user entered it.
	Input string
	// Result is the formatted result.
	Result string
}

// History is an ordered list of calculations, oldest first. It is safe for
// concurrent use.
type History struct {
	mu      sync.Mutex
	entries []Entry
	limit   int
}

// New creates an empty history holding at most limit entries. If limit is
// zero or negative, the history grows without bound.
func New(limit int) *History {
	return &History{limit: limit}
}

// Add appends a calculation. If the history is full, the oldest entry is
// dropped.
func (h *History) Add(input, result string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, Entry{Input: input, Result: result})
	if h.limit > 0 && len(h.entries) > h.limit {
		n := copy(h.entries, h.entries[len(h.entries)-h.limit:])
		clear(h.entries[n:])
		h.entries = h.entries[:n]
	}
}

// Clear removes all entries.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Last returns the most recent n entries, oldest first. If there are fewer
// than n entries, it returns all of them.
func (h *History) Last(n int) []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	if n <= 0 {
		return nil
	}
	if n > len(h.entries) {
		n = len(h.entries)
	}
	return append([]Entry(nil), h.entries[len(h.entries)-n:]...)
}

// Entries returns a copy of all entries, oldest first.
func (h *History) Entries() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Entry(nil), h.entries...)
}
