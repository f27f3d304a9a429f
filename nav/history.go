package nav

import "github.com/gogpu/fractal"

// DefaultHistoryLimit bounds the undo history of a State.
const DefaultHistoryLimit = 1024

// Entry is one applied command together with the state it replaced.
// Undo restores Viewport and Factor as stored instead of applying the
// inverse, so a zoom followed by undo is bit-exact.
type Entry struct {
	Command  Command
	Viewport fractal.Viewport
	Factor   float64
}

// History is a bounded LIFO of entries. When full, pushing drops the
// oldest entry.
type History struct {
	entries []Entry
	start   int
	n       int
}

// NewHistory creates a history holding at most limit entries.
// A limit below 1 selects DefaultHistoryLimit.
func NewHistory(limit int) *History {
	if limit < 1 {
		limit = DefaultHistoryLimit
	}
	return &History{entries: make([]Entry, limit)}
}

// Len returns the number of entries.
func (h *History) Len() int { return h.n }

// Limit returns the maximum number of entries.
func (h *History) Limit() int { return len(h.entries) }

// Push adds e on top. It reports whether the oldest entry was dropped.
func (h *History) Push(e Entry) (dropped bool) {
	limit := len(h.entries)
	if h.n == limit {
		h.entries[h.start] = e
		h.start = (h.start + 1) % limit
		return true
	}
	h.entries[(h.start+h.n)%limit] = e
	h.n++
	return false
}

// Pop removes and returns the newest entry.
func (h *History) Pop() (Entry, bool) {
	if h.n == 0 {
		return Entry{}, false
	}
	h.n--
	i := (h.start + h.n) % len(h.entries)
	e := h.entries[i]
	h.entries[i] = Entry{}
	return e, true
}

// Peek returns the newest entry without removing it.
func (h *History) Peek() (Entry, bool) {
	if h.n == 0 {
		return Entry{}, false
	}
	return h.entries[(h.start+h.n-1)%len(h.entries)], true
}

// Clear removes every entry.
func (h *History) Clear() {
	clear(h.entries)
	h.start, h.n = 0, 0
}
