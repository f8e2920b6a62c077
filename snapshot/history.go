package snapshot

import (
	"iter"

	"github.com/oomph-ac/kinematic/assert"
)

// History keeps the most recent snapshots of a single agent in a fixed size ring. Once full, recording a
// snapshot drops the oldest one.
type History struct {
	items []Snapshot
	head  int
	tail  int
	size  int

	checksum uint64
	changed  bool
}

// NewHistory creates a history holding at most capacity snapshots.
func NewHistory(capacity int) *History {
	assert.IsTrue(capacity > 0, "history capacity must be positive, got %d", capacity)
	return &History{items: make([]Snapshot, capacity)}
}

// Record appends s and reports whether it differs from the previously recorded snapshot, ignoring the
// tick. The first snapshot always counts as a change.
func (h *History) Record(s Snapshot) bool {
	sum := s.Checksum()
	h.changed = h.size == 0 || sum != h.checksum
	h.checksum = sum

	h.items[h.tail] = s
	if h.size == len(h.items) {
		h.head = (h.head + 1) % len(h.items)
	} else {
		h.size++
	}
	h.tail = (h.tail + 1) % len(h.items)
	return h.changed
}

// Changed returns true if the last recorded snapshot differed from the one before it.
func (h *History) Changed() bool {
	return h.changed
}

// Len returns the amount of snapshots held.
func (h *History) Len() int {
	return h.size
}

// Cap returns the maximum amount of snapshots held.
func (h *History) Cap() int {
	return len(h.items)
}

// At returns the snapshot at logical position index, where 0 is the oldest.
func (h *History) At(index int) (Snapshot, bool) {
	if index < 0 || index >= h.size {
		return Snapshot{}, false
	}
	return h.items[(h.head+index)%len(h.items)], true
}

// Latest returns the most recently recorded snapshot.
func (h *History) Latest() (Snapshot, bool) {
	return h.At(h.size - 1)
}

// All yields every held snapshot from oldest to newest.
func (h *History) All() iter.Seq[Snapshot] {
	return func(yield func(Snapshot) bool) {
		for index := range h.size {
			if !yield(h.items[(h.head+index)%len(h.items)]) {
				return
			}
		}
	}
}
