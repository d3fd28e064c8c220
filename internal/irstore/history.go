package irstore

import (
	"github.com/protongramzk/iridium/internal/irdoc"
	"github.com/protongramzk/iridium/logutil"
)

// historyRing is a fixed-capacity ring of committed document snapshots plus
// a cursor, kept outside the document so undo can never restore its own
// pointer. entries[0] is the oldest retained snapshot: the state before any
// commit until the ring first overflows, after which the oldest entries are
// dropped. The entries after it are post-commit snapshots in commit order.
// cursor names the entry the document currently reflects.
type historyRing struct {
	entries  []*irdoc.Document
	cursor   int
	capacity int
}

func newHistoryRing(capacity int, initial *irdoc.Document) *historyRing {
	return &historyRing{
		entries:  []*irdoc.Document{irdoc.CloneDocument(initial)},
		cursor:   0,
		capacity: capacity,
	}
}

// commit truncates any redo-able tail beyond the cursor, appends doc as the
// new present, and evicts the oldest entry if the ring is over capacity.
func (h *historyRing) commit(doc *irdoc.Document) {
	h.entries = h.entries[:h.cursor+1]
	h.entries = append(h.entries, irdoc.CloneDocument(doc))
	h.cursor++
	if len(h.entries) > h.capacity+1 {
		h.entries = h.entries[1:]
		h.cursor--
		logutil.Logf("irstore: history full, evicted oldest snapshot (capacity %d)\n", h.capacity)
	}
}

func (h *historyRing) canUndo() bool { return h.cursor > 0 }
func (h *historyRing) canRedo() bool { return h.cursor < len(h.entries)-1 }

func (h *historyRing) undo() (*irdoc.Document, bool) {
	if !h.canUndo() {
		return nil, false
	}
	h.cursor--
	return irdoc.CloneDocument(h.entries[h.cursor]), true
}

func (h *historyRing) redo() (*irdoc.Document, bool) {
	if !h.canRedo() {
		return nil, false
	}
	h.cursor++
	return irdoc.CloneDocument(h.entries[h.cursor]), true
}
