package irdoc

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
)

// IDKind names an entity family for id-minting purposes. Each kind gets its
// own monotonic counter so ids stay short and collision-free within a
// document without a global lock spanning unrelated entity types.
type IDKind string

const (
	IDElement     IDKind = "el"
	IDVariable    IDKind = "var"
	IDBinding     IDKind = "bind"
	IDEvent       IDKind = "evt"
	IDConditional IDKind = "grp"
)

// Clock supplies the creation timestamp embedded in minted ids and in
// Document/Meta timestamps. Production callers use SystemClock; tests
// substitute a fixed clock so generated ids are deterministic.
type Clock interface {
	Now() string
}

// SystemClock formats the wall-clock time as RFC3339, matching the §6
// persisted-snapshot timestamp format.
type SystemClock struct{}

func (SystemClock) Now() string {
	return nowRFC3339()
}

// IDMinter hands out ids of the form "{kind}_{counter}_{timestamp}" (§3).
// The counter is per-kind and monotonically increasing within a minter's
// lifetime; it is never reused even across deletes, so a stale id from an
// undone operation can never collide with a freshly minted one.
type IDMinter struct {
	clock    Clock
	counters map[IDKind]*int64
}

// NewIDMinter returns a minter that timestamps ids using clock. A nil clock
// defaults to SystemClock.
func NewIDMinter(clock Clock) *IDMinter {
	if clock == nil {
		clock = SystemClock{}
	}
	return &IDMinter{
		clock: clock,
		counters: map[IDKind]*int64{
			IDElement:     new(int64),
			IDVariable:    new(int64),
			IDBinding:     new(int64),
			IDEvent:       new(int64),
			IDConditional: new(int64),
		},
	}
}

// Mint returns the next id for kind.
func (m *IDMinter) Mint(kind IDKind) string {
	counter, ok := m.counters[kind]
	if !ok {
		counter = new(int64)
		m.counters[kind] = counter
	}
	n := atomic.AddInt64(counter, 1)
	return fmt.Sprintf("%s_%d_%s", kind, n, m.clock.Now())
}

// Now returns the minter's clock's current timestamp, for stamping
// Meta.Created/Meta.Modified alongside minted ids.
func (m *IDMinter) Now() string {
	return m.clock.Now()
}

// EnsurePast advances kind's counter so the next Mint is guaranteed not to
// collide with id, if id parses as one of this kind's own ids. Used when a
// document is loaded from a persisted snapshot, so minting resumes past
// whatever counters the snapshot's own ids recorded.
func (m *IDMinter) EnsurePast(id string) {
	kind, n, ok := parseID(id)
	if !ok {
		return
	}
	counter, exists := m.counters[kind]
	if !exists {
		counter = new(int64)
		m.counters[kind] = counter
	}
	for {
		cur := atomic.LoadInt64(counter)
		if cur >= n {
			return
		}
		if atomic.CompareAndSwapInt64(counter, cur, n) {
			return
		}
	}
}

// parseID splits a minted id back into its kind and counter. Ids whose
// prefix doesn't match a known IDKind are reported as unparseable rather
// than guessed at.
func parseID(id string) (kind IDKind, counter int64, ok bool) {
	parts := strings.SplitN(id, "_", 3)
	if len(parts) < 2 {
		return "", 0, false
	}
	k := IDKind(parts[0])
	switch k {
	case IDElement, IDVariable, IDBinding, IDEvent, IDConditional:
	default:
		return "", 0, false
	}
	n, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return "", 0, false
	}
	return k, n, true
}
