package ircompiler

import (
	"fmt"
	"strconv"
	"strings"
)

// namer hands out stable, collision-free JS identifiers for element holders
// and other generated-code symbols. Names are memoized per source id the
// first time they're requested — the same lazy-compute-then-cache shape as
// a memoized signal, just keyed by id instead of recomputed on demand.
type namer struct {
	cache   map[string]string
	counter int
}

func newNamer() *namer {
	return &namer{cache: make(map[string]string)}
}

// holderFor returns the module-scoped holder name for an element id: "e<n>"
// derived from the id's numeric segment, falling back to a private counter
// for any id that doesn't parse that way.
func (n *namer) holderFor(id string) string {
	if name, ok := n.cache[id]; ok {
		return name
	}
	name := n.deriveHolder(id)
	n.cache[id] = name
	return name
}

func (n *namer) deriveHolder(id string) string {
	parts := strings.SplitN(id, "_", 3)
	if len(parts) >= 2 {
		if _, err := strconv.ParseInt(parts[1], 10, 64); err == nil {
			return "e" + parts[1]
		}
	}
	n.counter++
	return fmt.Sprintf("_uid%d", n.counter)
}

// safeIdent turns an arbitrary id (a group id, a loop id) into a valid JS
// identifier fragment by keeping its numeric segment, the same derivation
// holderFor uses, just without the "e" prefix reserved for element holders.
func safeIdent(id string) string {
	parts := strings.SplitN(id, "_", 3)
	if len(parts) >= 2 {
		if _, err := strconv.ParseInt(parts[1], 10, 64); err == nil {
			return parts[1]
		}
	}
	b := make([]rune, 0, len(id))
	for _, r := range id {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b = append(b, r)
		} else {
			b = append(b, '_')
		}
	}
	return string(b)
}
