package ircompiler

import (
	"fmt"
	"sort"

	"github.com/protongramzk/iridium/internal/irdoc"
)

// emitEvents builds one named handler per event per §4.2 "Event emission",
// translating its action tag into a statement, and a single _attach()
// wiring every handler via addEventListener. Each handler's matching
// removeEventListener call is appended to the cleanup bucket.
func (e *emitter) emitEvents() {
	var eventTypes []string
	for t := range e.doc.Events {
		eventTypes = append(eventTypes, t)
	}
	sort.Strings(eventTypes)

	var attach []string
	i := 0
	for _, eventType := range eventTypes {
		for _, ev := range e.doc.Events[eventType] {
			i++
			handlerName := fmt.Sprintf("_h%d_%s", i, eventType)
			holder := e.names.holderFor(ev.Target)

			e.functions = append(e.functions,
				fmt.Sprintf("function %s() {", handlerName),
				"  "+e.actionStatement(ev.Action),
				"}",
			)

			attach = append(attach, fmt.Sprintf("if (%s) { %s.addEventListener(%s, %s); }", holder, holder, literal(eventType), handlerName))
			e.cleanup = append(e.cleanup, fmt.Sprintf("if (%s) { %s.removeEventListener(%s, %s); }", holder, holder, literal(eventType), handlerName))
		}
	}

	e.functions = append(e.functions, "function _attach() {")
	for _, line := range attach {
		e.functions = append(e.functions, "  "+line)
	}
	e.functions = append(e.functions, "}")
	e.lifecycle = append(e.lifecycle, "_attach();")
}

// actionStatement translates one event action into its JS statement, per
// §4.2's three recognised variants and the §9 fallback for Unknown.
func (e *emitter) actionStatement(a irdoc.Action) string {
	// A string value is an expression and is embedded verbatim (§9,
	// "Expression strings"); any other value is serialized as a literal.
	value := literal(a.Value)
	if s, ok := a.Value.(string); ok {
		value = s
	}
	switch a.Tag {
	case irdoc.ActionUpdate:
		op := a.Op
		if op == "" || op == "=" {
			return fmt.Sprintf("%s = %s;", e.access(a.Target), value)
		}
		// op is already the full compound operator ("+=", "-=", ...), per
		// §3's `op ∈ {=,+=,-=,*=,/=,…}`.
		return fmt.Sprintf("%s %s %s;", e.access(a.Target), op, value)
	case irdoc.ActionSet:
		return fmt.Sprintf("%s = %s;", e.access(a.Target), value)
	case irdoc.ActionCall:
		return fmt.Sprintf("%s();", a.Function)
	default:
		return "// no-op (unknown action)"
	}
}
