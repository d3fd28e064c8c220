package ircompiler

import (
	"fmt"

	"github.com/protongramzk/iridium/internal/irdoc"
)

// emitBindings groups every binding by variable and emits one _u_<name>()
// per variable that has at least one, per §4.2 "Binding emission". Each is
// additionally queued into the lifecycle bucket so the initial DOM state
// reflects the document's initial values.
func (e *emitter) emitBindings() {
	byVariable := make(map[string][]*irdoc.Binding)
	var order []string
	for _, b := range e.doc.Bindings {
		if _, seen := byVariable[b.Variable]; !seen {
			order = append(order, b.Variable)
		}
		byVariable[b.Variable] = append(byVariable[b.Variable], b)
	}

	for _, name := range order {
		lines := []string{fmt.Sprintf("function _u_%s() {", name)}
		for _, b := range byVariable[name] {
			holder := e.names.holderFor(b.ElementID)
			switch b.Kind {
			case irdoc.BindingText:
				lines = append(lines, fmt.Sprintf("  if (%s) { %s.textContent = %s; }", holder, holder, e.access(name)))
			case irdoc.BindingAttr:
				lines = append(lines, fmt.Sprintf("  if (%s) { %s.setAttribute(%s, %s); }", holder, holder, literal(b.Key), e.access(name)))
			case irdoc.BindingStyle:
				lines = append(lines, fmt.Sprintf("  if (%s) { %s.style.%s = %s; }", holder, holder, camelCase(b.Key), e.access(name)))
			}
		}
		lines = append(lines, "}")
		e.functions = append(e.functions, lines...)
		e.lifecycle = append(e.lifecycle, fmt.Sprintf("_u_%s();", name))
	}
}
