package ircompiler

import (
	"fmt"
	"strings"
)

// assemble joins the five buckets into the final source per §4.2
// "Assembly order": a leading timestamp comment, declarations, state,
// functions, then a mount(target) closure that builds the tree, appends it,
// runs every lifecycle statement, and returns a destroy() that runs the
// cleanup bucket and removes the root.
func (e *emitter) assemble(now string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "// generated by iridium at %s\n", now)

	writeLines := func(lines []string) {
		for _, l := range lines {
			b.WriteString(l)
			b.WriteString("\n")
		}
	}

	writeLines(e.declarations)
	writeLines(e.state)
	writeLines(e.functions)

	b.WriteString("export function mount(target) {\n")
	b.WriteString("  const __root = _create();\n")
	b.WriteString("  if (__root) { target.appendChild(__root); }\n")
	for _, l := range e.lifecycle {
		b.WriteString("  ")
		b.WriteString(l)
		b.WriteString("\n")
	}
	b.WriteString("  return {\n")
	b.WriteString("    destroy() {\n")
	for _, l := range e.cleanup {
		b.WriteString("      ")
		b.WriteString(l)
		b.WriteString("\n")
	}
	b.WriteString("      if (__root && __root.parentNode) { __root.parentNode.removeChild(__root); }\n")
	b.WriteString("    },\n")
	b.WriteString("  };\n")
	b.WriteString("}\n")

	return b.String()
}
