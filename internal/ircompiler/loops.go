package ircompiler

import "fmt"

// emitLoopSite declares the loop's anchor holder (assigned once, during
// _create()) and its backing node-tracking function, then returns the
// anchor as the holder a parent should append, plus the call that performs
// the first population — identical to how a later re-render is triggered.
// The anchor is named _la<n>, apart from the element's own e<n> holder,
// which the per-item body reassigns on every iteration.
func (e *emitter) emitLoopSite(ln *LoopNode, body *[]string) (string, []string) {
	ident := safeIdent(ln.ID)
	holder := "_la" + ident
	e.declarations = append(e.declarations, fmt.Sprintf("let %s;", holder))
	*body = append(*body, fmt.Sprintf("%s = document.createComment(\"\");", holder))

	e.emitLoopFunction(ln, holder, ident)

	return holder, []string{fmt.Sprintf("_loop%s();", ident)}
}

// emitLoopFunction builds _loop<n>(): it tears down whatever the previous
// invocation mounted, builds a fresh DocumentFragment from the current
// source value — one element subtree per item, via the same rich element
// emission path a regular child uses (Open Question 5) — and inserts it
// immediately after the anchor comment.
func (e *emitter) emitLoopFunction(ln *LoopNode, anchor, ident string) {
	nodesVar := "_nodes" + ident
	e.declarations = append(e.declarations, fmt.Sprintf("let %s = [];", nodesVar))

	params := ln.Loop.Alias
	if ln.Loop.Index != "" {
		params += ", " + ln.Loop.Index
	}

	var itemBody []string
	itemHolder := e.emitElementNode(ln.Element, &itemBody, true)

	lines := []string{
		fmt.Sprintf("function _loop%s() {", ident),
		fmt.Sprintf("  for (const node of %s) { node.remove(); }", nodesVar),
		fmt.Sprintf("  %s = [];", nodesVar),
		"  const frag = document.createDocumentFragment();",
		fmt.Sprintf("  %s.forEach((%s) => {", e.access(ln.Loop.Source), params),
	}
	for _, l := range itemBody {
		lines = append(lines, "    "+l)
	}
	lines = append(lines,
		fmt.Sprintf("    frag.appendChild(%s);", itemHolder),
		fmt.Sprintf("    %s.push(%s);", nodesVar, itemHolder),
		"  });",
		fmt.Sprintf("  if (%s.parentNode) { %s.parentNode.insertBefore(frag, %s.nextSibling); }", anchor, anchor, anchor),
		"}",
	)
	e.functions = append(e.functions, lines...)
}
