package ircompiler

import "fmt"

// emitConditionalSite declares a group's anchor and current-element holders
// — the Open Question 2 resolution's "empty comment node adjacent to the
// group's position" — and returns the anchor as the holder a parent should
// append, plus the call that performs the first branch evaluation.
func (e *emitter) emitConditionalSite(cn *ConditionalNode, body *[]string, loopBody bool) (string, []string) {
	ident := safeIdent(cn.GroupID)
	anchor := "_a" + ident
	current := "_c" + ident
	e.declarations = append(e.declarations, fmt.Sprintf("let %s;", anchor), fmt.Sprintf("let %s = null;", current))
	*body = append(*body, fmt.Sprintf("%s = document.createComment(\"\");", anchor))

	e.emitConditionalCreateFn(cn, ident, loopBody)
	e.emitConditionalUpdateFn(ident, anchor, current)

	return anchor, []string{fmt.Sprintf("_update%s();", ident)}
}

// emitConditionalCreateFn builds _create<gid>(): a single if/else-if/else
// chain keyed on the IR's verbatim expressions, one branch per if/elif/else
// element, each returning its built holder; an unmatched chain (no else
// present) falls through to a final "return null".
func (e *emitter) emitConditionalCreateFn(cn *ConditionalNode, ident string, loopBody bool) {
	lines := []string{fmt.Sprintf("function _create%s() {", ident)}

	branches := append([]*ElementNode{cn.If}, cn.Elif...)
	for i, branch := range branches {
		var inner []string
		holder := e.emitElementNode(branch, &inner, loopBody)
		if i == 0 {
			lines = append(lines, fmt.Sprintf("  if (%s) {", branch.Element.Control.Expr))
		} else {
			lines = append(lines, fmt.Sprintf("  } else if (%s) {", branch.Element.Control.Expr))
		}
		for _, l := range inner {
			lines = append(lines, "    "+l)
		}
		lines = append(lines, fmt.Sprintf("    return %s;", holder))
	}
	if cn.Else != nil {
		var inner []string
		holder := e.emitElementNode(cn.Else, &inner, loopBody)
		lines = append(lines, "  } else {")
		for _, l := range inner {
			lines = append(lines, "    "+l)
		}
		lines = append(lines, fmt.Sprintf("    return %s;", holder))
	}
	lines = append(lines, "  }", "  return null;", "}")

	e.functions = append(e.functions, lines...)
}

// emitConditionalUpdateFn builds _update<gid>(): remove whatever branch is
// currently mounted, re-run the create chain, and reinsert the result (if
// any) next to the anchor. Used both for the first render and every
// subsequent reactive recompute (Open Question 1's resolution).
func (e *emitter) emitConditionalUpdateFn(ident, anchor, current string) {
	e.functions = append(e.functions,
		fmt.Sprintf("function _update%s() {", ident),
		fmt.Sprintf("  if (%s) { %s.remove(); }", current, current),
		fmt.Sprintf("  %s = _create%s();", current, ident),
		fmt.Sprintf("  if (%s && %s.parentNode) { %s.parentNode.insertBefore(%s, %s.nextSibling); }", current, anchor, anchor, current, anchor),
		"}",
	)
}
