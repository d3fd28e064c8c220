package ircompiler

import "fmt"

// emitTree walks the graph's root child layout and builds the _create()
// function (declarations bucket gets the holder vars, functions bucket gets
// the builder itself). It returns the holder name _create() assigns as its
// root, or "" for an empty document. Any post-append statements the root
// itself requires (only possible if the root is a loop or conditional site)
// are folded into the lifecycle bucket, since they must run after mount()
// appends the root to its target — _create() can't run them itself.
func (e *emitter) emitTree() string {
	if !e.graph.HasRoot {
		e.functions = append(e.functions, "function _create() {", "  return null;", "}")
		return ""
	}

	var body []string
	rootHolder, rootPost := e.emitChild(e.graph.Root, &body, false)

	e.functions = append(e.functions, "function _create() {")
	for _, line := range body {
		e.functions = append(e.functions, "  "+line)
	}
	e.functions = append(e.functions, fmt.Sprintf("  return %s;", rootHolder))
	e.functions = append(e.functions, "}")

	e.lifecycle = append(rootPost, e.lifecycle...)

	return rootHolder
}

// emitChild builds one child-layout entry into body and returns the holder
// name a parent should append, plus any statements that must run right
// after that append (non-empty only for loop/conditional sites, whose
// content is populated relative to an anchor already attached to a live
// parent). loopBody is true while building a loop's per-iteration body,
// where a bound text target is an alias reference rather than a module
// variable — see emitElementNode.
func (e *emitter) emitChild(c Child, body *[]string, loopBody bool) (string, []string) {
	switch c.Kind {
	case ChildElement:
		return e.emitElementNode(c.Element, body, loopBody), nil
	case ChildLoop:
		return e.emitLoopSite(c.Loop, body)
	case ChildConditional:
		return e.emitConditionalSite(c.Conditional, body, loopBody)
	default:
		return "", nil
	}
}

// emitElementNode emits the holder declaration, document.createElement call,
// text/styles/classes/attrs setup, recursive children, and appends — the
// §4.2 "Element emission" rule, reused verbatim for loop-body and
// conditional-branch subtrees per the Open Question 5 resolution.
//
// Outside a loop body, a bound text target is a module-level variable; its
// initial value is applied by the matching _u_<name>() lifecycle call, not
// here (§4.2 only lists static text as part of _create()'s own work).
// Inside a loop body there is no such variable to bind to — the loop's
// "textBinding emits el.textContent = <alias-qualified identifier> verbatim"
// rule (§4.2 "Loop emission") means the identifier is set inline instead.
func (e *emitter) emitElementNode(n *ElementNode, body *[]string, loopBody bool) string {
	holder := e.names.holderFor(n.ID)
	el := n.Element
	e.declarations = append(e.declarations, fmt.Sprintf("let %s;", holder))

	*body = append(*body, fmt.Sprintf("%s = document.createElement(%s);", holder, literal(el.Tag)))

	if el.Text != nil {
		*body = append(*body, fmt.Sprintf("%s.textContent = %s;", holder, literal(*el.Text)))
	}
	if loopBody && el.TextBinding != nil {
		*body = append(*body, fmt.Sprintf("%s.textContent = %s;", holder, e.access(*el.TextBinding)))
	}
	for _, key := range sortedKeys(el.Styles) {
		*body = append(*body, fmt.Sprintf("%s.style.%s = %s;", holder, camelCase(key), literal(el.Styles[key])))
	}
	for _, class := range sortedSet(el.Classes) {
		*body = append(*body, fmt.Sprintf("%s.classList.add(%s);", holder, literal(class)))
	}
	for _, key := range sortedKeys(el.Attrs) {
		*body = append(*body, fmt.Sprintf("%s.setAttribute(%s, %s);", holder, literal(key), literal(el.Attrs[key])))
	}

	for _, child := range n.Children {
		childHolder, post := e.emitChild(child, body, loopBody)
		if childHolder != "" {
			*body = append(*body, fmt.Sprintf("%s.appendChild(%s);", holder, childHolder))
		}
		*body = append(*body, post...)
	}

	return holder
}
