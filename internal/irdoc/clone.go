package irdoc

// This file implements the deep-clone discipline used for snapshots,
// history, and every query return value. It walks the fixed §3 shape by
// hand, field by field — the same structurally-recursive, rebuild-sets-
// and-maps-as-sets-and-maps approach as the teacher's reactivity/store.go
// buildSnapshot/assignNodeValue walk (there, over an arbitrary reflect.Value
// tree; here, over the IR's known concrete types, since the shape never
// varies and reflection would only cost clarity and speed for no benefit).

func cloneStringPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneStringSet(m map[string]struct{}) map[string]struct{} {
	if m == nil {
		return nil
	}
	out := make(map[string]struct{}, len(m))
	for k := range m {
		out[k] = struct{}{}
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// cloneAny deep-copies the value literal types the IR stores in Variable.Init
// and Action.Value: strings, numbers, booleans, nil, []any and map[string]any
// (the shapes literal.go knows how to serialize). Anything else is passed
// through unchanged (it is the caller's own opaque value).
func cloneAny(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = cloneAny(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = cloneAny(e)
		}
		return out
	default:
		return v
	}
}

func cloneControl(c *Control) *Control {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

func cloneLoop(l *Loop) *Loop {
	if l == nil {
		return nil
	}
	cp := *l
	return &cp
}

func CloneElement(e *Element) *Element {
	if e == nil {
		return nil
	}
	return &Element{
		ID:          e.ID,
		Kind:        e.Kind,
		Tag:         e.Tag,
		Parent:      e.Parent,
		Children:    cloneStrings(e.Children),
		Text:        cloneStringPtr(e.Text),
		TextBinding: cloneStringPtr(e.TextBinding),
		Styles:      cloneStringMap(e.Styles),
		Classes:     cloneStringSet(e.Classes),
		Attrs:       cloneStringMap(e.Attrs),
		Control:     cloneControl(e.Control),
		Loop:        cloneLoop(e.Loop),
	}
}

func CloneVariable(v *Variable) *Variable {
	if v == nil {
		return nil
	}
	cp := *v
	cp.Init = cloneAny(v.Init)
	return &cp
}

func CloneBinding(b *Binding) *Binding {
	if b == nil {
		return nil
	}
	cp := *b
	return &cp
}

func CloneAction(a Action) Action {
	cp := a
	cp.Value = cloneAny(a.Value)
	return cp
}

func CloneEvent(e *Event) *Event {
	if e == nil {
		return nil
	}
	return &Event{ID: e.ID, Target: e.Target, Action: CloneAction(e.Action)}
}

func CloneConditionalGroup(g *ConditionalGroup) *ConditionalGroup {
	if g == nil {
		return nil
	}
	return &ConditionalGroup{If: g.If, Elif: cloneStrings(g.Elif), Else: g.Else}
}

func cloneVariables(vs *Variables) *Variables {
	out := NewVariables()
	for _, name := range vs.order {
		v, ok := vs.Lookup(name)
		if !ok {
			continue
		}
		out.Insert(CloneVariable(v))
	}
	return out
}

func cloneElements(es *Elements) *Elements {
	out := NewElements()
	out.RootID = es.RootID
	for id, e := range es.Nodes {
		out.Nodes[id] = CloneElement(e)
	}
	return out
}

func cloneEvents(events map[string][]*Event) map[string][]*Event {
	if events == nil {
		return make(map[string][]*Event)
	}
	out := make(map[string][]*Event, len(events))
	for t, list := range events {
		cl := make([]*Event, len(list))
		for i, e := range list {
			cl[i] = CloneEvent(e)
		}
		out[t] = cl
	}
	return out
}

func cloneBindings(bindings []*Binding) []*Binding {
	if bindings == nil {
		return nil
	}
	out := make([]*Binding, len(bindings))
	for i, b := range bindings {
		out[i] = CloneBinding(b)
	}
	return out
}

func cloneConditionalGroups(groups map[string]*ConditionalGroup) map[string]*ConditionalGroup {
	out := make(map[string]*ConditionalGroup, len(groups))
	for id, g := range groups {
		out[id] = CloneConditionalGroup(g)
	}
	return out
}

func cloneDirtyFlags(d *DirtyFlags) *DirtyFlags {
	return &DirtyFlags{
		Elements:     cloneStringSet(d.Elements),
		Variables:    cloneStringSet(d.Variables),
		Events:       cloneStringSet(d.Events),
		Bindings:     cloneStringSet(d.Bindings),
		Conditionals: cloneStringSet(d.Conditionals),
		Loops:        cloneStringSet(d.Loops),
		Structure:    d.Structure,
	}
}

// CloneDocument returns a structurally independent deep copy of doc. It is
// the single primitive every snapshot, history entry, and query return
// value is built from.
func CloneDocument(doc *Document) *Document {
	if doc == nil {
		return nil
	}
	return &Document{
		Meta:              doc.Meta,
		Variables:         cloneVariables(doc.Variables),
		Elements:          cloneElements(doc.Elements),
		Events:            cloneEvents(doc.Events),
		Bindings:          cloneBindings(doc.Bindings),
		ConditionalGroups: cloneConditionalGroups(doc.ConditionalGroups),
		DirtyFlags:        cloneDirtyFlags(doc.DirtyFlags),
	}
}
