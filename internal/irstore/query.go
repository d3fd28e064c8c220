package irstore

import (
	"fmt"

	"github.com/protongramzk/iridium/internal/irdoc"
)

// Get returns a deep clone of an element; callers may mutate the result
// freely without touching store state.
func (s *Store) Get(id string) (*irdoc.Element, error) {
	el, ok := s.doc.Elements.Nodes[id]
	if !ok {
		return nil, newError(ReferenceError, "get", fmt.Sprintf("unknown element %q", id))
	}
	return irdoc.CloneElement(el), nil
}

// Children returns the ids of id's direct children, in render order.
func (s *Store) Children(id string) ([]string, error) {
	el, ok := s.doc.Elements.Nodes[id]
	if !ok {
		return nil, newError(ReferenceError, "children", fmt.Sprintf("unknown element %q", id))
	}
	out := make([]string, len(el.Children))
	copy(out, el.Children)
	return out, nil
}

// Parent returns id's parent id, or "" if id is the root or unparented.
func (s *Store) Parent(id string) (string, error) {
	el, ok := s.doc.Elements.Nodes[id]
	if !ok {
		return "", newError(ReferenceError, "parent", fmt.Sprintf("unknown element %q", id))
	}
	return el.Parent, nil
}

// Vars returns a deep clone of every variable across all partitions, in
// creation order.
func (s *Store) Vars() []*irdoc.Variable {
	all := s.doc.Variables.All()
	out := make([]*irdoc.Variable, len(all))
	for i, v := range all {
		out[i] = irdoc.CloneVariable(v)
	}
	return out
}

// GetVar returns a deep clone of a single variable by name.
func (s *Store) GetVar(name string) (*irdoc.Variable, error) {
	v, ok := s.doc.Variables.Lookup(name)
	if !ok {
		return nil, newError(ReferenceError, "getVar", fmt.Sprintf("unknown variable %q", name))
	}
	return irdoc.CloneVariable(v), nil
}

// Events returns a deep clone of every registered handler for eventType.
func (s *Store) Events(eventType string) []*irdoc.Event {
	list := s.doc.Events[eventType]
	out := make([]*irdoc.Event, len(list))
	for i, e := range list {
		out[i] = irdoc.CloneEvent(e)
	}
	return out
}

// GetBindings returns a deep clone of every binding registered against
// elementID.
func (s *Store) GetBindings(elementID string) []*irdoc.Binding {
	var out []*irdoc.Binding
	for _, b := range s.doc.Bindings {
		if b.ElementID == elementID {
			out = append(out, irdoc.CloneBinding(b))
		}
	}
	return out
}

// GetLoop returns a deep clone of id's loop descriptor, or nil if it has
// none.
func (s *Store) GetLoop(id string) (*irdoc.Loop, error) {
	el, ok := s.doc.Elements.Nodes[id]
	if !ok {
		return nil, newError(ReferenceError, "getLoop", fmt.Sprintf("unknown element %q", id))
	}
	if el.Loop == nil {
		return nil, nil
	}
	cp := *el.Loop
	return &cp, nil
}
