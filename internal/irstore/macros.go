package irstore

import (
	"fmt"

	"github.com/protongramzk/iridium/internal/irdoc"
)

// Duplicate deep-copies the subtree rooted at id — preserving kind, tag,
// text, textBinding, styles, classes, attrs, child order, bindings, and
// events (action payloads cloned) — and inserts the copy immediately after
// the original among its siblings. control and loop are cleared on the
// copy: wiring a duplicate into the source's conditional group or loop
// context would violate I5/I6/I7 immediately (a second "if" in the same
// group, a second loop-body descriptor) without an explicit operation
// naming where it should attach, so a duplicate always starts as a
// freestanding sibling (see SPEC_FULL.md open-question resolution).
func (s *Store) Duplicate(id string) (string, error) {
	var newID string
	err := s.autoTx("duplicate", func() error {
		el, ok := s.doc.Elements.Nodes[id]
		if !ok {
			return newError(ReferenceError, "duplicate", fmt.Sprintf("unknown element %q", id))
		}
		copied, err := s.duplicateSubtree(el, el.Parent)
		if err != nil {
			return err
		}
		newID = copied

		if el.Parent != "" {
			parent := s.doc.Elements.Nodes[el.Parent]
			for i, c := range parent.Children {
				if c == id {
					parent.Children = insertAt(parent.Children, i+1, copied)
					break
				}
			}
		}

		s.duplicateBindingsAndEvents(id, copied)
		s.doc.DirtyFlags.MarkStructure()
		return nil
	})
	return newID, err
}

// insertAt splices v into s at index, shifting the tail right.
func insertAt(s []string, index int, v string) []string {
	s = append(s, "")
	copy(s[index+1:], s[index:])
	s[index] = v
	return s
}

func (s *Store) duplicateSubtree(el *irdoc.Element, parent string) (string, error) {
	id := s.minter.Mint(irdoc.IDElement)
	copied := irdoc.NewElement(id, el.Kind, el.Tag)
	copied.Text = cloneTextPtr(el.Text)
	copied.TextBinding = cloneTextPtr(el.TextBinding)
	for k, v := range el.Styles {
		copied.Styles[k] = v
	}
	for c := range el.Classes {
		copied.Classes[c] = struct{}{}
	}
	for k, v := range el.Attrs {
		copied.Attrs[k] = v
	}
	copied.Parent = parent
	s.doc.Elements.Nodes[id] = copied

	for _, childID := range el.Children {
		childEl, ok := s.doc.Elements.Nodes[childID]
		if !ok {
			continue
		}
		newChildID, err := s.duplicateSubtree(childEl, id)
		if err != nil {
			return "", err
		}
		copied.Children = append(copied.Children, newChildID)
		s.duplicateBindingsAndEvents(childID, newChildID)
	}

	s.doc.DirtyFlags.MarkElement(id)
	return id, nil
}

func (s *Store) duplicateBindingsAndEvents(fromID, toID string) {
	for _, b := range append([]*irdoc.Binding(nil), s.doc.Bindings...) {
		if b.ElementID != fromID {
			continue
		}
		id := s.minter.Mint(irdoc.IDBinding)
		s.doc.Bindings = append(s.doc.Bindings, &irdoc.Binding{
			ID:        id,
			ElementID: toID,
			Variable:  b.Variable,
			Kind:      b.Kind,
			Key:       b.Key,
		})
		s.doc.DirtyFlags.MarkBinding(id)
	}
	for t, list := range s.doc.Events {
		for _, e := range append([]*irdoc.Event(nil), list...) {
			if e.Target != fromID {
				continue
			}
			id := s.minter.Mint(irdoc.IDEvent)
			s.doc.Events[t] = append(s.doc.Events[t], &irdoc.Event{
				ID:     id,
				Target: toID,
				Action: irdoc.CloneAction(e.Action),
			})
			s.doc.DirtyFlags.MarkEvent(id)
		}
	}
}

// Wrap creates a layout/div container, splices it into the original's
// parent at the original's position, and re-parents the original into the
// container.
func (s *Store) Wrap(id string) (string, error) {
	var containerID string
	err := s.autoTx("wrap", func() error {
		el, ok := s.doc.Elements.Nodes[id]
		if !ok {
			return newError(ReferenceError, "wrap", fmt.Sprintf("unknown element %q", id))
		}
		parent := el.Parent
		wasRoot := s.doc.Elements.RootID == id

		containerID = s.minter.Mint(irdoc.IDElement)
		container := irdoc.NewElement(containerID, "layout", "div")
		container.Parent = parent
		container.Children = []string{id}
		s.doc.Elements.Nodes[containerID] = container

		if parent != "" {
			parentEl := s.doc.Elements.Nodes[parent]
			for i, c := range parentEl.Children {
				if c == id {
					parentEl.Children[i] = containerID
					break
				}
			}
		}
		if wasRoot {
			s.doc.Elements.RootID = containerID
		}
		el.Parent = containerID

		s.doc.DirtyFlags.MarkElement(containerID)
		s.doc.DirtyFlags.MarkElement(id)
		s.doc.DirtyFlags.MarkStructure()
		return nil
	})
	return containerID, err
}

// Convert mutates only an element's kind.
func (s *Store) Convert(id, newKind string) error {
	return s.autoTx("convert", func() error {
		el, ok := s.doc.Elements.Nodes[id]
		if !ok {
			return newError(ReferenceError, "convert", fmt.Sprintf("unknown element %q", id))
		}
		el.Kind = newKind
		s.doc.DirtyFlags.MarkElement(id)
		return nil
	})
}
