package irstore

import (
	"fmt"

	"github.com/protongramzk/iridium/internal/irdoc"
)

// ElementSpec is the caller-supplied shape for Create: everything an
// element can carry at creation time except the id, which the store mints.
type ElementSpec struct {
	Kind    string
	Tag     string
	Parent  string // empty means "no parent" (installs as root if none exists)
	Text    *string
	Styles  map[string]string
	Classes []string
	Attrs   map[string]string
}

// Create allocates a new element, appending it to Parent if given. If no
// parent is given and no root exists yet, the new element is installed as
// root. Marks elements and structure dirty.
func (s *Store) Create(spec ElementSpec) (string, error) {
	const op = "create"
	if err := s.requireTx(op); err != nil {
		return "", err
	}
	if spec.Parent != "" {
		if _, ok := s.doc.Elements.Nodes[spec.Parent]; !ok {
			return "", newError(ReferenceError, op, fmt.Sprintf("unknown parent %q", spec.Parent))
		}
	}

	id := s.minter.Mint(irdoc.IDElement)
	el := irdoc.NewElement(id, spec.Kind, spec.Tag)
	el.Text = cloneTextPtr(spec.Text)
	for k, v := range spec.Styles {
		el.Styles[k] = v
	}
	for _, c := range spec.Classes {
		el.Classes[c] = struct{}{}
	}
	for k, v := range spec.Attrs {
		el.Attrs[k] = v
	}

	s.doc.Elements.Nodes[id] = el

	if spec.Parent != "" {
		parent := s.doc.Elements.Nodes[spec.Parent]
		parent.Children = append(parent.Children, id)
		el.Parent = spec.Parent
	} else if s.doc.Elements.RootID == "" {
		s.doc.Elements.RootID = id
	}

	s.doc.DirtyFlags.MarkElement(id)
	s.doc.DirtyFlags.MarkStructure()
	s.touch()
	return id, nil
}

func cloneTextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func (s *Store) mustElement(op, id string) (*irdoc.Element, error) {
	el, ok := s.doc.Elements.Nodes[id]
	if !ok {
		return nil, newError(ReferenceError, op, fmt.Sprintf("unknown element %q", id))
	}
	return el, nil
}

func (s *Store) detachFromParent(el *irdoc.Element) {
	if el.Parent == "" {
		return
	}
	parent, ok := s.doc.Elements.Nodes[el.Parent]
	if !ok {
		el.Parent = ""
		return
	}
	for i, c := range parent.Children {
		if c == el.ID {
			parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
			break
		}
	}
	el.Parent = ""
}

// Append detaches child from its previous parent (if any) and pushes it
// onto parent.children.
func (s *Store) Append(parentID, childID string) error {
	const op = "append"
	if err := s.requireTx(op); err != nil {
		return err
	}
	parent, err := s.mustElement(op, parentID)
	if err != nil {
		return err
	}
	child, err := s.mustElement(op, childID)
	if err != nil {
		return err
	}

	s.detachFromParent(child)
	parent.Children = append(parent.Children, childID)
	child.Parent = parentID

	s.doc.DirtyFlags.MarkElement(parentID)
	s.doc.DirtyFlags.MarkElement(childID)
	s.doc.DirtyFlags.MarkStructure()
	s.touch()
	return nil
}

// Insert is Append at a specific index within parent.children.
func (s *Store) Insert(parentID, childID string, index int) error {
	const op = "insert"
	if err := s.requireTx(op); err != nil {
		return err
	}
	parent, err := s.mustElement(op, parentID)
	if err != nil {
		return err
	}
	child, err := s.mustElement(op, childID)
	if err != nil {
		return err
	}

	s.detachFromParent(child)
	if index < 0 {
		index = 0
	}
	if index > len(parent.Children) {
		index = len(parent.Children)
	}
	parent.Children = append(parent.Children, "")
	copy(parent.Children[index+1:], parent.Children[index:])
	parent.Children[index] = childID
	child.Parent = parentID

	s.doc.DirtyFlags.MarkElement(parentID)
	s.doc.DirtyFlags.MarkElement(childID)
	s.doc.DirtyFlags.MarkStructure()
	s.touch()
	return nil
}

// Delete recurses over children first, detaches from its parent, removes
// events targeting it, bindings referring to it, and its conditional-group
// membership (I8), then unlinks the element. Deleting the root clears
// RootID.
func (s *Store) Delete(id string) error {
	const op = "delete"
	if err := s.requireTx(op); err != nil {
		return err
	}
	if _, err := s.mustElement(op, id); err != nil {
		return err
	}
	s.deleteElementCascade(id)
	s.doc.DirtyFlags.MarkStructure()
	s.touch()
	return nil
}

func (s *Store) deleteElementCascade(id string) {
	el, ok := s.doc.Elements.Nodes[id]
	if !ok {
		return
	}

	for _, child := range append([]string(nil), el.Children...) {
		s.deleteElementCascade(child)
	}

	s.detachFromParent(el)

	for t, list := range s.doc.Events {
		kept := list[:0]
		for _, e := range list {
			if e.Target != id {
				kept = append(kept, e)
			}
		}
		s.doc.Events[t] = kept
	}

	kept := s.doc.Bindings[:0]
	for _, b := range s.doc.Bindings {
		if b.ElementID != id {
			kept = append(kept, b)
		}
	}
	s.doc.Bindings = kept

	if el.Control != nil {
		s.removeFromGroup(el.Control.Group, id)
	}

	delete(s.doc.Elements.Nodes, id)
	if s.doc.Elements.RootID == id {
		s.doc.Elements.RootID = ""
	}
	s.doc.DirtyFlags.MarkElement(id)
}

// removeFromGroup removes id from the group gid's membership, dissolving
// the group entirely when id is the group's if element.
func (s *Store) removeFromGroup(gid, id string) {
	g, ok := s.doc.ConditionalGroups[gid]
	if !ok {
		return
	}
	if g.If == id {
		s.dissolveGroup(gid)
		return
	}
	for i, e := range g.Elif {
		if e == id {
			g.Elif = append(g.Elif[:i], g.Elif[i+1:]...)
			s.doc.DirtyFlags.MarkConditional(gid)
			return
		}
	}
	if g.Else == id {
		g.Else = ""
		s.doc.DirtyFlags.MarkConditional(gid)
	}
}

// SetText sets static text content; an empty string clears it (mirroring
// Style/Attr's empty-value-means-remove convention), leaving the
// element with no text at all. Fails (I3) if the element is currently
// bound to a variable.
func (s *Store) SetText(id string, text string) error {
	const op = "setText"
	if err := s.requireTx(op); err != nil {
		return err
	}
	el, err := s.mustElement(op, id)
	if err != nil {
		return err
	}
	if el.TextBinding != nil {
		return newError(StateViolation, op, fmt.Sprintf("element %q is bound to %q", id, *el.TextBinding))
	}
	if text == "" {
		el.Text = nil
	} else {
		el.Text = &text
	}
	s.doc.DirtyFlags.MarkElement(id)
	s.touch()
	return nil
}

// BindText binds element text to a reactive/fetch/static variable,
// recording both the element's own textBinding field and a kind=text entry
// in the Bindings collection (so binding emission's "group all bindings by
// variable" sees it alongside attr/style bindings). Fails (I3) if the
// element currently carries static text.
func (s *Store) BindText(id, variable string) error {
	const op = "bindText"
	if err := s.requireTx(op); err != nil {
		return err
	}
	el, err := s.mustElement(op, id)
	if err != nil {
		return err
	}
	if el.Text != nil {
		return newError(StateViolation, op, fmt.Sprintf("element %q has static text", id))
	}
	if _, ok := s.doc.Variables.Lookup(variable); !ok {
		return newError(ReferenceError, op, fmt.Sprintf("unknown variable %q", variable))
	}

	s.unbindByElementAndKind(id, irdoc.BindingText)
	bindingID := s.minter.Mint(irdoc.IDBinding)
	s.doc.Bindings = append(s.doc.Bindings, &irdoc.Binding{
		ID:        bindingID,
		ElementID: id,
		Variable:  variable,
		Kind:      irdoc.BindingText,
	})

	el.TextBinding = &variable
	s.doc.DirtyFlags.MarkElement(id)
	s.doc.DirtyFlags.MarkBinding(bindingID)
	s.touch()
	return nil
}

// UnbindText clears a reactive text binding, leaving the element with no
// text content, and removes its entry from the Bindings collection.
func (s *Store) UnbindText(id string) error {
	const op = "unbindText"
	if err := s.requireTx(op); err != nil {
		return err
	}
	el, err := s.mustElement(op, id)
	if err != nil {
		return err
	}
	el.TextBinding = nil
	s.unbindByElementAndKind(id, irdoc.BindingText)
	s.doc.DirtyFlags.MarkElement(id)
	s.touch()
	return nil
}

// Style sets a CSS property; an empty value removes it.
func (s *Store) Style(id, key, value string) error {
	const op = "style"
	if err := s.requireTx(op); err != nil {
		return err
	}
	el, err := s.mustElement(op, id)
	if err != nil {
		return err
	}
	if value == "" {
		delete(el.Styles, key)
	} else {
		el.Styles[key] = value
	}
	s.doc.DirtyFlags.MarkElement(id)
	s.touch()
	return nil
}

// Class adds (present=true) or removes (present=false) a class.
func (s *Store) Class(id, name string, present bool) error {
	const op = "class"
	if err := s.requireTx(op); err != nil {
		return err
	}
	el, err := s.mustElement(op, id)
	if err != nil {
		return err
	}
	if present {
		el.Classes[name] = struct{}{}
	} else {
		delete(el.Classes, name)
	}
	s.doc.DirtyFlags.MarkElement(id)
	s.touch()
	return nil
}

// Attr sets an attribute; an empty value removes it.
func (s *Store) Attr(id, key, value string) error {
	const op = "attr"
	if err := s.requireTx(op); err != nil {
		return err
	}
	el, err := s.mustElement(op, id)
	if err != nil {
		return err
	}
	if value == "" {
		delete(el.Attrs, key)
	} else {
		el.Attrs[key] = value
	}
	s.doc.DirtyFlags.MarkElement(id)
	s.touch()
	return nil
}
