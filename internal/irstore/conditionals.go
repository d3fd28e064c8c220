package irstore

import (
	"fmt"

	"github.com/protongramzk/iridium/internal/irdoc"
)

// BranchSpec describes the element to create for one branch of a
// conditional group (if/elif/else).
type BranchSpec struct {
	Kind    string
	Tag     string
	Text    *string
	Styles  map[string]string
	Classes []string
	Attrs   map[string]string
}

func (s *Store) createBranchElement(parent string, spec BranchSpec) (string, error) {
	return s.Create(ElementSpec{
		Kind:    spec.Kind,
		Tag:     spec.Tag,
		Parent:  parent,
		Text:    spec.Text,
		Styles:  spec.Styles,
		Classes: spec.Classes,
		Attrs:   spec.Attrs,
	})
}

// CreateIfGroup creates the if branch's element under parent, stamps its
// control, and registers a new conditional group.
func (s *Store) CreateIfGroup(parent, expr string, spec BranchSpec) (groupID, elementID string, err error) {
	const op = "createIfGroup"
	if err := s.requireTx(op); err != nil {
		return "", "", err
	}
	if expr == "" {
		return "", "", newError(StateViolation, op, "if requires a non-empty expr")
	}

	elementID, err = s.createBranchElement(parent, spec)
	if err != nil {
		return "", "", err
	}

	groupID = s.minter.Mint(irdoc.IDConditional)
	s.doc.Elements.Nodes[elementID].Control = &irdoc.Control{
		Type:  irdoc.ControlIf,
		Expr:  expr,
		Group: groupID,
	}
	s.doc.ConditionalGroups[groupID] = &irdoc.ConditionalGroup{If: elementID}

	s.doc.DirtyFlags.MarkConditional(groupID)
	s.touch()
	return groupID, elementID, nil
}

func (s *Store) mustGroup(op, groupID string) (*irdoc.ConditionalGroup, error) {
	g, ok := s.doc.ConditionalGroups[groupID]
	if !ok {
		return nil, newError(ReferenceError, op, fmt.Sprintf("unknown group %q", groupID))
	}
	return g, nil
}

// AddElif appends a new elif branch to an existing group, siblinged under
// the if element's parent.
func (s *Store) AddElif(groupID, expr string, spec BranchSpec) (string, error) {
	const op = "addElif"
	if err := s.requireTx(op); err != nil {
		return "", err
	}
	g, err := s.mustGroup(op, groupID)
	if err != nil {
		return "", err
	}
	ifEl, ok := s.doc.Elements.Nodes[g.If]
	if !ok {
		return "", newError(ReferenceError, op, fmt.Sprintf("group %q has no if element", groupID))
	}
	if expr == "" {
		return "", newError(StateViolation, op, "elif requires a non-empty expr")
	}

	elementID, err := s.createBranchElement(ifEl.Parent, spec)
	if err != nil {
		return "", err
	}
	s.doc.Elements.Nodes[elementID].Control = &irdoc.Control{
		Type:  irdoc.ControlElif,
		Expr:  expr,
		Group: groupID,
	}
	g.Elif = append(g.Elif, elementID)

	s.doc.DirtyFlags.MarkConditional(groupID)
	s.touch()
	return elementID, nil
}

// AddElse adds the else branch to a group, failing if one already exists.
func (s *Store) AddElse(groupID string, spec BranchSpec) (string, error) {
	const op = "addElse"
	if err := s.requireTx(op); err != nil {
		return "", err
	}
	g, err := s.mustGroup(op, groupID)
	if err != nil {
		return "", err
	}
	if g.Else != "" {
		return "", newError(StateViolation, op, fmt.Sprintf("group %q already has an else branch", groupID))
	}
	ifEl, ok := s.doc.Elements.Nodes[g.If]
	if !ok {
		return "", newError(ReferenceError, op, fmt.Sprintf("group %q has no if element", groupID))
	}

	elementID, err := s.createBranchElement(ifEl.Parent, spec)
	if err != nil {
		return "", err
	}
	s.doc.Elements.Nodes[elementID].Control = &irdoc.Control{
		Type:  irdoc.ControlElse,
		Group: groupID,
	}
	g.Else = elementID

	s.doc.DirtyFlags.MarkConditional(groupID)
	s.touch()
	return elementID, nil
}

// UpdateCondition changes the expr of an if/elif element. Fails for else
// elements, which carry no expression.
func (s *Store) UpdateCondition(elementID, expr string) error {
	const op = "updateCondition"
	if err := s.requireTx(op); err != nil {
		return err
	}
	el, err := s.mustElement(op, elementID)
	if err != nil {
		return err
	}
	if el.Control == nil {
		return newError(StateViolation, op, fmt.Sprintf("element %q is not part of a conditional group", elementID))
	}
	if el.Control.Type == irdoc.ControlElse {
		return newError(StateViolation, op, "else branches carry no expression")
	}
	el.Control.Expr = expr
	s.doc.DirtyFlags.MarkConditional(el.Control.Group)
	s.doc.DirtyFlags.MarkElement(elementID)
	s.touch()
	return nil
}

// RemoveConditional removes elementID from its group — dissolving the
// entire group if it is the if branch — and deletes the element.
func (s *Store) RemoveConditional(elementID string) error {
	const op = "removeConditional"
	if err := s.requireTx(op); err != nil {
		return err
	}
	el, err := s.mustElement(op, elementID)
	if err != nil {
		return err
	}
	if el.Control == nil {
		return newError(StateViolation, op, fmt.Sprintf("element %q is not part of a conditional group", elementID))
	}
	s.deleteElementCascade(elementID)
	s.doc.DirtyFlags.MarkStructure()
	s.touch()
	return nil
}

// dissolveGroup deletes the group entirely and scrubs the control field of
// every surviving elif/else sibling so no element ever points at a
// nonexistent group (resolves the dangling-control open question by
// construction, see SPEC_FULL.md).
func (s *Store) dissolveGroup(gid string) {
	g, ok := s.doc.ConditionalGroups[gid]
	if !ok {
		return
	}
	for _, eid := range g.Elif {
		if el, ok := s.doc.Elements.Nodes[eid]; ok {
			el.Control = nil
			s.doc.DirtyFlags.MarkElement(eid)
		}
	}
	if g.Else != "" {
		if el, ok := s.doc.Elements.Nodes[g.Else]; ok {
			el.Control = nil
			s.doc.DirtyFlags.MarkElement(g.Else)
		}
	}
	delete(s.doc.ConditionalGroups, gid)
	s.doc.DirtyFlags.MarkConditional(gid)
}
