package irstore

import (
	"fmt"

	"github.com/protongramzk/iridium/internal/irdoc"
)

// LoopSpec is the caller-supplied shape for SetLoop/UpdateLoop.
type LoopSpec struct {
	Source string
	Alias  string
	Index  string
	Key    string
}

// SetLoop attaches a loop descriptor to an element after checking that
// Source names an existing variable.
func (s *Store) SetLoop(elementID string, spec LoopSpec) error {
	const op = "setLoop"
	if err := s.requireTx(op); err != nil {
		return err
	}
	el, err := s.mustElement(op, elementID)
	if err != nil {
		return err
	}
	if _, ok := s.doc.Variables.Lookup(spec.Source); !ok {
		return newError(ReferenceError, op, fmt.Sprintf("unknown variable %q", spec.Source))
	}
	el.Loop = &irdoc.Loop{Source: spec.Source, Alias: spec.Alias, Index: spec.Index, Key: spec.Key}
	s.doc.DirtyFlags.MarkLoop(elementID)
	s.touch()
	return nil
}

// UpdateLoop merges non-empty fields of spec into the element's existing
// loop descriptor.
func (s *Store) UpdateLoop(elementID string, spec LoopSpec) error {
	const op = "updateLoop"
	if err := s.requireTx(op); err != nil {
		return err
	}
	el, err := s.mustElement(op, elementID)
	if err != nil {
		return err
	}
	if el.Loop == nil {
		return newError(StateViolation, op, fmt.Sprintf("element %q has no loop descriptor", elementID))
	}
	if spec.Source != "" {
		if _, ok := s.doc.Variables.Lookup(spec.Source); !ok {
			return newError(ReferenceError, op, fmt.Sprintf("unknown variable %q", spec.Source))
		}
		el.Loop.Source = spec.Source
	}
	if spec.Alias != "" {
		el.Loop.Alias = spec.Alias
	}
	if spec.Index != "" {
		el.Loop.Index = spec.Index
	}
	if spec.Key != "" {
		el.Loop.Key = spec.Key
	}
	s.doc.DirtyFlags.MarkLoop(elementID)
	s.touch()
	return nil
}

// RemoveLoop clears an element's loop descriptor.
func (s *Store) RemoveLoop(elementID string) error {
	const op = "removeLoop"
	if err := s.requireTx(op); err != nil {
		return err
	}
	el, err := s.mustElement(op, elementID)
	if err != nil {
		return err
	}
	el.Loop = nil
	s.doc.DirtyFlags.MarkLoop(elementID)
	s.touch()
	return nil
}
