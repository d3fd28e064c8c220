package irstore

import (
	"fmt"

	"github.com/protongramzk/iridium/internal/irdoc"
)

// VariableSpec is the caller-supplied shape for Var.
type VariableSpec struct {
	Name      string
	Type      irdoc.VariableType
	Init      any
	Source    string // fetch only
	Lifecycle string // fetch only: "eager" | "lazy"
}

// Var creates a variable, rejecting a duplicate name across all three
// partitions (I2).
func (s *Store) Var(spec VariableSpec) (string, error) {
	const op = "var"
	if err := s.requireTx(op); err != nil {
		return "", err
	}
	if _, ok := s.doc.Variables.Lookup(spec.Name); ok {
		return "", newError(StateViolation, op, fmt.Sprintf("duplicate variable name %q", spec.Name))
	}

	id := s.minter.Mint(irdoc.IDVariable)
	s.doc.Variables.Insert(&irdoc.Variable{
		ID:        id,
		Name:      spec.Name,
		Type:      spec.Type,
		Init:      spec.Init,
		Source:    spec.Source,
		Lifecycle: spec.Lifecycle,
	})

	s.doc.DirtyFlags.MarkVariable(spec.Name)
	s.touch()
	return id, nil
}

// UpdateVar sets a variable's current value, rejecting static variables
// (they are inert by definition).
func (s *Store) UpdateVar(name string, value any) error {
	const op = "updateVar"
	if err := s.requireTx(op); err != nil {
		return err
	}
	v, ok := s.doc.Variables.Lookup(name)
	if !ok {
		return newError(ReferenceError, op, fmt.Sprintf("unknown variable %q", name))
	}
	if v.Type == irdoc.VariableStatic {
		return newError(StateViolation, op, fmt.Sprintf("variable %q is static", name))
	}
	v.Init = value
	s.doc.DirtyFlags.MarkVariable(name)
	s.touch()
	return nil
}

// DeleteVar removes a variable, cascading to every binding that references
// it.
func (s *Store) DeleteVar(name string) error {
	const op = "deleteVar"
	if err := s.requireTx(op); err != nil {
		return err
	}
	if _, ok := s.doc.Variables.Lookup(name); !ok {
		return newError(ReferenceError, op, fmt.Sprintf("unknown variable %q", name))
	}

	kept := s.doc.Bindings[:0]
	for _, b := range s.doc.Bindings {
		if b.Variable != name {
			kept = append(kept, b)
		}
	}
	s.doc.Bindings = kept

	s.doc.Variables.Delete(name)
	s.doc.DirtyFlags.MarkVariable(name)
	s.touch()
	return nil
}
