package irstore

import (
	"fmt"

	"github.com/protongramzk/iridium/internal/irdoc"
)

// Bind creates a Binding record projecting variable onto element via kind.
// key is required for attr/style and must be empty for text; callers
// normally reach this through BindText/BindAttr/BindStyle rather than
// calling it directly.
func (s *Store) Bind(elementID, variable string, kind irdoc.BindingKind, key string) (string, error) {
	const op = "bind"
	if err := s.requireTx(op); err != nil {
		return "", err
	}
	if _, ok := s.doc.Elements.Nodes[elementID]; !ok {
		return "", newError(ReferenceError, op, fmt.Sprintf("unknown element %q", elementID))
	}
	if _, ok := s.doc.Variables.Lookup(variable); !ok {
		return "", newError(ReferenceError, op, fmt.Sprintf("unknown variable %q", variable))
	}
	if (kind == irdoc.BindingAttr || kind == irdoc.BindingStyle) && key == "" {
		return "", newError(StateViolation, op, fmt.Sprintf("%s binding requires a key", kind))
	}
	if kind == irdoc.BindingText && key != "" {
		return "", newError(StateViolation, op, "text binding must not carry a key")
	}

	id := s.minter.Mint(irdoc.IDBinding)
	s.doc.Bindings = append(s.doc.Bindings, &irdoc.Binding{
		ID:        id,
		ElementID: elementID,
		Variable:  variable,
		Kind:      kind,
		Key:       key,
	})
	s.doc.DirtyFlags.MarkBinding(id)
	s.touch()
	return id, nil
}

// Unbind removes a binding by id.
func (s *Store) Unbind(bindingID string) error {
	const op = "unbind"
	if err := s.requireTx(op); err != nil {
		return err
	}
	for i, b := range s.doc.Bindings {
		if b.ID == bindingID {
			s.doc.Bindings = append(s.doc.Bindings[:i], s.doc.Bindings[i+1:]...)
			s.doc.DirtyFlags.MarkBinding(bindingID)
			s.touch()
			return nil
		}
	}
	return newError(ReferenceError, op, fmt.Sprintf("unknown binding %q", bindingID))
}

// BindAttr projects variable onto an element's attribute named key.
func (s *Store) BindAttr(elementID, key, variable string) (string, error) {
	return s.Bind(elementID, variable, irdoc.BindingAttr, key)
}

// BindStyle projects variable onto an element's CSS property named key.
func (s *Store) BindStyle(elementID, key, variable string) (string, error) {
	return s.Bind(elementID, variable, irdoc.BindingStyle, key)
}

// unbindByElementAndKind removes every binding matching elementID/kind,
// used when a text binding is cleared via UnbindText so the Bindings
// collection never drifts out of sync with Element.TextBinding.
func (s *Store) unbindByElementAndKind(elementID string, kind irdoc.BindingKind) {
	kept := s.doc.Bindings[:0]
	for _, b := range s.doc.Bindings {
		if b.ElementID == elementID && b.Kind == kind {
			s.doc.DirtyFlags.MarkBinding(b.ID)
			continue
		}
		kept = append(kept, b)
	}
	s.doc.Bindings = kept
}
