package irstore

import (
	"fmt"

	"github.com/protongramzk/iridium/internal/irdoc"
)

// On registers an event handler: firing action on target whenever
// eventType occurs.
func (s *Store) On(targetID, eventType string, action irdoc.Action) (string, error) {
	const op = "on"
	if err := s.requireTx(op); err != nil {
		return "", err
	}
	if _, ok := s.doc.Elements.Nodes[targetID]; !ok {
		return "", newError(ReferenceError, op, fmt.Sprintf("unknown element %q", targetID))
	}
	if action.Tag == "" {
		action.Tag = irdoc.ActionUnknown
	}

	id := s.minter.Mint(irdoc.IDEvent)
	s.doc.Events[eventType] = append(s.doc.Events[eventType], &irdoc.Event{
		ID:     id,
		Target: targetID,
		Action: action,
	})
	s.doc.DirtyFlags.MarkEvent(id)
	s.touch()
	return id, nil
}

// Off removes a registered event handler by id.
func (s *Store) Off(eventID string) error {
	const op = "off"
	if err := s.requireTx(op); err != nil {
		return err
	}
	for t, list := range s.doc.Events {
		for i, e := range list {
			if e.ID == eventID {
				s.doc.Events[t] = append(list[:i], list[i+1:]...)
				s.doc.DirtyFlags.MarkEvent(eventID)
				s.touch()
				return nil
			}
		}
	}
	return newError(ReferenceError, op, fmt.Sprintf("unknown event %q", eventID))
}
