package irstore

import (
	"regexp"

	"github.com/protongramzk/iridium/internal/irdoc"
)

// Violation is one entry of the structured, non-throwing report returned by
// the I5/I6/I7 validators — "shape violations" in the error taxonomy,
// collected and returned rather than raised.
type Violation struct {
	GroupID   string `json:"groupId,omitempty"`
	ElementID string `json:"elementId,omitempty"`
	Message   string `json:"message"`
}

// ValidationResult is the shape the store facade hands back from
// ValidateConditionalGroups/ValidateLoops.
type ValidationResult struct {
	Valid  bool        `json:"valid"`
	Errors []Violation `json:"errors"`
}

func newValidationResult(violations []Violation) ValidationResult {
	if violations == nil {
		violations = []Violation{}
	}
	return ValidationResult{Valid: len(violations) == 0, Errors: violations}
}

// ValidateConditionalGroups checks every group against I5 (shared parent)
// and I6 (exactly one if, in-order elifs, at most one else, expr presence).
func (s *Store) ValidateConditionalGroups() ValidationResult {
	var violations []Violation
	for gid, g := range s.doc.ConditionalGroups {
		violations = append(violations, s.validateGroupShape(gid, g)...)
	}
	return newValidationResult(violations)
}

func (s *Store) validateGroupShape(gid string, g *irdoc.ConditionalGroup) []Violation {
	var violations []Violation

	ifEl, ok := s.doc.Elements.Nodes[g.If]
	if !ok {
		return []Violation{{GroupID: gid, Message: "group has no if element"}}
	}
	if ifEl.Control == nil || ifEl.Control.Type != irdoc.ControlIf {
		violations = append(violations, Violation{GroupID: gid, ElementID: g.If, Message: "if element missing control.type=if"})
	}
	if ifEl.Control != nil && ifEl.Control.Expr == "" {
		violations = append(violations, Violation{GroupID: gid, ElementID: g.If, Message: "if requires a non-empty expr"})
	}

	siblings := []*irdoc.Element{ifEl}

	for _, eid := range g.Elif {
		el, ok := s.doc.Elements.Nodes[eid]
		if !ok {
			violations = append(violations, Violation{GroupID: gid, ElementID: eid, Message: "elif references a missing element"})
			continue
		}
		if el.Control == nil || el.Control.Type != irdoc.ControlElif {
			violations = append(violations, Violation{GroupID: gid, ElementID: eid, Message: "elif element missing control.type=elif"})
		}
		if el.Control != nil && el.Control.Expr == "" {
			violations = append(violations, Violation{GroupID: gid, ElementID: eid, Message: "elif requires a non-empty expr"})
		}
		siblings = append(siblings, el)
	}

	if g.Else != "" {
		el, ok := s.doc.Elements.Nodes[g.Else]
		if !ok {
			violations = append(violations, Violation{GroupID: gid, ElementID: g.Else, Message: "else references a missing element"})
		} else {
			if el.Control == nil || el.Control.Type != irdoc.ControlElse {
				violations = append(violations, Violation{GroupID: gid, ElementID: g.Else, Message: "else element missing control.type=else"})
			}
			if el.Control != nil && el.Control.Expr != "" {
				violations = append(violations, Violation{GroupID: gid, ElementID: g.Else, Message: "else must carry no expr"})
			}
			siblings = append(siblings, el)
		}
	}

	var parent string
	parentSet := false
	for _, el := range siblings {
		if el == nil {
			continue
		}
		if !parentSet {
			parent = el.Parent
			parentSet = true
			continue
		}
		if el.Parent != parent {
			violations = append(violations, Violation{GroupID: gid, ElementID: el.ID, Message: "group siblings do not share a parent"})
		}
	}

	return violations
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// ValidateLoops checks every looped element against I7: alias/index are
// syntactically valid identifiers and source names an existing variable.
func (s *Store) ValidateLoops() ValidationResult {
	var violations []Violation
	for id, el := range s.doc.Elements.Nodes {
		if el.Loop == nil {
			continue
		}
		violations = append(violations, s.validateLoopShape(id, el.Loop)...)
	}
	return newValidationResult(violations)
}

func (s *Store) validateLoopShape(elementID string, l *irdoc.Loop) []Violation {
	var violations []Violation

	if !identifierPattern.MatchString(l.Alias) {
		violations = append(violations, Violation{ElementID: elementID, Message: "loop alias is not a valid identifier"})
	}
	if l.Index != "" && !identifierPattern.MatchString(l.Index) {
		violations = append(violations, Violation{ElementID: elementID, Message: "loop index is not a valid identifier"})
	}
	if l.Key != "" && !identifierPattern.MatchString(l.Key) {
		violations = append(violations, Violation{ElementID: elementID, Message: "loop key is not a valid identifier"})
	}
	if _, ok := s.doc.Variables.Lookup(l.Source); !ok {
		violations = append(violations, Violation{ElementID: elementID, Message: "loop source names an unknown variable"})
	}

	return violations
}
