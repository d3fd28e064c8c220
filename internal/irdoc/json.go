package irdoc

import (
	"encoding/json"
	"sort"
)

// elementAlias mirrors Element but substitutes Classes's set-as-map
// representation with a deduplicated array, matching §6's "sets serialize
// as sequences with no duplicates" persisted-format rule.
type elementAlias struct {
	ID          string            `json:"id"`
	Kind        string            `json:"kind"`
	Tag         string            `json:"tag"`
	Parent      string            `json:"parent,omitempty"`
	Children    []string          `json:"children"`
	Text        *string           `json:"text"`
	TextBinding *string           `json:"textBinding"`
	Styles      map[string]string `json:"styles"`
	Classes     []string          `json:"classes"`
	Attrs       map[string]string `json:"attrs"`
	Control     *Control          `json:"control,omitempty"`
	Loop        *Loop             `json:"loop,omitempty"`
}

func classesToSlice(classes map[string]struct{}) []string {
	out := make([]string, 0, len(classes))
	for c := range classes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func classesFromSlice(classes []string) map[string]struct{} {
	out := make(map[string]struct{}, len(classes))
	for _, c := range classes {
		out[c] = struct{}{}
	}
	return out
}

// MarshalJSON encodes Classes as a sorted, deduplicated array.
func (e *Element) MarshalJSON() ([]byte, error) {
	return json.Marshal(elementAlias{
		ID:          e.ID,
		Kind:        e.Kind,
		Tag:         e.Tag,
		Parent:      e.Parent,
		Children:    e.Children,
		Text:        e.Text,
		TextBinding: e.TextBinding,
		Styles:      e.Styles,
		Classes:     classesToSlice(e.Classes),
		Attrs:       e.Attrs,
		Control:     e.Control,
		Loop:        e.Loop,
	})
}

// UnmarshalJSON decodes a persisted element, rebuilding Classes as a set.
func (e *Element) UnmarshalJSON(data []byte) error {
	var alias elementAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	e.ID = alias.ID
	e.Kind = alias.Kind
	e.Tag = alias.Tag
	e.Parent = alias.Parent
	e.Children = alias.Children
	e.Text = alias.Text
	e.TextBinding = alias.TextBinding
	e.Styles = alias.Styles
	if e.Styles == nil {
		e.Styles = make(map[string]string)
	}
	e.Classes = classesFromSlice(alias.Classes)
	e.Attrs = alias.Attrs
	if e.Attrs == nil {
		e.Attrs = make(map[string]string)
	}
	e.Control = alias.Control
	e.Loop = alias.Loop
	return nil
}

// variablesAlias mirrors Variables for JSON purposes; the unexported order
// slice is reconstructed on decode from sorted names within each partition.
type variablesAlias struct {
	Static   map[string]*Variable `json:"static"`
	Reactive map[string]*Variable `json:"reactive"`
	Fetch    map[string]*Variable `json:"fetch"`
}

func (vs *Variables) MarshalJSON() ([]byte, error) {
	return json.Marshal(variablesAlias{Static: vs.Static, Reactive: vs.Reactive, Fetch: vs.Fetch})
}

func (vs *Variables) UnmarshalJSON(data []byte) error {
	var alias variablesAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*vs = *NewVariables()
	for _, partition := range []map[string]*Variable{alias.Static, alias.Reactive, alias.Fetch} {
		names := make([]string, 0, len(partition))
		for name := range partition {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			vs.Insert(partition[name])
		}
	}
	return nil
}
