// Package irdoc defines the passive IR data model: the five cross-referenced
// entity collections described by the specification (elements, variables,
// bindings, events, conditional groups), their dirty-flag bookkeeping, and
// the deep-clone discipline every other layer relies on. There is no
// freeze step: a clone is an independent copy that its holder can still
// mutate, without any effect on the document it was taken from.
//
// Nothing in this package enforces structural invariants or opens
// transactions; it is deliberately inert. That is the job of irstore.
package irdoc

// VariableType is the kind of a Variable.
type VariableType string

const (
	VariableStatic   VariableType = "static"
	VariableReactive VariableType = "reactive"
	VariableFetch    VariableType = "fetch"
)

// BindingKind is the projection surface a Binding writes to.
type BindingKind string

const (
	BindingText  BindingKind = "text"
	BindingAttr  BindingKind = "attr"
	BindingStyle BindingKind = "style"
)

// ControlType is the role an element plays inside a conditional group.
type ControlType string

const (
	ControlIf   ControlType = "if"
	ControlElif ControlType = "elif"
	ControlElse ControlType = "else"
)

// NormalizeControlType maps the "elsif" spelling onto "elif"; the spec
// allows both on input (kind ∈ {if|elif|elsif|else}) but the store and
// compiler only ever deal in the canonical "elif" spelling internally.
func NormalizeControlType(t string) ControlType {
	if t == "elsif" {
		return ControlElif
	}
	return ControlType(t)
}

// ActionTag identifies which of the three recognised event-action variants
// (plus the Unknown fallback) a given Action carries.
type ActionTag string

const (
	ActionUpdate  ActionTag = "Update"
	ActionSet     ActionTag = "Set"
	ActionCall    ActionTag = "Call"
	ActionUnknown ActionTag = "Unknown"
)

// Action is the tagged-variant payload of an Event. Exactly one of the
// field groups below is meaningful, selected by Tag:
//
//	Update: Target, Op, Value
//	Set:    Target, Value
//	Call:   Function
//	Unknown: nothing — the compiler emits a no-op for it.
type Action struct {
	Tag      ActionTag `json:"tag"`
	Target   string    `json:"target,omitempty"`
	Op       string    `json:"op,omitempty"`
	Value    any       `json:"value,omitempty"`
	Function string    `json:"function,omitempty"`
}

// Control marks an element as a member of a conditional group.
type Control struct {
	Type  ControlType `json:"type"`
	Expr  string      `json:"expr,omitempty"` // non-empty for If/Elif, empty for Else
	Group string      `json:"group"`          // GroupId
}

// Loop marks an element as repeating once per item of an array-valued
// variable.
type Loop struct {
	Source string `json:"source"` // variable name
	Alias  string `json:"alias"`
	Index  string `json:"index,omitempty"` // optional; empty means unused
	Key    string `json:"key,omitempty"`   // optional; empty means unused
}

// Element is a node in the UI tree.
type Element struct {
	ID       string   `json:"id"`
	Kind     string   `json:"kind"`
	Tag      string   `json:"tag"`
	Parent   string   `json:"parent,omitempty"` // empty means no parent (root, or detached mid-op)
	Children []string `json:"children"`

	Text        *string `json:"text"`        // static text content; nil means unset
	TextBinding *string `json:"textBinding"` // reactive text source (variable name); nil means unset

	Styles  map[string]string   `json:"styles"`
	Classes map[string]struct{} `json:"-"`
	Attrs   map[string]string   `json:"attrs"`

	Control *Control `json:"control,omitempty"`
	Loop    *Loop    `json:"loop,omitempty"`
}

// NewElement returns an Element with all maps initialized, ready to be
// populated by the store.
func NewElement(id, kind, tag string) *Element {
	return &Element{
		ID:      id,
		Kind:    kind,
		Tag:     tag,
		Styles:  make(map[string]string),
		Classes: make(map[string]struct{}),
		Attrs:   make(map[string]string),
	}
}

// Variable is a named piece of program state.
type Variable struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Type      VariableType `json:"type"`
	Init      any          `json:"init"`
	Source    string       `json:"source,omitempty"`    // fetch only
	Lifecycle string       `json:"lifecycle,omitempty"` // fetch only: "eager" | "lazy"
}

// Binding declaratively projects a variable's value onto an element.
type Binding struct {
	ID        string      `json:"id"`
	ElementID string      `json:"elementId"`
	Variable  string      `json:"variable"`
	Kind      BindingKind `json:"kind"`
	Key       string      `json:"key,omitempty"` // required for attr/style, empty for text
}

// Event is a single registered handler: firing Action on Target when the
// event type it's stored under occurs.
type Event struct {
	ID     string `json:"id"`
	Target string `json:"target"` // ElementId
	Action Action `json:"action"`
}

// ConditionalGroup is an ordered if/elif*/else? chain of sibling elements.
type ConditionalGroup struct {
	If   string   `json:"if"`
	Elif []string `json:"elif"`
	Else string   `json:"else,omitempty"` // empty means absent
}

// Meta is the document's header.
type Meta struct {
	Version  string `json:"version"`
	Created  string `json:"created"`
	Modified string `json:"modified"`
}

// Variables partitions variable storage by type while keeping a flat
// name->variable index for O(1) lookups and the I2 uniqueness check.
type Variables struct {
	Static   map[string]*Variable `json:"static"`
	Reactive map[string]*Variable `json:"reactive"`
	Fetch    map[string]*Variable `json:"fetch"`

	// order records creation order across all three partitions so queries
	// that enumerate "all variables" are deterministic. Not serialized (it
	// is unexported); ImportJSON reconstructs a stable order from sorted
	// names.
	order []string
}

func NewVariables() *Variables {
	return &Variables{
		Static:   make(map[string]*Variable),
		Reactive: make(map[string]*Variable),
		Fetch:    make(map[string]*Variable),
	}
}

func (vs *Variables) partitionFor(t VariableType) map[string]*Variable {
	switch t {
	case VariableStatic:
		return vs.Static
	case VariableReactive:
		return vs.Reactive
	case VariableFetch:
		return vs.Fetch
	default:
		return nil
	}
}

// Lookup finds a variable by name across all three partitions.
func (vs *Variables) Lookup(name string) (*Variable, bool) {
	if v, ok := vs.Static[name]; ok {
		return v, true
	}
	if v, ok := vs.Reactive[name]; ok {
		return v, true
	}
	if v, ok := vs.Fetch[name]; ok {
		return v, true
	}
	return nil, false
}

// Insert adds v to its type's partition and records creation order. The
// caller (irstore) is responsible for the I2 uniqueness check beforehand.
func (vs *Variables) Insert(v *Variable) {
	p := vs.partitionFor(v.Type)
	if p == nil {
		return
	}
	p[v.Name] = v
	vs.order = append(vs.order, v.Name)
}

// Delete removes a variable by name from whichever partition holds it.
func (vs *Variables) Delete(name string) {
	delete(vs.Static, name)
	delete(vs.Reactive, name)
	delete(vs.Fetch, name)
	for i, n := range vs.order {
		if n == name {
			vs.order = append(vs.order[:i], vs.order[i+1:]...)
			break
		}
	}
}

// All returns every variable across all partitions in creation order.
func (vs *Variables) All() []*Variable {
	out := make([]*Variable, 0, len(vs.order))
	for _, name := range vs.order {
		if v, ok := vs.Lookup(name); ok {
			out = append(out, v)
		}
	}
	return out
}

// Elements holds the id-keyed element map plus the root pointer.
type Elements struct {
	RootID string              `json:"rootId,omitempty"` // empty means no root
	Nodes  map[string]*Element `json:"nodes"`
}

func NewElements() *Elements {
	return &Elements{Nodes: make(map[string]*Element)}
}

// DirtyFlags tracks which entities were touched since a consumer last
// cleared them. The store only ever sets these; clearing is a renderer's
// responsibility (see spec §4.1 "Dirty-flag contract").
type DirtyFlags struct {
	Elements     map[string]struct{} `json:"-"`
	Variables    map[string]struct{} `json:"-"`
	Events       map[string]struct{} `json:"-"`
	Bindings     map[string]struct{} `json:"-"`
	Conditionals map[string]struct{} `json:"-"`
	Loops        map[string]struct{} `json:"-"`
	Structure    bool                `json:"structure"`
}

func NewDirtyFlags() *DirtyFlags {
	return &DirtyFlags{
		Elements:     make(map[string]struct{}),
		Variables:    make(map[string]struct{}),
		Events:       make(map[string]struct{}),
		Bindings:     make(map[string]struct{}),
		Conditionals: make(map[string]struct{}),
		Loops:        make(map[string]struct{}),
	}
}

func (d *DirtyFlags) MarkElement(id string)     { d.Elements[id] = struct{}{} }
func (d *DirtyFlags) MarkVariable(name string)  { d.Variables[name] = struct{}{} }
func (d *DirtyFlags) MarkEvent(id string)       { d.Events[id] = struct{}{} }
func (d *DirtyFlags) MarkBinding(id string)     { d.Bindings[id] = struct{}{} }
func (d *DirtyFlags) MarkConditional(id string) { d.Conditionals[id] = struct{}{} }
func (d *DirtyFlags) MarkLoop(id string)        { d.Loops[id] = struct{}{} }
func (d *DirtyFlags) MarkStructure()            { d.Structure = true }

// Document is the L0 root: the full in-memory IR program.
type Document struct {
	Meta              Meta                         `json:"meta"`
	Variables         *Variables                   `json:"variables"`
	Elements          *Elements                    `json:"elements"`
	Events            map[string][]*Event          `json:"events"` // keyed by event type, e.g. "click"
	Bindings          []*Binding                   `json:"bindings"`
	ConditionalGroups map[string]*ConditionalGroup `json:"conditionalGroups"`
	DirtyFlags        *DirtyFlags                  `json:"dirtyFlags"`
}

// NewDocument returns an empty document with version "2.0.0" (§6) and all
// nested collections initialized.
func NewDocument(now string) *Document {
	return &Document{
		Meta:              Meta{Version: "2.0.0", Created: now, Modified: now},
		Variables:         NewVariables(),
		Elements:          NewElements(),
		Events:            make(map[string][]*Event),
		Bindings:          nil,
		ConditionalGroups: make(map[string]*ConditionalGroup),
		DirtyFlags:        NewDirtyFlags(),
	}
}
