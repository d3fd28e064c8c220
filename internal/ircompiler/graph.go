package ircompiler

import "github.com/protongramzk/iridium/internal/irdoc"

// ChildKind tags what a position in an element's child list actually holds:
// a plain element, a loop, or a conditional group. All three share a
// position in the original irdoc.Element.Children slice; the graph replaces
// repeated if/elif/else ids with a single ConditionalNode at the position of
// the group's "if" branch.
type ChildKind string

const (
	ChildElement     ChildKind = "element"
	ChildLoop        ChildKind = "loop"
	ChildConditional ChildKind = "conditional"
)

// Child is one entry in an ElementNode's child layout.
type Child struct {
	Kind        ChildKind
	Element     *ElementNode
	Loop        *LoopNode
	Conditional *ConditionalNode
}

// VarNode is one IR variable, carried through unchanged for emission.
type VarNode struct {
	Name     string
	Variable *irdoc.Variable
}

// ElementNode is a plain element: not a loop body, not a conditional branch.
// Its Children mirror irdoc.Element.Children, with any if/elif/else run
// collapsed into a single ConditionalNode entry positioned at the "if"
// branch's original index.
type ElementNode struct {
	ID       string
	Element  *irdoc.Element
	Children []Child
}

// LoopNode is an element carrying a non-nil loop descriptor. Its Element
// field still carries a full child subtree — Open Question 5 is resolved by
// reusing the same ElementNode emission path for loop bodies (see
// SPEC_FULL.md).
type LoopNode struct {
	ID      string
	Element *ElementNode
	Loop    *irdoc.Loop
}

// ConditionalNode owns one if/elif*/else? chain. If, Elif and Else are full
// element subtrees built the same way as any other ElementNode.
type ConditionalNode struct {
	GroupID string
	If      *ElementNode
	Elif    []*ElementNode
	Else    *ElementNode // nil when the group has no else branch
}

// Graph is the node graph §4.2 describes: one VarNode per variable, the
// conditional/loop nodes keyed by the id that owns them, and a Root entry
// for the element subtree starting at RootID (nil for an empty document).
type Graph struct {
	Doc          *irdoc.Document
	Vars         []*VarNode
	Conditionals map[string]*ConditionalNode
	Loops        map[string]*LoopNode
	Root         Child
	HasRoot      bool
}

// buildGraph walks a frozen document into the node graph. It returns a
// CompileError of kind CompileErrorStructure for any dangling reference a
// hand-constructed (not store-mediated) snapshot might carry — the store
// itself never produces one.
func buildGraph(doc *irdoc.Document) (*Graph, error) {
	g := &Graph{
		Doc:          doc,
		Conditionals: make(map[string]*ConditionalNode),
		Loops:        make(map[string]*LoopNode),
	}

	for _, v := range doc.Variables.All() {
		g.Vars = append(g.Vars, &VarNode{Name: v.Name, Variable: v})
	}

	b := &graphBuilder{doc: doc, graph: g, visited: make(map[string]bool)}

	if doc.Elements.RootID != "" {
		child, err := b.buildChild(doc.Elements.RootID)
		if err != nil {
			return nil, err
		}
		if child != nil {
			g.Root = *child
			g.HasRoot = true
		}
	}

	return g, nil
}

type graphBuilder struct {
	doc     *irdoc.Document
	graph   *Graph
	visited map[string]bool
}

// buildChild classifies a single element id and builds whatever node it
// owns. It returns (nil, nil) for an elif/else id: those are folded into the
// ConditionalNode built when their group's "if" element is visited, so they
// must not also appear as a sibling entry in the parent's child layout.
func (b *graphBuilder) buildChild(id string) (*Child, error) {
	el, ok := b.doc.Elements.Nodes[id]
	if !ok {
		return nil, newStructureError("buildGraph", "dangling element reference %q", id)
	}

	if el.Control != nil {
		group, ok := b.doc.ConditionalGroups[el.Control.Group]
		if !ok {
			return nil, newStructureError("buildGraph", "element %q references unknown group %q", id, el.Control.Group)
		}
		if group.If != id {
			return nil, nil
		}
		node, err := b.buildConditionalNode(el.Control.Group, group)
		if err != nil {
			return nil, err
		}
		return &Child{Kind: ChildConditional, Conditional: node}, nil
	}

	if el.Loop != nil {
		elNode, err := b.buildElementNode(id, el)
		if err != nil {
			return nil, err
		}
		loopNode := &LoopNode{ID: id, Element: elNode, Loop: el.Loop}
		b.graph.Loops[id] = loopNode
		return &Child{Kind: ChildLoop, Loop: loopNode}, nil
	}

	elNode, err := b.buildElementNode(id, el)
	if err != nil {
		return nil, err
	}
	return &Child{Kind: ChildElement, Element: elNode}, nil
}

func (b *graphBuilder) buildElementNode(id string, el *irdoc.Element) (*ElementNode, error) {
	node := &ElementNode{ID: id, Element: el}
	for _, childID := range el.Children {
		child, err := b.buildChild(childID)
		if err != nil {
			return nil, err
		}
		if child != nil {
			node.Children = append(node.Children, *child)
		}
	}
	return node, nil
}

func (b *graphBuilder) buildConditionalNode(groupID string, group *irdoc.ConditionalGroup) (*ConditionalNode, error) {
	ifEl, ok := b.doc.Elements.Nodes[group.If]
	if !ok {
		return nil, newStructureError("buildGraph", "group %q's if element %q is missing", groupID, group.If)
	}
	ifNode, err := b.buildElementNode(group.If, ifEl)
	if err != nil {
		return nil, err
	}

	node := &ConditionalNode{GroupID: groupID, If: ifNode}
	for _, elifID := range group.Elif {
		elifEl, ok := b.doc.Elements.Nodes[elifID]
		if !ok {
			return nil, newStructureError("buildGraph", "group %q's elif element %q is missing", groupID, elifID)
		}
		elifNode, err := b.buildElementNode(elifID, elifEl)
		if err != nil {
			return nil, err
		}
		node.Elif = append(node.Elif, elifNode)
	}
	if group.Else != "" {
		elseEl, ok := b.doc.Elements.Nodes[group.Else]
		if !ok {
			return nil, newStructureError("buildGraph", "group %q's else element %q is missing", groupID, group.Else)
		}
		elseNode, err := b.buildElementNode(group.Else, elseEl)
		if err != nil {
			return nil, err
		}
		node.Else = elseNode
	}

	b.graph.Conditionals[groupID] = node
	return node, nil
}

// branches returns a ConditionalNode's if/elif/else elements in declaration
// order, the order every emission pass (create chain, dependency walk) must
// agree on.
func (c *ConditionalNode) branches() []*ElementNode {
	all := make([]*ElementNode, 0, 2+len(c.Elif))
	all = append(all, c.If)
	all = append(all, c.Elif...)
	if c.Else != nil {
		all = append(all, c.Else)
	}
	return all
}
